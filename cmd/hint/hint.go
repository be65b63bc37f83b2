// Package hint handles crowd hint voting
package hint

import (
	"context"
	"fmt"
	"io"
	"strings"

	"jose/statement-ingest/cmd/root"
	"jose/statement-ingest/internal/container"
	"jose/statement-ingest/internal/store"
	"jose/statement-ingest/internal/textutils"

	"github.com/spf13/cobra"
)

// Options are the flags of the hint command.
type Options struct {
	Description string
	Category    string
	Subcategory string
}

var opts Options

// Cmd represents the hint command
var Cmd = &cobra.Command{
	Use:   "hint",
	Short: "Vote for the category of a description in the crowd hints",
	Long: `Hint records one vote for a category under the slug of a description. The most
voted category of a slug is used for every user without personal history.`,
	RunE: hintFunc,
}

func init() {
	Cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Transaction description")
	Cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Category to vote for")
	Cmd.Flags().StringVarP(&opts.Subcategory, "subcategory", "s", "", "Subcategory (optional)")
	_ = Cmd.MarkFlagRequired("description")
	_ = Cmd.MarkFlagRequired("category")
}

// HintRecorder stores crowd hint votes.
type HintRecorder interface {
	RecordHint(ctx context.Context, slug, category, subcategory string) error
}

var _ HintRecorder = store.TransactionStore(nil)

func hintFunc(cmd *cobra.Command, args []string) error {
	c, err := container.NewContainer(cmd.Context(), root.AppConfig)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	return Run(cmd.Context(), c.GetStore(), opts, cmd.OutOrStdout())
}

// Run votes for opts.Category under the slug of opts.Description.
func Run(ctx context.Context, rec HintRecorder, opts Options, out io.Writer) error {
	slug := textutils.Slugify(opts.Description)
	if slug == "" {
		return fmt.Errorf("description %q has no usable words", opts.Description)
	}
	category := strings.TrimSpace(opts.Category)
	if category == "" {
		return fmt.Errorf("category is required")
	}

	if err := rec.RecordHint(ctx, slug, category, strings.TrimSpace(opts.Subcategory)); err != nil {
		return fmt.Errorf("failed to record hint: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Hint recorded: %s -> %s\n", slug, category)
	return nil
}
