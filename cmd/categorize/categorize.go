// Package categorize handles transaction categorization commands
package categorize

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"jose/statement-ingest/cmd/root"
	"jose/statement-ingest/internal/accounting"
	"jose/statement-ingest/internal/categorizer"
	"jose/statement-ingest/internal/container"
	"jose/statement-ingest/internal/currencyutils"
	"jose/statement-ingest/internal/dateutils"
	"jose/statement-ingest/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Options are the flags of the categorize command.
type Options struct {
	Description string
	Amount      string
	UserID      string
}

var opts Options

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a transaction description",
	Long: `Categorize shows how a description would be typed and categorized: keyword
rules first, then the user's own history and the crowd hints.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Transaction description")
	Cmd.Flags().StringVarP(&opts.Amount, "amount", "a", "", "Transaction amount in Brazilian notation (optional)")
	Cmd.Flags().StringVarP(&opts.UserID, "user", "u", "", "User id whose history is consulted (optional)")
	_ = Cmd.MarkFlagRequired("description")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	c, err := container.NewContainer(cmd.Context(), root.AppConfig)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	return Run(cmd.Context(), c.NewCategorizer(), c.GetClassifier(), opts, time.Now(), cmd.OutOrStdout())
}

// Run categorizes opts.Description and prints the outcome of every tier.
func Run(ctx context.Context, cat *categorizer.Categorizer, classifier *categorizer.Classifier, opts Options, today time.Time, out io.Writer) error {
	if opts.Description == "" {
		return fmt.Errorf("description is required")
	}

	amount := decimal.NewFromInt(-1)
	if opts.Amount != "" {
		parsed, err := currencyutils.ParseBRL(opts.Amount)
		if err != nil {
			return err
		}
		if parsed.IsZero() {
			return fmt.Errorf("amount must not be zero")
		}
		amount = parsed
	}

	tx := accounting.NewNormalizer(classifier).Normalize(models.Transaction{
		Date:        dateutils.ToISODate(today),
		Description: opts.Description,
		Amount:      amount,
	})
	categorized, results := cat.CategorizeTransaction(ctx, opts.UserID, tx)

	_, _ = fmt.Fprintf(out, "Type:        %s\n", categorized.Type)
	_, _ = fmt.Fprintf(out, "Category:    %s\n", categorized.Category)
	if categorized.Subcategory != "" {
		_, _ = fmt.Fprintf(out, "Subcategory: %s\n", categorized.Subcategory)
	}
	if opts.Amount != "" {
		_, _ = fmt.Fprintf(out, "Amount:      %s\n", currencyutils.FormatBRL(categorized.Amount))
	}
	source := "keywords"
	if best, ok := results.GetBestResult(); ok {
		source = best.Strategy
	}
	_, _ = fmt.Fprintf(out, "Source:      %s\n", source)
	_, _ = fmt.Fprintf(out, "Tiers:       %s\n", results.Summary())

	chain := make([]string, 0, len(cat.Strategies())+1)
	for _, strategy := range cat.Strategies() {
		chain = append(chain, strategy.Name())
	}
	chain = append(chain, "keywords")
	_, _ = fmt.Fprintf(out, "Chain:       %s\n", strings.Join(chain, " -> "))
	return nil
}
