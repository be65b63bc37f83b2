// Package importcmd handles the statement import command
package importcmd

import (
	"context"
	"fmt"
	"io"

	"jose/statement-ingest/cmd/common"
	"jose/statement-ingest/cmd/root"
	csvutil "jose/statement-ingest/internal/common"
	"jose/statement-ingest/internal/container"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/store"

	"github.com/spf13/cobra"
)

// Options are the flags of the import command.
type Options struct {
	UserID string
	Input  string
	Text   string
	Output string
}

var opts Options

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import statement files or text for a user",
	Long: `Import parses, categorizes, deduplicates and stores the transactions of a
statement. The input can be a .txt, .csv, .ofx or .pdf file, a directory of
such files, or text passed with --text.

Example:
  jose-ingest import --user 42 --input extrato.ofx --output importadas.csv
  jose-ingest import --user 42 --text "hoje uber 15,50"`,
	RunE: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&opts.UserID, "user", "u", "", "User id owning the imported transactions")
	Cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Statement file or directory")
	Cmd.Flags().StringVarP(&opts.Text, "text", "t", "", "Statement text")
	Cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write the imported transactions to this CSV file")
	_ = Cmd.MarkFlagRequired("user")
	Cmd.MarkFlagsOneRequired("input", "text")
	Cmd.MarkFlagsMutuallyExclusive("input", "text")
}

// StatementProcessor is the part of the pipeline the import command drives.
type StatementProcessor interface {
	common.FileProcessor
	ProcessStatementText(ctx context.Context, text, userID string, st store.TransactionStore) models.ProcessResult
}

func importFunc(cmd *cobra.Command, args []string) error {
	c, err := container.NewContainer(cmd.Context(), root.AppConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close container")
		}
	}()

	return Run(cmd.Context(), c.GetProcessor(), c.GetStore(), opts, cmd.OutOrStdout(), root.Log)
}

// Run imports opts.Text or the files under opts.Input and optionally exports
// what was inserted. It fails only when nothing could be imported.
func Run(ctx context.Context, p StatementProcessor, st store.TransactionStore, opts Options, out io.Writer, log logging.Logger) error {
	var summary common.ImportSummary
	if opts.Text != "" {
		result := p.ProcessStatementText(ctx, opts.Text, opts.UserID, st)
		common.PrintResult(out, "", result)
		summary = common.ImportSummary{Files: 1, Imported: result.Transactions, Duplicates: result.Duplicates}
		if !result.Success {
			summary.Failed = 1
		}
	} else {
		files, err := common.CollectInputFiles(opts.Input)
		if err != nil {
			return err
		}
		summary = common.ImportFiles(ctx, p, files, opts.UserID, st, out, log)
	}

	if opts.Output != "" {
		imported := summary.Imported
		if imported == nil {
			imported = []models.Transaction{}
		}
		if err := csvutil.WriteTransactionsToCSV(imported, opts.Output); err != nil {
			return fmt.Errorf("failed to export transactions: %w", err)
		}
		log.Info("Exported imported transactions",
			logging.Field{Key: logging.FieldOutputFile, Value: opts.Output},
			logging.Field{Key: logging.FieldCount, Value: len(imported)})
	}

	log.Info("Import finished",
		logging.Field{Key: logging.FieldUserID, Value: opts.UserID},
		logging.Field{Key: "files", Value: summary.Files},
		logging.Field{Key: "failed", Value: summary.Failed},
		logging.Field{Key: logging.FieldCount, Value: len(summary.Imported)})

	if summary.Failed == summary.Files {
		return fmt.Errorf("no statement imported")
	}
	return nil
}
