// Package parse handles the dry-run parse command
package parse

import (
	"context"
	"fmt"
	"io"

	"jose/statement-ingest/cmd/root"
	"jose/statement-ingest/internal/accounting"
	"jose/statement-ingest/internal/aiparser"
	"jose/statement-ingest/internal/categorizer"
	csvutil "jose/statement-ingest/internal/common"
	"jose/statement-ingest/internal/container"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/parser"

	"github.com/spf13/cobra"
)

var (
	input    string
	text     string
	output   string
	noAI     bool
	patterns bool
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a statement and print its transactions as CSV",
	Long: `Parse runs the pattern parser, the AI fallback and the sign normalization on a
statement without categorizing from history or storing anything.`,
	RunE: parseFunc,
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Statement file")
	Cmd.Flags().StringVarP(&text, "text", "t", "", "Statement text")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "CSV file (default: stdout)")
	Cmd.Flags().BoolVar(&noAI, "no-ai", false, "Do not send unrecognized lines to the AI model")
	Cmd.Flags().BoolVar(&patterns, "patterns", false, "List the line patterns in the order they are tried")
	Cmd.MarkFlagsOneRequired("input", "text", "patterns")
	Cmd.MarkFlagsMutuallyExclusive("input", "text")
}

// Result is what a dry-run parse produced.
type Result struct {
	Transactions []models.Transaction
	Unparsed     []string
	LocalParsed  int
	AIParsed     int
}

func parseFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c, err := container.NewContainer(ctx, root.AppConfig)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	local := c.GetParser()
	local.SetLogger(root.Log.WithField("command", "parse"))
	if patterns {
		return ListPatterns(cmd.OutOrStdout(), local)
	}

	statement := text
	if input != "" {
		statement, err = c.GetExtractor().FromFile(ctx, input)
		if err != nil {
			return err
		}
	}

	ai := c.GetAIParser()
	if noAI {
		ai = nil
	}
	res, err := Parse(ctx, statement, local, ai, c.GetClassifier(), root.Log)
	if err != nil {
		return err
	}

	for _, line := range res.Unparsed {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "unparsed: %s\n", line)
	}
	if output != "" {
		return local.WriteToCSV(res.Transactions, output)
	}
	return WriteCSV(cmd.OutOrStdout(), res)
}

// Parse extracts and normalizes the transactions of text. Lines neither the
// patterns nor the model resolved are returned in Unparsed.
func Parse(ctx context.Context, text string, local *parser.Parser, ai *aiparser.Parser, classifier *categorizer.Classifier, log logging.Logger) (Result, error) {
	out := local.ParseText(text)
	res := Result{
		Transactions: out.Transactions,
		Unparsed:     out.Unparsed,
		LocalParsed:  len(out.Transactions),
	}

	if len(out.Unparsed) > 0 && ai.Available() {
		aiTxs, err := ai.ParseLines(ctx, out.Unparsed)
		if err != nil {
			log.WithError(err).Warn("AI parsing failed, keeping local results")
		} else {
			res.AIParsed = len(aiTxs)
			res.Transactions = append(res.Transactions, aiTxs...)
			res.Unparsed = nil
		}
	}

	if res.Transactions == nil {
		res.Transactions = []models.Transaction{}
	}
	res.Transactions = accounting.NewNormalizer(classifier).NormalizeAll(res.Transactions)
	log.Info("Statement parsed",
		logging.Field{Key: "local_parsed", Value: res.LocalParsed},
		logging.Field{Key: "ai_parsed", Value: res.AIParsed},
		logging.Field{Key: "unparsed", Value: len(res.Unparsed)})
	return res, nil
}

// ListPatterns prints the pattern names, one per line, in priority order.
func ListPatterns(w io.Writer, local *parser.Parser) error {
	for i, name := range local.PatternNames() {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, name); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes the parsed transactions as CSV to w.
func WriteCSV(w io.Writer, res Result) error {
	return csvutil.WriteTransactions(w, res.Transactions)
}
