// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"fmt"
	"io"
	"os"

	"jose/statement-ingest/internal/currencyutils"
	"jose/statement-ingest/internal/extract"
	"jose/statement-ingest/internal/fileutils"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/store"
)

// FileProcessor imports one statement file for a user.
type FileProcessor interface {
	ProcessStatementFile(ctx context.Context, path, userID string, st store.TransactionStore) models.ProcessResult
}

// ImportSummary aggregates the results of importing several files.
type ImportSummary struct {
	Files      int
	Failed     int
	Imported   []models.Transaction
	Duplicates []models.Transaction
}

// CollectInputFiles expands input into the statement files to import. A
// directory yields its supported files, sorted; a file is returned as is.
func CollectInputFiles(input string) ([]string, error) {
	if input == "" {
		return nil, fmt.Errorf("input file or directory must be specified")
	}

	if fileutils.DirectoryExists(input) {
		files, err := fileutils.ListFilesWithExtensions(input, extract.SupportedExtensions...)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no supported statement files in %s", input)
		}
		return files, nil
	}

	if !fileutils.FileExists(input) {
		return nil, fmt.Errorf("input file does not exist: %s", input)
	}
	if !extract.IsSupported(input) {
		return nil, fmt.Errorf("unsupported file type: %s", input)
	}
	return []string{input}, nil
}

// ImportFiles processes each file in order. A failed file does not stop the
// remaining ones.
func ImportFiles(ctx context.Context, p FileProcessor, files []string, userID string, st store.TransactionStore, out io.Writer, log logging.Logger) ImportSummary {
	summary := ImportSummary{Files: len(files)}
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			log.WithError(err).Warn("Import interrupted")
			summary.Failed += len(files) - i
			break
		}

		log.Info("Importing statement", logging.Field{Key: logging.FieldInputFile, Value: file})
		result := p.ProcessStatementFile(ctx, file, userID, st)
		PrintResult(out, file, result)

		if !result.Success {
			summary.Failed++
			log.Warn("Statement import failed",
				logging.Field{Key: logging.FieldInputFile, Value: file},
				logging.Field{Key: "error", Value: result.Error})
		}
		summary.Imported = append(summary.Imported, result.Transactions...)
		summary.Duplicates = append(summary.Duplicates, result.Duplicates...)
	}
	return summary
}

// PrintResult writes a short human-readable report of result.
func PrintResult(w io.Writer, source string, result models.ProcessResult) {
	if w == nil {
		w = os.Stdout
	}
	if source != "" {
		_, _ = fmt.Fprintf(w, "%s: ", source)
	}
	if result.Success {
		_, _ = fmt.Fprintln(w, result.Message)
	} else {
		_, _ = fmt.Fprintln(w, result.Error)
	}

	for _, tx := range result.Transactions {
		_, _ = fmt.Fprintf(w, "  + %s  %-40s %14s  %-10s %s\n",
			tx.Date, tx.Description, currencyutils.FormatBRL(tx.Amount), tx.Type, tx.Category)
	}
	for _, tx := range result.Duplicates {
		_, _ = fmt.Fprintf(w, "  = %s  %-40s %14s  (duplicada)\n",
			tx.Date, tx.Description, currencyutils.FormatBRL(tx.Amount))
	}
	if result.Stats != nil {
		_, _ = fmt.Fprintf(w, "  local: %d  ia: %d  total: %d\n",
			result.Stats.LocalParsed, result.Stats.AIParsed, result.Stats.Total)
	}
}
