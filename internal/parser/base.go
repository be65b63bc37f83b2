// Package parser turns statement lines into transaction candidates using a
// fixed, ordered list of line patterns.
package parser

import (
	"jose/statement-ingest/internal/common"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
)

// BaseParser provides the logging and export plumbing shared by parsers.
//
// Parsers should embed BaseParser to inherit common functionality:
//
//	type MyParser struct {
//		BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a new BaseParser instance with the provided logger.
// If logger is nil, a default logger will be used.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	return BaseParser{
		logger: logger,
	}
}

// SetLogger replaces the logger. Nil is ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// WriteToCSV writes parsed candidates with the common CSV writer.
func (b *BaseParser) WriteToCSV(transactions []models.Transaction, csvFile string) error {
	b.logger.Info("Writing transactions to CSV using common writer",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	return common.WriteTransactionsToCSV(transactions, csvFile)
}
