// Package extract turns statement files into the plain-text lines consumed by
// the pipeline. CSV and OFX exports are rewritten into the delimited
// "DD/MM/YYYY,amount,ref,description" row the local parser recognizes; PDF
// statements go through pdftotext; plain text passes through untouched.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"jose/statement-ingest/internal/fileutils"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/parsererror"
)

// Supported file extensions.
const (
	ExtText = ".txt"
	ExtCSV  = ".csv"
	ExtOFX  = ".ofx"
	ExtPDF  = ".pdf"
)

// SupportedExtensions lists every extension FromFile accepts.
var SupportedExtensions = []string{ExtText, ExtCSV, ExtOFX, ExtPDF}

// Extractor converts statement files to text.
type Extractor struct {
	pdf    PDFExtractor
	logger logging.Logger
}

// NewExtractor creates an Extractor. A nil pdf extractor defaults to
// pdftotext.
func NewExtractor(pdf PDFExtractor, logger logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if pdf == nil {
		pdf = NewPdftotextExtractor()
	}
	return &Extractor{pdf: pdf, logger: logger}
}

// FromFile reads path and extracts its statement text.
func (e *Extractor) FromFile(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ExtPDF {
		if !fileutils.FileExists(path) {
			return "", fmt.Errorf("file does not exist: %s", path)
		}
		return e.fromPDF(ctx, path)
	}

	data, err := fileutils.ReadFile(path)
	if err != nil {
		return "", err
	}
	return e.FromBytes(ctx, path, data)
}

// FromBytes extracts statement text from data; name selects the format by
// extension.
func (e *Extractor) FromBytes(ctx context.Context, name string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	log := e.logger.WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: name},
		logging.Field{Key: "format", Value: ext})

	var (
		text string
		err  error
	)
	switch ext {
	case ExtText:
		text = string(data)
	case ExtCSV:
		text, err = fromCSV(data, log)
	case ExtOFX:
		text, err = fromOFX(data, log)
	case ExtPDF:
		text, err = e.pdfFromBytes(ctx, data)
	default:
		return "", &parsererror.InvalidFormatError{
			FilePath:       name,
			ExpectedFormat: strings.Join(SupportedExtensions, ", "),
			Msg:            "unsupported file type",
		}
	}
	if err != nil {
		return "", err
	}

	log.Debug("Extracted statement text", logging.Field{Key: "bytes", Value: len(text)})
	return text, nil
}

// IsSupported reports whether path has an extension FromFile accepts.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// row renders one transaction in the delimited CSV layout.
func row(date, amount, ref, description string) string {
	ref = strings.ReplaceAll(ref, ",", " ")
	return date + "," + amount + "," + ref + "," + description
}
