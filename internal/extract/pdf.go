package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// PDFExtractor extracts the text layer of a PDF file.
type PDFExtractor interface {
	ExtractText(ctx context.Context, pdfPath string) (string, error)
}

// PdftotextExtractor runs the poppler pdftotext command in layout mode, which
// keeps the column alignment block statements rely on.
type PdftotextExtractor struct {
	Binary string
}

// NewPdftotextExtractor creates an extractor using pdftotext from PATH.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{Binary: "pdftotext"}
}

// ExtractText writes the text layer to stdout and returns it.
func (e *PdftotextExtractor) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Binary, "-layout", "-enc", "UTF-8", pdfPath, "-") // #nosec G204 -- fixed binary, file argument only
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running pdftotext: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.String(), nil
}

// MockPDFExtractor implements PDFExtractor for testing purposes.
type MockPDFExtractor struct {
	MockText string
	MockErr  error
	Paths    []string
}

// NewMockPDFExtractor creates a new MockPDFExtractor with the given mock data.
func NewMockPDFExtractor(mockText string, mockErr error) *MockPDFExtractor {
	return &MockPDFExtractor{MockText: mockText, MockErr: mockErr}
}

// ExtractText returns the predefined mock text or error.
func (e *MockPDFExtractor) ExtractText(_ context.Context, pdfPath string) (string, error) {
	e.Paths = append(e.Paths, pdfPath)
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}

func (e *Extractor) fromPDF(ctx context.Context, path string) (string, error) {
	text, err := e.pdf.ExtractText(ctx, path)
	if err != nil {
		return "", fmt.Errorf("extract PDF text: %w", err)
	}
	return text, nil
}

// pdfFromBytes stages data in a temporary file for the extractor.
func (e *Extractor) pdfFromBytes(ctx context.Context, data []byte) (string, error) {
	dir, err := os.MkdirTemp("", "statement-pdf")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			e.logger.WithError(err).Warn("Failed to remove temp dir")
		}
	}()

	path := filepath.Join(dir, "statement.pdf")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("stage PDF: %w", err)
	}
	return e.fromPDF(ctx, path)
}
