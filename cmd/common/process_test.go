package common_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"jose/statement-ingest/cmd/common"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFileProcessor implements common.FileProcessor for testing
type MockFileProcessor struct {
	mock.Mock
}

func (m *MockFileProcessor) ProcessStatementFile(ctx context.Context, path, userID string, st store.TransactionStore) models.ProcessResult {
	args := m.Called(ctx, path, userID, st)
	return args.Get(0).(models.ProcessResult)
}

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("hoje uber 15,50\n"), 0600))
	return path
}

func TestCollectInputFiles(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.csv")
	a := writeFile(t, dir, "a.TXT")
	writeFile(t, dir, "notes.md")
	empty := t.TempDir()

	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr string
	}{
		{"directory lists supported files sorted", dir, []string{a, b}, ""},
		{"single file", b, []string{b}, ""},
		{"empty input", "", nil, "must be specified"},
		{"missing file", filepath.Join(dir, "nope.csv"), nil, "does not exist"},
		{"unsupported file", filepath.Join(dir, "notes.md"), nil, "unsupported file type"},
		{"directory without statements", empty, nil, "no supported statement files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := common.CollectInputFiles(tt.input)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportFiles(t *testing.T) {
	ctx := context.Background()
	st := store.NewMockStore()
	uber := models.Transaction{Date: "2026-01-20", Description: "uber", Amount: decimal.RequireFromString("-15.50"), Type: models.TypeExpense, Category: "Transporte"}

	p := &MockFileProcessor{}
	p.On("ProcessStatementFile", ctx, "a.txt", "user-1", st).
		Return(models.ProcessResult{Success: true, Message: "1 transação(ões) importada(s).", Transactions: []models.Transaction{uber}})
	p.On("ProcessStatementFile", ctx, "b.txt", "user-1", st).
		Return(models.ProcessResult{Success: false, Error: "dup", Duplicates: []models.Transaction{uber}})

	var out bytes.Buffer
	logger := logging.NewMockLogger()
	summary := common.ImportFiles(ctx, p, []string{"a.txt", "b.txt"}, "user-1", st, &out, logger)

	p.AssertExpectations(t)
	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, []models.Transaction{uber}, summary.Imported)
	assert.Equal(t, []models.Transaction{uber}, summary.Duplicates)
	assert.Contains(t, out.String(), "a.txt: 1 transação(ões) importada(s).")
	assert.Contains(t, out.String(), "b.txt: dup")
	assert.True(t, logger.HasEntry("WARN", "Statement import failed"))
}

func TestImportFiles_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &MockFileProcessor{}
	summary := common.ImportFiles(ctx, p, []string{"a.txt", "b.txt"}, "user-1", store.NewMockStore(), &bytes.Buffer{}, logging.NewMockLogger())

	p.AssertNotCalled(t, "ProcessStatementFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 2, summary.Failed)
}

func TestPrintResult(t *testing.T) {
	var out bytes.Buffer
	common.PrintResult(&out, "", models.ProcessResult{
		Success: true,
		Message: "ok",
		Transactions: []models.Transaction{
			{Date: "2026-01-26", Description: "Aplicação CDB", Amount: decimal.NewFromInt(-1000), Type: models.TypeInvestment, Category: "Investimento"},
		},
		Stats: &models.ProcessStats{LocalParsed: 1, Total: 1},
	})

	s := out.String()
	assert.Contains(t, s, "ok\n")
	assert.Contains(t, s, "R$ -1.000,00")
	assert.Contains(t, s, "investment")
	assert.Contains(t, s, "local: 1  ia: 0  total: 1")
}
