package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCSVRow struct {
	Name    string `csv:"Name"`
	Country string `csv:"Country"`
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Country\nJohn Doe,USA\nJane Smith,Canada\n"), 0600))

	rows, err := ReadCSVFile[testCSVRow](path, logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "John Doe", rows[0].Name)
	assert.Equal(t, "Canada", rows[1].Country)

	_, err = ReadCSVFile[testCSVRow](filepath.Join(t.TempDir(), "missing.csv"), logging.NewMockLogger())
	assert.Error(t, err)
}

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{Date: "2026-01-20", Description: "uber", Amount: decimal.RequireFromString("-15.5"), Type: models.TypeExpense, Category: models.CategoryTransport},
		{Date: "2026-01-21", Description: "Salário, ACME", Amount: decimal.NewFromInt(5000), Type: models.TypeIncome, Category: models.CategorySalary, Subcategory: "CLT"},
	}
}

func TestWriteTransactions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTransactions(&buf, sampleTransactions()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,description,amount,type,category,subcategory", lines[0])
	assert.Equal(t, "2026-01-20,uber,-15.50,expense,Transporte,", lines[1])
	assert.Equal(t, `2026-01-21,"Salário, ACME",5000.00,income,Salário,CLT`, lines[2])
}

func TestWriteTransactionsToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "import.csv")
	require.NoError(t, WriteTransactionsToCSV(sampleTransactions(), path))

	rows, err := ReadCSVFile[TransactionRow](path, logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "-15.50", rows[0].Amount)
	assert.Equal(t, "CLT", rows[1].Subcategory)

	assert.Error(t, WriteTransactionsToCSV(nil, path))
}
