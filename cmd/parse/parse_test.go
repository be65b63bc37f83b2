package parse

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"jose/statement-ingest/internal/aiparser"
	"jose/statement-ingest/internal/categorizer"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time { return time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC) }

func newParser() (*parser.Parser, *categorizer.Classifier) {
	classifier := categorizer.NewClassifier(nil)
	return parser.NewParser(classifier, logging.NewMockLogger(), fixedNow), classifier
}

func TestParseCommand_Metadata(t *testing.T) {
	assert.Equal(t, "parse", Cmd.Use)
	for _, name := range []string{"input", "text", "output", "no-ai", "patterns"} {
		assert.NotNil(t, Cmd.Flags().Lookup(name), name)
	}
}

func TestListPatterns(t *testing.T) {
	local, _ := newParser()
	var out bytes.Buffer
	require.NoError(t, ListPatterns(&out, local))
	assert.Equal(t, "1. natural_language\n2. csv\n3. date_header\n4. block\n5. standard\n", out.String())
}

func TestParse_LocalOnly(t *testing.T) {
	local, classifier := newParser()
	res, err := Parse(context.Background(), "hoje uber 15,50\nlinha estranha", local, nil, classifier, logging.NewMockLogger())
	require.NoError(t, err)

	require.Len(t, res.Transactions, 1)
	assert.Equal(t, 1, res.LocalParsed)
	assert.Equal(t, []string{"linha estranha"}, res.Unparsed)

	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out, res))
	assert.Equal(t, "date,description,amount,type,category,subcategory\n2026-01-20,uber,-15.50,expense,Transporte,\n", out.String())
}

func TestParse_WithAI(t *testing.T) {
	local, classifier := newParser()
	ai := aiparser.NewParser(aiparser.GeneratorFunc(func(context.Context, string) (string, error) {
		return `[{"date":"2026-01-19","description":"Farmácia","amount":-30,"type":"expense","category":"Saúde"}]`, nil
	}), logging.NewMockLogger(), fixedNow)

	res, err := Parse(context.Background(), "hoje uber 15,50\ngastei 30 na farmácia ontem", local, ai, classifier, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Len(t, res.Transactions, 2)
	assert.Equal(t, 1, res.AIParsed)
	assert.Empty(t, res.Unparsed)
}

func TestParse_AIFailureKeepsLocal(t *testing.T) {
	local, classifier := newParser()
	ai := aiparser.NewParser(aiparser.GeneratorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("boom")
	}), logging.NewMockLogger(), fixedNow)
	logger := logging.NewMockLogger()

	res, err := Parse(context.Background(), "hoje uber 15,50\nlinha estranha", local, ai, classifier, logger)
	require.NoError(t, err)
	assert.Len(t, res.Transactions, 1)
	assert.Equal(t, []string{"linha estranha"}, res.Unparsed)
	assert.True(t, logger.HasEntry("WARN", "AI parsing failed, keeping local results"))
}
