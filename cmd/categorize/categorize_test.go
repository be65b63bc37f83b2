package categorize

import (
	"bytes"
	"context"
	"testing"
	"time"

	"jose/statement-ingest/internal/categorizer"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

func TestCategorizeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "categorize", Cmd.Use)
	assert.NotNil(t, Cmd.RunE)
	flag := Cmd.Flags().Lookup("description")
	require.NotNil(t, flag)
	assert.Equal(t, "d", flag.Shorthand)
	assert.NotNil(t, Cmd.Flags().Lookup("amount"))
	assert.NotNil(t, Cmd.Flags().Lookup("user"))
}

func TestRun(t *testing.T) {
	st := store.NewMockStore()
	require.NoError(t, st.BulkInsert(context.Background(), "user-1", []models.Transaction{{
		Date: "2026-01-02", Description: "Uber para o trabalho", Amount: decimal.NewFromInt(-20),
		Type: models.TypeExpense, Category: models.CategoryLeisure, Subcategory: "Passeio",
	}}))
	require.NoError(t, st.RecordHint(context.Background(), "padaria", models.CategoryFood, "Café"))

	classifier := categorizer.NewClassifier(nil)
	cat := categorizer.NewCategorizer(st, classifier, logging.NewMockLogger())

	tests := []struct {
		name    string
		opts    Options
		want    []string
		wantErr string
	}{
		{
			name: "keywords only",
			opts: Options{Description: "uber"},
			want: []string{"Type:        expense", "Category:    Transporte", "Source:      keywords",
				"Chain:       PersonalHistory -> GlobalHint -> keywords"},
		},
		{
			name: "personal history",
			opts: Options{Description: "uber para o trabalho", UserID: "user-1"},
			want: []string{"Category:    Lazer", "Subcategory: Passeio", "Source:      PersonalHistory"},
		},
		{
			name: "global hint",
			opts: Options{Description: "Padaria", Amount: "-8,50"},
			want: []string{"Category:    Alimentação", "Amount:      R$ -8,50", "Source:      GlobalHint"},
		},
		{name: "missing description", opts: Options{}, wantErr: "description is required"},
		{name: "zero amount", opts: Options{Description: "uber", Amount: "0,00"}, wantErr: "must not be zero"},
		{name: "bad amount", opts: Options{Description: "uber", Amount: "abc"}, wantErr: "failed to parse amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Run(context.Background(), cat, classifier, tt.opts, today, &out)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}
