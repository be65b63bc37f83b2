package textutils_test

import (
	"testing"

	"jose/statement-ingest/internal/textutils"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	input := "  hoje uber 15,50  \r\n\r\n\t\n26 JAN 2026\nAplicação CDB          1.000,00\n"
	lines := textutils.SplitLines(input)
	assert.Equal(t, []string{
		"hoje uber 15,50",
		"26 JAN 2026",
		"Aplicação CDB          1.000,00",
	}, lines)

	assert.Empty(t, textutils.SplitLines(" \n\n  "))
}

func TestIsSummaryLine(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"SALDO DO DIA          1.234,00", true},
		{"Total de gastos 500,00", true},
		{"Opening balance 10.00", true},
		{"Balance 10.00", true},
		{"hoje posto total 120,00", false},
		{"Posto Total 120,00", false},
		{"Totalpass academia 89,90", false},
		{"20/01/2026 - Saldo Bar - 30,00", false},
		{"Data,Valor,Identificador,Descrição", true},
		{"data,valor", true},
		{"hoje uber 15,50", false},
		{"21/01/2026,-46.00,x,Sonda", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.IsSummaryLine(tt.line))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Padaria São João", "padariasaojoao"},
		{"UBER *TRIP 12-34", "ubertrip1234"},
		{"Farmácia  Droga-Raia", "farmaciadrogaraia"},
		{"", ""},
		{"***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.Slugify(tt.input))
		})
	}
}

func TestStripAccents(t *testing.T) {
	assert.Equal(t, "aplicacao poupanca", textutils.StripAccents("aplicação poupança"))
	assert.Equal(t, "ONIBUS", textutils.StripAccents("ÔNIBUS"))
}

func TestContainsKeyword(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		keyword  string
		expected bool
	}{
		{"short keyword as word", "pix enviado maria", "pix", true},
		{"short keyword inside word", "pixel art store", "pix", false},
		{"short keyword after punctuation", "transf.ted/123", "ted", true},
		{"short keyword inside longer word", "united airlines", "ted", false},
		{"short keyword second occurrence", "tedx ted 10", "ted", true},
		{"short keyword at end", "aplicação cdb", "cdb", true},
		{"accented neighbour is a letter", "çcdb", "cdb", false},
		{"long keyword as substring", "supermercados sonda", "supermercado", true},
		{"long keyword missing", "uber trip", "restaurante", false},
		{"empty keyword", "anything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.ContainsKeyword(tt.text, tt.keyword))
		})
	}
}

func TestContainsAny(t *testing.T) {
	assert.True(t, textutils.ContainsAny("resgate cdb", []string{"aplicação", "cdb"}))
	assert.False(t, textutils.ContainsAny("uber", []string{"aplicação", "cdb"}))
	assert.False(t, textutils.ContainsAny("uber", nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", textutils.Truncate("abc", 5))
	assert.Equal(t, "aç...", textutils.Truncate("açúcar", 2))
}
