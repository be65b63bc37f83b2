package parsererror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "amount",
			err: &ParseError{
				Parser: "block",
				Field:  "amount",
				Value:  "1.0x0",
				Err:    errors.New("invalid decimal"),
			},
			expected: "block: failed to parse amount='1.0x0': invalid decimal",
		},
		{
			name: "empty value",
			err: &ParseError{
				Parser: "standard",
				Field:  "date",
				Value:  "",
				Err:    errors.New("empty date"),
			},
			expected: "standard: failed to parse date='': empty date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestUnwrap(t *testing.T) {
	original := errors.New("original error")

	parseErr := &ParseError{Parser: "csv", Field: "amount", Value: "x", Err: original}
	assert.True(t, errors.Is(parseErr, original))

	catErr := &CategorizationError{Transaction: "uber", Strategy: "PersonalHistory", Err: original}
	assert.True(t, errors.Is(catErr, original))
	assert.Contains(t, catErr.Error(), "PersonalHistory")
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", &ConfigurationError{Key: "ai.api_key", Msg: "missing"})

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(wrapped, &cfgErr))
	assert.Equal(t, "ai.api_key", cfgErr.Key)
	assert.Equal(t, "configuration error for 'ai.api_key': missing", cfgErr.Error())

	formatErr := &InvalidFormatError{FilePath: "a.xls", ExpectedFormat: "txt, csv, ofx or pdf", Msg: "unsupported extension"}
	assert.Equal(t, "invalid format in file 'a.xls': unsupported extension. Expected: txt, csv, ofx or pdf", formatErr.Error())
}

func TestIsOverloaded(t *testing.T) {
	assert.True(t, IsOverloaded(ErrAIOverloaded))
	assert.True(t, IsOverloaded(fmt.Errorf("gemini: %w", ErrAIOverloaded)))
	assert.False(t, IsOverloaded(errors.New("boom")))
	assert.False(t, IsOverloaded(nil))
}
