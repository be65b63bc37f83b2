package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.January, 20, 15, 30, 0, 0, time.UTC)

func TestParseDayToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
		hasError bool
	}{
		{"Today", "hoje", "2026-01-20", false},
		{"Today upper case", "HOJE", "2026-01-20", false},
		{"Yesterday", "ontem", "2026-01-19", false},
		{"Day and month", "05/01", "2026-01-05", false},
		{"Dotted with short year", "5.1.25", "2025-01-05", false},
		{"Full year", "31/12/2025", "2025-12-31", false},
		{"Invalid calendar date", "31/02", "", true},
		{"Month out of range", "10/13/2025", "", true},
		{"Garbage", "amanha", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDayToken(tt.token, fixedNow)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ToISODate(got))
		})
	}
}

func TestYesterdayCrossesYear(t *testing.T) {
	newYear := time.Date(2026, time.January, 1, 0, 5, 0, 0, time.UTC)
	got, err := ParseDayToken("ontem", newYear)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", ToISODate(got))
}

func TestParseNumericDate(t *testing.T) {
	got, err := ParseNumericDate("21-01-26")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-21", ToISODate(got))

	got, err = ParseNumericDate("1.2.2026")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", ToISODate(got))

	_, err = ParseNumericDate("21/01")
	assert.Error(t, err)

	_, err = ParseNumericDate("29/02/2025")
	assert.Error(t, err)

	got, err = ParseNumericDate("29/02/2024")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", ToISODate(got))
}

func TestPortugueseMonth(t *testing.T) {
	m, ok := PortugueseMonth("fev")
	assert.True(t, ok)
	assert.Equal(t, time.February, m)

	m, ok = PortugueseMonth("DEZ")
	assert.True(t, ok)
	assert.Equal(t, time.December, m)

	_, ok = PortugueseMonth("FEB")
	assert.False(t, ok)
}

func TestExpandYear(t *testing.T) {
	assert.Equal(t, 2026, ExpandYear(26))
	assert.Equal(t, 2000, ExpandYear(0))
	assert.Equal(t, 1999, ExpandYear(1999))
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2026-01-20"))
	assert.False(t, IsISODate("2026-02-30"))
	assert.False(t, IsISODate("20/01/2026"))
	assert.False(t, IsISODate(""))
}

func TestEarliestISO(t *testing.T) {
	assert.Equal(t, "2025-12-31", EarliestISO([]string{"2026-01-20", "2025-12-31", "2026-01-01"}))
	assert.Equal(t, "", EarliestISO(nil))
}

func TestToBrazilianDate(t *testing.T) {
	assert.Equal(t, "20/01/2026", ToBrazilianDate(fixedNow))
}
