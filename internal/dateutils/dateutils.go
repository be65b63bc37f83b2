// Package dateutils provides the date handling shared by the statement parsers.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutBrazilian = "02/01/2006"
)

// Relative day tokens
const (
	TokenToday     = "hoje"
	TokenYesterday = "ontem"
)

var portugueseMonths = map[string]time.Month{
	"JAN": time.January,
	"FEV": time.February,
	"MAR": time.March,
	"ABR": time.April,
	"MAI": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AGO": time.August,
	"SET": time.September,
	"OUT": time.October,
	"NOV": time.November,
	"DEZ": time.December,
}

var numericDate = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})(?:[./-](\d{2}|\d{4}))?$`)

// PortugueseMonth resolves a three-letter Portuguese month abbreviation,
// case-insensitively.
func PortugueseMonth(abbr string) (time.Month, bool) {
	m, ok := portugueseMonths[strings.ToUpper(strings.TrimSpace(abbr))]
	return m, ok
}

// ExpandYear turns a two-digit year into 20YY. Other values pass through.
func ExpandYear(year int) int {
	if year < 100 {
		return 2000 + year
	}
	return year
}

// NewDate builds a calendar date, failing on impossible dates such as 31/02.
func NewDate(year int, month time.Month, day int) (time.Time, error) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid date %02d/%02d/%d", day, month, year)
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, fmt.Errorf("invalid date %02d/%02d/%d", day, month, year)
	}
	return t, nil
}

// ParseDayToken resolves "hoje", "ontem" or a numeric D/M[/Y] token against now.
// A missing year means the year of now.
func ParseDayToken(token string, now time.Time) (time.Time, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch token {
	case TokenToday:
		return today, nil
	case TokenYesterday:
		return today.AddDate(0, 0, -1), nil
	}

	m := numericDate.FindStringSubmatch(token)
	if m == nil {
		return time.Time{}, fmt.Errorf("unrecognized day token %q", token)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year := now.Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
		year = ExpandYear(year)
	}
	return NewDate(year, time.Month(month), day)
}

// ParseNumericDate parses D/M/Y with '/', '.' or '-' separators and a two- or
// four-digit year.
func ParseNumericDate(s string) (time.Time, error) {
	m := numericDate.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil || m[3] == "" {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return NewDate(ExpandYear(year), time.Month(month), day)
}

// ParseISO parses a YYYY-MM-DD date.
func ParseISO(s string) (time.Time, error) {
	return time.Parse(DateLayoutISO, strings.TrimSpace(s))
}

// IsISODate reports whether s is a valid YYYY-MM-DD calendar date.
func IsISODate(s string) bool {
	_, err := ParseISO(s)
	return err == nil && len(s) == len(DateLayoutISO)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// ToBrazilianDate formats a time.Time value as DD/MM/YYYY
func ToBrazilianDate(date time.Time) string {
	return date.Format(DateLayoutBrazilian)
}

// EarliestISO returns the smallest of the given ISO dates. Empty input yields "".
func EarliestISO(dates []string) string {
	earliest := ""
	for _, d := range dates {
		if earliest == "" || d < earliest {
			earliest = d
		}
	}
	return earliest
}
