// Package currencyutils provides the amount parsing and comparison helpers used by the parsers.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = regexp.MustCompile(`R\$|\s`)

// ParseBRL parses an amount in Brazilian notation ("R$ 1.234,56", "-15,50",
// "+ 3,00"). Periods are thousand separators and the comma is the decimal mark.
func ParseBRL(amountStr string) (decimal.Decimal, error) {
	s := currencySymbols.ReplaceAllString(amountStr, "")
	s = strings.TrimPrefix(s, "+")

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': no digits", amountStr)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// HasExplicitSign reports whether an amount token starts with '-' or '+',
// ignoring whitespace and the currency symbol.
func HasExplicitSign(amountStr string) bool {
	s := currencySymbols.ReplaceAllString(amountStr, "")
	return strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+")
}

// ParseAmount parses an already signed amount with a period decimal mark.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(amountStr))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// FormatBRL formats an amount the way Brazilian statements print it, e.g. "R$ -1.234,56".
func FormatBRL(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	fixed := amount.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("R$ %s%s,%s", sign, b.String(), frac)
}

// WithSign returns abs(amount), negated when negative is true.
func WithSign(amount decimal.Decimal, negative bool) decimal.Decimal {
	if negative {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// WithinTolerance reports whether |a-b| <= tolerance.
func WithinTolerance(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// IsNegative checks if an amount is negative
func IsNegative(amount decimal.Decimal) bool {
	return amount.LessThan(decimal.Zero)
}

// IsPositive checks if an amount is positive
func IsPositive(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}
