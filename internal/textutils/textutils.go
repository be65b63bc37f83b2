// Package textutils provides text splitting and matching utilities for statement lines.
package textutils

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// summaryRe matches lines that open with a balance or total keyword. Merchant
// names such as "Posto Total" or "Totalpass" do not match.
var summaryRe = regexp.MustCompile(`^(?:saldo|total|balance|opening balance|closing balance)\b`)

// SplitLines splits raw statement text into trimmed, non-blank lines.
func SplitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(strings.TrimRight(l, "\r"))
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// IsSummaryLine reports whether a line is a balance or total line, or a CSV
// header row, none of which describe a transaction.
func IsSummaryLine(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if strings.HasPrefix(lower, "data,") {
		return true
	}
	return summaryRe.MatchString(lower)
}

// StripAccents removes combining marks, turning "aplicação" into "aplicacao".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify returns the lowercase, accent-stripped, alphanumeric-only form of a
// description. It is the crowd-hint lookup key.
func Slugify(description string) string {
	stripped := StripAccents(strings.ToLower(description))
	var b strings.Builder
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ContainsKeyword reports whether lowered text contains keyword. Keywords of
// three runes or fewer must sit on word boundaries so that "pix" does not
// match "pixel"; longer keywords match as substrings.
func ContainsKeyword(text, keyword string) bool {
	if keyword == "" {
		return false
	}
	if utf8.RuneCountInString(keyword) > 3 {
		return strings.Contains(text, keyword)
	}

	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], keyword)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(keyword)
		if isBoundaryBefore(text, start) && isBoundaryAfter(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

// ContainsAny reports whether text contains any of the keywords, with the
// matching rules of ContainsKeyword.
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if ContainsKeyword(text, kw) {
			return true
		}
	}
	return false
}

func isBoundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func isBoundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Truncate shortens s to at most n runes, used when logging raw lines.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
