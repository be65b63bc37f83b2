package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"jose/statement-ingest/internal/currencyutils"
	"jose/statement-ingest/internal/dateutils"
	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/textutils"
)

// amountToken matches a Brazilian amount with an optional adjacent sign and
// currency symbol: "15,50", "-1.000,00", "R$ 3,00".
const amountToken = `[-+]?(?:R\$\s*)?[-+]?\d[\d.]*(?:,\d+)?`

var (
	naturalLanguageRe = regexp.MustCompile(`(?i)^(hoje|ontem|\d{1,2}[./]\d{1,2}(?:[./]\d{2,4})?)\s+(.+?)\s+(` + amountToken + `)$`)
	csvRowRe          = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4}),\s*([-+]?\d+(?:\.\d+)?),([^,]*),(.+)$`)
	dateHeaderRe      = regexp.MustCompile(`(?i)^(\d{1,2})\s+(JAN|FEV|MAR|ABR|MAI|JUN|JUL|AGO|SET|OUT|NOV|DEZ)\s+(\d{4})$`)
	blockRe           = regexp.MustCompile(`^(.+?)\s{2,}(` + amountToken + `)$`)
	standardRe        = regexp.MustCompile(`^(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})\s*[-|]\s*(.+?)\s*[-|]\s*(` + amountToken + `)$`)
)

// lineResult is what a matching pattern produced for one line.
type lineResult struct {
	ctx     ParsingContext
	tx      *models.Transaction
	outcome Outcome
	reason  string
}

// pattern is one entry of the ordered pattern list. match reports false when
// the line is not in its format, including impossible calendar dates.
type pattern struct {
	name  string
	match func(p *Parser, ctx ParsingContext, line string) (lineResult, bool)
}

// Pattern names
const (
	PatternNaturalLanguage = "natural_language"
	PatternCSV             = "csv"
	PatternDateHeader      = "date_header"
	PatternBlock           = "block"
	PatternStandard        = "standard"
)

// defaultPatterns is the fixed priority order. Natural language goes first
// because it can masquerade as the other formats.
var defaultPatterns = []pattern{
	{name: PatternNaturalLanguage, match: matchNaturalLanguage},
	{name: PatternCSV, match: matchCSVRow},
	{name: PatternDateHeader, match: matchDateHeader},
	{name: PatternBlock, match: matchBlock},
	{name: PatternStandard, match: matchStandard},
}

func matchNaturalLanguage(p *Parser, ctx ParsingContext, line string) (lineResult, bool) {
	m := naturalLanguageRe.FindStringSubmatch(line)
	if m == nil {
		return lineResult{}, false
	}
	date, err := dateutils.ParseDayToken(m[1], p.now())
	if err != nil {
		return lineResult{}, false
	}
	amount, err := currencyutils.ParseBRL(m[3])
	if err != nil {
		return lineResult{}, false
	}
	return p.candidate(ctx, date, m[2], amount), true
}

func matchCSVRow(p *Parser, ctx ParsingContext, line string) (lineResult, bool) {
	m := csvRowRe.FindStringSubmatch(line)
	if m == nil {
		return lineResult{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	date, err := dateutils.NewDate(year, time.Month(month), day)
	if err != nil {
		return lineResult{}, false
	}
	amount, err := currencyutils.ParseAmount(m[4])
	if err != nil {
		return lineResult{}, false
	}
	return p.candidate(ctx, date, m[6], amount), true
}

func matchDateHeader(_ *Parser, ctx ParsingContext, line string) (lineResult, bool) {
	m := dateHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return lineResult{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := dateutils.PortugueseMonth(m[2])
	year, _ := strconv.Atoi(m[3])
	date, err := dateutils.NewDate(year, month, day)
	if err != nil {
		return lineResult{}, false
	}
	return lineResult{ctx: ctx.WithDate(dateutils.ToISODate(date)), outcome: ContextUpdated}, true
}

func matchBlock(p *Parser, ctx ParsingContext, line string) (lineResult, bool) {
	if !ctx.HasDate() {
		return lineResult{}, false
	}
	m := blockRe.FindStringSubmatch(line)
	if m == nil {
		return lineResult{}, false
	}
	// "SALDO DO DIA   1.234,00" has the block shape but reports a balance.
	if textutils.IsSummaryLine(m[1]) {
		return lineResult{ctx: ctx, outcome: Skipped, reason: "summary line"}, true
	}
	date, err := dateutils.ParseISO(ctx.CurrentDate)
	if err != nil {
		return lineResult{}, false
	}
	amount, err := currencyutils.ParseBRL(m[2])
	if err != nil {
		return lineResult{}, false
	}
	if !currencyutils.HasExplicitSign(m[2]) {
		amount = currencyutils.WithSign(amount, !p.isInflow(m[1]))
	}
	return p.candidate(ctx, date, m[1], amount), true
}

func matchStandard(p *Parser, ctx ParsingContext, line string) (lineResult, bool) {
	m := standardRe.FindStringSubmatch(line)
	if m == nil {
		return lineResult{}, false
	}
	date, err := dateutils.ParseNumericDate(m[1])
	if err != nil {
		return lineResult{}, false
	}
	amount, err := currencyutils.ParseBRL(m[3])
	if err != nil {
		return lineResult{}, false
	}
	return p.candidate(ctx, date, m[2], amount), true
}

// cleanDescription trims whitespace and the '-' and '|' separators that
// surround descriptions in delimited lines.
func cleanDescription(desc string) string {
	return strings.Trim(desc, " \t-|")
}
