package parser

import (
	"time"

	"jose/statement-ingest/internal/categorizer"
	"jose/statement-ingest/internal/dateutils"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/textutils"

	"github.com/shopspring/decimal"
)

// ParseOutput is the result of folding all lines of a statement.
type ParseOutput struct {
	Transactions []models.Transaction
	Unparsed     []string
	Skipped      int
	Context      ParsingContext
}

// Parser recognizes statement lines. It holds no per-statement state; the
// date carried between lines travels in ParsingContext.
type Parser struct {
	BaseParser
	classifier *categorizer.Classifier
	now        func() time.Time
	patterns   []pattern
}

// NewParser creates a Parser. Nil arguments select the default classifier and
// the wall clock.
func NewParser(classifier *categorizer.Classifier, logger logging.Logger, now func() time.Time) *Parser {
	if classifier == nil {
		classifier = categorizer.NewClassifier(nil)
	}
	if now == nil {
		now = time.Now
	}
	return &Parser{
		BaseParser: NewBaseParser(logger),
		classifier: classifier,
		now:        now,
		patterns:   defaultPatterns,
	}
}

// PatternNames returns the pattern names in the order they are tried.
func (p *Parser) PatternNames() []string {
	names := make([]string, len(p.patterns))
	for i, pt := range p.patterns {
		names[i] = pt.name
	}
	return names
}

// ParseLine classifies one line against ctx and returns the context for the
// next line. tx is non-nil only when the outcome is Parsed.
func (p *Parser) ParseLine(ctx ParsingContext, line string) (ParsingContext, *models.Transaction, Outcome) {
	for _, pt := range p.patterns {
		res, ok := pt.match(p, ctx, line)
		if !ok {
			continue
		}
		fields := []logging.Field{
			{Key: logging.FieldPattern, Value: pt.name},
			{Key: logging.FieldLine, Value: textutils.Truncate(line, 80)},
			{Key: logging.FieldStatus, Value: res.outcome.String()},
		}
		if res.reason != "" {
			fields = append(fields, logging.Field{Key: "reason", Value: res.reason})
		}
		p.logger.Debug("Line matched pattern", fields...)
		return res.ctx, res.tx, res.outcome
	}

	// Summary lines are only recognized once no pattern claimed the line.
	if textutils.IsSummaryLine(line) {
		p.logger.Debug("Skipping summary line", logging.Field{Key: logging.FieldLine, Value: line})
		return ctx, nil, Skipped
	}
	return ctx, nil, Unparsed
}

// ParseLines folds lines through ParseLine, starting from an empty context.
func (p *Parser) ParseLines(lines []string) ParseOutput {
	var out ParseOutput
	ctx := ParsingContext{}

	for _, line := range lines {
		next, tx, outcome := p.ParseLine(ctx, line)
		ctx = next
		switch outcome {
		case Parsed:
			out.Transactions = append(out.Transactions, *tx)
		case Skipped:
			out.Skipped++
		case Unparsed:
			out.Unparsed = append(out.Unparsed, line)
		}
	}

	out.Context = ctx
	p.logger.Info("Local parsing finished",
		logging.Field{Key: "parsed", Value: len(out.Transactions)},
		logging.Field{Key: "unparsed", Value: len(out.Unparsed)},
		logging.Field{Key: "skipped", Value: out.Skipped})
	return out
}

// ParseText splits text into lines and parses them.
func (p *Parser) ParseText(text string) ParseOutput {
	return p.ParseLines(textutils.SplitLines(text))
}

// candidate builds a transaction with the provisional keyword classification,
// or a Skipped result for blank descriptions and zero amounts.
func (p *Parser) candidate(ctx ParsingContext, date time.Time, rawDesc string, amount decimal.Decimal) lineResult {
	desc := cleanDescription(rawDesc)
	if desc == "" {
		return lineResult{ctx: ctx, outcome: Skipped, reason: "empty description"}
	}
	if amount.IsZero() {
		return lineResult{ctx: ctx, outcome: Skipped, reason: "zero amount"}
	}

	provisional := p.classifier.Classify(desc)
	return lineResult{
		ctx: ctx,
		tx: &models.Transaction{
			Date:        dateutils.ToISODate(date),
			Description: desc,
			Amount:      amount,
			Type:        provisional.Type,
			Category:    provisional.Name,
		},
		outcome: Parsed,
	}
}

// isInflow decides the sign of unsigned block amounts: income and investment
// redemptions are inflows, everything else an outflow.
func (p *Parser) isInflow(desc string) bool {
	if categorizer.HasRedemptionKeyword(desc) {
		return true
	}
	return p.classifier.Classify(desc).Type == models.TypeIncome
}
