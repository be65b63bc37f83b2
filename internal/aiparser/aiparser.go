package aiparser

import (
	"context"
	"time"

	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
)

// Parser sends unresolved lines to a Generator in a single batched request.
type Parser struct {
	generator Generator
	logger    logging.Logger
	now       func() time.Time
}

// NewParser creates a Parser. A nil generator yields a Parser whose Available
// reports false.
func NewParser(generator Generator, logger logging.Logger, now func() time.Time) *Parser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if now == nil {
		now = time.Now
	}
	return &Parser{generator: generator, logger: logger, now: now}
}

// Available reports whether a generator is configured.
func (p *Parser) Available() bool {
	return p != nil && p.generator != nil
}

// ParseLines asks the model to extract transactions from lines. Generator
// failures are returned, with overloads wrapping parsererror.ErrAIOverloaded.
// Output that is not a JSON array yields no transactions and no error.
func (p *Parser) ParseLines(ctx context.Context, lines []string) ([]models.Transaction, error) {
	if len(lines) == 0 || !p.Available() {
		return nil, nil
	}

	start := time.Now()
	raw, err := p.generator.Generate(ctx, BuildPrompt(lines, p.now()))
	if err != nil {
		return nil, err
	}

	txs, rejects, err := DecodeResponse(raw)
	if err != nil {
		p.logger.WithError(err).Warn("Discarding unparseable AI response",
			logging.Field{Key: "response_length", Value: len(raw)})
		return nil, nil
	}
	for _, reject := range rejects {
		p.logger.WithError(reject).Warn("Dropping invalid AI item")
	}

	p.logger.Info("AI parsing finished",
		logging.Field{Key: "lines", Value: len(lines)},
		logging.Field{Key: "parsed", Value: len(txs)},
		logging.Field{Key: "rejected", Value: len(rejects)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).String()})
	return txs, nil
}
