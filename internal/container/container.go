// Package container provides dependency injection for the statement ingestion
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"jose/statement-ingest/internal/aiparser"
	"jose/statement-ingest/internal/categorizer"
	"jose/statement-ingest/internal/common"
	"jose/statement-ingest/internal/config"
	"jose/statement-ingest/internal/extract"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/parser"
	"jose/statement-ingest/internal/pipeline"
	"jose/statement-ingest/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      store.TransactionStore
	generator  aiparser.Generator
	classifier *categorizer.Classifier
	parser     *parser.Parser
	aiParser   *aiparser.Parser
	extractor  *extract.Extractor
	processor  *pipeline.Processor

	closers []func() error
}

// Option customizes container construction.
type Option func(*options)

type options struct {
	logger    logging.Logger
	store     store.TransactionStore
	generator aiparser.Generator
	pdf       extract.PDFExtractor
	now       func() time.Time
}

// WithLogger replaces the logger built from the log settings.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStore replaces the SQLite store opened from database.path.
func WithStore(st store.TransactionStore) Option {
	return func(o *options) { o.store = st }
}

// WithGenerator replaces the AI generator selected by ai.provider.
func WithGenerator(gen aiparser.Generator) Option {
	return func(o *options) { o.generator = gen }
}

// WithPDFExtractor replaces the pdftotext extractor.
func WithPDFExtractor(pdf extract.PDFExtractor) Option {
	return func(o *options) { o.pdf = pdf }
}

// WithClock fixes the clock that resolves relative dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	if cfg.CSV.Delimiter != "" {
		common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
	}

	c := &Container{logger: logger, config: cfg}

	groups, err := store.NewRulesStore(cfg.Rules.File, logger).LoadGroups()
	if err != nil {
		return nil, fmt.Errorf("failed to load keyword rules: %w", err)
	}
	c.classifier = categorizer.NewClassifier(groups)

	c.store = o.store
	if c.store == nil {
		sqlite, err := store.Open(ctx, cfg.Database.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open transaction store: %w", err)
		}
		c.store = sqlite
		c.closers = append(c.closers, sqlite.Close)
	}

	c.generator = o.generator
	if c.generator == nil {
		if err := c.createGenerator(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	c.parser = parser.NewParser(c.classifier, logger, o.now)
	c.aiParser = aiparser.NewParser(c.generator, logger, o.now)
	c.extractor = extract.NewExtractor(o.pdf, logger)
	c.processor = pipeline.NewProcessor(c.parser, c.aiParser, c.classifier, c.extractor, logger)

	logger.Info("Container initialized successfully",
		logging.Field{Key: "ai_enabled", Value: c.aiParser.Available()},
		logging.Field{Key: logging.FieldProvider, Value: cfg.AI.Provider},
		logging.Field{Key: "keyword_groups", Value: len(c.classifier.Groups())})

	return c, nil
}

// createGenerator builds the configured AI back end. Without a credential the
// generator stays nil and AI parsing is disabled.
func (c *Container) createGenerator(ctx context.Context) error {
	cfg := c.config
	if !cfg.AIEnabled() {
		c.logger.Info("AI parsing disabled: no API key configured")
		return nil
	}

	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	switch cfg.AI.Provider {
	case config.ProviderAnthropic:
		c.generator = aiparser.NewAnthropicGenerator(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.MaxTokens, timeout)
	case config.ProviderGemini:
		gemini, err := aiparser.NewGeminiGenerator(ctx, cfg.AI.APIKey, cfg.AI.Model, timeout)
		if err != nil {
			return fmt.Errorf("failed to create AI generator: %w", err)
		}
		c.generator = gemini
		c.closers = append(c.closers, gemini.Close)
	default:
		return fmt.Errorf("unknown AI provider: %s", cfg.AI.Provider)
	}
	return nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the transaction store.
func (c *Container) GetStore() store.TransactionStore {
	return c.store
}

// GetClassifier returns the keyword classifier.
func (c *Container) GetClassifier() *categorizer.Classifier {
	return c.classifier
}

// GetParser returns the local pattern parser.
func (c *Container) GetParser() *parser.Parser {
	return c.parser
}

// GetAIParser returns the AI fallback parser. It is never nil; check
// Available before relying on it.
func (c *Container) GetAIParser() *aiparser.Parser {
	return c.aiParser
}

// GetExtractor returns the file text extractor.
func (c *Container) GetExtractor() *extract.Extractor {
	return c.extractor
}

// GetProcessor returns the ingestion pipeline.
func (c *Container) GetProcessor() *pipeline.Processor {
	return c.processor
}

// NewCategorizer returns a categorizer reading tiers from the container's store.
func (c *Container) NewCategorizer() *categorizer.Categorizer {
	return categorizer.NewCategorizer(c.store, c.classifier, c.logger)
}

// Close releases the store and the AI client, in reverse creation order.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	c.logger.Info("Container closed")
	return firstErr
}
