// Package pipeline orchestrates one statement import: local parsing, AI
// fallback, accounting normalization, categorization, deduplication and the
// bulk insert. Every outcome, failures included, is reported through
// models.ProcessResult.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jose/statement-ingest/internal/accounting"
	"jose/statement-ingest/internal/aiparser"
	"jose/statement-ingest/internal/categorizer"
	"jose/statement-ingest/internal/dateutils"
	"jose/statement-ingest/internal/dedup"
	"jose/statement-ingest/internal/extract"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/parser"
	"jose/statement-ingest/internal/parsererror"
	"jose/statement-ingest/internal/store"
)

// Processor runs the ingestion pipeline. It is safe for concurrent use: all
// per-call state lives on the stack.
type Processor struct {
	local      *parser.Parser
	ai         *aiparser.Parser
	classifier *categorizer.Classifier
	normalizer *accounting.Normalizer
	extractor  *extract.Extractor
	logger     logging.Logger
}

// NewProcessor wires a Processor. ai may be nil or unavailable; extractor is
// only needed by ProcessStatementFile.
func NewProcessor(local *parser.Parser, ai *aiparser.Parser, classifier *categorizer.Classifier, extractor *extract.Extractor, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if classifier == nil {
		classifier = categorizer.NewClassifier(nil)
	}
	if local == nil {
		local = parser.NewParser(classifier, logger, nil)
	}
	if extractor == nil {
		extractor = extract.NewExtractor(nil, logger)
	}
	return &Processor{
		local:      local,
		ai:         ai,
		classifier: classifier,
		normalizer: accounting.NewNormalizer(classifier),
		extractor:  extractor,
		logger:     logger,
	}
}

// ProcessStatementFile extracts the text of path and processes it.
func (p *Processor) ProcessStatementFile(ctx context.Context, path, userID string, st store.TransactionStore) models.ProcessResult {
	text, err := p.extractor.FromFile(ctx, path)
	if err != nil {
		log := p.logger.WithError(err).WithField(logging.FieldInputFile, path)
		var formatErr *parsererror.InvalidFormatError
		if errors.As(err, &formatErr) {
			log.Warn("Rejected statement file")
			return models.Failure(MsgUnsupportedFile)
		}
		log.Error("Failed to extract statement text")
		return models.Failure(MsgUnreadableFile)
	}
	return p.ProcessStatementText(ctx, text, userID, st)
}

// ProcessStatementText imports the statement text for userID into st.
func (p *Processor) ProcessStatementText(ctx context.Context, text, userID string, st store.TransactionStore) models.ProcessResult {
	start := time.Now()
	log := p.logger.WithField(logging.FieldUserID, userID)

	if strings.TrimSpace(text) == "" {
		log.Info("Rejected statement", logging.Field{Key: "reason", Value: parsererror.ErrEmptyInput.Error()})
		return models.Failure(MsgEmptyInput)
	}
	if userID == "" {
		log.Error("Statement processing called without a user id")
		return models.Failure(MsgMissingUser)
	}
	if st == nil {
		log.Error("Statement processing called without a store")
		return models.Failure(MsgMissingStore)
	}

	out := p.local.ParseText(text)
	local := out.Transactions

	aiTxs, failure := p.parseWithAI(ctx, log, out.Unparsed, len(local))
	if failure != "" {
		return models.Failure(failure)
	}

	candidates := make([]models.Transaction, 0, len(local)+len(aiTxs))
	candidates = append(candidates, local...)
	candidates = append(candidates, aiTxs...)
	stats := &models.ProcessStats{LocalParsed: len(local), AIParsed: len(aiTxs), Total: len(candidates)}

	if len(candidates) == 0 {
		log.Info("Rejected statement", logging.Field{Key: "reason", Value: parsererror.ErrNoTransactions.Error()})
		return models.Failure(MsgNoTransactions)
	}

	normalized := p.normalizer.NormalizeAll(candidates)
	categorized, _ := categorizer.NewCategorizer(st, p.classifier, p.logger).Categorize(ctx, userID, normalized)

	dates := make([]string, len(categorized))
	for i, tx := range categorized {
		dates[i] = tx.Date
	}
	persisted, err := st.QueryUserTransactionsSince(ctx, userID, store.TransactionFilter{Since: dateutils.EarliestISO(dates)})
	if err != nil {
		log.WithError(err).Error("Failed to load persisted transactions")
		return models.Failure(MsgStorageRead)
	}

	part := dedup.Partition(categorized, dedup.FromStored(persisted))
	if len(part.New) == 0 {
		log.Info("Every candidate is already recorded",
			logging.Field{Key: "duplicates", Value: len(part.Duplicates)})
		return models.ProcessResult{
			Success:    false,
			Error:      MsgAllDuplicates,
			Duplicates: part.Duplicates,
			Stats:      stats,
		}
	}

	if err := st.BulkInsert(ctx, userID, part.New); err != nil {
		log.WithError(err).Error("Failed to persist transactions",
			logging.Field{Key: logging.FieldCount, Value: len(part.New)})
		return models.Failure(MsgStorageFailure)
	}

	message := fmt.Sprintf(msgImported, len(part.New))
	if len(part.Duplicates) > 0 {
		message = fmt.Sprintf(msgImportedWithDups, len(part.New), len(part.Duplicates))
	}

	log.Info("Statement imported",
		logging.Field{Key: "inserted", Value: len(part.New)},
		logging.Field{Key: "duplicates", Value: len(part.Duplicates)},
		logging.Field{Key: "local_parsed", Value: stats.LocalParsed},
		logging.Field{Key: "ai_parsed", Value: stats.AIParsed},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})

	return models.ProcessResult{
		Success:      true,
		Message:      message,
		Transactions: part.New,
		Duplicates:   part.Duplicates,
		Stats:        stats,
	}
}

// parseWithAI resolves the unparsed lines. A non-empty failure message ends
// the call; AI problems only end it when local parsing found nothing.
func (p *Processor) parseWithAI(ctx context.Context, log logging.Logger, unparsed []string, localCount int) ([]models.Transaction, string) {
	if len(unparsed) == 0 {
		return nil, ""
	}

	log = log.WithField("unparsed", len(unparsed))
	if !p.ai.Available() {
		if localCount == 0 {
			log.Warn("No AI provider configured and no line parsed locally")
			return nil, MsgAIUnavailable
		}
		log.Warn("No AI provider configured, ignoring unparsed lines")
		return nil, ""
	}

	txs, err := p.ai.ParseLines(ctx, unparsed)
	if err == nil {
		return txs, ""
	}

	if parsererror.IsOverloaded(err) {
		if localCount == 0 {
			log.WithError(err).Warn("AI provider overloaded")
			return nil, MsgAIOverloaded
		}
		log.WithError(err).Warn("AI provider overloaded, keeping local results only")
		return nil, ""
	}

	if localCount == 0 {
		log.WithError(err).Error("AI parsing failed")
		return nil, MsgAIFailed
	}
	log.WithError(err).Warn("AI parsing failed, keeping local results only")
	return nil, ""
}
