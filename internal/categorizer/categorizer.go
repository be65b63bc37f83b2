// Package categorizer assigns categories to statement transactions.
//
// Two mechanisms live here:
//  1. A keyword Classifier giving every parsed line a provisional type and
//     category, also consulted by the accounting rules.
//  2. A chain of memory tiers (personal history, then crowd hints) that
//     override the provisional result. The first tier with a hit wins and a
//     tier that fails is skipped.
package categorizer

import (
	"context"

	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/parsererror"
)

// Categorizer runs the tier chain over transactions.
type Categorizer struct {
	strategies []CategorizationStrategy
	logger     logging.Logger
}

// NewCategorizer creates the default chain: personal history, then global hints.
func NewCategorizer(store HistoryStore, classifier *Classifier, logger logging.Logger) *Categorizer {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	return NewCategorizerWithStrategies(logger,
		NewPersonalHistoryStrategy(store, logger),
		NewGlobalHintStrategy(store, classifier, logger),
	)
}

// NewCategorizerWithStrategies creates a chain over the given strategies, in order.
func NewCategorizerWithStrategies(logger logging.Logger, strategies ...CategorizationStrategy) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Categorizer{strategies: strategies, logger: logger}
}

// Strategies returns the tiers in evaluation order.
func (c *Categorizer) Strategies() []CategorizationStrategy {
	return c.strategies
}

// CategorizeTransaction consults the tiers for one transaction and returns the
// transaction with the winning tier applied. Without a hit the transaction is
// returned unchanged.
func (c *Categorizer) CategorizeTransaction(ctx context.Context, userID string, tx models.Transaction) (models.Transaction, StrategyResults) {
	var results StrategyResults

	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, userID, tx)
		results.Results = append(results.Results, StrategyResult{
			Strategy: strategy.Name(),
			Category: category,
			Found:    found,
			Error:    err,
		})

		if err != nil {
			catErr := &parsererror.CategorizationError{Transaction: tx.Description, Strategy: strategy.Name(), Err: err}
			c.logger.WithError(catErr).Warn("Categorization tier unavailable, skipping",
				logging.Field{Key: logging.FieldStrategy, Value: strategy.Name()})
			continue
		}
		if found {
			break
		}
	}

	best, ok := results.GetBestResult()
	if !ok {
		return tx, results
	}

	if best.Category.Type != "" {
		tx.Type = best.Category.Type
	}
	tx.Category = best.Category.Name
	tx.Subcategory = best.Category.Subcategory
	return tx, results
}

// Categorize applies the chain to every transaction. The input slice is not
// modified.
func (c *Categorizer) Categorize(ctx context.Context, userID string, txs []models.Transaction) ([]models.Transaction, *models.CategorizationStats) {
	stats := models.NewCategorizationStats()
	out := make([]models.Transaction, len(txs))

	for i, tx := range txs {
		categorized, results := c.CategorizeTransaction(ctx, userID, tx)
		out[i] = categorized

		stats.Failed += len(results.GetErrors())
		best, _ := results.GetBestResult()
		stats.Record(best.Strategy)

		c.logger.Debug("Categorization attempts",
			logging.Field{Key: logging.FieldDescription, Value: tx.Description},
			logging.Field{Key: "attempts", Value: results.Summary()})
	}

	stats.LogSummary(c.logger)
	return out, stats
}
