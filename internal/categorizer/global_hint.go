package categorizer

import (
	"context"

	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/textutils"
)

// GlobalHintStrategy looks up the crowd-sourced category voted for a
// description slug.
type GlobalHintStrategy struct {
	store      HistoryStore
	classifier *Classifier
	logger     logging.Logger
}

// NewGlobalHintStrategy creates a new GlobalHintStrategy instance.
func NewGlobalHintStrategy(store HistoryStore, classifier *Classifier, logger logging.Logger) *GlobalHintStrategy {
	return &GlobalHintStrategy{store: store, classifier: classifier, logger: logger}
}

// Name returns the name of this strategy for logging and debugging.
func (s *GlobalHintStrategy) Name() string {
	return models.TierGlobalHint
}

// Categorize copies category and subcategory from the most voted hint. Hints
// carry no type, so it is re-derived from the description.
func (s *GlobalHintStrategy) Categorize(ctx context.Context, _ string, tx models.Transaction) (models.Category, bool, error) {
	slug := textutils.Slugify(tx.Description)
	if slug == "" {
		return models.Category{}, false, nil
	}

	hint, err := s.store.QueryGlobalHint(ctx, slug)
	if err != nil {
		return models.Category{}, false, err
	}
	if hint == nil {
		return models.Category{}, false, nil
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
		logging.Field{Key: logging.FieldDescription, Value: tx.Description},
		logging.Field{Key: logging.FieldCategory, Value: hint.Category},
		logging.Field{Key: "votes", Value: hint.Votes},
	).Debug("Transaction categorized from global hint")

	return models.Category{
		Type:        s.deriveType(tx),
		Name:        hint.Category,
		Subcategory: hint.Subcategory,
	}, true, nil
}

// deriveType classifies the description again, resolving transfer to expense.
// A derived type that contradicts the normalized sign keeps the current type.
func (s *GlobalHintStrategy) deriveType(tx models.Transaction) models.TransactionType {
	derived := s.classifier.Classify(tx.Description).Type
	if derived == models.TypeTransfer {
		derived = models.TypeExpense
	}
	switch {
	case derived == models.TypeIncome && !tx.Amount.IsPositive():
		return tx.Type
	case derived == models.TypeExpense && !tx.Amount.IsNegative():
		return tx.Type
	case derived == models.TypeInvestment && HasRedemptionKeyword(tx.Description) != tx.Amount.IsPositive():
		// Redemptions are inflows and applications outflows.
		return tx.Type
	}
	return derived
}
