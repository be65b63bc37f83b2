package categorizer

import (
	"context"
	"strings"

	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/models"
)

// PersonalHistoryStrategy reuses the classification of the user's most recent
// transaction with the same description.
type PersonalHistoryStrategy struct {
	store  HistoryStore
	logger logging.Logger
}

// NewPersonalHistoryStrategy creates a new PersonalHistoryStrategy instance.
func NewPersonalHistoryStrategy(store HistoryStore, logger logging.Logger) *PersonalHistoryStrategy {
	return &PersonalHistoryStrategy{store: store, logger: logger}
}

// Name returns the name of this strategy for logging and debugging.
func (s *PersonalHistoryStrategy) Name() string {
	return models.TierPersonalHistory
}

// Categorize copies type, category and subcategory verbatim from the matching
// history record.
func (s *PersonalHistoryStrategy) Categorize(ctx context.Context, userID string, tx models.Transaction) (models.Category, bool, error) {
	if strings.TrimSpace(tx.Description) == "" || userID == "" {
		return models.Category{}, false, nil
	}

	prev, err := s.store.QueryPersonalHistory(ctx, userID, tx.Description)
	if err != nil {
		return models.Category{}, false, err
	}
	if prev == nil {
		return models.Category{}, false, nil
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
		logging.Field{Key: logging.FieldDescription, Value: tx.Description},
		logging.Field{Key: logging.FieldCategory, Value: prev.Category},
	).Debug("Transaction categorized from personal history")

	return models.Category{
		Type:        prev.Type,
		Name:        prev.Category,
		Subcategory: prev.Subcategory,
	}, true, nil
}
