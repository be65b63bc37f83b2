package categorizer

import (
	"context"

	"jose/statement-ingest/internal/models"
)

// CategorizationStrategy defines one tier of the categorization chain.
// Tiers are consulted in order and the first hit wins.
type CategorizationStrategy interface {
	// Categorize looks up a category for tx on behalf of userID. found is
	// false when the tier has no opinion. A non-nil error means the tier
	// could not be consulted; the caller skips it.
	Categorize(ctx context.Context, userID string, tx models.Transaction) (models.Category, bool, error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}

// HistoryStore is the read side of storage the tiers depend on. Lookups
// return nil without error when nothing matches.
type HistoryStore interface {
	QueryPersonalHistory(ctx context.Context, userID, description string) (*models.StoredTransaction, error)
	QueryGlobalHint(ctx context.Context, slug string) (*models.GlobalHint, error)
}
