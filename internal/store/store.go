// Package store provides persistence for transactions, crowd hints and the
// keyword rules file.
package store

import (
	"context"

	"jose/statement-ingest/internal/models"
)

// TransactionFilter bounds a transaction query by ISO date. Empty bounds are open.
type TransactionFilter struct {
	Since string
	Until string
}

// TransactionStore is the storage contract of the ingestion pipeline.
type TransactionStore interface {
	// QueryUserTransactionsSince returns the user's transactions within filter.
	QueryUserTransactionsSince(ctx context.Context, userID string, filter TransactionFilter) ([]models.StoredTransaction, error)
	// QueryPersonalHistory returns the user's most recent transaction whose
	// description contains description, ignoring case. Nil when none matches.
	QueryPersonalHistory(ctx context.Context, userID, description string) (*models.StoredTransaction, error)
	// QueryGlobalHint returns the most voted hint for slug. Nil when none exists.
	QueryGlobalHint(ctx context.Context, slug string) (*models.GlobalHint, error)
	// BulkInsert persists all transactions or none.
	BulkInsert(ctx context.Context, userID string, txs []models.Transaction) error
	// RecordHint adds one vote for category/subcategory under slug.
	RecordHint(ctx context.Context, slug, category, subcategory string) error
}
