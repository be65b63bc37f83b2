package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"jose/statement-ingest/internal/models"
)

// MockStore is an in-memory TransactionStore for testing.
type MockStore struct {
	mu           sync.Mutex
	Transactions []models.StoredTransaction
	Hints        []models.GlobalHint
	Inserts      int // Number of successful BulkInsert calls

	// Error flags for testing error conditions
	QueryError      error
	HistoryError    error
	HintError       error
	BulkInsertError error
	RecordHintError error
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{}
}

// QueryUserTransactionsSince returns the user's transactions within filter.
func (m *MockStore) QueryUserTransactionsSince(_ context.Context, userID string, filter TransactionFilter) ([]models.StoredTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryError != nil {
		return nil, m.QueryError
	}

	var out []models.StoredTransaction
	for _, t := range m.Transactions {
		if t.UserID != userID {
			continue
		}
		if filter.Since != "" && t.Date < filter.Since {
			continue
		}
		if filter.Until != "" && t.Date > filter.Until {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// QueryPersonalHistory returns the latest matching record, later inserts
// winning on equal dates.
func (m *MockStore) QueryPersonalHistory(_ context.Context, userID, description string) (*models.StoredTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.HistoryError != nil {
		return nil, m.HistoryError
	}

	needle := strings.ToLower(strings.TrimSpace(description))
	if needle == "" {
		return nil, nil
	}
	var best *models.StoredTransaction
	for i := range m.Transactions {
		t := m.Transactions[i]
		if t.UserID != userID || !strings.Contains(strings.ToLower(t.Description), needle) {
			continue
		}
		if best == nil || t.Date >= best.Date {
			best = &t
		}
	}
	return best, nil
}

// QueryGlobalHint returns the most voted hint for slug.
func (m *MockStore) QueryGlobalHint(_ context.Context, slug string) (*models.GlobalHint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.HintError != nil {
		return nil, m.HintError
	}

	var matches []models.GlobalHint
	for _, h := range m.Hints {
		if h.Slug == slug {
			matches = append(matches, h)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Votes != matches[j].Votes {
			return matches[i].Votes > matches[j].Votes
		}
		return matches[i].Category < matches[j].Category
	})
	return &matches[0], nil
}

// BulkInsert appends all transactions, or none when BulkInsertError is set.
func (m *MockStore) BulkInsert(_ context.Context, userID string, txs []models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BulkInsertError != nil {
		return m.BulkInsertError
	}

	now := time.Now().UTC()
	for _, t := range txs {
		m.Transactions = append(m.Transactions, models.StoredTransaction{
			UserID:      userID,
			Transaction: t,
			CreatedAt:   now,
		})
	}
	m.Inserts++
	return nil
}

// RecordHint adds one vote.
func (m *MockStore) RecordHint(_ context.Context, slug, category, subcategory string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordHintError != nil {
		return m.RecordHintError
	}

	for i := range m.Hints {
		h := &m.Hints[i]
		if h.Slug == slug && h.Category == category && h.Subcategory == subcategory {
			h.Votes++
			return nil
		}
	}
	m.Hints = append(m.Hints, models.GlobalHint{Slug: slug, Category: category, Subcategory: subcategory, Votes: 1})
	return nil
}

// UserTransactions returns the transactions stored for userID.
func (m *MockStore) UserTransactions(userID string) []models.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Transaction
	for _, t := range m.Transactions {
		if t.UserID == userID {
			out = append(out, t.Transaction)
		}
	}
	return out
}
