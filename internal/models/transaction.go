// Package models provides the data structures shared by the pipeline stages.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the accounting meaning of a transaction.
type TransactionType string

const (
	TypeIncome     TransactionType = "income"
	TypeExpense    TransactionType = "expense"
	TypeInvestment TransactionType = "investment"
	// TypeTransfer is only assigned provisionally by the keyword classifier;
	// the accounting normalizer always resolves it to another type.
	TypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeInvestment, TypeTransfer:
		return true
	}
	return false
}

// ParseTransactionType parses a case-insensitive type name.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

// Transaction is a statement entry flowing through the pipeline. It carries no
// owner: the user id travels as a parameter until persistence.
type Transaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
}

// MarshalJSON renders the amount as a JSON number instead of a quoted string.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		Amount json.Number `json:"amount"`
	}{
		alias:  alias(t),
		Amount: json.Number(t.Amount.String()),
	})
}

// ParsedDate returns Date as a time.Time in UTC.
func (t Transaction) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayoutISO, t.Date)
}

// IsIncome reports whether the transaction is classified as income.
func (t Transaction) IsIncome() bool { return t.Type == TypeIncome }

// IsExpense reports whether the transaction is classified as an expense.
func (t Transaction) IsExpense() bool { return t.Type == TypeExpense }

// IsInvestment reports whether the transaction is an investment flow.
func (t Transaction) IsInvestment() bool { return t.Type == TypeInvestment }

// Validate checks the invariants every candidate must satisfy before it leaves
// the parsing stages.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("description is empty")
	}
	if t.Amount.IsZero() {
		return fmt.Errorf("amount is zero")
	}
	if _, err := t.ParsedDate(); err != nil {
		return fmt.Errorf("invalid date %q: %w", t.Date, err)
	}
	return nil
}

// String returns a compact human readable form, used by the CLI.
func (t Transaction) String() string {
	sub := ""
	if t.Subcategory != "" {
		sub = " / " + t.Subcategory
	}
	return fmt.Sprintf("%s  %-40s %12s  %-10s %s%s",
		t.Date, t.Description, t.Amount.StringFixed(2), t.Type, t.Category, sub)
}

// StoredTransaction is a persisted transaction owned by a user.
type StoredTransaction struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Transaction
	CreatedAt time.Time `json:"created_at"`
}

// GlobalHint is a crowd-sourced category suggestion keyed by description slug.
type GlobalHint struct {
	Slug        string `json:"slug"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Votes       int    `json:"votes"`
}
