// Package dedup separates new transaction candidates from ones already recorded.
package dedup

import (
	"strings"

	"jose/statement-ingest/internal/currencyutils"
	"jose/statement-ingest/internal/models"

	"github.com/shopspring/decimal"
)

// AmountTolerance is the largest amount difference still considered equal.
var AmountTolerance = decimal.New(1, -2)

// Result is the partition of a candidate list.
type Result struct {
	New        []models.Transaction
	Duplicates []models.Transaction
}

// Equal reports whether two transactions are the same movement: same date,
// amounts within AmountTolerance and descriptions equal ignoring case.
func Equal(a, b models.Transaction) bool {
	return a.Date == b.Date &&
		currencyutils.WithinTolerance(a.Amount, b.Amount, AmountTolerance) &&
		strings.EqualFold(strings.TrimSpace(a.Description), strings.TrimSpace(b.Description))
}

// Partition splits candidates into new ones and duplicates of persisted
// records. A candidate equal to an earlier accepted candidate of the same
// call is also a duplicate. Candidate order is preserved in both lists.
func Partition(candidates, persisted []models.Transaction) Result {
	byDate := make(map[string][]models.Transaction, len(persisted))
	for _, p := range persisted {
		byDate[p.Date] = append(byDate[p.Date], p)
	}

	var res Result
	for _, c := range candidates {
		if containsEqual(byDate[c.Date], c) {
			res.Duplicates = append(res.Duplicates, c)
			continue
		}
		res.New = append(res.New, c)
		byDate[c.Date] = append(byDate[c.Date], c)
	}
	return res
}

// FromStored strips ownership metadata from persisted records.
func FromStored(stored []models.StoredTransaction) []models.Transaction {
	out := make([]models.Transaction, len(stored))
	for i, s := range stored {
		out[i] = s.Transaction
	}
	return out
}

func containsEqual(list []models.Transaction, tx models.Transaction) bool {
	for _, other := range list {
		if Equal(other, tx) {
			return true
		}
	}
	return false
}
