// Package accounting canonicalizes the sign and type of parsed transactions.
package accounting

import (
	"jose/statement-ingest/internal/categorizer"
	"jose/statement-ingest/internal/models"
)

// Flow identifies the direction of an investment movement.
type Flow string

const (
	FlowApplication Flow = "application"
	FlowRedemption  Flow = "redemption"
)

// DetectInvestment reports whether tx is an investment movement. Detection
// needs both a keyword and the matching pre-normalization sign.
func DetectInvestment(tx models.Transaction) (Flow, bool) {
	if categorizer.HasRedemptionKeyword(tx.Description) && tx.Amount.IsPositive() {
		return FlowRedemption, true
	}
	if categorizer.HasApplicationKeyword(tx.Description) && tx.Amount.IsNegative() {
		return FlowApplication, true
	}
	return "", false
}

// Normalizer applies the sign rules: expenses are negative, income positive,
// investment applications negative and redemptions positive. No transaction
// leaves it with the transient transfer type.
type Normalizer struct {
	classifier *categorizer.Classifier
}

// NewNormalizer creates a Normalizer. A nil classifier uses the default groups.
func NewNormalizer(classifier *categorizer.Classifier) *Normalizer {
	if classifier == nil {
		classifier = categorizer.NewClassifier(nil)
	}
	return &Normalizer{classifier: classifier}
}

// Normalize returns tx with canonical type and sign. The category only
// changes when it is empty or a transfer category on income.
func (n *Normalizer) Normalize(tx models.Transaction) models.Transaction {
	if _, ok := DetectInvestment(tx); ok {
		tx.Type = models.TypeInvestment
		tx.Category = models.CategoryInvestment
		// The final sign depends on the redemption keyword alone.
		if categorizer.HasRedemptionKeyword(tx.Description) {
			tx.Amount = tx.Amount.Abs()
		} else {
			tx.Amount = tx.Amount.Abs().Neg()
		}
		return tx
	}

	// The classifier decides the type; an upstream category is kept.
	group, matched := n.classifier.Match(tx.Description)
	category := tx.Category
	if category == "" {
		category = n.classifier.Classify(tx.Description).Name
	}

	if matched && group.Type == models.TypeIncome {
		tx.Type = models.TypeIncome
		tx.Amount = tx.Amount.Abs()
		if category == models.CategoryTransfer {
			category = models.CategoryIncome
		}
		tx.Category = category
		return tx
	}

	tx.Type = models.TypeExpense
	tx.Amount = tx.Amount.Abs().Neg()
	tx.Category = category
	return tx
}

// NormalizeAll normalizes every transaction into a new slice.
func (n *Normalizer) NormalizeAll(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	for i, tx := range txs {
		out[i] = n.Normalize(tx)
	}
	return out
}
