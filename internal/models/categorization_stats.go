package models

import (
	"jose/statement-ingest/internal/logging"
)

// CategorizationStats tracks per-call categorization counters by tier.
type CategorizationStats struct {
	Total     int // Total number of transactions processed
	Personal  int // Resolved from the user's own history
	Global    int // Resolved from crowd hints
	Unmatched int // Left with their provisional category
	Failed    int // Tier reads that returned an error
}

// NewCategorizationStats creates a new CategorizationStats instance
func NewCategorizationStats() *CategorizationStats {
	return &CategorizationStats{}
}

// Record increments the counter of the tier that resolved a transaction.
// An empty or unknown tier counts as unmatched.
func (cs *CategorizationStats) Record(tier string) {
	cs.Total++
	switch tier {
	case TierPersonalHistory:
		cs.Personal++
	case TierGlobalHint:
		cs.Global++
	default:
		cs.Unmatched++
	}
}

// IncrementFailed increments the failed tier read count
func (cs *CategorizationStats) IncrementFailed() {
	cs.Failed++
}

// GetMatchRate returns the share of transactions resolved by any tier, as a percentage.
func (cs CategorizationStats) GetMatchRate() float64 {
	if cs.Total == 0 {
		return 0.0
	}
	return float64(cs.Personal+cs.Global) / float64(cs.Total) * 100.0
}

// LogSummary logs a summary of categorization statistics
func (cs CategorizationStats) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}

	logger.Info("Categorization summary",
		logging.Field{Key: logging.FieldCount, Value: cs.Total},
		logging.Field{Key: "personal_history", Value: cs.Personal},
		logging.Field{Key: "global_hint", Value: cs.Global},
		logging.Field{Key: "unmatched", Value: cs.Unmatched},
		logging.Field{Key: "failed", Value: cs.Failed},
		logging.Field{Key: "match_rate", Value: cs.GetMatchRate()},
	)
}
