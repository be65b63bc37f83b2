package aiparser

import (
	"encoding/json"
	"fmt"
	"strings"

	"jose/statement-ingest/internal/dateutils"
	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/parsererror"

	"github.com/shopspring/decimal"
)

// CleanResponse strips code fences and any text around the outermost JSON array.
func CleanResponse(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the fence line, which may carry a language tag.
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return strings.Trim(s, "`")
		}
		s = strings.TrimSpace(s[idx+1:])
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}

// rawItem is one element of the model output before validation. Every field
// is kept raw so a single bad element cannot fail the whole array.
type rawItem struct {
	Date        json.RawMessage `json:"date"`
	Description json.RawMessage `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Type        json.RawMessage `json:"type"`
	Category    json.RawMessage `json:"category"`
}

// DecodeResponse parses a cleaned model response. The error is non-nil only
// when the text is not a JSON array; invalid elements are returned as rejects.
func DecodeResponse(raw string) ([]models.Transaction, []error, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(CleanResponse(raw)), &items); err != nil {
		return nil, nil, fmt.Errorf("model output is not a JSON array: %w", err)
	}

	var (
		txs     []models.Transaction
		rejects []error
	)
	for i, item := range items {
		tx, err := validateItem(i, item)
		if err != nil {
			rejects = append(rejects, err)
			continue
		}
		txs = append(txs, tx)
	}
	return txs, rejects, nil
}

func validateItem(index int, data json.RawMessage) (models.Transaction, error) {
	reject := func(format string, args ...any) error {
		return &parsererror.ValidationError{Index: index, Reason: fmt.Sprintf(format, args...)}
	}

	var item rawItem
	if err := json.Unmarshal(data, &item); err != nil {
		return models.Transaction{}, reject("not an object")
	}

	date, ok := rawString(item.Date)
	if !ok || !dateutils.IsISODate(date) {
		return models.Transaction{}, reject("invalid date %s", string(item.Date))
	}

	desc, ok := rawString(item.Description)
	desc = strings.TrimSpace(desc)
	if !ok || desc == "" {
		return models.Transaction{}, reject("empty description")
	}

	amount, err := rawAmount(item.Amount)
	if err != nil {
		return models.Transaction{}, reject("invalid amount %s", string(item.Amount))
	}
	if amount.IsZero() {
		return models.Transaction{}, reject("zero amount")
	}

	typeName, _ := rawString(item.Type)
	txType, err := models.ParseTransactionType(typeName)
	if err != nil {
		return models.Transaction{}, reject("invalid type %s", string(item.Type))
	}

	category, ok := rawString(item.Category)
	category = strings.TrimSpace(category)
	if !ok || category == "" {
		category = models.CategoryOther
	}

	return models.Transaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Type:        txType,
		Category:    category,
	}, nil
}

func rawString(data json.RawMessage) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return s, true
}

// rawAmount accepts a JSON number or a numeric string with a period decimal mark.
func rawAmount(data json.RawMessage) (decimal.Decimal, error) {
	if len(data) == 0 {
		return decimal.Zero, fmt.Errorf("missing amount")
	}
	if s, ok := rawString(data); ok {
		return decimal.NewFromString(strings.TrimSpace(s))
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(n.String())
}
