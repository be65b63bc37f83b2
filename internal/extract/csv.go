package extract

import (
	"bytes"
	"fmt"
	"strings"

	"jose/statement-ingest/internal/common"
	"jose/statement-ingest/internal/currencyutils"
	"jose/statement-ingest/internal/dateutils"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/textutils"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// accountRow is a checking-account export: Data,Valor,Identificador,Descrição.
// Dates are DD/MM/YYYY and amounts are signed with a period decimal.
type accountRow struct {
	Date        string `csv:"Data"`
	Amount      string `csv:"Valor"`
	ID          string `csv:"Identificador"`
	Description string `csv:"Descrição"`
}

// cardRow is a credit-card export: date,title,amount. Dates are ISO and
// positive amounts are purchases.
type cardRow struct {
	Date   string `csv:"date"`
	Title  string `csv:"title"`
	Amount string `csv:"amount"`
}

const (
	accountHeader = "data,valor,identificador,descricao"
	cardHeader    = "date,title,amount"
)

func fromCSV(data []byte, log logging.Logger) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	header, _, _ := strings.Cut(string(data), "\n")
	key := strings.ToLower(textutils.StripAccents(strings.ReplaceAll(strings.TrimSpace(header), " ", "")))

	switch key {
	case accountHeader:
		return accountRows(data, log)
	case cardHeader:
		return cardRows(data, log)
	default:
		log.Info("Unknown CSV header, passing rows through as text")
		return string(data), nil
	}
}

func accountRows(data []byte, log logging.Logger) (string, error) {
	rows, err := common.ReadCSV[accountRow](bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("read account CSV: %w", err)
	}

	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		date, dateErr := dateutils.ParseNumericDate(r.Date)
		amount, amountErr := currencyutils.ParseAmount(r.Amount)
		if dateErr != nil || amountErr != nil || strings.TrimSpace(r.Description) == "" {
			log.Warn("Skipping malformed CSV row", logging.Field{Key: logging.FieldLineNumber, Value: i + 2})
			continue
		}
		lines = append(lines, row(dateutils.ToBrazilianDate(date), amount.StringFixed(2), r.ID, strings.TrimSpace(r.Description)))
	}
	return strings.Join(lines, "\n"), nil
}

func cardRows(data []byte, log logging.Logger) (string, error) {
	rows, err := common.ReadCSV[cardRow](bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("read card CSV: %w", err)
	}

	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		date, dateErr := dateutils.ParseISO(strings.TrimSpace(r.Date))
		amount, amountErr := currencyutils.ParseAmount(r.Amount)
		if dateErr != nil || amountErr != nil || strings.TrimSpace(r.Title) == "" {
			log.Warn("Skipping malformed CSV row", logging.Field{Key: logging.FieldLineNumber, Value: i + 2})
			continue
		}
		// Card exports list purchases as positive values.
		lines = append(lines, row(dateutils.ToBrazilianDate(date), amount.Neg().StringFixed(2), "card", strings.TrimSpace(r.Title)))
	}
	return strings.Join(lines, "\n"), nil
}
