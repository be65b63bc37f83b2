package aiparser

import (
	"fmt"
	"strings"
	"time"

	"jose/statement-ingest/internal/dateutils"
	"jose/statement-ingest/internal/models"
)

const promptTemplate = `You extract bank statement transactions for a Brazilian personal finance app.
Today is %s. Resolve relative dates ("hoje", "ontem", missing years) against today.

Return ONLY a JSON array. No markdown code fences, no prose, no comments.
Each element must be an object with exactly these keys:
  "date":        string, format YYYY-MM-DD
  "description": string, never empty
  "amount":      number with a period decimal mark, signed: negative for outflows
                 (expenses, investment applications), positive for inflows
                 (income, investment redemptions); never zero
  "type":        one of "income", "expense", "investment", "transfer"
  "category":    one of %s

Amounts in the input use Brazilian notation: "1.234,56" means 1234.56.
Skip lines that are balances, totals or not transactions. If nothing is a
transaction, return [].

Lines:
%s`

var promptCategories = []string{
	models.CategoryFood, models.CategoryTransport, models.CategoryLeisure, models.CategoryHealth,
	models.CategoryHousing, models.CategoryInvestment, models.CategoryTransfer, models.CategorySalary,
	models.CategoryIncome, models.CategoryOther,
}

// BuildPrompt renders the extraction prompt for the given unresolved lines.
func BuildPrompt(lines []string, today time.Time) string {
	quoted := make([]string, len(lines))
	for i, l := range lines {
		quoted[i] = fmt.Sprintf("%d. %s", i+1, l)
	}
	cats := make([]string, len(promptCategories))
	for i, c := range promptCategories {
		cats[i] = fmt.Sprintf("%q", c)
	}
	return fmt.Sprintf(promptTemplate,
		dateutils.ToISODate(today),
		strings.Join(cats, ", "),
		strings.Join(quoted, "\n"))
}
