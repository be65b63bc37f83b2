package categorizer

import (
	"strings"

	"jose/statement-ingest/internal/models"
	"jose/statement-ingest/internal/textutils"
)

// Investment keywords. Redemptions are inflows from an investment, applications
// are outflows into one.
var (
	RedemptionKeywords = []string{
		"resgate", "resg", "rendimento", "dividendo", "juros sobre capital", "vencimento",
	}
	ApplicationKeywords = []string{
		"aplicação", "aplicacao", "cdb", "rdb", "lci", "lca", "poupança", "poupanca", "tesouro", "fundo",
	}
)

// DefaultGroups returns the built-in keyword groups in evaluation order.
func DefaultGroups() []models.KeywordGroup {
	investment := make([]string, 0, len(ApplicationKeywords)+len(RedemptionKeywords))
	investment = append(investment, ApplicationKeywords...)
	investment = append(investment, RedemptionKeywords...)

	return []models.KeywordGroup{
		{Name: "transfer", Type: models.TypeTransfer, Category: models.CategoryTransfer,
			Keywords: []string{"pix", "ted", "doc", "transferência", "transferencia", "transf"}},
		{Name: "investment", Type: models.TypeInvestment, Category: models.CategoryInvestment,
			Keywords: investment},
		{Name: "food", Type: models.TypeExpense, Category: models.CategoryFood,
			Keywords: []string{"ifood", "restaurante", "supermercado", "mercado", "padaria", "lanchonete",
				"sonda", "carrefour", "pão de açúcar", "assai", "atacadão", "açougue", "hortifruti",
				"pizzaria", "burger", "mcdonald", "rappi"}},
		{Name: "transport", Type: models.TypeExpense, Category: models.CategoryTransport,
			Keywords: []string{"uber", "99app", "99pop", "taxi", "táxi", "combustível", "combustivel",
				"posto", "gasolina", "estacionamento", "metrô", "metro", "ônibus", "onibus", "pedágio", "sem parar"}},
		{Name: "leisure", Type: models.TypeExpense, Category: models.CategoryLeisure,
			Keywords: []string{"netflix", "spotify", "cinema", "disney", "hbo", "prime video", "ingresso",
				"teatro", "show", "steam", "playstation"}},
		{Name: "health", Type: models.TypeExpense, Category: models.CategoryHealth,
			Keywords: []string{"farmácia", "farmacia", "drogaria", "drogasil", "hospital", "clínica", "clinica",
				"laboratório", "laboratorio", "médico", "medico", "dentista", "plano de saúde", "unimed"}},
		{Name: "housing", Type: models.TypeExpense, Category: models.CategoryHousing,
			Keywords: []string{"aluguel", "condomínio", "condominio", "energia", "enel", "light", "sabesp",
				"água", "internet", "iptu", "gás", "vivo", "claro"}},
		{Name: "card", Type: models.TypeExpense, Category: models.CategoryOther,
			Keywords: []string{"fatura", "cartão", "cartao"}},
		{Name: "salary", Type: models.TypeIncome, Category: models.CategorySalary,
			Keywords: []string{"salário", "salario", "depósito", "deposito", "provento", "remuneração",
				"remuneracao", "pró-labore", "pro-labore", "pagamento recebido"}},
	}
}

// Classifier assigns a provisional type and category from ordered keyword
// groups. The first group with a matching keyword wins.
type Classifier struct {
	groups []models.KeywordGroup
}

// NewClassifier creates a classifier over groups. Nil or empty groups select
// DefaultGroups.
func NewClassifier(groups []models.KeywordGroup) *Classifier {
	if len(groups) == 0 {
		groups = DefaultGroups()
	}
	normalized := make([]models.KeywordGroup, len(groups))
	for i, g := range groups {
		kws := make([]string, 0, len(g.Keywords))
		for _, kw := range g.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		g.Keywords = kws
		normalized[i] = g
	}
	return &Classifier{groups: normalized}
}

// Groups returns the groups in evaluation order.
func (c *Classifier) Groups() []models.KeywordGroup {
	return c.groups
}

// Classify returns the category of the first matching group, or
// expense/Outros when nothing matches.
func (c *Classifier) Classify(description string) models.Category {
	if g, ok := c.Match(description); ok {
		return models.Category{Type: g.Type, Name: g.Category}
	}
	return models.Category{Type: models.TypeExpense, Name: models.CategoryOther}
}

// Match returns the first group matching description.
func (c *Classifier) Match(description string) (models.KeywordGroup, bool) {
	lower := strings.ToLower(description)
	stripped := textutils.StripAccents(lower)
	for _, g := range c.groups {
		for _, kw := range g.Keywords {
			if matchKeyword(lower, stripped, kw) {
				return g, true
			}
		}
	}
	return models.KeywordGroup{}, false
}

// HasRedemptionKeyword reports whether description names an investment redemption.
func HasRedemptionKeyword(description string) bool {
	return containsAnyKeyword(description, RedemptionKeywords)
}

// HasApplicationKeyword reports whether description names an investment application.
func HasApplicationKeyword(description string) bool {
	return containsAnyKeyword(description, ApplicationKeywords)
}

func containsAnyKeyword(description string, keywords []string) bool {
	lower := strings.ToLower(description)
	stripped := textutils.StripAccents(lower)
	for _, kw := range keywords {
		if matchKeyword(lower, stripped, kw) {
			return true
		}
	}
	return false
}

// matchKeyword matches kw against the description both as written and with
// accents removed, so "aplicacao" and "aplicação" are interchangeable.
func matchKeyword(lower, stripped, kw string) bool {
	if textutils.ContainsKeyword(lower, kw) {
		return true
	}
	return textutils.ContainsKeyword(stripped, textutils.StripAccents(kw))
}
