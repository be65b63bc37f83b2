package categorizer

import (
	"testing"

	"jose/statement-ingest/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_DefaultGroups(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		description  string
		expectedType models.TransactionType
		expectedName string
	}{
		{"uber", models.TypeExpense, models.CategoryTransport},
		{"Compra no débito - Sonda Supermercados", models.TypeExpense, models.CategoryFood},
		{"PIX enviado Maria", models.TypeTransfer, models.CategoryTransfer},
		{"Transferencia recebida", models.TypeTransfer, models.CategoryTransfer},
		{"Aplicação CDB", models.TypeInvestment, models.CategoryInvestment},
		{"Aplicacao RDB", models.TypeInvestment, models.CategoryInvestment},
		{"Resgate CDB", models.TypeInvestment, models.CategoryInvestment},
		{"NETFLIX.COM", models.TypeExpense, models.CategoryLeisure},
		{"Drogaria São Paulo", models.TypeExpense, models.CategoryHealth},
		{"Condominio Edificio Azul", models.TypeExpense, models.CategoryHousing},
		{"Pagamento fatura", models.TypeExpense, models.CategoryOther},
		{"SALARIO EMPRESA X", models.TypeIncome, models.CategorySalary},
		{"Depósito em dinheiro", models.TypeIncome, models.CategorySalary},
		{"Loja qualquer", models.TypeExpense, models.CategoryOther},
		{"Pixel Store", models.TypeExpense, models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got := c.Classify(tt.description)
			assert.Equal(t, tt.expectedType, got.Type)
			assert.Equal(t, tt.expectedName, got.Name)
			assert.Empty(t, got.Subcategory)
		})
	}
}

func TestClassifier_GroupOrderWins(t *testing.T) {
	c := NewClassifier(nil)

	// transfer is evaluated before food
	got := c.Classify("pix padaria do bairro")
	assert.Equal(t, models.CategoryTransfer, got.Name)

	// investment is evaluated before salary
	got = c.Classify("rendimento deposito")
	assert.Equal(t, models.CategoryInvestment, got.Name)
}

func TestClassifier_CustomGroups(t *testing.T) {
	c := NewClassifier([]models.KeywordGroup{
		{Name: "pets", Type: models.TypeExpense, Category: "Pets", Keywords: []string{" PETZ ", ""}},
	})

	assert.Equal(t, "Pets", c.Classify("Petz Loja 12").Name)
	assert.Equal(t, models.CategoryOther, c.Classify("uber").Name)
	assert.Equal(t, []string{"petz"}, c.Groups()[0].Keywords)
}

func TestInvestmentKeywords(t *testing.T) {
	assert.True(t, HasRedemptionKeyword("Resgate CDB"))
	assert.True(t, HasRedemptionKeyword("RESG AUTOMATICO"))
	assert.True(t, HasRedemptionKeyword("Juros sobre capital ITUB"))
	assert.False(t, HasRedemptionKeyword("Aplicação CDB"))

	assert.True(t, HasApplicationKeyword("Aplicação CDB"))
	assert.True(t, HasApplicationKeyword("APLICACAO POUPANCA"))
	assert.True(t, HasApplicationKeyword("Tesouro Selic 2029"))
	assert.False(t, HasApplicationKeyword("Lcd monitor"))
	assert.False(t, HasApplicationKeyword("uber"))
}
