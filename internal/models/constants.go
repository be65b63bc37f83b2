package models

// DateLayoutISO is the only date layout transactions carry.
const DateLayoutISO = "2006-01-02"

// Categories
const (
	CategoryTransfer   = "Transferência"
	CategoryInvestment = "Investimento"
	CategoryFood       = "Alimentação"
	CategoryTransport  = "Transporte"
	CategoryLeisure    = "Lazer"
	CategoryHealth     = "Saúde"
	CategoryHousing    = "Moradia"
	CategoryOther      = "Outros"
	CategorySalary     = "Salário"
	CategoryIncome     = "Receita"
)

// Investment subcategories
const (
	SubcategoryApplication = "Aplicação"
	SubcategoryRedemption  = "Resgate"
)

// Categorization tiers
const (
	TierPersonalHistory = "PersonalHistory"
	TierGlobalHint      = "GlobalHint"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
