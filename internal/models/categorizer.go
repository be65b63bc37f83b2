package models

// Category is the outcome of a categorization tier.
type Category struct {
	Type        TransactionType
	Name        string
	Subcategory string
}

// KeywordGroup is one ordered group of the keyword classifier. The first group
// with a matching keyword decides type and category.
type KeywordGroup struct {
	Name     string          `yaml:"name"`
	Type     TransactionType `yaml:"type"`
	Category string          `yaml:"category"`
	Keywords []string        `yaml:"keywords"`
}

// RulesConfig is the layout of the keyword rules YAML file.
type RulesConfig struct {
	Groups []KeywordGroup `yaml:"groups"`
}
