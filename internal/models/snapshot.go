package models

// Snapshot is the full entity state as round-tripped through backup export
// and import. All list fields default to empty and Settings to
// DefaultSettings when absent from the source document; see the backup
// package for the defaulting rules.
type Snapshot struct {
	Users           []User           `json:"users"`
	Accounts        []Account        `json:"accounts"`
	Buckets         []Bucket         `json:"buckets"`
	Settings        Settings         `json:"settings"`
	Transactions    []Transaction    `json:"transactions"`
	ImportRules     []ImportRule     `json:"importRules"`
	MainCategories  []MainCategory   `json:"mainCategories"`
	SubCategories   []SubCategory    `json:"subCategories"`
	BudgetGroups    []BudgetGroup    `json:"budgetGroups"`
	BudgetTemplates []BudgetTemplate `json:"budgetTemplates"`
	MonthConfigs    []MonthConfig    `json:"monthConfigs"`
}
