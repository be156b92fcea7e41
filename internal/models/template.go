package models

import "github.com/shopspring/decimal"

// BudgetTemplate is a named, reusable month configuration: bucket data, group
// limits and sub-category budgets applied as a batch default. At most one
// template carries IsDefault.
type BudgetTemplate struct {
	ID                 string                     `json:"id"`
	Name               string                     `json:"name"`
	IsDefault          bool                       `json:"isDefault,omitempty"`
	BucketData         map[string]BucketMonthData `json:"bucketData,omitempty"`
	GroupLimits        map[string]decimal.Decimal `json:"groupLimits,omitempty"`
	SubCategoryBudgets map[string]decimal.Decimal `json:"subCategoryBudgets,omitempty"`
}

// MonthConfig is the per-month record tying a month to a template and holding
// explicit per-entity overrides, which take precedence over the template for
// that month only.
type MonthConfig struct {
	Month                MonthKey                        `json:"month"`
	TemplateID           string                          `json:"templateId,omitempty"`
	IsLocked             bool                            `json:"isLocked,omitempty"`
	BucketOverrides      map[string]BucketMonthData      `json:"bucketOverrides,omitempty"`
	GroupOverrides       map[string]GroupMonthData       `json:"groupOverrides,omitempty"`
	SubCategoryOverrides map[string]SubCategoryMonthData `json:"subCategoryOverrides,omitempty"`
}

// DefaultTemplate returns the template flagged as default, if any.
func DefaultTemplate(templates []BudgetTemplate) (BudgetTemplate, bool) {
	for _, t := range templates {
		if t.IsDefault {
			return t, true
		}
	}
	return BudgetTemplate{}, false
}

// TemplateByID returns the template with the given id, if present.
func TemplateByID(templates []BudgetTemplate, id string) (BudgetTemplate, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return BudgetTemplate{}, false
}
