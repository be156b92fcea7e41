package models

import "github.com/shopspring/decimal"

// MainCategory is the top level of the two-level transaction taxonomy.
type MainCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SubCategoryMonthData is the per-month budget of a sub-category.
type SubCategoryMonthData struct {
	Budget              decimal.Decimal `json:"budget"`
	IsExplicitlyDeleted bool            `json:"isExplicitlyDeleted,omitempty"`
}

// SubCategory belongs to at most one main category and one budget group.
type SubCategory struct {
	ID             string                            `json:"id"`
	Name           string                            `json:"name"`
	MainCategoryID string                            `json:"mainCategoryId,omitempty"`
	BudgetGroupID  string                            `json:"budgetGroupId,omitempty"`
	Months         map[MonthKey]SubCategoryMonthData `json:"months,omitempty"`
}

// MonthData returns the direct per-month data for month, if present.
func (s SubCategory) MonthData(month MonthKey) (SubCategoryMonthData, bool) {
	d, ok := s.Months[month]
	return d, ok
}

// FallbackIncomeCategoryID is the main category assigned to positive imported
// amounts that no rule or history matched.
const FallbackIncomeCategoryID = "income"
