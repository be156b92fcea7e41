package models

import "github.com/shopspring/decimal"

// GroupMonthData is the per-month spending limit of a budget group.
type GroupMonthData struct {
	Limit               decimal.Decimal `json:"limit"`
	IsExplicitlyDeleted bool            `json:"isExplicitlyDeleted,omitempty"`
}

// BudgetGroup aggregates sub-categories under a shared spending limit.
// At most one group should be flagged catch-all; when none is, spend that no
// sub-category attributes to a group stays invisible to aggregation.
type BudgetGroup struct {
	ID               string                      `json:"id"`
	Name             string                      `json:"name"`
	DefaultAccountID string                      `json:"defaultAccountId,omitempty"`
	IsCatchAll       bool                        `json:"isCatchAll,omitempty"`
	Months           map[MonthKey]GroupMonthData `json:"months,omitempty"`
}

// MonthData returns the direct per-month data for month, if present.
func (g BudgetGroup) MonthData(month MonthKey) (GroupMonthData, bool) {
	d, ok := g.Months[month]
	return d, ok
}
