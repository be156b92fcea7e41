// Package report builds the per-month roll-up the application displays:
// effective bucket and group configuration, planned costs, and actuals over
// the payday interval. Everything here is a pure function over an
// explicitly passed snapshot so it stays unit-testable without the
// persistence layer.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/payday-budget/internal/costs"
	"fjacquet/payday-budget/internal/models"
	"fjacquet/payday-budget/internal/period"
	"fjacquet/payday-budget/internal/resolver"
)

// BucketLine is one bucket's numbers for the month.
type BucketLine struct {
	Bucket       models.Bucket
	Source       resolver.Source
	IsInherited  bool
	Planned      decimal.Decimal
	PlannedSoFar decimal.Decimal
	Funding      decimal.Decimal
	Consumption  decimal.Decimal
	Saved        decimal.Decimal // cumulative, GOAL buckets only
}

// GroupLine is one budget group's numbers for the month.
type GroupLine struct {
	Group       models.BudgetGroup
	Source      resolver.Source
	IsInherited bool
	Limit       decimal.Decimal
	Spent       decimal.Decimal
}

// MonthSummary is the full roll-up for one budget month.
type MonthSummary struct {
	Month       models.MonthKey
	Interval    period.Interval
	Buckets     []BucketLine
	Groups      []GroupLine
	Unallocated map[string]decimal.Decimal
}

// Inputs is the entity snapshot a summary is computed from.
type Inputs struct {
	Buckets       []models.Bucket
	Groups        []models.BudgetGroup
	SubCategories []models.SubCategory
	Templates     []models.BudgetTemplate
	Configs       map[models.MonthKey]models.MonthConfig
	Transactions  []models.Transaction // expected to cover the interval
	Settings      models.Settings
}

// BuildMonthSummary computes the summary for one month as of today.
func BuildMonthSummary(month models.MonthKey, in Inputs, today time.Time) MonthSummary {
	env := resolver.Env{Templates: in.Templates, Configs: in.Configs}
	iv := period.Compute(month, in.Settings.Payday)
	actuals := costs.Aggregate(in.Transactions, iv)

	summary := MonthSummary{
		Month:       month,
		Interval:    iv,
		Unallocated: actuals.UnallocatedByAccount,
	}

	for _, b := range in.Buckets {
		res := resolver.ResolveBucket(b, month, env)
		line := BucketLine{
			Bucket:      b,
			Source:      res.Source,
			IsInherited: res.IsInherited,
		}

		switch b.Type {
		case models.BucketFixed:
			line.Planned = costs.FixedCost(b, month, env)
			line.PlannedSoFar = line.Planned
		case models.BucketDaily:
			line.Planned = costs.DailyCost(b, month, env, in.Settings.Payday)
			line.PlannedSoFar = costs.DailyCostSoFar(b, month, env, in.Settings.Payday, today)
		case models.BucketGoal:
			line.Planned = costs.GoalMonthlyCost(b, month)
			line.PlannedSoFar = line.Planned
			line.Saved = costs.CumulativeSaved(b, month)
		}

		if agg, ok := actuals.Buckets[b.ID]; ok {
			line.Funding = agg.Funding
			line.Consumption = agg.Consumption
		}
		summary.Buckets = append(summary.Buckets, line)
	}

	groupSpend := costs.GroupConsumption(actuals, in.SubCategories, in.Groups)
	for _, g := range in.Groups {
		res := resolver.ResolveGroup(g, month, env)
		line := GroupLine{
			Group:       g,
			Source:      res.Source,
			IsInherited: res.IsInherited,
			Spent:       groupSpend[g.ID],
		}
		if res.Data != nil && !res.Data.IsExplicitlyDeleted {
			line.Limit = res.Data.Limit
		}
		summary.Groups = append(summary.Groups, line)
	}

	return summary
}
