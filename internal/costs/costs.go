// Package costs contains the pure monetary calculators: fixed and daily
// bucket costs, goal amortization, cumulative savings and actuals
// aggregation over a budget interval.
//
// Every function here is total over its domain. Malformed or incomplete
// entities yield zero values instead of errors because these calculators run
// on every render of every month, including entities mid-edit.
package costs

import (
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/payday-budget/internal/dateutils"
	"fjacquet/payday-budget/internal/models"
	"fjacquet/payday-budget/internal/period"
	"fjacquet/payday-budget/internal/resolver"
)

// FixedCost returns the effective fixed amount of a bucket for a month, or
// zero when no data applies or the month is explicitly deleted.
func FixedCost(b models.Bucket, month models.MonthKey, env resolver.Env) decimal.Decimal {
	res := resolver.ResolveBucket(b, month, env)
	if res.Data == nil || res.Data.IsExplicitlyDeleted {
		return decimal.Zero
	}
	return res.Data.Amount
}

// DailyCost returns the weekday-weighted cost of a daily bucket over the full
// budget interval of the month: the number of interval days whose weekday is
// active, multiplied by the daily amount.
func DailyCost(b models.Bucket, month models.MonthKey, env resolver.Env, payday int) decimal.Decimal {
	res := resolver.ResolveBucket(b, month, env)
	if res.Data == nil || res.Data.IsExplicitlyDeleted {
		return decimal.Zero
	}
	iv := period.Compute(month, payday)
	if iv.Start.IsZero() {
		return decimal.Zero
	}
	days := dateutils.CountWeekdays(iv.Start, iv.End, res.Data.HasActiveDay)
	return res.Data.DailyAmount.Mul(decimal.NewFromInt(int64(days)))
}

// DailyCostSoFar is DailyCost with the interval end clamped to today.
// It returns zero when today precedes the interval start.
func DailyCostSoFar(b models.Bucket, month models.MonthKey, env resolver.Env, payday int, today time.Time) decimal.Decimal {
	res := resolver.ResolveBucket(b, month, env)
	if res.Data == nil || res.Data.IsExplicitlyDeleted {
		return decimal.Zero
	}
	iv := period.Compute(month, payday)
	if iv.Start.IsZero() {
		return decimal.Zero
	}
	end, ok := iv.ElapsedEnd(today)
	if !ok {
		return decimal.Zero
	}
	days := dateutils.CountWeekdays(iv.Start, end, res.Data.HasActiveDay)
	return res.Data.DailyAmount.Mul(decimal.NewFromInt(int64(days)))
}
