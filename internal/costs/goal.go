package costs

import (
	"github.com/shopspring/decimal"

	"fjacquet/payday-budget/internal/models"
)

// GoalMonthlyCost returns the contribution a goal bucket asks for in the
// given month.
//
// A manual amount recorded for the month wins outright; an explicitly
// deleted month contributes nothing. Otherwise the rate is re-derived by
// walking every month from the saving start up to (excluding) the requested
// month: each past month contributes its recorded amount, or the running
// rate when nothing is recorded, and after every step the running rate is
// recomputed as remaining-target divided by remaining months. Past drift is
// thereby absorbed into the rate for the current and future months. The
// walk is O(months elapsed) per call and deliberately stateless; at
// household scale that is at most a few hundred iterations.
//
// The recompute-every-step form also keeps the plan conservative: summing
// the contributions of every month from start through target-exclusive
// yields exactly the target amount, because each rate is derived from what
// actually remains and the final month divides by one.
func GoalMonthlyCost(b models.Bucket, month models.MonthKey) decimal.Decimal {
	if b.Type != models.BucketGoal || !month.IsValid() {
		return decimal.Zero
	}
	start, target := b.StartSavingDate, b.TargetDate
	if !start.IsValid() || !target.IsValid() {
		return decimal.Zero
	}

	// Not active: before saving starts, on or after the target month, or
	// past the archive date.
	if month.Before(start) || !month.Before(target) {
		return decimal.Zero
	}
	if b.IsArchivedFor(month) {
		return decimal.Zero
	}

	// Goals funded from existing capital ask nothing of monthly cash flow.
	if b.PaymentSource == models.SourceBalance {
		return decimal.Zero
	}

	// A manual per-month value is the user overriding this single month.
	if d, ok := b.MonthData(month); ok {
		if d.IsExplicitlyDeleted {
			return decimal.Zero
		}
		return d.Amount
	}

	totalMonths := models.MonthsBetween(start, target)
	if totalMonths <= 0 {
		return decimal.Zero
	}

	rate := b.TargetAmount.Div(decimal.NewFromInt(int64(totalMonths)))
	saved := decimal.Zero
	monthsPassed := models.MonthsBetween(start, month)

	cursor := start
	for i := 0; i < monthsPassed; i++ {
		actual := rate
		if d, ok := b.MonthData(cursor); ok {
			if d.IsExplicitlyDeleted {
				actual = decimal.Zero
			} else {
				actual = d.Amount
			}
		}
		saved = saved.Add(actual)

		if remaining := totalMonths - (i + 1); remaining > 0 {
			rate = b.TargetAmount.Sub(saved).Div(decimal.NewFromInt(int64(remaining)))
		}
		cursor = cursor.Next()
	}

	if rate.IsNegative() {
		return decimal.Zero
	}
	return rate
}

// CumulativeSaved returns the total amount a goal bucket has accumulated
// through the given current month. Goals funded from balance are fully
// funded by definition and report their target amount. Archived goals stop
// accumulating at their archive date.
func CumulativeSaved(b models.Bucket, current models.MonthKey) decimal.Decimal {
	if b.Type != models.BucketGoal || !current.IsValid() {
		return decimal.Zero
	}
	if b.PaymentSource == models.SourceBalance {
		return b.TargetAmount
	}
	start := b.StartSavingDate
	if !start.IsValid() || !b.TargetDate.IsValid() {
		return decimal.Zero
	}

	cap := current
	if b.ArchivedDate != "" && b.ArchivedDate.Before(cap) {
		cap = b.ArchivedDate
	}

	total := decimal.Zero
	for m := start; !m.After(cap) && m.Before(b.TargetDate); m = m.Next() {
		total = total.Add(GoalMonthlyCost(b, m))
	}
	return total
}
