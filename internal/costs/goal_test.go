package costs

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fjacquet/payday-budget/internal/models"
)

func goalBucket(target int64, start, targetDate models.MonthKey) models.Bucket {
	return models.Bucket{
		ID:              "goal",
		Type:            models.BucketGoal,
		TargetAmount:    amt(target),
		StartSavingDate: start,
		TargetDate:      targetDate,
	}
}

func TestGoalMonthlyCostEvenSplit(t *testing.T) {
	b := goalBucket(6000, "2025-01", "2025-04")

	assert.True(t, amt(2000).Equal(GoalMonthlyCost(b, "2025-01")))
	assert.True(t, amt(2000).Equal(GoalMonthlyCost(b, "2025-02")))
	assert.True(t, amt(2000).Equal(GoalMonthlyCost(b, "2025-03")))
}

func TestGoalMonthlyCostInactiveMonths(t *testing.T) {
	b := goalBucket(6000, "2025-01", "2025-04")

	assert.True(t, decimal.Zero.Equal(GoalMonthlyCost(b, "2024-12")), "before saving starts")
	assert.True(t, decimal.Zero.Equal(GoalMonthlyCost(b, "2025-04")), "target month itself")
	assert.True(t, decimal.Zero.Equal(GoalMonthlyCost(b, "2025-08")), "after target")
}

func TestGoalMonthlyCostManualOverride(t *testing.T) {
	b := goalBucket(12000, "2025-01", "2026-01")
	b.Months = map[models.MonthKey]models.BucketMonthData{
		"2025-03": {Amount: amt(500)},
	}

	// The overridden month returns the manual amount.
	assert.True(t, amt(500).Equal(GoalMonthlyCost(b, "2025-03")))

	// Before the override the even rate applies.
	assert.True(t, amt(1000).Equal(GoalMonthlyCost(b, "2025-02")))

	// After the override the shortfall spreads over the remaining months.
	after := GoalMonthlyCost(b, "2025-04")
	assert.True(t, after.GreaterThan(amt(1000)), "rate must rise after an under-contribution, got %s", after)
}

func TestGoalConservation(t *testing.T) {
	// Summing every month's contribution from start through the month before
	// the target must give exactly the target amount, overrides included.
	b := goalBucket(12000, "2025-01", "2026-01")
	b.Months = map[models.MonthKey]models.BucketMonthData{
		"2025-03": {Amount: amt(500)},
		"2025-07": {Amount: amt(2500)},
	}

	total := decimal.Zero
	for m := models.MonthKey("2025-01"); m.Before("2026-01"); m = m.Next() {
		total = total.Add(GoalMonthlyCost(b, m))
	}
	assert.True(t, amt(12000).Equal(total), "got %s", total)
}

func TestGoalMonthlyCostDeletedMonth(t *testing.T) {
	b := goalBucket(6000, "2025-01", "2025-04")
	b.Months = map[models.MonthKey]models.BucketMonthData{
		"2025-02": {IsExplicitlyDeleted: true},
	}

	assert.True(t, decimal.Zero.Equal(GoalMonthlyCost(b, "2025-02")))

	// The skipped month's share lands on the last month.
	assert.True(t, amt(2000).Equal(GoalMonthlyCost(b, "2025-01")))
	assert.True(t, amt(4000).Equal(GoalMonthlyCost(b, "2025-03")))
}

func TestGoalMonthlyCostGuards(t *testing.T) {
	balance := goalBucket(6000, "2025-01", "2025-04")
	balance.PaymentSource = models.SourceBalance
	assert.True(t, decimal.Zero.Equal(GoalMonthlyCost(balance, "2025-02")))

	archived := goalBucket(6000, "2025-01", "2025-04")
	archived.ArchivedDate = "2025-01"
	assert.True(t, decimal.Zero.Equal(GoalMonthlyCost(archived, "2025-02")))

	notGoal := models.Bucket{Type: models.BucketFixed, TargetAmount: amt(100)}
	assert.True(t, decimal.Zero.Equal(GoalMonthlyCost(notGoal, "2025-02")))

	noDates := models.Bucket{Type: models.BucketGoal, TargetAmount: amt(100)}
	assert.True(t, decimal.Zero.Equal(GoalMonthlyCost(noDates, "2025-02")))
}

func TestCumulativeSaved(t *testing.T) {
	b := goalBucket(6000, "2025-01", "2025-04")

	assert.True(t, amt(2000).Equal(CumulativeSaved(b, "2025-01")))
	assert.True(t, amt(4000).Equal(CumulativeSaved(b, "2025-02")))
	assert.True(t, amt(6000).Equal(CumulativeSaved(b, "2025-03")))
	// Months past the target add nothing.
	assert.True(t, amt(6000).Equal(CumulativeSaved(b, "2025-09")))
}

func TestCumulativeSavedBalanceFunded(t *testing.T) {
	b := goalBucket(6000, "2025-01", "2025-04")
	b.PaymentSource = models.SourceBalance

	assert.True(t, amt(6000).Equal(CumulativeSaved(b, "2025-01")))
}

func TestCumulativeSavedArchived(t *testing.T) {
	b := goalBucket(6000, "2025-01", "2025-04")
	b.ArchivedDate = "2025-02"

	// Accumulation stops at the archive month.
	assert.True(t, amt(4000).Equal(CumulativeSaved(b, "2025-03")))
}
