package costs

import (
	"github.com/shopspring/decimal"

	"fjacquet/payday-budget/internal/models"
	"fjacquet/payday-budget/internal/period"
)

// BucketActuals are the realized figures of one bucket over an interval.
// Funding is money moved into the bucket's purpose (transfers and income,
// both directions counted by magnitude). Consumption is money spent against
// it; refunds reduce it.
type BucketActuals struct {
	Funding     decimal.Decimal
	Consumption decimal.Decimal
}

// Actuals aggregates a transaction set over a budget interval.
type Actuals struct {
	Buckets map[string]BucketActuals
	// UnallocatedByAccount is the net flow of transfers carrying the
	// INTERNAL or PAYOUT sentinel ids, which belong to no real bucket.
	UnallocatedByAccount map[string]decimal.Decimal
	// SubCategoryConsumption is expense consumption keyed by sub-category.
	SubCategoryConsumption map[string]decimal.Decimal
}

func isSentinelBucket(id string) bool {
	return id == models.BucketIDInternal || id == models.BucketIDPayout
}

// consumptionDelta converts a signed expense amount into its contribution to
// a consumption total: an outflow adds its magnitude, a positive amount is a
// refund and subtracts its magnitude.
func consumptionDelta(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return amount.Abs()
	}
	return amount.Neg()
}

// Aggregate partitions the transactions falling inside the interval by type
// and rolls them up into per-bucket, per-sub-category and per-account
// figures.
func Aggregate(txs []models.Transaction, iv period.Interval) Actuals {
	out := Actuals{
		Buckets:                make(map[string]BucketActuals),
		UnallocatedByAccount:   make(map[string]decimal.Decimal),
		SubCategoryConsumption: make(map[string]decimal.Decimal),
	}

	for _, tx := range txs {
		if !iv.ContainsISO(tx.Date) {
			continue
		}

		if isSentinelBucket(tx.BucketID) {
			prev := out.UnallocatedByAccount[tx.AccountID]
			out.UnallocatedByAccount[tx.AccountID] = prev.Add(tx.Amount)
			continue
		}

		switch tx.Type {
		case models.TypeTransfer, models.TypeIncome:
			if tx.BucketID != "" {
				agg := out.Buckets[tx.BucketID]
				agg.Funding = agg.Funding.Add(tx.Amount.Abs())
				out.Buckets[tx.BucketID] = agg
			}
		case models.TypeExpense:
			delta := consumptionDelta(tx.Amount)
			if tx.BucketID != "" {
				agg := out.Buckets[tx.BucketID]
				agg.Consumption = agg.Consumption.Add(delta)
				out.Buckets[tx.BucketID] = agg
			}
			if tx.CategorySubID != "" {
				prev := out.SubCategoryConsumption[tx.CategorySubID]
				out.SubCategoryConsumption[tx.CategorySubID] = prev.Add(delta)
			}
		}
	}

	return out
}

// GroupConsumption rolls expense consumption up to budget groups through the
// sub-category linkage. Spend whose sub-category belongs to no group lands in
// the catch-all group when one exists, and is dropped otherwise.
func GroupConsumption(actuals Actuals, subCategories []models.SubCategory, groups []models.BudgetGroup) map[string]decimal.Decimal {
	groupOf := make(map[string]string, len(subCategories))
	for _, sc := range subCategories {
		if sc.BudgetGroupID != "" {
			groupOf[sc.ID] = sc.BudgetGroupID
		}
	}

	catchAll := ""
	for _, g := range groups {
		if g.IsCatchAll {
			catchAll = g.ID
			break
		}
	}

	out := make(map[string]decimal.Decimal)
	for subID, amount := range actuals.SubCategoryConsumption {
		groupID, ok := groupOf[subID]
		if !ok {
			groupID = catchAll
		}
		if groupID == "" {
			continue
		}
		out[groupID] = out[groupID].Add(amount)
	}
	return out
}
