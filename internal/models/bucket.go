package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BucketType distinguishes the three kinds of budget line items.
type BucketType string

const (
	BucketFixed BucketType = "FIXED"
	BucketDaily BucketType = "DAILY"
	BucketGoal  BucketType = "GOAL"
)

// PaymentSource indicates where a bucket's money comes from.
type PaymentSource string

const (
	SourceIncome  PaymentSource = "INCOME"
	SourceBalance PaymentSource = "BALANCE"
)

// Sentinel bucket ids used on transfers that are not yet attributed to a real
// bucket. They are excluded from per-bucket totals and roll into an
// "unallocated" net-flow figure per account.
const (
	BucketIDInternal = "INTERNAL"
	BucketIDPayout   = "PAYOUT"
)

// BucketMonthData is the per-month configuration of a bucket.
// An explicitly deleted month acts as a hard wall for inheritance.
type BucketMonthData struct {
	Amount              decimal.Decimal `json:"amount"`
	DailyAmount         decimal.Decimal `json:"dailyAmount"`
	ActiveDays          []int           `json:"activeDays,omitempty"` // weekdays 0=Sunday..6=Saturday
	IsExplicitlyDeleted bool            `json:"isExplicitlyDeleted,omitempty"`
}

// HasActiveDay reports whether the given weekday is in the active set.
func (d BucketMonthData) HasActiveDay(day time.Weekday) bool {
	for _, ad := range d.ActiveDays {
		if ad == int(day) {
			return true
		}
	}
	return false
}

// Bucket is a named budget line item owned by one account.
// GOAL buckets additionally carry a target amount and a saving timeline.
// Buckets generated as payout/spending companions of a goal reference it via
// LinkedGoalID and never inherit month data.
type Bucket struct {
	ID            string                      `json:"id"`
	AccountID     string                      `json:"accountId"`
	Name          string                      `json:"name"`
	Type          BucketType                  `json:"type"`
	IsSavings     bool                        `json:"isSavings,omitempty"`
	PaymentSource PaymentSource               `json:"paymentSource,omitempty"`
	ArchivedDate  MonthKey                    `json:"archivedDate,omitempty"`
	LinkedGoalID  string                      `json:"linkedGoalId,omitempty"`
	Months        map[MonthKey]BucketMonthData `json:"months,omitempty"`

	// GOAL-only fields.
	TargetAmount    decimal.Decimal `json:"targetAmount,omitempty"`
	TargetDate      MonthKey        `json:"targetDate,omitempty"`
	StartSavingDate MonthKey        `json:"startSavingDate,omitempty"`
}

// IsArchivedFor reports whether the bucket is archived strictly before month.
func (b Bucket) IsArchivedFor(month MonthKey) bool {
	return b.ArchivedDate != "" && month.After(b.ArchivedDate)
}

// MonthData returns the direct per-month data for month, if present.
func (b Bucket) MonthData(month MonthKey) (BucketMonthData, bool) {
	d, ok := b.Months[month]
	return d, ok
}
