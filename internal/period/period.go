// Package period computes the payday-anchored date interval that represents
// one budget month. The interval deliberately does not align with calendar
// months: it models a paycheck-to-paycheck cycle.
package period

import (
	"time"

	"fjacquet/payday-budget/internal/dateutils"
	"fjacquet/payday-budget/internal/models"
)

// Interval is the inclusive date range of one budget month.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether day falls within the interval, inclusive both ends.
func (iv Interval) Contains(day time.Time) bool {
	day = dateutils.Day(day)
	return !day.Before(iv.Start) && !day.After(iv.End)
}

// ContainsISO reports whether an ISO day string falls within the interval.
// Malformed dates are outside every interval.
func (iv Interval) ContainsISO(isoDay string) bool {
	day, err := time.Parse(dateutils.DateLayoutISO, isoDay)
	if err != nil {
		return false
	}
	return iv.Contains(day)
}

// Compute returns the budget interval for a month key and a payday-of-month:
// from the payday of the previous calendar month through the day before the
// payday of the target month. With payday 1 the interval is exactly the
// previous calendar month. Returns a zero Interval for an invalid month key.
func Compute(month models.MonthKey, payday int) Interval {
	if !month.IsValid() {
		return Interval{}
	}
	if payday < 1 || payday > 31 {
		payday = models.DefaultPayday
	}

	first := month.Time()
	// time.Date normalizes out-of-range days, so a payday of 31 slides into
	// the next month for shorter months the same way the source data does.
	start := time.Date(first.Year(), first.Month()-1, payday, 0, 0, 0, 0, time.UTC)
	end := time.Date(first.Year(), first.Month(), payday-1, 0, 0, 0, 0, time.UTC)
	return Interval{Start: start, End: end}
}

// ElapsedEnd clamps the interval end to today for "so far" calculations.
// The boolean is false when today precedes the interval start, meaning
// nothing has elapsed yet.
func (iv Interval) ElapsedEnd(today time.Time) (time.Time, bool) {
	today = dateutils.Day(today)
	if today.Before(iv.Start) {
		return time.Time{}, false
	}
	return dateutils.MinDay(today, iv.End), true
}
