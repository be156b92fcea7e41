// Package models defines the domain types shared across the application:
// budget months, buckets, budget groups, categories, templates, transactions
// and import rules.
package models

import (
	"fmt"
	"regexp"
	"time"
)

// MonthKey identifies a budget month as "YYYY-MM". Lexicographic ordering of
// valid keys is chronological ordering, which the inheritance search in the
// resolver relies on.
type MonthKey string

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ParseMonthKey validates s and returns it as a MonthKey.
func ParseMonthKey(s string) (MonthKey, error) {
	m := MonthKey(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid month key %q: want YYYY-MM", s)
	}
	return m, nil
}

// MonthKeyFromTime returns the MonthKey containing t.
func MonthKeyFromTime(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// IsValid reports whether the key has the form YYYY-MM with a real month.
func (m MonthKey) IsValid() bool {
	return monthKeyPattern.MatchString(string(m))
}

// Time returns midnight UTC on the first day of the month, or the zero time
// for an invalid key.
func (m MonthKey) Time() time.Time {
	t, err := time.Parse("2006-01", string(m))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Prev returns the preceding month, or "" for an invalid key.
func (m MonthKey) Prev() MonthKey {
	if !m.IsValid() {
		return ""
	}
	return MonthKeyFromTime(m.Time().AddDate(0, -1, 0))
}

// Next returns the following month, or "" for an invalid key.
func (m MonthKey) Next() MonthKey {
	if !m.IsValid() {
		return ""
	}
	return MonthKeyFromTime(m.Time().AddDate(0, 1, 0))
}

// Before reports whether m is chronologically before other.
func (m MonthKey) Before(other MonthKey) bool { return m < other }

// After reports whether m is chronologically after other.
func (m MonthKey) After(other MonthKey) bool { return m > other }

// MonthsBetween returns the number of month steps from one key to another.
// The result is negative when to precedes from, and 0 when either key is
// invalid or the keys are equal.
func MonthsBetween(from, to MonthKey) int {
	if !from.IsValid() || !to.IsValid() {
		return 0
	}
	f, t := from.Time(), to.Time()
	return (t.Year()-f.Year())*12 + int(t.Month()) - int(f.Month())
}
