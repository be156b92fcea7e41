package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthKeyIsValid(t *testing.T) {
	tests := []struct {
		name  string
		key   MonthKey
		valid bool
	}{
		{"January", "2025-01", true},
		{"December", "2025-12", true},
		{"Month zero", "2025-00", false},
		{"Month thirteen", "2025-13", false},
		{"Missing dash", "202501", false},
		{"Full date", "2025-01-15", false},
		{"Empty", "", false},
		{"Garbage", "not-a-month", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.key.IsValid())
		})
	}
}

func TestParseMonthKey(t *testing.T) {
	m, err := ParseMonthKey("2025-06")
	assert.NoError(t, err)
	assert.Equal(t, MonthKey("2025-06"), m)

	_, err = ParseMonthKey("2025/06")
	assert.Error(t, err)
}

func TestMonthKeyPrevNext(t *testing.T) {
	tests := []struct {
		name string
		key  MonthKey
		prev MonthKey
		next MonthKey
	}{
		{"Mid year", "2025-06", "2025-05", "2025-07"},
		{"Year boundary down", "2025-01", "2024-12", "2025-02"},
		{"Year boundary up", "2025-12", "2025-11", "2026-01"},
		{"Invalid", "nope", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.prev, tc.key.Prev())
			assert.Equal(t, tc.next, tc.key.Next())
		})
	}
}

func TestMonthKeyOrdering(t *testing.T) {
	// Lexicographic comparison of valid keys is chronological comparison.
	assert.True(t, MonthKey("2024-12").Before("2025-01"))
	assert.True(t, MonthKey("2025-10").After("2025-09"))
	assert.False(t, MonthKey("2025-05").Before("2025-05"))
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		from MonthKey
		to   MonthKey
		want int
	}{
		{"Same month", "2025-03", "2025-03", 0},
		{"Forward within year", "2025-01", "2025-04", 3},
		{"Across years", "2024-11", "2025-02", 3},
		{"Backward", "2025-04", "2025-01", -3},
		{"Invalid from", "", "2025-01", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MonthsBetween(tc.from, tc.to))
		})
	}
}

func TestMonthKeyFromTime(t *testing.T) {
	ts := time.Date(2025, time.February, 28, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, MonthKey("2025-02"), MonthKeyFromTime(ts))
}
