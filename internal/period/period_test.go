package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fjacquet/payday-budget/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		month     models.MonthKey
		payday    int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "Payday 25 mid year",
			month:     "2025-04",
			payday:    25,
			wantStart: day(2025, time.March, 25),
			wantEnd:   day(2025, time.April, 24),
		},
		{
			name:      "Payday 25 across year boundary",
			month:     "2025-01",
			payday:    25,
			wantStart: day(2024, time.December, 25),
			wantEnd:   day(2025, time.January, 24),
		},
		{
			name:      "Payday 1 is the previous calendar month",
			month:     "2025-03",
			payday:    1,
			wantStart: day(2025, time.February, 1),
			wantEnd:   day(2025, time.February, 28),
		},
		{
			name:      "Out of range payday falls back to default",
			month:     "2025-04",
			payday:    0,
			wantStart: day(2025, time.March, 25),
			wantEnd:   day(2025, time.April, 24),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			iv := Compute(tc.month, tc.payday)
			assert.Equal(t, tc.wantStart, iv.Start)
			assert.Equal(t, tc.wantEnd, iv.End)
		})
	}
}

func TestComputeInvalidMonth(t *testing.T) {
	iv := Compute("garbage", 25)
	assert.True(t, iv.Start.IsZero())
	assert.True(t, iv.End.IsZero())
}

func TestComputeIntervalsTile(t *testing.T) {
	// Consecutive budget months must tile the calendar with no gap or overlap.
	prev := Compute("2025-03", 25)
	next := Compute("2025-04", 25)
	assert.Equal(t, prev.End.AddDate(0, 0, 1), next.Start)
}

func TestIntervalContains(t *testing.T) {
	iv := Compute("2025-04", 25)

	assert.True(t, iv.Contains(day(2025, time.March, 25)))
	assert.True(t, iv.Contains(day(2025, time.April, 24)))
	assert.False(t, iv.Contains(day(2025, time.March, 24)))
	assert.False(t, iv.Contains(day(2025, time.April, 25)))
}

func TestIntervalContainsISO(t *testing.T) {
	iv := Compute("2025-04", 25)

	assert.True(t, iv.ContainsISO("2025-04-01"))
	assert.False(t, iv.ContainsISO("2025-04-25"))
	assert.False(t, iv.ContainsISO("not-a-date"))
}

func TestElapsedEnd(t *testing.T) {
	iv := Compute("2025-04", 25)

	_, ok := iv.ElapsedEnd(day(2025, time.March, 20))
	assert.False(t, ok)

	end, ok := iv.ElapsedEnd(day(2025, time.April, 10))
	assert.True(t, ok)
	assert.Equal(t, day(2025, time.April, 10), end)

	end, ok = iv.ElapsedEnd(day(2025, time.May, 15))
	assert.True(t, ok)
	assert.Equal(t, iv.End, end)
}
