// Package dateutils provides the date parsing and normalization used by the
// import pipeline and the budget period calculator.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayoutISO is the canonical day format every normalized record uses.
const DateLayoutISO = "2006-01-02"

// CommonFormats is the list of layouts tried when parsing textual dates from
// bank exports.
var CommonFormats = []string{
	DateLayoutISO,
	"2006-01-02 15:04:05",
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"2-Jan-2006",
	"Jan 2, 2006",
}

var compactDatePattern = regexp.MustCompile(`^\d{8}$`)

// excelEpoch is day 0 of the 1900 date system. Serial 1 is 1900-01-01, and
// the off-by-two below absorbs the spreadsheet world's phantom 1900-02-29.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// ParseDay parses a textual date from a bank export into a day value.
// It accepts ISO dates, common European layouts and 8-digit compact dates
// (YYYYMMDD).
func ParseDay(dateStr string) (time.Time, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	if compactDatePattern.MatchString(dateStr) {
		if t, err := time.Parse("20060102", dateStr); err == nil {
			return t, nil
		}
	}

	// An ISO timestamp still carries the day in its first 10 bytes.
	if len(dateStr) > 10 && dateStr[4] == '-' && dateStr[7] == '-' {
		if t, err := time.Parse(DateLayoutISO, dateStr[:10]); err == nil {
			return t, nil
		}
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// FromSerial converts a spreadsheet serial-date number to a day value.
// Fractional day parts (times) are discarded.
func FromSerial(serial float64) (time.Time, error) {
	if serial <= 0 || serial > 2958465 { // 9999-12-31
		return time.Time{}, fmt.Errorf("serial date %v out of range", serial)
	}
	return excelEpoch.AddDate(0, 0, int(serial)), nil
}

// ToISODay formats a time as the canonical YYYY-MM-DD day string.
func ToISODay(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString trims and collapses whitespace in a date string.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	re := regexp.MustCompile(`\s+`)
	return re.ReplaceAllString(dateStr, " ")
}

// Day truncates a time to midnight UTC on the same calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CountWeekdays counts the days in [start, end] (inclusive both ends) whose
// weekday satisfies the given predicate. Returns 0 when end precedes start.
func CountWeekdays(start, end time.Time, include func(time.Weekday) bool) int {
	start, end = Day(start), Day(end)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if include(d.Weekday()) {
			count++
		}
	}
	return count
}

// MinDay returns the earlier of two days.
func MinDay(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
