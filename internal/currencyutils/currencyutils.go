// Package currencyutils provides locale-tolerant parsing of monetary amounts
// found in bank exports.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var symbolPattern = regexp.MustCompile(`[€$£¥₣kr\s]|CHF|EUR|SEK|USD`)

// ParseAmount parses a string representation of an amount into a decimal
// value. It handles formats like "1,234.56", "1.234,56", "1234,56",
// "1 234.56" and stray currency markers.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := StandardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount converts various locale formats to a form that
// decimal.NewFromString accepts.
func StandardizeAmount(amountStr string) string {
	amountStr = symbolPattern.ReplaceAllString(amountStr, "")

	hasComma := strings.Contains(amountStr, ",")
	hasDot := strings.Contains(amountStr, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European format 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// US format 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasComma:
		parts := strings.Split(amountStr, ",")
		if len(parts[len(parts)-1]) <= 2 {
			// Decimal comma 1234,56
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// Thousand separator 1,234
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasDot:
		// More than one dot means thousand separators (1.234.567).
		// A single dot stays a decimal point.
		if strings.Count(amountStr, ".") > 1 {
			amountStr = strings.ReplaceAll(amountStr, ".", "")
		}
	}

	// Apostrophes as thousand separators (1'234.56).
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	return amountStr
}

// FormatAmount renders a decimal with two decimal places for display.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
