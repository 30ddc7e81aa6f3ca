// Package format provides string formatting helpers for amounts, rates,
// and terms as they appear in summaries and persisted records.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Amount returns a plain two-decimal amount string (e.g., "1234.56"). This
// is the representation used in persisted records.
func Amount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if math.IsInf(amount, 1) {
		return "$Inf"
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent returns a percent-suffixed rate string without trailing zeros
// (e.g., "5.2%", "7%").
func Percent(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

// TermYears returns the term string used in persisted records (e.g.,
// "20 years"). The unit is always plural; the stored header contract
// predates this implementation.
func TermYears(years int) string {
	return fmt.Sprintf("%d years", years)
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
