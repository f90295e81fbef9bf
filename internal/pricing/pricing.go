// Package pricing implements the tax-inclusive price math used across
// product resolution and page generation.
//
// The rounding rule intentionally reproduces the behaviour of the historical
// tool: displayed prices must match its output digit for digit, including the
// epsilon that absorbs float imprecision. Do not "fix" the rounding.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

const (
	// taxRate is the fixed consumption tax multiplier.
	taxRate = 1.1
	// taxThreshold is the first-decimal-digit cutoff for rounding up.
	taxThreshold = 1
	// taxEpsilon absorbs float error before the threshold comparison.
	taxEpsilon = 0.00001
)

// Amount parses a decimal amount string, tolerating thousands separators.
// The second return value reports whether the input was numeric.
func Amount(value string) (float64, bool) {
	trimmed := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if trimmed == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// TaxIncluded converts a tax-exclusive price string into a tax-inclusive
// integer price string. Empty input stays empty and non-numeric input passes
// through unchanged so a malformed price list never aborts resolution.
//
// The fractional part rounds up when its first decimal digit, nudged by
// taxEpsilon, reaches taxThreshold; otherwise it is floored.
func TaxIncluded(price string) string {
	if price == "" {
		return ""
	}
	num, ok := Amount(price)
	if !ok {
		return price
	}

	taxIn := num * taxRate
	integerPart := math.Floor(taxIn)
	decimalPart := taxIn - integerPart

	result := int64(integerPart)
	if math.Floor(decimalPart*10+taxEpsilon) >= taxThreshold {
		result++
	}
	return strconv.FormatInt(result, 10)
}

// FormatThousands renders an integer amount with comma separators, matching
// the grouping the exported page shows next to the 円 suffix.
func FormatThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}
	if len(digits) <= 3 {
		if negative {
			return "-" + digits
		}
		return digits
	}

	var builder strings.Builder
	if negative {
		builder.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		builder.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if builder.Len() > 0 && !(negative && builder.Len() == 1) {
			builder.WriteByte(',')
		}
		builder.WriteString(digits[i : i+3])
	}
	return builder.String()
}

// Display formats a stored price string with thousands separators. Strings
// that fail to parse are returned as-is.
func Display(price string) string {
	num, ok := Amount(price)
	if !ok {
		return price
	}
	return FormatThousands(int64(num))
}

// Discount computes the price-off badge label for a product. The label reads
// "<off>円OFF" with separators; visible is false when the reference price is
// missing or does not exceed the sale price, in which case the badge markup
// is still emitted but hidden to preserve card height.
func Discount(price, refPrice string) (label string, visible bool) {
	sale, okSale := Amount(price)
	ref, okRef := Amount(refPrice)
	if !okSale || !okRef || ref <= sale {
		return "", false
	}
	return FormatThousands(int64(ref-sale)) + "円OFF", true
}
