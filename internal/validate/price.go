// Package validate holds the pure validation core of the harness: price
// normalization, sort-order checking, and cart reconciliation. Every function
// is stateless and side-effect free, so the package is safe to call from any
// number of goroutines without coordination.
package validate

import (
	"regexp"
	"strconv"
	"strings"
)

// priceRe matches the first numeric run in a price string: digits with
// optional comma grouping and an optional decimal part. Currency symbols,
// abbreviations like "Rs." and surrounding whitespace are skipped over.
var priceRe = regexp.MustCompile(`[0-9][0-9,]*(\.[0-9]+)?`)

// ParsePrice extracts a numeric price from raw scraped text. The second
// return value is false when the text contains no parseable number, letting
// callers distinguish an unknown price from a genuine zero.
func ParsePrice(text string) (float64, bool) {
	candidate := priceRe.FindString(text)
	if candidate == "" {
		return 0, false
	}
	candidate = strings.ReplaceAll(candidate, ",", "")
	n, err := strconv.ParseFloat(candidate, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ExtractPrice converts heterogeneous currency-formatted text ("₹1,299",
// "Rs. 45.50", "1299") to a number. Malformed or missing prices degrade to 0
// rather than failing; downstream consumers treat 0 as "unknown", not "free".
// The result is always >= 0 and re-extracting the formatted result yields the
// same number.
func ExtractPrice(text string) float64 {
	n, _ := ParsePrice(text)
	return n
}

// FormatPrice renders a numeric price for display with a currency prefix and
// thousands grouping. Whole amounts drop the decimal part. The output is not
// guaranteed to round-trip through ExtractPrice byte-for-byte, only
// numerically.
func FormatPrice(n float64) string {
	s := strconv.FormatFloat(n, 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")

	// Insert comma grouping into the integer part.
	var b strings.Builder
	for i, d := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if frac == "00" {
		return "₹" + b.String()
	}
	return "₹" + b.String() + "." + frac
}

// CalculateTotal sums a sequence of prices. An empty sequence totals 0.
func CalculateTotal(prices []float64) float64 {
	var total float64
	for _, p := range prices {
		total += p
	}
	return total
}
