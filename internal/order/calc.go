package order

import (
	"strings"

	"github.com/shopspring/decimal"
)

// The original back office formats money with zero decimal places, so the
// precision is a setting (order.CurrencyPrecision) rather than a constant.
const DefaultCurrencyPrecision int32 = 0

// LineTotal derives a line total from the unit price snapshot and quantity,
// rounded to the configured currency precision. Malformed input degrades to
// zero instead of raising, matching the interactive editing policy.
func LineTotal(unitPrice decimal.Decimal, quantity int64, precision int32) decimal.Decimal {
	if unitPrice.IsNegative() || quantity < 0 {
		return decimal.Zero.Round(precision)
	}
	return unitPrice.Mul(decimal.NewFromInt(quantity)).Round(precision)
}

// OrderTotal derives the order total as the sum of the line totals. An empty
// set of lines yields zero.
func OrderTotal(lines []LineEdit, precision int32) decimal.Decimal {
	total := decimal.Zero
	for _, ln := range lines {
		total = total.Add(ln.TotalPrice)
	}
	return total.Round(precision)
}

// ParseAmount parses a monetary amount from its boundary representation.
// Absent or non-numeric input is treated as zero, never as an error; this
// leniency is for interactive editing only, persistence-time validation is
// stricter.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
