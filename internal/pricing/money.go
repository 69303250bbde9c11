package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value stored in minor units (cents).
type Money = int64

// FormatMoney renders m with exactly two decimals, e.g. 4550 -> "45.50".
func FormatMoney(m Money) string {
	return decimal.New(m, -2).StringFixed(2)
}

// FormatCurrency renders m as a dollar amount, e.g. 4550 -> "$45.50".
func FormatCurrency(m Money) string {
	if m < 0 {
		return "-$" + FormatMoney(-m)
	}
	return "$" + FormatMoney(m)
}

// ParseMoney converts a decimal string such as "0.75" or "$15" into minor units.
// Values with more than two decimal places are rejected rather than rounded.
func ParseMoney(value string) (Money, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(value), "$")
	if raw == "" {
		return 0, fmt.Errorf("parse money: empty value")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", value, err)
	}
	cents := d.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, fmt.Errorf("parse money %q: more than two decimal places", value)
	}
	return cents.IntPart(), nil
}
