package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts cross the API boundary as decimal strings ("9.99") but every
// internal computation runs on integer minor units. Conversions here are
// exact; anything that would need a fractional cent is rejected.

// CentsFromDecimal converts an exact decimal amount to minor units.
func CentsFromDecimal(d decimal.Decimal) (int64, error) {
	scaled := d.Shift(2)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("amount %s has sub-cent precision", d.String())
	}
	return scaled.IntPart(), nil
}

// ParseCents parses a decimal amount string into minor units.
func ParseCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return CentsFromDecimal(d)
}

// FormatCents renders minor units as a two-decimal amount string.
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
