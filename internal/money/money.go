// Package money holds the decimal helpers used for prices and store credit.
package money

import (
	"strings"

	"github.com/georgemunganga/usedbooks-backend/internal/platform/apperr"
	"github.com/shopspring/decimal"
)

// Sum adds values exactly. No input yields zero.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// FloorZero returns d, or zero when d is negative.
func FloorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Parse reads an operator-entered amount such as "12.50".
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, apperr.Validation("amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperr.Validation("amount %q must be a valid number", s)
	}
	if err := Check(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// Check rejects negative amounts and fractions of a cent.
func Check(d decimal.Decimal) error {
	if d.IsNegative() {
		return apperr.Validation("amount %s cannot be negative", d.String())
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return apperr.Validation("amount %s has more than two decimal places", d.String())
	}
	return nil
}

// Amount renders d with exactly two decimals.
func Amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
