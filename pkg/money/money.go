// Package money centralizes monetary arithmetic. Amounts are exact decimals
// (shopspring/decimal) and are stored with exactly two fraction digits;
// binary floats never touch order math.
package money

import "github.com/shopspring/decimal"

// Round2 rounds an exact amount to 2 fraction digits, half away from zero.
// All amounts in this system are non-negative, so this behaves as round
// half-up: 44.9982 -> 45.00, 2.345 -> 2.35.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// LineTotal returns unit price x quantity rounded to 2 fraction digits.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return Round2(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
}

// Zero is the canonical 0.00 amount.
func Zero() decimal.Decimal {
	return decimal.Zero.Round(2)
}

// MustParse converts a literal into an amount and panics on malformed input.
// Intended for constants and tests only.
func MustParse(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
