// Package types holds the value types shared across documents and the
// stock ledger.
package types

import (
	"github.com/shopspring/decimal"
)

// Money is the unit price and total value type for document lines and
// ledger rows. decimal.Decimal keeps exact cents where float64 would
// drift.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float. Prefer
// NewMoneyFromString wherever the value comes in as text.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a decimal string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// LineTotal computes price × quantity for whole-unit quantities.
func LineTotal(unitPrice Money, quantity int64) Money {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}
