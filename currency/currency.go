// Package currency renders decimal amounts for display.
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Code is the currency every scale is published in.
const Code = money.USD

// FromDecimal converts an amount to minor units, rounding half away from
// zero to cents.
func FromDecimal(d decimal.Decimal) *money.Money {
	cents := d.Shift(2).Round(0).IntPart()
	return money.New(cents, Code)
}

// Format renders d as "$1,234.56".
func Format(d decimal.Decimal) string {
	return FromDecimal(d).Display()
}

// Fixed renders d with exactly two decimals and no symbol, e.g. "1234.56".
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}
