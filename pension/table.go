/*
Package pension converts service length and final salary into retirement
benefits.

PURPOSE:
  The pension percentage depends only on completed years and months of
  service. It starts at 15% for 10 years and rises 1.5 points per year
  (0.125 per month) up to 33 years 11 months. The table is computed once and
  never changes.

FORMULA:
  percent(years, months) = round(15 + (years-10)*1.5 + months*(1.5/12), 3)
  monthly  = final salary * percent / 100
  annual   = monthly * 12
  gratuity = monthly * 50

DOMAIN:
  years 10..33, months 0..11. Anything else is "not found", a normal answer
  rather than an error.
*/
package pension

import (
	"github.com/shopspring/decimal"
)

const (
	MinYears  = 10
	MaxYears  = 33
	MaxMonths = 11

	// PercentPlaces is the precision the percentage is rounded to.
	PercentPlaces = 3
)

var (
	basePercent     = decimal.NewFromInt(15)
	perYearPercent  = decimal.RequireFromString("1.5")
	perMonthPercent = perYearPercent.Div(decimal.NewFromInt(12))
)

// Table is the precomputed percentage for every (years, months) pair.
type Table struct {
	percent [MaxYears - MinYears + 1][MaxMonths + 1]decimal.Decimal
}

// NewTable computes the full table.
func NewTable() *Table {
	t := &Table{}
	for y := MinYears; y <= MaxYears; y++ {
		for m := 0; m <= MaxMonths; m++ {
			t.percent[y-MinYears][m] = PercentFor(y, m)
		}
	}
	return t
}

// PercentFor evaluates the closed-form formula without bounds checks.
func PercentFor(years, months int) decimal.Decimal {
	return basePercent.
		Add(perYearPercent.Mul(decimal.NewFromInt(int64(years - MinYears)))).
		Add(perMonthPercent.Mul(decimal.NewFromInt(int64(months)))).
		Round(PercentPlaces)
}

// InDomain reports whether (years, months) is a populated cell.
func InDomain(years, months int) bool {
	return years >= MinYears && years <= MaxYears && months >= 0 && months <= MaxMonths
}

// Percent looks up the percentage. The second result is false outside the
// domain.
func (t *Table) Percent(years, months int) (decimal.Decimal, bool) {
	if !InDomain(years, months) {
		return decimal.Zero, false
	}
	return t.percent[years-MinYears][months], true
}

// Entry is one cell of the table.
type Entry struct {
	Years   int
	Months  int
	Percent decimal.Decimal
}

// Entries lists every cell, ordered by years then months.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, (MaxYears-MinYears+1)*(MaxMonths+1))
	for y := MinYears; y <= MaxYears; y++ {
		for m := 0; m <= MaxMonths; m++ {
			out = append(out, Entry{Years: y, Months: m, Percent: t.percent[y-MinYears][m]})
		}
	}
	return out
}
