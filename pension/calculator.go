package pension

import (
	"github.com/shopspring/decimal"
)

// Fixed policy multipliers applied to the monthly pension.
const (
	AnnualMultiplier   = 12
	GratuityMultiplier = 50
)

var hundred = decimal.NewFromInt(100)

// Result is the benefit for one final salary and service length.
type Result struct {
	Years          int
	Months         int
	FinalSalary    decimal.Decimal
	Percent        decimal.Decimal
	MonthlyPension decimal.Decimal
	AnnualPension  decimal.Decimal
	Gratuity       decimal.Decimal
}

// Calculator computes benefits against a precomputed Table.
type Calculator struct {
	table *Table
}

// NewCalculator returns a Calculator over table. A nil table gets the
// standard one.
func NewCalculator(table *Table) *Calculator {
	if table == nil {
		table = NewTable()
	}
	return &Calculator{table: table}
}

// Table exposes the percentage table the calculator reads.
func (c *Calculator) Table() *Table { return c.table }

// Compute returns the benefit. found is false when (years, months) lies
// outside the table; that is an ordinary outcome, not an error.
func (c *Calculator) Compute(finalSalary decimal.Decimal, years, months int) (res Result, found bool) {
	pct, ok := c.table.Percent(years, months)
	if !ok {
		return Result{Years: years, Months: months, FinalSalary: finalSalary}, false
	}

	monthly := finalSalary.Mul(pct).Div(hundred)
	return Result{
		Years:          years,
		Months:         months,
		FinalSalary:    finalSalary,
		Percent:        pct,
		MonthlyPension: monthly,
		AnnualPension:  monthly.Mul(decimal.NewFromInt(AnnualMultiplier)),
		Gratuity:       monthly.Mul(decimal.NewFromInt(GratuityMultiplier)),
	}, true
}
