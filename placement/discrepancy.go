package placement

import (
	"github.com/shopspring/decimal"
)

// DiscrepancyKind classifies expected vs. reported salary.
type DiscrepancyKind string

const (
	Match     DiscrepancyKind = "match"
	Underpaid DiscrepancyKind = "underpaid"
	Overpaid  DiscrepancyKind = "overpaid"
)

// Discrepancy is the outcome of comparing expected and reported salary.
// Amount is always non-negative.
type Discrepancy struct {
	Kind   DiscrepancyKind
	Amount decimal.Decimal
}

// EvaluateDiscrepancy compares expected against reported.
func EvaluateDiscrepancy(expected, reported decimal.Decimal) Discrepancy {
	diff := expected.Sub(reported)
	switch diff.Sign() {
	case 0:
		return Discrepancy{Kind: Match, Amount: decimal.Zero}
	case 1:
		return Discrepancy{Kind: Underpaid, Amount: diff}
	default:
		return Discrepancy{Kind: Overpaid, Amount: diff.Neg()}
	}
}
