/*
check.go - Salary check: placement, expected salary and discrepancy

PURPOSE:
  A salary check answers "where should I be on the scale, what should I be
  paid, and am I paid that?" in one call:

    1. Place the service record on the requested edition's scale
    2. Look up the amount for the placed step
    3. If a salary was reported, compare it with the expected amount

  Missing data is part of the answer, not an error: a grade or step absent
  from the table yields Found=false and an error-level message.

CLAMPING:
  The step is clamped against the edition being reported. When the previous
  scale is requested, the previous table's own step set bounds the result.

SEE ALSO:
  - step.go: Place
  - discrepancy.go: EvaluateDiscrepancy
  - api/handlers.go: HTTP caller
*/
package placement

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/StephenDWright/TeacherApps1/currency"
	"github.com/StephenDWright/TeacherApps1/scale"
)

// Severity tells the caller how to present a message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Message is one line of feedback for the caller to render.
type Message struct {
	Severity Severity
	Text     string
}

// CheckRequest is a full salary check.
type CheckRequest struct {
	Record ServiceRecord
	// ReportedSalary is optional; zero means "not reported".
	ReportedSalary decimal.Decimal
	Edition        scale.Edition
	// AsOf defaults to today when zero.
	AsOf time.Time
}

// CheckResult is the answer to a CheckRequest.
type CheckResult struct {
	Placement   Result
	Edition     scale.Edition
	EditionInfo scale.EditionInfo
	AsOf        time.Time

	Found    bool
	Expected decimal.Decimal
	// Miss is the *scale.LookupError when Found is false.
	Miss error

	// Discrepancy is set only when Found and a salary was reported.
	Discrepancy *Discrepancy
	Messages    []Message
}

// Checker runs salary checks against loaded tables.
type Checker struct {
	tables *scale.Tables
	now    func() time.Time
}

// NewChecker returns a Checker reading tables.
func NewChecker(tables *scale.Tables) *Checker {
	return &Checker{tables: tables, now: Today}
}

// WithClock overrides the source of "today". Tests pin the date with it.
func (c *Checker) WithClock(now func() time.Time) *Checker {
	c.now = now
	return c
}

// Check runs the salary check. The request must already satisfy
// ServiceRecord.Validate.
func (c *Checker) Check(req CheckRequest) CheckResult {
	edition := req.Edition
	if edition == "" {
		edition = scale.EditionCurrent
	}
	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = c.now()
	}

	table := c.tables.Edition(edition)
	res := CheckResult{
		Edition:     edition,
		EditionInfo: c.tables.Describe(edition),
		AsOf:        asOf,
	}

	placed, err := Place(req.Record, table, edition, asOf)
	if err != nil {
		// The grade has no row in this edition; report the unclamped step.
		start := req.Record.EffectiveStart()
		years := CreditedYears(start, asOf)
		res.Placement = Result{
			Grade:          req.Record.Grade(),
			Step:           StepForYears(years),
			ComputedStep:   StepForYears(years),
			CreditedYears:  years,
			EffectiveStart: start,
		}
		return c.miss(res, err)
	}
	res.Placement = placed

	expected, ok := table.Amount(placed.Grade, placed.Step)
	if !ok || !expected.IsPositive() {
		return c.miss(res, lookupMiss(edition, placed.Grade, placed.Step))
	}

	res.Found = true
	res.Expected = expected
	res.Messages = append(res.Messages,
		Message{SeveritySuccess, fmt.Sprintf(
			"Based on your service history, your expected placement is %s under the %s, with an estimated salary of %s.",
			placed.Step.Label(), res.EditionInfo.Name, currency.Format(expected))},
		Message{SeverityInfo, fmt.Sprintf("Years in Grade %s: %d", placed.Grade, placed.CreditedYears)},
	)

	if req.ReportedSalary.IsPositive() {
		d := EvaluateDiscrepancy(expected, req.ReportedSalary)
		res.Discrepancy = &d
		res.Messages = append(res.Messages, discrepancyMessage(d))
	}
	return res
}

func (c *Checker) miss(res CheckResult, err error) CheckResult {
	res.Found = false
	res.Miss = err
	res.Messages = append(res.Messages, Message{SeverityError, fmt.Sprintf(
		"No salary data available for %s in Grade %s.", res.Placement.Step.Label(), res.Placement.Grade)})
	return res
}

func discrepancyMessage(d Discrepancy) Message {
	switch d.Kind {
	case Underpaid:
		return Message{SeverityWarning, fmt.Sprintf("You may be underpaid by %s.", currency.Format(d.Amount))}
	case Overpaid:
		return Message{SeverityInfo, fmt.Sprintf("You may be overpaid by %s.", currency.Format(d.Amount))}
	default:
		return Message{SeveritySuccess, "Your salary matches the expected amount."}
	}
}
