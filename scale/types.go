/*
Package scale holds the published salary scales for educators.

PURPOSE:
  A salary scale maps every grade to the amount paid at each step of that
  grade. Two editions are published at any time: the current scale and the
  previous (superseded) scale. Placement and discrepancy checks read these
  tables; nothing in the system writes to them after startup.

KEY CONCEPTS IN THIS FILE (types.go):
  - Grade: employment classification 2..5
  - Step: one of 13 ordered labels (Minimum, A..G, 1st..5th Longevity)
  - Table: grade -> step -> amount for one edition
  - Tables: the current and previous editions loaded together

IMMUTABILITY:
  Table has no mutating methods. Constructors copy their input and accessors
  return copies, so a loaded Table can be shared between goroutines.

SEE ALSO:
  - loader.go: Source interface and JSON file source
  - errors.go: ConfigurationError / LookupError
  - placement/: step placement against a Table
*/
package scale

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// =============================================================================
// GRADE
// =============================================================================

// Grade is an employment classification that selects a row of the scale.
type Grade int

const (
	Grade2 Grade = 2
	Grade3 Grade = 3
	Grade4 Grade = 4
	Grade5 Grade = 5
)

// Grades lists every grade in ascending order.
var Grades = []Grade{Grade2, Grade3, Grade4, Grade5}

var gradeTitles = map[Grade]string{
	Grade2: "Assistant Teacher Primary (ATP)",
	Grade3: "Teacher I (Primary) or Teacher II (Secondary)",
	Grade4: "Teacher III (Secondary)",
	Grade5: "Dean or Head of Department (HOD)",
}

// Valid reports whether g is one of the published grades.
func (g Grade) Valid() bool {
	_, ok := gradeTitles[g]
	return ok
}

// Title returns the job titles covered by the grade.
func (g Grade) Title() string { return gradeTitles[g] }

func (g Grade) String() string { return strconv.Itoa(int(g)) }

// ParseGrade parses a table key such as "3".
func ParseGrade(s string) (Grade, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid grade %q: %w", s, err)
	}
	g := Grade(n)
	if !g.Valid() {
		return 0, fmt.Errorf("unknown grade %d", n)
	}
	return g, nil
}

// =============================================================================
// STEP
// =============================================================================

// Step is a position within a grade, 0 (Minimum) through 12 (5th Longevity).
type Step int

const (
	StepMinimum Step = iota
	StepA
	StepB
	StepC
	StepD
	StepE
	StepF
	StepG
	StepLongevity1
	StepLongevity2
	StepLongevity3
	StepLongevity4
	StepLongevity5
)

// MaxStep is the highest step any grade can define.
const MaxStep = StepLongevity5

var stepLabels = [...]string{
	"Minimum", "A", "B", "C", "D", "E", "F", "G",
	"1st Longevity", "2nd Longevity", "3rd Longevity",
	"4th Longevity", "5th Longevity",
}

// Label returns the published label, e.g. "C" or "2nd Longevity".
func (s Step) Label() string {
	if s < StepMinimum || s > MaxStep {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepLabels[s]
}

func (s Step) String() string { return s.Label() }

// Index returns the ordinal position of the step.
func (s Step) Index() int { return int(s) }

// IsLongevity reports whether the step is only reached after G.
func (s Step) IsLongevity() bool { return s >= StepLongevity1 && s <= MaxStep }

// ParseStep maps a published label back to its Step.
func ParseStep(label string) (Step, bool) {
	for i, l := range stepLabels {
		if l == label {
			return Step(i), true
		}
	}
	return 0, false
}

// Steps returns all 13 steps in order.
func Steps() []Step {
	out := make([]Step, 0, len(stepLabels))
	for i := range stepLabels {
		out = append(out, Step(i))
	}
	return out
}

// =============================================================================
// EDITION
// =============================================================================

// Edition identifies one published scale.
type Edition string

const (
	EditionCurrent  Edition = "current"
	EditionPrevious Edition = "previous"
)

// Valid reports whether e is a known edition.
func (e Edition) Valid() bool { return e == EditionCurrent || e == EditionPrevious }

// ParseEdition accepts "current" or "previous".
func ParseEdition(s string) (Edition, error) {
	e := Edition(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown scale edition %q", s)
	}
	return e, nil
}

// =============================================================================
// TABLE
// =============================================================================

// Table is one edition of the salary scale: grade -> step -> amount.
type Table struct {
	rows map[Grade]map[Step]decimal.Decimal
}

// NewTable builds a Table from a nested map. The input is copied.
func NewTable(rows map[Grade]map[Step]decimal.Decimal) Table {
	t := Table{rows: make(map[Grade]map[Step]decimal.Decimal, len(rows))}
	for g, steps := range rows {
		cp := make(map[Step]decimal.Decimal, len(steps))
		for s, amt := range steps {
			cp[s] = amt
		}
		t.rows[g] = cp
	}
	return t
}

// Amount returns the amount for grade at step.
func (t Table) Amount(g Grade, s Step) (decimal.Decimal, bool) {
	steps, ok := t.rows[g]
	if !ok {
		return decimal.Zero, false
	}
	amt, ok := steps[s]
	return amt, ok
}

// HasGrade reports whether the table has any entry for the grade.
func (t Table) HasGrade(g Grade) bool {
	steps, ok := t.rows[g]
	return ok && len(steps) > 0
}

// MaxStep returns the highest step the table defines for the grade. The
// second result is false when the grade has no steps at all.
func (t Table) MaxStep(g Grade) (Step, bool) {
	steps, ok := t.rows[g]
	if !ok || len(steps) == 0 {
		return 0, false
	}
	max := StepMinimum
	for s := range steps {
		if s > max {
			max = s
		}
	}
	return max, true
}

// Grades returns the grades present, ascending.
func (t Table) Grades() []Grade {
	out := make([]Grade, 0, len(t.rows))
	for g := range t.rows {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StepsFor returns the steps defined for a grade, ascending.
func (t Table) StepsFor(g Grade) []Step {
	steps := t.rows[g]
	out := make([]Step, 0, len(steps))
	for s := range steps {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Rows returns a deep copy of the table contents.
func (t Table) Rows() map[Grade]map[Step]decimal.Decimal {
	return NewTable(t.rows).rows
}

// IsEmpty reports whether the table has no amounts.
func (t Table) IsEmpty() bool {
	for _, steps := range t.rows {
		if len(steps) > 0 {
			return false
		}
	}
	return true
}

// =============================================================================
// TABLES - both editions
// =============================================================================

// EditionInfo describes an edition for display.
type EditionInfo struct {
	Name string // e.g. "current salary scale"
	Note string // e.g. effective period of the scale
}

// Tables carries both editions. Built once at startup, shared read-only.
type Tables struct {
	Current  Table
	Previous Table
	Info     map[Edition]EditionInfo
}

// Edition returns the table for e.
func (ts *Tables) Edition(e Edition) Table {
	if e == EditionPrevious {
		return ts.Previous
	}
	return ts.Current
}

// Describe returns the display info for e, falling back to a generic name.
func (ts *Tables) Describe(e Edition) EditionInfo {
	if info, ok := ts.Info[e]; ok && info.Name != "" {
		return info
	}
	return EditionInfo{Name: string(e) + " salary scale"}
}
