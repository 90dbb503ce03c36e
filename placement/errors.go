package placement

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/StephenDWright/TeacherApps1/scale"
)

// ErrInvalidInput marks a request that breaks the calculator's
// preconditions. Callers check this before calling Place or Check.
var ErrInvalidInput = errors.New("invalid input")

// Accepted date range for entry and upgrade dates.
var (
	EarliestDate = Date(1985, time.January, 1)
	LatestDate   = Date(2030, time.December, 31)
)

// FieldError is one violated precondition.
type FieldError struct {
	Field   string
	Message string
}

// InputError collects every violated precondition of a request.
type InputError struct {
	Fields []FieldError
}

func (e *InputError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func (e *InputError) add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the boundary preconditions: dates inside 1985..2030,
// grades in {2,3,4,5}, and an upgrade date whenever WasUpgraded is set.
// It returns nil or an *InputError.
func (r ServiceRecord) Validate() error {
	ie := &InputError{}

	checkDate := func(field string, t time.Time) {
		if t.IsZero() {
			ie.add(field, "is required")
			return
		}
		if t.Before(EarliestDate) || t.After(LatestDate) {
			ie.add(field, "must be between %s and %s", EarliestDate.Format(DateLayout), LatestDate.Format(DateLayout))
		}
	}

	checkDate("start_date", r.StartDate)
	if !r.EntryGrade.Valid() {
		ie.add("entry_grade", "must be one of 2, 3, 4, 5")
	}
	if r.WasUpgraded {
		checkDate("upgrade_date", r.UpgradeDate)
		if r.CurrentGrade != 0 && !r.CurrentGrade.Valid() {
			ie.add("current_grade", "must be one of 2, 3, 4, 5")
		}
	}

	if len(ie.Fields) > 0 {
		return ie
	}
	return nil
}

// lookupMiss builds the error for a grade/step without an amount.
func lookupMiss(edition scale.Edition, grade scale.Grade, step scale.Step) error {
	return &scale.LookupError{Edition: edition, Grade: grade, Step: step}
}
