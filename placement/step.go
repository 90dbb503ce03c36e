package placement

import (
	"time"

	"github.com/StephenDWright/TeacherApps1/scale"
)

// =============================================================================
// SERVICE RECORD
// =============================================================================

// ServiceRecord is the service history supplied for one placement request.
type ServiceRecord struct {
	StartDate    time.Time
	UpgradeDate  time.Time
	WasUpgraded  bool
	EntryGrade   scale.Grade
	CurrentGrade scale.Grade
}

// EffectiveStart is the date credit in the current grade starts from.
func (r ServiceRecord) EffectiveStart() time.Time {
	if r.WasUpgraded {
		return r.UpgradeDate
	}
	return r.StartDate
}

// Grade is the grade whose scale applies: the current grade after an
// upgrade, otherwise the entry grade.
func (r ServiceRecord) Grade() scale.Grade {
	if r.WasUpgraded && r.CurrentGrade != 0 {
		return r.CurrentGrade
	}
	return r.EntryGrade
}

// =============================================================================
// STEP MAPPING
// =============================================================================

// AnnualSteps is the number of steps awarded one per year (A..G).
const AnnualSteps = 7

// LongevityInterval is the number of years between longevity steps.
const LongevityInterval = 2

// StepForYears maps credited years to a step before any clamping.
//
//	<=0 years -> Minimum
//	1..7      -> A..G
//	>7        -> G plus one longevity step every 2 years, up to 5th Longevity
func StepForYears(years int) scale.Step {
	switch {
	case years <= 0:
		return scale.StepMinimum
	case years <= AnnualSteps:
		return scale.Step(years)
	default:
		s := scale.Step(AnnualSteps + (years-AnnualSteps)/LongevityInterval)
		if s > scale.MaxStep {
			s = scale.MaxStep
		}
		return s
	}
}

// =============================================================================
// PLACEMENT
// =============================================================================

// Result is the placement of one service record on a grade's scale.
type Result struct {
	Grade          scale.Grade
	Step           scale.Step
	CreditedYears  int
	EffectiveStart time.Time
	// ComputedStep is the step before clamping to the grade's table.
	ComputedStep scale.Step
	MaxStep      scale.Step
}

// Clamped reports whether the table capped the computed step.
func (r Result) Clamped() bool { return r.ComputedStep > r.Step }

// Place computes the step for record as of asOf, clamped to the highest
// step table defines for the record's grade. A grade with no steps in the
// table returns a *scale.LookupError.
//
// Dates and grades are not range-checked here; see ServiceRecord.Validate.
func Place(record ServiceRecord, table scale.Table, edition scale.Edition, asOf time.Time) (Result, error) {
	grade := record.Grade()
	start := record.EffectiveStart()
	years := CreditedYears(start, asOf)
	computed := StepForYears(years)

	max, ok := table.MaxStep(grade)
	if !ok {
		return Result{}, &scale.LookupError{Edition: edition, Grade: grade, Step: computed, NoGrade: true}
	}

	step := computed
	if step > max {
		step = max
	}

	return Result{
		Grade:          grade,
		Step:           step,
		CreditedYears:  years,
		EffectiveStart: start,
		ComputedStep:   computed,
		MaxStep:        max,
	}, nil
}
