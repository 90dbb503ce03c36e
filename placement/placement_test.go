package placement_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StephenDWright/TeacherApps1/placement"
	"github.com/StephenDWright/TeacherApps1/scale"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func d(y int, m time.Month, day int) time.Time { return placement.Date(y, m, day) }

// fullRow defines all 13 steps starting at base, rising by 100 per step.
func fullRow(base int64) map[scale.Step]decimal.Decimal {
	row := make(map[scale.Step]decimal.Decimal)
	for _, s := range scale.Steps() {
		row[s] = decimal.NewFromInt(base + int64(s)*100)
	}
	return row
}

// currentTable: grade 2 stops at D, grades 3 and 5 are complete, grade 4
// has a gap at C.
func currentTable() scale.Table {
	g4 := fullRow(5000)
	delete(g4, scale.StepC)
	return scale.NewTable(map[scale.Grade]map[scale.Step]decimal.Decimal{
		scale.Grade2: {
			scale.StepMinimum: dec("3150"),
			scale.StepA:       dec("3270"),
			scale.StepB:       dec("3390"),
			scale.StepC:       dec("3510"),
			scale.StepD:       dec("3630"),
		},
		scale.Grade3: fullRow(4000),
		scale.Grade4: g4,
		scale.Grade5: fullRow(6000),
	})
}

// previousTable: grade 3 stops at B, grade 5 is absent.
func previousTable() scale.Table {
	return scale.NewTable(map[scale.Grade]map[scale.Step]decimal.Decimal{
		scale.Grade2: {scale.StepMinimum: dec("2900")},
		scale.Grade3: {
			scale.StepMinimum: dec("3700"),
			scale.StepA:       dec("3800"),
			scale.StepB:       dec("3900"),
		},
		scale.Grade4: fullRow(4700),
	})
}

func newChecker(asOf time.Time) *placement.Checker {
	tables := &scale.Tables{Current: currentTable(), Previous: previousTable()}
	return placement.NewChecker(tables).WithClock(func() time.Time { return asOf })
}

// =============================================================================
// ACADEMIC YEAR
// =============================================================================

func TestAcademicYear_SeptemberBoundary(t *testing.T) {
	assert.Equal(t, 2009, placement.AcademicYear(d(2010, time.August, 31)))
	assert.Equal(t, 2010, placement.AcademicYear(d(2010, time.September, 1)))
	assert.Equal(t, 2009, placement.AcademicYear(d(2010, time.January, 1)))
	assert.Equal(t, 2010, placement.AcademicYear(d(2010, time.December, 31)))
}

func TestCreditedYears_MovesInSeptemberNotOnAnniversary(t *testing.T) {
	start := d(2015, time.March, 10)

	// Calendar anniversary has passed but September has not: no new credit.
	assert.Equal(t, 5, placement.CreditedYears(start, d(2020, time.August, 31)))
	// Credit arrives on 1 September.
	assert.Equal(t, 6, placement.CreditedYears(start, d(2020, time.September, 1)))
}

func TestCreditedYears_MonthBeforeSeptemberShiftsYearBack(t *testing.T) {
	asOf := d(2020, time.September, 1)

	// A start in August counts from the academic year that began the
	// previous September, so it earns one more year than a start a month
	// later in the same calendar year.
	assert.Equal(t, 11, placement.CreditedYears(d(2010, time.August, 15), asOf))
	assert.Equal(t, 10, placement.CreditedYears(d(2010, time.September, 15), asOf))

	// 2010-08-15 and 2009-09-15 both lie in academic year 2009.
	assert.Equal(t,
		placement.CreditedYears(d(2009, time.September, 15), asOf),
		placement.CreditedYears(d(2010, time.August, 15), asOf))
}

func TestCreditedYears_FutureStartIsNegative(t *testing.T) {
	assert.Equal(t, -2, placement.CreditedYears(d(2027, time.September, 1), d(2025, time.September, 1)))
}

// =============================================================================
// STEP MAPPING
// =============================================================================

func TestStepForYears_AnnualSteps(t *testing.T) {
	assert.Equal(t, scale.StepMinimum, placement.StepForYears(0))
	for y := 1; y <= 7; y++ {
		assert.Equal(t, y, placement.StepForYears(y).Index(), "years=%d", y)
	}
}

func TestStepForYears_LongevityEveryTwoYears(t *testing.T) {
	cases := map[int]int{8: 7, 9: 8, 10: 8, 11: 9, 12: 9, 13: 10, 15: 11, 17: 12}
	for years, want := range cases {
		assert.Equal(t, want, placement.StepForYears(years).Index(), "years=%d", years)
	}
	for y := 8; y <= 18; y++ {
		assert.Equal(t, 7+(y-7)/2, placement.StepForYears(y).Index())
	}
	// Nothing exists past the 5th Longevity step.
	for y := 19; y <= 45; y++ {
		assert.Equal(t, scale.MaxStep, placement.StepForYears(y))
	}
}

func TestStepForYears_Monotonic(t *testing.T) {
	prev := placement.StepForYears(-5)
	for y := -4; y <= 50; y++ {
		s := placement.StepForYears(y)
		assert.GreaterOrEqual(t, s, prev)
		prev = s
	}
	assert.Equal(t, scale.StepMinimum, placement.StepForYears(-3))
}

// =============================================================================
// PLACEMENT
// =============================================================================

func TestPlace_ClampsToGradeMaximum(t *testing.T) {
	// GIVEN: grade 2 only defines steps up to D (index 4)
	table := currentTable()

	// WHEN: placing 30 years of service
	for years := 0; years <= 30; years++ {
		rec := placement.ServiceRecord{StartDate: d(1990, time.September, 1), EntryGrade: scale.Grade2}
		asOf := d(1990+years, time.September, 1)

		res, err := placement.Place(rec, table, scale.EditionCurrent, asOf)
		require.NoError(t, err)

		// THEN: never above D
		assert.LessOrEqual(t, res.Step.Index(), 4)
		assert.Equal(t, years, res.CreditedYears, "credited years are reported unclamped")
	}
}

func TestPlace_ReportsComputedAndClampedStep(t *testing.T) {
	rec := placement.ServiceRecord{StartDate: d(2000, time.September, 1), EntryGrade: scale.Grade2}

	res, err := placement.Place(rec, currentTable(), scale.EditionCurrent, d(2020, time.September, 1))
	require.NoError(t, err)

	assert.Equal(t, 20, res.CreditedYears)
	assert.Equal(t, scale.StepLongevity5, res.ComputedStep)
	assert.Equal(t, scale.StepD, res.Step)
	assert.Equal(t, scale.StepD, res.MaxStep)
	assert.True(t, res.Clamped())
}

func TestPlace_UpgradeDateDrivesCredit(t *testing.T) {
	// GIVEN: entered grade 2 in 2005, upgraded to grade 3 in September 2016
	rec := placement.ServiceRecord{
		StartDate:    d(2005, time.September, 1),
		UpgradeDate:  d(2016, time.September, 1),
		WasUpgraded:  true,
		EntryGrade:   scale.Grade2,
		CurrentGrade: scale.Grade3,
	}

	res, err := placement.Place(rec, currentTable(), scale.EditionCurrent, d(2020, time.October, 1))
	require.NoError(t, err)

	// THEN: 4 years in grade 3 -> step D
	assert.Equal(t, scale.Grade3, res.Grade)
	assert.Equal(t, 4, res.CreditedYears)
	assert.Equal(t, scale.StepD, res.Step)
	assert.Equal(t, rec.UpgradeDate, res.EffectiveStart)
}

func TestPlace_NotUpgradedIgnoresUpgradeFields(t *testing.T) {
	rec := placement.ServiceRecord{
		StartDate:    d(2010, time.September, 1),
		UpgradeDate:  d(2018, time.September, 1),
		EntryGrade:   scale.Grade3,
		CurrentGrade: scale.Grade5,
	}

	res, err := placement.Place(rec, currentTable(), scale.EditionCurrent, d(2020, time.September, 1))
	require.NoError(t, err)
	assert.Equal(t, scale.Grade3, res.Grade)
	assert.Equal(t, 10, res.CreditedYears)
	assert.Equal(t, scale.StepLongevity1, res.Step)
}

func TestPlace_GradeWithoutRowIsLookupMiss(t *testing.T) {
	rec := placement.ServiceRecord{StartDate: d(2010, time.September, 1), EntryGrade: scale.Grade5}

	_, err := placement.Place(rec, previousTable(), scale.EditionPrevious, d(2020, time.September, 1))

	require.Error(t, err)
	assert.True(t, scale.IsLookupMiss(err))
	var le *scale.LookupError
	require.ErrorAs(t, err, &le)
	assert.True(t, le.NoGrade)
}

func TestPlace_Idempotent(t *testing.T) {
	rec := placement.ServiceRecord{StartDate: d(2003, time.February, 2), EntryGrade: scale.Grade4}
	asOf := d(2024, time.November, 5)

	a, errA := placement.Place(rec, currentTable(), scale.EditionCurrent, asOf)
	b, errB := placement.Place(rec, currentTable(), scale.EditionCurrent, asOf)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate_AcceptsWellFormedRecord(t *testing.T) {
	rec := placement.ServiceRecord{StartDate: d(1985, time.January, 1), EntryGrade: scale.Grade2}
	assert.NoError(t, rec.Validate())
}

func TestValidate_RejectsOutOfRangeInputs(t *testing.T) {
	rec := placement.ServiceRecord{
		StartDate:    d(1984, time.December, 31),
		WasUpgraded:  true,
		EntryGrade:   scale.Grade(6),
		CurrentGrade: scale.Grade(1),
	}

	err := rec.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, placement.ErrInvalidInput)
	var ie *placement.InputError
	require.ErrorAs(t, err, &ie)

	fields := map[string]bool{}
	for _, f := range ie.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["start_date"])
	assert.True(t, fields["entry_grade"])
	assert.True(t, fields["upgrade_date"], "upgraded without a date must be rejected")
	assert.True(t, fields["current_grade"])
}

func TestValidate_LatestDate(t *testing.T) {
	ok := placement.ServiceRecord{StartDate: d(2030, time.December, 31), EntryGrade: scale.Grade5}
	assert.NoError(t, ok.Validate())

	late := placement.ServiceRecord{StartDate: d(2031, time.January, 1), EntryGrade: scale.Grade5}
	assert.Error(t, late.Validate())
}

// =============================================================================
// DISCREPANCY
// =============================================================================

func TestEvaluateDiscrepancy(t *testing.T) {
	match := placement.EvaluateDiscrepancy(dec("3000"), dec("3000"))
	assert.Equal(t, placement.Match, match.Kind)
	assert.True(t, match.Amount.IsZero())

	under := placement.EvaluateDiscrepancy(dec("3200"), dec("3000"))
	assert.Equal(t, placement.Underpaid, under.Kind)
	assert.True(t, under.Amount.Equal(dec("200")))

	over := placement.EvaluateDiscrepancy(dec("2800"), dec("3000"))
	assert.Equal(t, placement.Overpaid, over.Kind)
	assert.True(t, over.Amount.Equal(dec("200")))
}

// =============================================================================
// SALARY CHECK
// =============================================================================

func TestCheck_FoundWithUnderpayment(t *testing.T) {
	// GIVEN: grade 3 since September 2016, as of October 2020 (4 years -> D)
	checker := newChecker(d(2020, time.October, 1))

	// WHEN: reporting 4200 against an expected 4400
	res := checker.Check(placement.CheckRequest{
		Record:         placement.ServiceRecord{StartDate: d(2016, time.September, 1), EntryGrade: scale.Grade3},
		ReportedSalary: dec("4200"),
	})

	// THEN
	require.True(t, res.Found)
	assert.Equal(t, scale.EditionCurrent, res.Edition)
	assert.Equal(t, scale.StepD, res.Placement.Step)
	assert.True(t, res.Expected.Equal(dec("4400")))
	require.NotNil(t, res.Discrepancy)
	assert.Equal(t, placement.Underpaid, res.Discrepancy.Kind)
	assert.True(t, res.Discrepancy.Amount.Equal(dec("200")))

	require.Len(t, res.Messages, 3)
	assert.Equal(t, placement.SeveritySuccess, res.Messages[0].Severity)
	assert.Contains(t, res.Messages[0].Text, "expected placement is D under the current salary scale")
	assert.Contains(t, res.Messages[0].Text, "$4,400.00")
	assert.Equal(t, "Years in Grade 3: 4", res.Messages[1].Text)
	assert.Equal(t, placement.SeverityWarning, res.Messages[2].Severity)
	assert.Equal(t, "You may be underpaid by $200.00.", res.Messages[2].Text)
}

func TestCheck_NoReportedSalarySkipsDiscrepancy(t *testing.T) {
	checker := newChecker(d(2020, time.October, 1))

	res := checker.Check(placement.CheckRequest{
		Record: placement.ServiceRecord{StartDate: d(2016, time.September, 1), EntryGrade: scale.Grade3},
	})

	require.True(t, res.Found)
	assert.Nil(t, res.Discrepancy)
	assert.Len(t, res.Messages, 2)
}

func TestCheck_StepGapIsLookupMiss(t *testing.T) {
	// GIVEN: grade 4 has no amount for C; 3 years of service lands on C
	checker := newChecker(d(2020, time.October, 1))

	res := checker.Check(placement.CheckRequest{
		Record:         placement.ServiceRecord{StartDate: d(2017, time.September, 1), EntryGrade: scale.Grade4},
		ReportedSalary: dec("5000"),
	})

	assert.False(t, res.Found)
	assert.True(t, scale.IsLookupMiss(res.Miss))
	assert.Nil(t, res.Discrepancy)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, placement.SeverityError, res.Messages[0].Severity)
	assert.Equal(t, "No salary data available for C in Grade 4.", res.Messages[0].Text)
}

func TestCheck_PreviousEditionClampsToItsOwnSteps(t *testing.T) {
	// GIVEN: grade 3 reaches Longevity steps on the current scale but only B
	// on the previous one
	checker := newChecker(d(2020, time.October, 1))
	rec := placement.ServiceRecord{StartDate: d(2005, time.September, 1), EntryGrade: scale.Grade3}

	current := checker.Check(placement.CheckRequest{Record: rec})
	previous := checker.Check(placement.CheckRequest{Record: rec, Edition: scale.EditionPrevious})

	// THEN: each edition places within its own table and finds an amount
	require.True(t, current.Found)
	require.True(t, previous.Found)
	assert.Equal(t, scale.StepLongevity4, current.Placement.Step)
	assert.Equal(t, scale.StepB, previous.Placement.Step)
	assert.True(t, previous.Expected.Equal(dec("3900")))
	assert.Contains(t, previous.Messages[0].Text, "previous salary scale")
}

func TestCheck_GradeMissingFromEdition(t *testing.T) {
	checker := newChecker(d(2020, time.October, 1))

	res := checker.Check(placement.CheckRequest{
		Record:  placement.ServiceRecord{StartDate: d(2018, time.September, 1), EntryGrade: scale.Grade5},
		Edition: scale.EditionPrevious,
	})

	assert.False(t, res.Found)
	assert.Equal(t, scale.Grade5, res.Placement.Grade)
	assert.Equal(t, scale.StepB, res.Placement.Step)
	assert.Equal(t, "No salary data available for B in Grade 5.", res.Messages[0].Text)
}

func TestCheck_OverpaidAndMatch(t *testing.T) {
	checker := newChecker(d(2020, time.October, 1))
	rec := placement.ServiceRecord{StartDate: d(2020, time.September, 1), EntryGrade: scale.Grade2}

	over := checker.Check(placement.CheckRequest{Record: rec, ReportedSalary: dec("3200")})
	require.NotNil(t, over.Discrepancy)
	assert.Equal(t, placement.Overpaid, over.Discrepancy.Kind)
	assert.Equal(t, "You may be overpaid by $50.00.", over.Messages[2].Text)

	match := checker.Check(placement.CheckRequest{Record: rec, ReportedSalary: dec("3150")})
	require.NotNil(t, match.Discrepancy)
	assert.Equal(t, placement.Match, match.Discrepancy.Kind)
	assert.Equal(t, "Your salary matches the expected amount.", match.Messages[2].Text)
}

func TestCheck_ExplicitAsOfOverridesClock(t *testing.T) {
	checker := newChecker(d(2030, time.January, 1))
	asOf := d(2012, time.September, 1)

	res := checker.Check(placement.CheckRequest{
		Record: placement.ServiceRecord{StartDate: d(2010, time.September, 1), EntryGrade: scale.Grade3},
		AsOf:   asOf,
	})

	assert.Equal(t, asOf, res.AsOf)
	assert.Equal(t, 2, res.Placement.CreditedYears)
	assert.Equal(t, scale.StepB, res.Placement.Step)
}
