/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the calculators' Go types from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

MONEY:
  Every monetary value is a MoneyDTO carrying both an exact decimal string
  ("4400.00") and a display string ("$4,400.00").

VALIDATION:
  Request types carry `validate` tags (go-playground/validator). Date
  ranges and cross-field rules are checked in validate.go.

SEE ALSO:
  - handlers.go: Uses these types
  - validate.go: Boundary validation
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/StephenDWright/TeacherApps1/currency"
	"github.com/StephenDWright/TeacherApps1/pension"
	"github.com/StephenDWright/TeacherApps1/placement"
	"github.com/StephenDWright/TeacherApps1/scale"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// SalaryCheckRequest asks for placement and expected salary.
type SalaryCheckRequest struct {
	StartDate        string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EntryGrade       int     `json:"entry_grade" validate:"required,oneof=2 3 4 5"`
	WasUpgraded      bool    `json:"was_upgraded"`
	UpgradeDate      string  `json:"upgrade_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CurrentGrade     int     `json:"current_grade,omitempty" validate:"omitempty,oneof=2 3 4 5"`
	ReportedSalary   float64 `json:"reported_salary,omitempty" validate:"gte=0"`
	UsePreviousScale bool    `json:"use_previous_scale,omitempty"`
	// AsOf pins the evaluation date; today when empty.
	AsOf string `json:"as_of,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// PensionRequest asks for pension and gratuity.
type PensionRequest struct {
	FinalSalary float64 `json:"final_salary" validate:"gte=0"`
	Years       *int    `json:"years" validate:"required,gte=0"`
	Months      *int    `json:"months" validate:"required,gte=0"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// MoneyDTO is an exact amount plus its display form.
type MoneyDTO struct {
	Amount  string `json:"amount"`
	Display string `json:"display"`
}

// MessageDTO is a line of feedback with a severity.
type MessageDTO struct {
	Severity string `json:"severity"`
	Text     string `json:"text"`
}

// DiscrepancyDTO compares expected and reported salary.
type DiscrepancyDTO struct {
	Kind     string   `json:"kind"`
	Amount   MoneyDTO `json:"amount"`
	Reported MoneyDTO `json:"reported"`
}

// SalaryCheckResponse is the result of a salary check.
type SalaryCheckResponse struct {
	CalculationID  string          `json:"calculation_id"`
	AsOf           string          `json:"as_of"`
	Edition        string          `json:"edition"`
	EditionName    string          `json:"edition_name"`
	EditionNote    string          `json:"edition_note,omitempty"`
	Grade          int             `json:"grade"`
	GradeTitle     string          `json:"grade_title"`
	Step           string          `json:"step"`
	StepIndex      int             `json:"step_index"`
	ComputedStep   string          `json:"computed_step"`
	Clamped        bool            `json:"clamped"`
	CreditedYears  int             `json:"credited_years"`
	EffectiveStart string          `json:"effective_start"`
	Found          bool            `json:"found"`
	ExpectedSalary *MoneyDTO       `json:"expected_salary,omitempty"`
	Discrepancy    *DiscrepancyDTO `json:"discrepancy,omitempty"`
	Messages       []MessageDTO    `json:"messages"`
}

// PensionResponse is the result of a pension calculation.
type PensionResponse struct {
	CalculationID  string       `json:"calculation_id"`
	Found          bool         `json:"found"`
	Years          int          `json:"years"`
	Months         int          `json:"months"`
	FinalSalary    MoneyDTO     `json:"final_salary"`
	Percent        string       `json:"percent,omitempty"`
	MonthlyPension *MoneyDTO    `json:"monthly_pension,omitempty"`
	AnnualPension  *MoneyDTO    `json:"annual_pension,omitempty"`
	Gratuity       *MoneyDTO    `json:"gratuity,omitempty"`
	Messages       []MessageDTO `json:"messages"`
}

// PensionTableEntryDTO is one cell of the percentage table.
type PensionTableEntryDTO struct {
	Years   int    `json:"years"`
	Months  int    `json:"months"`
	Percent string `json:"percent"`
}

// GradeDTO describes a grade.
type GradeDTO struct {
	Grade int    `json:"grade"`
	Title string `json:"title"`
}

// ScaleStepDTO is one amount in a scale.
type ScaleStepDTO struct {
	Step   string   `json:"step"`
	Index  int      `json:"index"`
	Amount MoneyDTO `json:"amount"`
}

// ScaleGradeDTO is one grade row of a scale.
type ScaleGradeDTO struct {
	Grade int            `json:"grade"`
	Title string         `json:"title"`
	Steps []ScaleStepDTO `json:"steps"`
}

// ScaleDTO is a full read-only edition.
type ScaleDTO struct {
	Edition string          `json:"edition"`
	Name    string          `json:"name"`
	Note    string          `json:"note,omitempty"`
	Grades  []ScaleGradeDTO `json:"grades"`
}

// FieldErrorDTO is one failed validation.
type FieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string          `json:"error"`
	Code    string          `json:"code,omitempty"`
	Details string          `json:"details,omitempty"`
	Fields  []FieldErrorDTO `json:"fields,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toMoney(d decimal.Decimal) MoneyDTO {
	return MoneyDTO{Amount: currency.Fixed(d), Display: currency.Format(d)}
}

func moneyPtr(d decimal.Decimal) *MoneyDTO {
	m := toMoney(d)
	return &m
}

func toMessages(msgs []placement.Message) []MessageDTO {
	out := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = MessageDTO{Severity: string(m.Severity), Text: m.Text}
	}
	return out
}

func toSalaryCheckResponse(id string, res placement.CheckResult, reported decimal.Decimal) SalaryCheckResponse {
	p := res.Placement
	dto := SalaryCheckResponse{
		CalculationID:  id,
		AsOf:           res.AsOf.Format(placement.DateLayout),
		Edition:        string(res.Edition),
		EditionName:    res.EditionInfo.Name,
		EditionNote:    res.EditionInfo.Note,
		Grade:          int(p.Grade),
		GradeTitle:     p.Grade.Title(),
		Step:           p.Step.Label(),
		StepIndex:      p.Step.Index(),
		ComputedStep:   p.ComputedStep.Label(),
		Clamped:        p.Clamped(),
		CreditedYears:  p.CreditedYears,
		EffectiveStart: p.EffectiveStart.Format(placement.DateLayout),
		Found:          res.Found,
		Messages:       toMessages(res.Messages),
	}
	if res.Found {
		dto.ExpectedSalary = moneyPtr(res.Expected)
	}
	if res.Discrepancy != nil {
		dto.Discrepancy = &DiscrepancyDTO{
			Kind:     string(res.Discrepancy.Kind),
			Amount:   toMoney(res.Discrepancy.Amount),
			Reported: toMoney(reported),
		}
	}
	return dto
}

func toPensionResponse(id string, res pension.Result, found bool) PensionResponse {
	dto := PensionResponse{
		CalculationID: id,
		Found:         found,
		Years:         res.Years,
		Months:        res.Months,
		FinalSalary:   toMoney(res.FinalSalary),
	}
	if !found {
		dto.Messages = []MessageDTO{{
			Severity: string(placement.SeverityError),
			Text:     "Pension percentage for this exact service time is not in the table.",
		}}
		return dto
	}

	dto.Percent = res.Percent.StringFixed(pension.PercentPlaces)
	dto.MonthlyPension = moneyPtr(res.MonthlyPension)
	dto.AnnualPension = moneyPtr(res.AnnualPension)
	dto.Gratuity = moneyPtr(res.Gratuity)
	dto.Messages = []MessageDTO{
		{Severity: string(placement.SeveritySuccess), Text: "Monthly Pension: " + currency.Format(res.MonthlyPension)},
		{Severity: string(placement.SeverityInfo), Text: "Annual Pension: " + currency.Format(res.AnnualPension)},
		{Severity: string(placement.SeveritySuccess), Text: "Gratuity (Lump Sum): " + currency.Format(res.Gratuity)},
	}
	return dto
}

func toScaleDTO(edition scale.Edition, info scale.EditionInfo, t scale.Table) ScaleDTO {
	dto := ScaleDTO{Edition: string(edition), Name: info.Name, Note: info.Note, Grades: []ScaleGradeDTO{}}
	for _, g := range t.Grades() {
		row := ScaleGradeDTO{Grade: int(g), Title: g.Title()}
		for _, s := range t.StepsFor(g) {
			amt, _ := t.Amount(g, s)
			row.Steps = append(row.Steps, ScaleStepDTO{Step: s.Label(), Index: s.Index(), Amount: toMoney(amt)})
		}
		dto.Grades = append(dto.Grades, row)
	}
	return dto
}

func toPensionTable(entries []pension.Entry) []PensionTableEntryDTO {
	out := make([]PensionTableEntryDTO, len(entries))
	for i, e := range entries {
		out[i] = PensionTableEntryDTO{Years: e.Years, Months: e.Months, Percent: e.Percent.StringFixed(pension.PercentPlaces)}
	}
	return out
}
