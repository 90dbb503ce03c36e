/*
handlers.go - HTTP API handlers for the salary and pension calculators

PURPOSE:
  Exposes the salary-step placement and pension calculators via REST API.
  Handles HTTP request/response, JSON serialization, and delegates to the
  placement and pension packages.

ENDPOINTS:
  Calculators:
    POST   /api/salary/check           Placement, expected salary, discrepancy
    POST   /api/pension/calculate      Pension and gratuity

  Reference data:
    GET    /api/grades                 Grades and their titles
    GET    /api/scales/{edition}       Full salary scale ("current"/"previous")
    GET    /api/pension/table          Pension percentage table

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Tables: both salary scale editions, loaded once at startup
  - Checker: placement + salary lookup over Tables
  - Pensions: pension calculator over the precomputed percentage table

REQUEST FLOW:
  1. Decode JSON body
  2. Validate input (struct tags, then date range and upgrade rules)
  3. Call the calculator
  4. Serialize response with a fresh calculation_id

ERROR HANDLING:
  - 400: Malformed JSON, failed validation (with per-field details)
  - 404: Unknown scale edition
  - 500: Internal errors

  A missing salary or pension entry is NOT an error: the response is 200
  with found=false and an error-severity message.

SEE ALSO:
  - dto.go: Request/response data structures
  - validate.go: Boundary validation
  - server.go: Router setup and middleware
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/StephenDWright/TeacherApps1/pension"
	"github.com/StephenDWright/TeacherApps1/placement"
	"github.com/StephenDWright/TeacherApps1/scale"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Tables   *scale.Tables
	Checker  *placement.Checker
	Pensions *pension.Calculator

	logger   *zap.Logger
	validate *validator.Validate
}

// NewHandler creates a handler over loaded tables. A nil logger is
// replaced with a no-op logger.
func NewHandler(tables *scale.Tables, pensions *pension.Calculator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pensions == nil {
		pensions = pension.NewCalculator(nil)
	}
	return &Handler{
		Tables:   tables,
		Checker:  placement.NewChecker(tables),
		Pensions: pensions,
		logger:   logger,
		validate: newValidator(),
	}
}

// =============================================================================
// CALCULATOR HANDLERS
// =============================================================================

// CheckSalary places a service record on the scale and compares the
// expected salary with the reported one.
func (h *Handler) CheckSalary(w http.ResponseWriter, r *http.Request) {
	const endpoint = "salary_check"

	var req SalaryCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		validationFailures.WithLabelValues(endpoint).Inc()
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.rejectInput(w, endpoint, err)
		return
	}

	record, err := toServiceRecord(req)
	if err != nil {
		h.rejectInput(w, endpoint, err)
		return
	}
	reported, err := moneyAmount("reported_salary", req.ReportedSalary)
	if err != nil {
		h.rejectInput(w, endpoint, err)
		return
	}

	var asOf = placement.Today()
	if req.AsOf != "" {
		// Format already checked by the datetime tag.
		asOf, _ = placement.ParseDate(req.AsOf)
	}

	edition := scale.EditionCurrent
	if req.UsePreviousScale {
		edition = scale.EditionPrevious
	}

	res := h.Checker.Check(placement.CheckRequest{
		Record:         record,
		ReportedSalary: reported,
		Edition:        edition,
		AsOf:           asOf,
	})

	kind := ""
	if res.Discrepancy != nil {
		kind = string(res.Discrepancy.Kind)
	}
	outcome := checkOutcome(res.Found, res.Discrepancy != nil, kind)
	salaryChecks.WithLabelValues(string(edition), outcome).Inc()

	id := uuid.NewString()
	h.logger.Debug("salary check",
		zap.String("op", "salary_check"),
		zap.String("calculation_id", id),
		zap.String("edition", string(edition)),
		zap.Int("grade", int(res.Placement.Grade)),
		zap.String("step", res.Placement.Step.Label()),
		zap.Int("credited_years", res.Placement.CreditedYears),
		zap.String("outcome", outcome),
	)
	if res.Miss != nil {
		h.logger.Warn("salary lookup miss",
			zap.String("op", "salary_check"),
			zap.String("calculation_id", id),
			zap.Error(res.Miss),
		)
	}

	writeJSON(w, http.StatusOK, toSalaryCheckResponse(id, res, reported))
}

// CalculatePension computes pension and gratuity for a final salary and
// length of service.
func (h *Handler) CalculatePension(w http.ResponseWriter, r *http.Request) {
	const endpoint = "pension_calculate"

	var req PensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		validationFailures.WithLabelValues(endpoint).Inc()
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.rejectInput(w, endpoint, err)
		return
	}

	salary, err := moneyAmount("final_salary", req.FinalSalary)
	if err != nil {
		h.rejectInput(w, endpoint, err)
		return
	}
	res, found := h.Pensions.Compute(salary, *req.Years, *req.Months)

	outcome := "found"
	if !found {
		outcome = "not_found"
	}
	pensionCalculations.WithLabelValues(outcome).Inc()

	id := uuid.NewString()
	h.logger.Debug("pension calculation",
		zap.String("op", "pension_calculate"),
		zap.String("calculation_id", id),
		zap.Int("years", res.Years),
		zap.Int("months", res.Months),
		zap.Bool("found", found),
	)

	writeJSON(w, http.StatusOK, toPensionResponse(id, res, found))
}

// =============================================================================
// REFERENCE DATA HANDLERS
// =============================================================================

// ListGrades returns the recognized grades.
func (h *Handler) ListGrades(w http.ResponseWriter, r *http.Request) {
	dtos := make([]GradeDTO, len(scale.Grades))
	for i, g := range scale.Grades {
		dtos[i] = GradeDTO{Grade: int(g), Title: g.Title()}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetScale returns one edition of the salary scale.
func (h *Handler) GetScale(w http.ResponseWriter, r *http.Request) {
	edition, err := scale.ParseEdition(chi.URLParam(r, "edition"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown scale edition", err)
		return
	}
	writeJSON(w, http.StatusOK, toScaleDTO(edition, h.Tables.Describe(edition), h.Tables.Edition(edition)))
}

// GetPensionTable returns every (years, months) percentage.
func (h *Handler) GetPensionTable(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toPensionTable(h.Pensions.Table().Entries()))
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) rejectInput(w http.ResponseWriter, endpoint string, err error) {
	validationFailures.WithLabelValues(endpoint).Inc()
	h.logger.Debug("rejected input", zap.String("op", endpoint), zap.Error(err))
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:  "Validation failed",
		Code:   "invalid_input",
		Fields: fieldErrors(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
