package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculator counters, exposed at /metrics.
var (
	salaryChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "educalc",
		Name:      "salary_checks_total",
		Help:      "Salary checks by scale edition and outcome (match, underpaid, overpaid, unreported, no_data).",
	}, []string{"edition", "outcome"})

	pensionCalculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "educalc",
		Name:      "pension_calculations_total",
		Help:      "Pension calculations by outcome (found, not_found).",
	}, []string{"outcome"})

	validationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "educalc",
		Name:      "validation_failures_total",
		Help:      "Requests rejected at the boundary, by endpoint.",
	}, []string{"endpoint"})
)

func checkOutcome(found, reported bool, kind string) string {
	switch {
	case !found:
		return "no_data"
	case !reported:
		return "unreported"
	default:
		return kind
	}
}
