/*
errors.go - Error types for scale loading and lookup

ERROR CATEGORIES:
  1. Configuration errors - a scale table is missing or unreadable at
     startup. Fatal: the process must not start with partial tables.
  2. Lookup misses - a grade or step has no amount. Expected outcome,
     reported to the caller as a normal result.

USAGE:
    tables, err := scale.LoadTables(ctx, src)
    if scale.IsConfigurationError(err) {
        logger.Fatal(...)
    }

SEE ALSO:
  - loader.go: Produces ConfigurationError
  - placement/check.go: Turns LookupError into a result
*/
package scale

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrConfiguration marks a scale table that could not be loaded.
	ErrConfiguration = errors.New("scale configuration error")

	// ErrNoScaleData is returned when a grade/step has no amount in a table.
	ErrNoScaleData = errors.New("no salary data for grade/step")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ConfigurationError reports which source and edition failed to load.
type ConfigurationError struct {
	Source  string
	Edition Edition
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load %s scale from %s", e.Edition, e.Source)
	}
	return fmt.Sprintf("load %s scale from %s: %v", e.Edition, e.Source, e.Err)
}

// Is lets errors.Is match ErrConfiguration while Unwrap exposes the cause.
func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func (e *ConfigurationError) Unwrap() error { return e.Err }

// LookupError describes a grade/step with no amount.
type LookupError struct {
	Edition Edition
	Grade   Grade
	Step    Step
	// NoGrade is set when the grade has no steps at all.
	NoGrade bool
}

func (e *LookupError) Error() string {
	if e.NoGrade {
		return fmt.Sprintf("no salary data for grade %s in %s scale", e.Grade, e.Edition)
	}
	return fmt.Sprintf("no salary data for %s in grade %s (%s scale)", e.Step.Label(), e.Grade, e.Edition)
}

func (e *LookupError) Unwrap() error { return ErrNoScaleData }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConfigurationError reports whether err should abort startup.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsLookupMiss reports whether err is an expected missing-amount outcome.
func IsLookupMiss(err error) bool {
	return errors.Is(err, ErrNoScaleData)
}
