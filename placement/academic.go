/*
academic.go - Academic-year service counting

PURPOSE:
  Service credit for salary steps is counted in academic years, which begin
  in September. A date in January..August belongs to the academic year that
  started the previous September.

    2010-08-15 -> academic year 2009
    2010-09-01 -> academic year 2010

  Credited years are the difference between the academic years of the
  as-of date and the effective start date. Credit therefore moves at the
  September boundary, not on the calendar anniversary.

SEE ALSO:
  - step.go: maps credited years to a step
*/
package placement

import (
	"time"
)

// AcademicYearStart is the first month of an academic year.
const AcademicYearStart = time.September

// DateLayout is the wire format for dates.
const DateLayout = "2006-01-02"

// AcademicYear returns the academic year t falls in.
func AcademicYear(t time.Time) int {
	y := t.Year()
	if t.Month() < AcademicYearStart {
		y--
	}
	return y
}

// CreditedYears counts academic years from start to asOf. Negative when
// start lies in a later academic year than asOf.
func CreditedYears(start, asOf time.Time) int {
	return AcademicYear(asOf) - AcademicYear(start)
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar date.
func Today() time.Time {
	now := time.Now().UTC()
	return Date(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
