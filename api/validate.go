package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/StephenDWright/TeacherApps1/placement"
	"github.com/StephenDWright/TeacherApps1/scale"
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors converts a validator or placement error to response fields.
func fieldErrors(err error) []FieldErrorDTO {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldErrorDTO, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldErrorDTO{Field: fe.Field(), Message: tagMessage(fe)})
		}
		return out
	}

	var ie *placement.InputError
	if errors.As(err, &ie) {
		out := make([]FieldErrorDTO, 0, len(ie.Fields))
		for _, f := range ie.Fields {
			out = append(out, FieldErrorDTO{Field: f.Field, Message: f.Message})
		}
		return out
	}

	return []FieldErrorDTO{{Field: "body", Message: err.Error()}}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a date in YYYY-MM-DD form"
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// toServiceRecord parses a validated request into a ServiceRecord and
// applies the date-range and upgrade rules.
func toServiceRecord(req SalaryCheckRequest) (placement.ServiceRecord, error) {
	rec := placement.ServiceRecord{
		WasUpgraded:  req.WasUpgraded,
		EntryGrade:   scale.Grade(req.EntryGrade),
		CurrentGrade: scale.Grade(req.CurrentGrade),
	}

	start, err := placement.ParseDate(req.StartDate)
	if err != nil {
		return rec, &placement.InputError{Fields: []placement.FieldError{{Field: "start_date", Message: "must be a date in YYYY-MM-DD form"}}}
	}
	rec.StartDate = start

	if req.UpgradeDate != "" {
		up, err := placement.ParseDate(req.UpgradeDate)
		if err != nil {
			return rec, &placement.InputError{Fields: []placement.FieldError{{Field: "upgrade_date", Message: "must be a date in YYYY-MM-DD form"}}}
		}
		rec.UpgradeDate = up
	}

	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

// moneyAmount converts a JSON amount to decimal. Amounts finer than one
// cent are rejected rather than rounded.
func moneyAmount(field string, v float64) (decimal.Decimal, error) {
	d := decimal.NewFromFloat(v)
	if !d.Equal(d.Truncate(2)) {
		return decimal.Zero, &placement.InputError{Fields: []placement.FieldError{{
			Field:   field,
			Message: "must not have more than two decimal places",
		}}}
	}
	return d, nil
}
