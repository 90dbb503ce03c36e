package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/StephenDWright/TeacherApps1/currency"
)

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"0":        "$0.00",
		"200":      "$200.00",
		"4260":     "$4,260.00",
		"1234.567": "$1,234.57",
		"37500.5":  "$37,500.50",
	}
	for in, want := range cases {
		assert.Equal(t, want, currency.Format(decimal.RequireFromString(in)), in)
	}
}

func TestFixed(t *testing.T) {
	assert.Equal(t, "750.00", currency.Fixed(decimal.NewFromInt(750)))
	assert.Equal(t, "0.13", currency.Fixed(decimal.RequireFromString("0.125")))
}
