package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/StephenDWright/TeacherApps1/currency"
	"github.com/StephenDWright/TeacherApps1/pension"
)

type pensionOutput struct {
	Found          bool   `json:"found"`
	Years          int    `json:"years"`
	Months         int    `json:"months"`
	FinalSalary    string `json:"final_salary"`
	Percent        string `json:"percent,omitempty"`
	MonthlyPension string `json:"monthly_pension,omitempty"`
	AnnualPension  string `json:"annual_pension,omitempty"`
	Gratuity       string `json:"gratuity,omitempty"`
}

func newPensionCmd(_ *globalOptions) *cobra.Command {
	var (
		salary string
		years  int
		months int
	)

	cmd := &cobra.Command{
		Use:   "pension",
		Short: "Compute monthly pension, annual pension and gratuity",
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(salary)
			if err != nil || amt.IsNegative() {
				return fmt.Errorf("invalid --salary %q: must be a non-negative amount", salary)
			}
			if years < 0 || months < 0 {
				return fmt.Errorf("--years and --months must not be negative")
			}

			res, found := pension.NewCalculator(nil).Compute(amt, years, months)
			out := pensionOutput{
				Found:       found,
				Years:       res.Years,
				Months:      res.Months,
				FinalSalary: currency.Format(res.FinalSalary),
			}
			if found {
				out.Percent = res.Percent.StringFixed(pension.PercentPlaces)
				out.MonthlyPension = currency.Format(res.MonthlyPension)
				out.AnnualPension = currency.Format(res.AnnualPension)
				out.Gratuity = currency.Format(res.Gratuity)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&salary, "salary", "", "Final monthly salary (required)")
	cmd.Flags().IntVar(&years, "years", 0, "Completed years of service (10-33)")
	cmd.Flags().IntVar(&months, "months", 0, "Additional months of service (0-11)")
	_ = cmd.MarkFlagRequired("salary")
	_ = cmd.MarkFlagRequired("years")
	return cmd
}
