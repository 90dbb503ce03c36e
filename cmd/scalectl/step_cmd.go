package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/StephenDWright/TeacherApps1/currency"
	"github.com/StephenDWright/TeacherApps1/placement"
	"github.com/StephenDWright/TeacherApps1/scale"
)

type stepOutput struct {
	AsOf           string        `json:"as_of"`
	Edition        string        `json:"edition"`
	EditionName    string        `json:"edition_name"`
	Grade          int           `json:"grade"`
	Step           string        `json:"step"`
	ComputedStep   string        `json:"computed_step"`
	CreditedYears  int           `json:"credited_years"`
	EffectiveStart string        `json:"effective_start"`
	Found          bool          `json:"found"`
	ExpectedSalary string        `json:"expected_salary,omitempty"`
	Discrepancy    string        `json:"discrepancy,omitempty"`
	Difference     string        `json:"difference,omitempty"`
	Messages       []stepMessage `json:"messages"`
}

type stepMessage struct {
	Severity string `json:"severity"`
	Text     string `json:"text"`
}

func newStepCmd(opts *globalOptions) *cobra.Command {
	var (
		startDate    string
		entryGrade   string
		upgraded     bool
		upgradeDate  string
		currentGrade string
		reported     string
		previous     bool
		asOfDate     string
	)

	cmd := &cobra.Command{
		Use:   "step",
		Short: "Place a service record on the scale and check the salary",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := buildRecord(startDate, entryGrade, upgraded, upgradeDate, currentGrade)
			if err != nil {
				return err
			}

			reportedAmt := decimal.Zero
			if reported != "" {
				reportedAmt, err = decimal.NewFromString(reported)
				if err != nil || reportedAmt.IsNegative() {
					return fmt.Errorf("invalid --reported %q: must be a non-negative amount", reported)
				}
			}

			var asOf = placement.Today()
			if asOfDate != "" {
				if asOf, err = placement.ParseDate(asOfDate); err != nil {
					return fmt.Errorf("invalid --as-of: %w", err)
				}
			}

			edition := scale.EditionCurrent
			if previous {
				edition = scale.EditionPrevious
			}

			tables, logger, err := opts.openTables(cmd.Context())
			if err != nil {
				return err
			}
			defer logger.Sync()

			res := placement.NewChecker(tables).Check(placement.CheckRequest{
				Record:         rec,
				ReportedSalary: reportedAmt,
				Edition:        edition,
				AsOf:           asOf,
			})
			logger.Debug("salary check",
				zap.String("op", "salary_check"),
				zap.String("edition", string(edition)),
				zap.Bool("found", res.Found),
			)

			return writeJSON(cmd.OutOrStdout(), toStepOutput(res))
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Date of first appointment (YYYY-MM-DD, required)")
	cmd.Flags().StringVar(&entryGrade, "grade", "", "Grade at entry: 2, 3, 4 or 5 (required)")
	cmd.Flags().BoolVar(&upgraded, "upgraded", false, "The educator has been upgraded")
	cmd.Flags().StringVar(&upgradeDate, "upgrade-date", "", "Date of upgrade (YYYY-MM-DD)")
	cmd.Flags().StringVar(&currentGrade, "current-grade", "", "Grade after upgrade")
	cmd.Flags().StringVar(&reported, "reported", "", "Current monthly salary to compare")
	cmd.Flags().BoolVar(&previous, "previous", false, "Use the previous salary scale")
	cmd.Flags().StringVar(&asOfDate, "as-of", "", "Evaluation date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("grade")
	return cmd
}

func buildRecord(startDate, entryGrade string, upgraded bool, upgradeDate, currentGrade string) (placement.ServiceRecord, error) {
	var rec placement.ServiceRecord

	start, err := placement.ParseDate(startDate)
	if err != nil {
		return rec, fmt.Errorf("invalid --start: %w", err)
	}
	grade, err := scale.ParseGrade(entryGrade)
	if err != nil {
		return rec, fmt.Errorf("invalid --grade: %w", err)
	}
	rec = placement.ServiceRecord{StartDate: start, EntryGrade: grade, WasUpgraded: upgraded}

	if upgradeDate != "" {
		if rec.UpgradeDate, err = placement.ParseDate(upgradeDate); err != nil {
			return rec, fmt.Errorf("invalid --upgrade-date: %w", err)
		}
	}
	if currentGrade != "" {
		if rec.CurrentGrade, err = scale.ParseGrade(currentGrade); err != nil {
			return rec, fmt.Errorf("invalid --current-grade: %w", err)
		}
	}

	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

func toStepOutput(res placement.CheckResult) stepOutput {
	p := res.Placement
	out := stepOutput{
		AsOf:           res.AsOf.Format(placement.DateLayout),
		Edition:        string(res.Edition),
		EditionName:    res.EditionInfo.Name,
		Grade:          int(p.Grade),
		Step:           p.Step.Label(),
		ComputedStep:   p.ComputedStep.Label(),
		CreditedYears:  p.CreditedYears,
		EffectiveStart: p.EffectiveStart.Format(placement.DateLayout),
		Found:          res.Found,
	}
	if res.Found {
		out.ExpectedSalary = currency.Format(res.Expected)
	}
	if res.Discrepancy != nil {
		out.Discrepancy = string(res.Discrepancy.Kind)
		out.Difference = currency.Format(res.Discrepancy.Amount)
	}
	for _, m := range res.Messages {
		out.Messages = append(out.Messages, stepMessage{Severity: string(m.Severity), Text: m.Text})
	}
	return out
}
