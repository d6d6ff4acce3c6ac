package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/sgplan/internal/config"
	"github.com/rgehrsitz/sgplan/internal/output"
	"github.com/rgehrsitz/sgplan/internal/transform"
)

func projectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [plan-file]",
		Short: "Run the monthly projection for a plan",
		Long: `Run the month-by-month household projection for a plan.

Examples:
  sgplan project plan.yaml
  sgplan project plan.yaml --years 20 --accounts
  sgplan project plan.yaml --apply raise_10pct --apply career_break:start=2027-01,months=6
  sgplan project plan.yaml -f csv > projection.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, path, err := a.loadPlan(args)
			if err != nil {
				return err
			}

			if years, _ := cmd.Flags().GetInt("years"); years > 0 {
				plan.Settings.ProjectionYears = years
				if err := a.parser.ValidatePlan(plan); err != nil {
					return err
				}
			}

			applies, _ := cmd.Flags().GetStringArray("apply")
			if len(applies) > 0 {
				templates := transform.CreateBuiltInTemplates(plan)
				registry := transform.NewTransformRegistry()
				var transforms []transform.PlanTransform
				for _, spec := range applies {
					if tmpl, ok := templates.Get(spec); ok {
						transforms = append(transforms, tmpl.Transforms...)
						continue
					}
					t, err := registry.ParseTransformSpec(spec)
					if err != nil {
						return err
					}
					transforms = append(transforms, t)
				}
				if plan, err = transform.ApplyTransforms(plan, transforms); err != nil {
					return err
				}
				a.logger.Info("applied transforms", zap.String("summary", transform.Describe(transforms)))
			}

			result, err := a.engine.RunProjection(cmd.Context(), &plan.Snapshot, plan.Settings)
			if err != nil {
				return err
			}

			report := &output.Report{
				Title:       "Financial projection",
				PlanName:    plan.Name,
				Projection:  result,
				Years:       a.engine.SummarizeByYear(result),
				Assumptions: output.Assumptions(a.engine.Rules, plan.Settings),
			}

			if accounts, _ := cmd.Flags().GetBool("accounts"); accounts {
				report.CpfAccounts, err = a.engine.ProjectCpfAccounts(cmd.Context(), &plan.Snapshot, plan.Settings)
				if err != nil {
					return err
				}
			}

			if err := a.render(cmd, report); err != nil {
				return err
			}

			if remember, _ := cmd.Flags().GetBool("remember"); remember && len(args) > 0 && a.prefsPath != "" {
				a.prefs.LastPlan = path
				if err := config.SavePreferences(a.prefsPath, a.prefs); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().Int("years", 0, "Override the projection horizon in years")
	cmd.Flags().Bool("accounts", false, "Include the account-level CPF projection")
	cmd.Flags().StringArray("apply", nil, "Template name or transform spec to apply before projecting (repeatable)")
	cmd.Flags().Bool("remember", false, "Remember this plan as the default for later commands")
	return cmd
}
