package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/sgplan/internal/calculation"
	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/internal/output"
)

func sensitivityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [plan-file]",
		Short: "Sweep projection assumptions and measure the effect on net worth",
		Long: `Sweep one or more projection assumptions and report how the final net worth responds.

Examples:
  # All built-in parameters
  sgplan sensitivity plan.yaml

  # Selected built-in parameters
  sgplan sensitivity plan.yaml --parameter salary_increase --parameter investment_return

  # Custom range (format: name:min-max:steps)
  sgplan sensitivity plan.yaml --parameter investment_return:1-9:9`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := a.loadPlan(args)
			if err != nil {
				return err
			}

			specs, _ := cmd.Flags().GetStringArray("parameter")
			var parameters []domain.SensitivityParameter
			if len(specs) == 0 {
				parameters = domain.GetCommonParameters()
			}
			for _, spec := range specs {
				p, err := parseSensitivityParameter(spec)
				if err != nil {
					return err
				}
				parameters = append(parameters, p)
			}
			for i := range parameters {
				parameters[i].BaseValue = currentValue(plan.Settings, parameters[i])
			}

			analyzer := calculation.NewSensitivityAnalyzer(calculation.NewProjectionCache(a.engine, 0))
			analyses, err := analyzer.AnalyzeParameters(cmd.Context(), plan, parameters)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{
				Title:       "Sensitivity analysis",
				PlanName:    plan.Name,
				Sensitivity: analyses,
			})
		},
	}
	cmd.Flags().StringArray("parameter", nil, "Parameter name, or name:min-max:steps (repeatable)")
	return cmd
}

// parseSensitivityParameter accepts a built-in name optionally followed by
// ":min-max:steps".
func parseSensitivityParameter(spec string) (domain.SensitivityParameter, error) {
	parts := strings.Split(spec, ":")
	param, ok := domain.LookupParameter(strings.TrimSpace(parts[0]))
	if !ok {
		names := make([]string, 0)
		for _, p := range domain.GetCommonParameters() {
			names = append(names, p.Name)
		}
		return param, fmt.Errorf("unknown parameter %q (available: %s)", parts[0], strings.Join(names, ", "))
	}
	if len(parts) == 1 {
		return param, nil
	}
	if len(parts) != 3 {
		return param, fmt.Errorf("invalid parameter format %q, expected name:min-max:steps", spec)
	}

	bounds := strings.SplitN(parts[1], "-", 2)
	if len(bounds) != 2 {
		return param, fmt.Errorf("invalid range %q, expected min-max", parts[1])
	}
	minValue, err := decimal.NewFromString(strings.TrimSpace(bounds[0]))
	if err != nil {
		return param, fmt.Errorf("invalid minimum value: %w", err)
	}
	maxValue, err := decimal.NewFromString(strings.TrimSpace(bounds[1]))
	if err != nil {
		return param, fmt.Errorf("invalid maximum value: %w", err)
	}
	if maxValue.LessThan(minValue) {
		return param, fmt.Errorf("invalid range %q: maximum below minimum", parts[1])
	}
	steps, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || steps < 1 {
		return param, fmt.Errorf("invalid steps %q", parts[2])
	}

	param.MinValue = minValue
	param.MaxValue = maxValue
	param.Steps = steps
	return param, nil
}

// currentValue is the plan's own setting for a parameter, the base of the sweep.
func currentValue(s domain.ProjectionSettings, p domain.SensitivityParameter) decimal.Decimal {
	switch p.Name {
	case domain.SalaryIncreaseParam.Name:
		return s.AnnualSalaryIncrease
	case domain.ExpenseIncreaseParam.Name:
		return s.AnnualExpenseIncrease
	case domain.InvestmentReturnParam.Name:
		return s.AnnualInvestmentReturn
	case domain.CpfInterestParam.Name:
		return s.AnnualCpfInterestRate
	case domain.BonusAmountParam.Name:
		return s.BonusAmount
	}
	return p.BaseValue
}
