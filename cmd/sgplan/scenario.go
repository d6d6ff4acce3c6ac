package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/sgplan/internal/calculation"
	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/internal/output"
)

func scenarioCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Quick what-if analyses on a plan's current position",
	}
	cmd.AddCommand(
		emergencyCmd(a),
		jobLossCmd(a),
		housingCmd(a),
		retirementCmd(a),
		salaryCmd(a),
		careerBreakCmd(a),
	)
	return cmd
}

// planScenario wraps the common load-analyze-render flow of scenario commands.
func planScenario(a *app, use, short, title string, analyze func(cmd *cobra.Command, plan *domain.Plan) (interface{}, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [plan-file]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := a.loadPlan(args)
			if err != nil {
				return err
			}
			details, err := analyze(cmd, plan)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{Title: title, PlanName: plan.Name, Details: details})
		},
	}
}

func emergencyCmd(a *app) *cobra.Command {
	cmd := planScenario(a, "emergency", "Check cash against an emergency fund target", "Emergency fund",
		func(cmd *cobra.Command, plan *domain.Plan) (interface{}, error) {
			months, _ := cmd.Flags().GetInt("months")
			return a.engine.EmergencyFund(&plan.Snapshot, months), nil
		})
	cmd.Flags().Int("months", calculation.DefaultEmergencyMonths, "Months of outgoings to hold")
	return cmd
}

func jobLossCmd(a *app) *cobra.Command {
	cmd := planScenario(a, "job-loss", "Estimate how long cash lasts without salary", "Job loss runway",
		func(cmd *cobra.Command, plan *domain.Plan) (interface{}, error) {
			months, _ := cmd.Flags().GetInt("search-months")
			return a.engine.JobLossRunway(&plan.Snapshot, months), nil
		})
	cmd.Flags().Int("search-months", 6, "Expected months to find a new job")
	return cmd
}

func housingCmd(a *app) *cobra.Command {
	cmd := planScenario(a, "housing", "Check a property purchase against TDSR and MSR", "Housing affordability",
		func(cmd *cobra.Command, plan *domain.Plan) (interface{}, error) {
			in := calculation.HousingInput{}
			var err error
			if in.PropertyPrice, err = decimalFlag(cmd, "price", decimal.Zero); err != nil {
				return nil, err
			}
			if in.DownPaymentPct, err = decimalFlag(cmd, "down-payment", decimal.NewFromInt(25)); err != nil {
				return nil, err
			}
			if in.CpfForDownPayment, err = decimalFlag(cmd, "cpf", decimal.Zero); err != nil {
				return nil, err
			}
			if in.InterestRatePct, err = decimalFlag(cmd, "rate", decimal.NewFromFloat(2.6)); err != nil {
				return nil, err
			}
			if in.OtherMonthlyDebt, err = decimalFlag(cmd, "other-debt", decimal.Zero); err != nil {
				return nil, err
			}
			in.TenureYears, _ = cmd.Flags().GetInt("tenure")
			in.IsHDB, _ = cmd.Flags().GetBool("hdb")
			return a.engine.HousingAffordability(&plan.Snapshot, in), nil
		})
	cmd.Flags().String("price", "", "Property price")
	cmd.Flags().String("down-payment", "", "Down payment in percent of the price (default 25)")
	cmd.Flags().String("cpf", "", "OA savings to put towards the down payment")
	cmd.Flags().String("rate", "", "Annual loan interest rate in percent (default 2.6)")
	cmd.Flags().Int("tenure", 25, "Loan tenure in years")
	cmd.Flags().String("other-debt", "", "Other monthly debt obligations")
	cmd.Flags().Bool("hdb", false, "HDB flat or EC (applies MSR)")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func retirementCmd(a *app) *cobra.Command {
	cmd := planScenario(a, "retirement", "Project assets to retirement and compare with the nest egg needed", "Retirement readiness",
		func(cmd *cobra.Command, plan *domain.Plan) (interface{}, error) {
			in := calculation.RetirementInput{}
			in.RetirementAge, _ = cmd.Flags().GetInt("retirement-age")
			in.LifeExpectancy, _ = cmd.Flags().GetInt("life-expectancy")
			if in.LifeExpectancy < in.RetirementAge {
				return nil, fmt.Errorf("--life-expectancy must not be below --retirement-age")
			}
			var err error
			if in.DesiredMonthlyIncome, err = decimalFlag(cmd, "income", decimal.NewFromInt(3000)); err != nil {
				return nil, err
			}
			if in.InflationPct, err = decimalFlag(cmd, "inflation", plan.Settings.AnnualInflationRate); err != nil {
				return nil, err
			}
			return a.engine.RetirementReadiness(&plan.Snapshot, plan.Settings, in)
		})
	cmd.Flags().Int("retirement-age", 65, "Age at retirement")
	cmd.Flags().Int("life-expectancy", 85, "Planning horizon age")
	cmd.Flags().String("income", "", "Desired monthly income in today's dollars (default 3000)")
	cmd.Flags().String("inflation", "", "Annual inflation in percent (default: the plan's inflation rate)")
	return cmd
}

func salaryCmd(a *app) *cobra.Command {
	cmd := planScenario(a, "salary", "Compare take-home, CPF and tax at a new salary", "Salary increase impact",
		func(cmd *cobra.Command, plan *domain.Plan) (interface{}, error) {
			newSalary, err := decimalFlag(cmd, "new-salary", decimal.Zero)
			if err != nil {
				return nil, err
			}
			return a.engine.SalaryIncreaseImpact(&plan.Snapshot, newSalary)
		})
	cmd.Flags().String("new-salary", "", "Proposed monthly salary")
	_ = cmd.MarkFlagRequired("new-salary")
	return cmd
}

func careerBreakCmd(a *app) *cobra.Command {
	cmd := planScenario(a, "career-break", "Estimate the cost of months without salary", "Career break impact",
		func(cmd *cobra.Command, plan *domain.Plan) (interface{}, error) {
			months, _ := cmd.Flags().GetInt("months")
			if months < 1 {
				return nil, fmt.Errorf("--months must be at least 1")
			}
			return a.engine.CareerBreakImpact(&plan.Snapshot, plan.Settings, months)
		})
	cmd.Flags().Int("months", 6, "Length of the break in months")
	return cmd
}
