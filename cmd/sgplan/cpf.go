package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/sgplan/internal/calculation"
	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/internal/output"
)

func cpfCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cpf",
		Short: "CPF contribution, allocation and interest calculators",
	}
	cmd.AddCommand(
		cpfContributionCmd(a),
		cpfAllocateCmd(a),
		cpfInterestCmd(a),
		cpfAccountsCmd(a),
	)
	return cmd
}

func cpfContributionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contribution",
		Short: "Compute the CPF contribution for one month of wages",
		Example: `  sgplan cpf contribution --salary 5500 --age 30
  sgplan cpf contribution --salary 9000 --age 58 --category pr2 --bonus 12000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			salary, err := decimalFlag(cmd, "salary", decimal.Zero)
			if err != nil {
				return err
			}
			bonus, err := decimalFlag(cmd, "bonus", decimal.Zero)
			if err != nil {
				return err
			}
			ytd, err := decimalFlag(cmd, "ytd-ow", decimal.Zero)
			if err != nil {
				return err
			}
			categoryName, _ := cmd.Flags().GetString("category")
			category, err := domain.ParseEmployeeCategory(categoryName)
			if err != nil {
				return err
			}
			age, _ := cmd.Flags().GetInt("age")

			result, err := a.engine.CpfCalc.CalculateContribution(calculation.ContributionInput{
				Salary:                 salary,
				Category:               category,
				Age:                    age,
				AdditionalWage:         bonus,
				YearToDateOrdinaryWage: ytd,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{
				Title:   fmt.Sprintf("CPF contribution (%s, age %d)", category, age),
				Details: result,
			})
		},
	}
	cmd.Flags().String("salary", "", "Monthly ordinary wage")
	cmd.Flags().Int("age", 30, "Age of the member")
	cmd.Flags().String("category", "citizen", "Employee category (citizen, pr1, pr2, pr3)")
	cmd.Flags().String("bonus", "", "Additional wage paid this month")
	cmd.Flags().String("ytd-ow", "", "Ordinary wage subject to CPF so far this year")
	_ = cmd.MarkFlagRequired("salary")
	return cmd
}

func cpfAllocateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "allocate",
		Short:   "Split a contribution across OA, SA and MA",
		Example: `  sgplan cpf allocate --amount 1850 --age 30 --medisave-balance 68000`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimalFlag(cmd, "amount", decimal.Zero)
			if err != nil {
				return err
			}
			maBalance, err := decimalFlag(cmd, "medisave-balance", decimal.Zero)
			if err != nil {
				return err
			}
			ytd, err := decimalFlag(cmd, "ytd-medisave", decimal.Zero)
			if err != nil {
				return err
			}
			age, _ := cmd.Flags().GetInt("age")

			alloc := a.engine.CpfCalc.Allocate(amount, age, maBalance, ytd)
			return a.render(cmd, &output.Report{
				Title:   fmt.Sprintf("CPF allocation (age %d)", age),
				Details: alloc,
			})
		},
	}
	cmd.Flags().String("amount", "", "Total monthly contribution")
	cmd.Flags().Int("age", 30, "Age of the member")
	cmd.Flags().String("medisave-balance", "", "Current MediSave balance")
	cmd.Flags().String("ytd-medisave", "", "MediSave contributions so far this year")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func cpfInterestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interest",
		Short:   "Compute tiered CPF interest with extra interest",
		Example: `  sgplan cpf interest --oa 50000 --sa 30000 --ma 20000 --age 56 --months 12`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var b domain.CpfBalances
			for _, f := range []struct {
				name string
				dst  *decimal.Decimal
			}{{"oa", &b.OA}, {"sa", &b.SA}, {"ma", &b.MA}, {"ra", &b.RA}} {
				v, err := decimalFlag(cmd, f.name, decimal.Zero)
				if err != nil {
					return err
				}
				*f.dst = v
			}
			age, _ := cmd.Flags().GetInt("age")
			months, _ := cmd.Flags().GetInt("months")
			if months < 1 {
				return fmt.Errorf("--months must be at least 1")
			}

			return a.render(cmd, &output.Report{
				Title:   fmt.Sprintf("CPF interest over %d months (age %d)", months, age),
				Details: a.engine.CpfCalc.TieredInterest(b, age, months),
			})
		},
	}
	cmd.Flags().String("oa", "", "Ordinary Account balance")
	cmd.Flags().String("sa", "", "Special Account balance")
	cmd.Flags().String("ma", "", "MediSave Account balance")
	cmd.Flags().String("ra", "", "Retirement Account balance")
	cmd.Flags().Int("age", 30, "Age of the member")
	cmd.Flags().Int("months", 12, "Number of months")
	return cmd
}

func cpfAccountsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts [plan-file]",
		Short: "Project each CPF account month by month",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := a.loadPlan(args)
			if err != nil {
				return err
			}
			accounts, err := a.engine.ProjectCpfAccounts(cmd.Context(), &plan.Snapshot, plan.Settings)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{
				Title:       "CPF account projection",
				PlanName:    plan.Name,
				CpfAccounts: accounts,
				Assumptions: output.Assumptions(a.engine.Rules, plan.Settings),
			})
		},
	}
}
