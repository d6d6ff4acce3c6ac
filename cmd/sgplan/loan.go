package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/sgplan/internal/calculation"
	"github.com/rgehrsitz/sgplan/internal/output"
)

func loanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Loan amortization calculators",
	}
	cmd.AddCommand(
		loanPaymentCmd(a),
		loanScheduleCmd(a),
		loanTermCmd(a),
		loanPayoffCmd(a),
		loanAffordCmd(a),
	)
	return cmd
}

// loanTerms reads --principal, --rate and --years.
func loanTerms(cmd *cobra.Command) (principal, rate decimal.Decimal, years int, err error) {
	if principal, err = decimalFlag(cmd, "principal", decimal.Zero); err != nil {
		return
	}
	if rate, err = decimalFlag(cmd, "rate", decimal.Zero); err != nil {
		return
	}
	years, _ = cmd.Flags().GetInt("years")
	return
}

func addLoanTermFlags(cmd *cobra.Command) {
	cmd.Flags().String("principal", "", "Loan principal")
	cmd.Flags().String("rate", "", "Annual interest rate in percent")
	cmd.Flags().Int("years", 25, "Loan tenure in years")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("rate")
}

func loanPaymentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment",
		Short:   "Monthly payment and total interest of a loan",
		Example: `  sgplan loan payment --principal 500000 --rate 2.6 --years 25`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, rate, years, err := loanTerms(cmd)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{
				Title:   "Loan payment",
				Details: calculation.TotalInterest(principal, rate, years),
			})
		},
	}
	addLoanTermFlags(cmd)
	return cmd
}

func loanScheduleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Full amortization schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, rate, years, err := loanTerms(cmd)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{
				Title:    fmt.Sprintf("Amortization schedule (%d years at %s%%)", years, rate.String()),
				Schedule: calculation.AmortizationSchedule(principal, rate, years),
			})
		},
	}
	addLoanTermFlags(cmd)
	return cmd
}

func loanTermCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "term",
		Short:   "Time left to clear a balance at a given payment",
		Example: `  sgplan loan term --balance 300000 --payment 1800 --rate 2.6`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := decimalFlag(cmd, "balance", decimal.Zero)
			if err != nil {
				return err
			}
			payment, err := decimalFlag(cmd, "payment", decimal.Zero)
			if err != nil {
				return err
			}
			rate, err := decimalFlag(cmd, "rate", decimal.Zero)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{
				Title:   "Remaining loan term",
				Details: calculation.RemainingTerm(balance, payment, rate),
			})
		},
	}
	cmd.Flags().String("balance", "", "Outstanding balance")
	cmd.Flags().String("payment", "", "Monthly payment")
	cmd.Flags().String("rate", "", "Annual interest rate in percent")
	_ = cmd.MarkFlagRequired("balance")
	_ = cmd.MarkFlagRequired("payment")
	return cmd
}

func loanPayoffCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payoff",
		Short:   "Effect of paying extra every month",
		Example: `  sgplan loan payoff --principal 500000 --rate 2.6 --years 25 --extra 500`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			principal, rate, years, err := loanTerms(cmd)
			if err != nil {
				return err
			}
			extra, err := decimalFlag(cmd, "extra", decimal.Zero)
			if err != nil {
				return err
			}
			return a.render(cmd, &output.Report{
				Title:   "Early payoff",
				Details: calculation.EarlyPayoff(principal, rate, years, extra),
			})
		},
	}
	addLoanTermFlags(cmd)
	cmd.Flags().String("extra", "", "Extra monthly payment")
	_ = cmd.MarkFlagRequired("extra")
	return cmd
}

func loanAffordCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "afford",
		Short:   "Largest loan an income can service",
		Example: `  sgplan loan afford --income 9000 --rate 4 --years 25 --dsr 55`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			income, err := decimalFlag(cmd, "income", decimal.Zero)
			if err != nil {
				return err
			}
			rate, err := decimalFlag(cmd, "rate", decimal.Zero)
			if err != nil {
				return err
			}
			dsr, err := decimalFlag(cmd, "dsr", a.engine.Rules.Housing.TDSRLimit.Mul(decimal.NewFromInt(100)))
			if err != nil {
				return err
			}
			years, _ := cmd.Flags().GetInt("years")
			return a.render(cmd, &output.Report{
				Title:   "Loan affordability",
				Details: calculation.Affordability(income, rate, years, dsr),
			})
		},
	}
	cmd.Flags().String("income", "", "Gross monthly income")
	cmd.Flags().String("rate", "", "Annual interest rate in percent")
	cmd.Flags().Int("years", 25, "Loan tenure in years")
	cmd.Flags().String("dsr", "", "Debt servicing ratio in percent (default: the TDSR limit)")
	_ = cmd.MarkFlagRequired("income")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}
