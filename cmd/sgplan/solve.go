package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/sgplan/internal/breakeven"
	"github.com/rgehrsitz/sgplan/internal/calculation"
	"github.com/rgehrsitz/sgplan/internal/output"
)

func solveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [plan-file]",
		Short: "Find the salary, growth, return or spending at which a goal is met",
		Long: `Search for the break-even value of one plan input.

Targets: salary, salary_increase, investment_return, extra_spending, all
Goals:   savings_goal (reach the savings goal by --by-month),
         net_worth (final net worth of at least --amount),
         no_shortfall (cash never drops below zero)

Examples:
  sgplan solve plan.yaml --target salary --goal savings_goal --amount 100000 --by-month 48
  sgplan solve plan.yaml --target extra_spending --goal no_shortfall
  sgplan solve plan.yaml --goal net_worth --amount 600000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, _, err := a.loadPlan(args)
			if err != nil {
				return err
			}

			targetName, _ := cmd.Flags().GetString("target")
			target, err := breakeven.ParseTarget(targetName)
			if err != nil {
				return err
			}
			goalName, _ := cmd.Flags().GetString("goal")
			goal, err := breakeven.ParseGoal(goalName)
			if err != nil {
				return err
			}

			var constraints breakeven.Constraints
			constraints.ByMonth, _ = cmd.Flags().GetInt("by-month")
			for _, f := range []struct {
				name string
				dst  **decimal.Decimal
			}{{"amount", &constraints.TargetAmount}, {"min", &constraints.Min}, {"max", &constraints.Max}} {
				if !cmd.Flags().Changed(f.name) {
					continue
				}
				v, err := decimalFlag(cmd, f.name, decimal.Zero)
				if err != nil {
					return err
				}
				*f.dst = &v
			}

			cache := calculation.NewProjectionCache(a.engine, 0)
			solver := breakeven.NewDefaultSolver(cache)

			var result interface{}
			var table string
			tf := &breakeven.TableFormatter{}
			if target == breakeven.TargetAll {
				multi, err := solver.SolveTargets(cmd.Context(), plan, goal, constraints, nil)
				if err != nil {
					return err
				}
				result, table = multi, tf.FormatMulti(multi)
			} else {
				single, err := solver.Solve(cmd.Context(), breakeven.SolveRequest{
					Plan:        plan,
					Target:      target,
					Goal:        goal,
					Constraints: constraints,
				})
				if err != nil {
					return err
				}
				result, table = single, tf.Format(single)
			}
			hits, misses, _ := cache.Stats()
			a.logger.Debug("solve complete", zap.String("target", string(target)), zap.Int("cache_hits", hits), zap.Int("cache_misses", misses))

			out := cmd.OutOrStdout()
			switch output.NormalizeFormatName(a.settings.Format) {
			case "console":
				_, err = fmt.Fprint(out, table)
			case "json":
				var s string
				if s, err = (&breakeven.JSONFormatter{Pretty: true}).Format(result); err == nil {
					_, err = fmt.Fprintln(out, s)
				}
			default:
				err = fmt.Errorf("unsupported solve format %q (available: console, json)", a.settings.Format)
			}
			return err
		},
	}
	cmd.Flags().String("target", string(breakeven.TargetAll), "Input to solve for")
	cmd.Flags().String("goal", string(breakeven.GoalSavingsGoal), "Outcome to achieve")
	cmd.Flags().String("amount", "", "Net worth target, or savings goal override")
	cmd.Flags().Int("by-month", 0, "Latest projection month for the savings goal (default: end of horizon)")
	cmd.Flags().String("min", "", "Lower bound of the search (single target only)")
	cmd.Flags().String("max", "", "Upper bound of the search (single target only)")
	return cmd
}
