package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/sgplan/internal/calculation"
	"github.com/rgehrsitz/sgplan/internal/compare"
	"github.com/rgehrsitz/sgplan/internal/output"
	"github.com/rgehrsitz/sgplan/internal/transform"
)

func compareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare a plan with what-if alternatives",
		Long: `Project a plan and each alternative derived from it, then compare the outcomes.

Alternatives are template names or transform specs; join several with "+" to
combine them into one scenario.

Examples:
  sgplan compare plan.yaml --with raise_10pct,sabbatical_6m
  sgplan compare plan.yaml --with "career_break:start=2027-01,months=3+raise_5pct"
  sgplan compare plan.yaml --with conservative,aggressive -f csv
  sgplan compare plan.yaml --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, path, err := a.loadPlan(args)
			if err != nil {
				return err
			}

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates(plan)))
				fmt.Fprintf(cmd.OutOrStdout(), "\nTransforms: %v\n", transform.NewTransformRegistry().List())
				return nil
			}

			with, _ := cmd.Flags().GetStringArray("with")
			var alternatives []string
			for _, w := range with {
				alternatives = append(alternatives, splitAlternatives(w)...)
			}
			if len(alternatives) == 0 {
				return fmt.Errorf("--with is required (see --list-templates)")
			}

			cache := calculation.NewProjectionCache(a.engine, 0)
			engine := compare.NewCompareEngine(cache)
			set, err := engine.Compare(cmd.Context(), plan, compare.CompareOptions{
				Alternatives: alternatives,
				PlanPath:     path,
			})
			if err != nil {
				return err
			}
			hits, misses, _ := cache.Stats()
			a.logger.Debug("comparison complete", zap.Int("scenarios", len(alternatives)+1), zap.Int("cache_hits", hits), zap.Int("cache_misses", misses))

			out := cmd.OutOrStdout()
			switch output.NormalizeFormatName(a.settings.Format) {
			case "console":
				_, err = fmt.Fprint(out, (&compare.TableFormatter{}).Format(set))
			case "csv":
				var s string
				if s, err = (&compare.CSVFormatter{}).Format(set); err == nil {
					_, err = fmt.Fprint(out, s)
				}
			case "json":
				var s string
				if s, err = (&compare.JSONFormatter{Pretty: true}).Format(set); err == nil {
					_, err = fmt.Fprintln(out, s)
				}
			case "compact":
				_, err = fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(set))
			default:
				err = fmt.Errorf("unsupported compare format %q (available: console, csv, json, compact)", a.settings.Format)
			}
			return err
		},
	}
	cmd.Flags().StringArray("with", nil, "Comma-separated templates or transform specs to compare (repeatable)")
	cmd.Flags().Bool("list-templates", false, "List the available templates and transforms")
	return cmd
}

// splitAlternatives splits on commas that start a new alternative. Transform
// specs carry their own comma-separated parameters, so a comma followed by a
// key=value pair stays inside the current spec.
func splitAlternatives(s string) []string {
	var out []string
	for _, part := range transform.ParseTemplateList(s) {
		if len(out) > 0 && isParam(part) {
			out[len(out)-1] += "," + part
			continue
		}
		out = append(out, part)
	}
	return out
}

func isParam(part string) bool {
	for i, r := range part {
		switch r {
		case '=':
			return i > 0
		case ':', '+':
			return false
		}
	}
	return false
}
