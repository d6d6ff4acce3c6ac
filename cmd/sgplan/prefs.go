package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/sgplan/internal/config"
	"github.com/rgehrsitz/sgplan/internal/output"
)

func prefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change saved display preferences",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.prefs
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:             %s\n", a.prefsPath)
			fmt.Fprintf(out, "default_format:   %s\n", p.DefaultFormat)
			fmt.Fprintf(out, "chart_width:      %d\n", p.ChartWidth)
			fmt.Fprintf(out, "show_real_values: %t\n", p.ShowRealValues)
			fmt.Fprintf(out, "no_color:         %t\n", p.NoColor)
			fmt.Fprintf(out, "last_plan:        %s\n", p.LastPlan)
			return nil
		},
	}

	set := &cobra.Command{
		Use:     "set",
		Short:   "Update saved preferences",
		Example: `  sgplan prefs set --default-format json --chart-width 80`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.prefsPath == "" {
				return fmt.Errorf("no preferences path available; pass --prefs")
			}
			p := a.prefs
			flags := cmd.Flags()
			if flags.Changed("default-format") {
				name, _ := flags.GetString("default-format")
				if output.GetFormatterByName(name) == nil {
					return fmt.Errorf("unsupported format %q", name)
				}
				p.DefaultFormat = output.NormalizeFormatName(name)
			}
			if flags.Changed("chart-width") {
				p.ChartWidth, _ = flags.GetInt("chart-width")
				if p.ChartWidth < 10 {
					return fmt.Errorf("chart width must be at least 10")
				}
			}
			if flags.Changed("real-values") {
				p.ShowRealValues, _ = flags.GetBool("real-values")
			}
			if flags.Changed("plain") {
				p.NoColor, _ = flags.GetBool("plain")
			}
			if flags.Changed("last-plan") {
				p.LastPlan, _ = flags.GetString("last-plan")
			}
			if err := config.SavePreferences(a.prefsPath, p); err != nil {
				return err
			}
			a.prefs = p
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", a.prefsPath)
			return nil
		},
	}
	set.Flags().String("default-format", "", "Default output format")
	set.Flags().Int("chart-width", 0, "Default chart width")
	set.Flags().Bool("real-values", false, "Prefer values in today's dollars")
	set.Flags().Bool("plain", false, "Disable colors by default")
	set.Flags().String("last-plan", "", "Plan used when a command is given no plan file")

	cmd.AddCommand(show, set)
	return cmd
}
