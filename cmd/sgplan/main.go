package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rgehrsitz/sgplan/internal/calculation"
	"github.com/rgehrsitz/sgplan/internal/config"
	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what every command needs once the root flags are resolved.
type app struct {
	v         *viper.Viper
	settings  config.CLISettings
	prefsPath string
	prefs     config.Preferences
	logger    *zap.Logger
	engine    *calculation.CalculationEngine
	parser    *config.InputParser
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper(), parser: config.NewInputParser(), logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:           "sgplan",
		Short:         "Singapore CPF and household finance projection CLI",
		Long:          "Project savings, CPF accounts and loans month by month, and explore what-if scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "CLI settings file (YAML)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (console, json)")
	flags.String("rules", "", "Rules file overriding the built-in CPF and tax tables")
	flags.StringP("format", "f", "", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	flags.Int("chart-width", 0, "Width of the console chart")
	flags.Bool("no-color", false, "Disable colored console output")
	flags.String("prefs", "", "Preferences file (default: user config dir)")

	for key, flag := range map[string]string{
		"log_level":   "log-level",
		"log_format":  "log-format",
		"rules":       "rules",
		"format":      "format",
		"chart_width": "chart-width",
		"no_color":    "no-color",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(
		versionCmd(),
		validateCmd(a),
		projectCmd(a),
		cpfCmd(a),
		loanCmd(a),
		scenarioCmd(a),
		compareCmd(a),
		sensitivityCmd(a),
		solveCmd(a),
		prefsCmd(a),
	)
	return rootCmd
}

// init resolves settings (flag, env, config file, preferences, default),
// builds the logger and the engine.
func (a *app) init(cmd *cobra.Command) error {
	prefsPath, _ := cmd.Flags().GetString("prefs")
	if prefsPath == "" {
		if p, err := config.DefaultPreferencesPath(); err == nil {
			prefsPath = p
		}
	}
	a.prefsPath = prefsPath
	if prefsPath != "" {
		prefs, err := config.LoadPreferences(prefsPath)
		if err != nil {
			return err
		}
		a.prefs = prefs
		if prefs.DefaultFormat != "" {
			a.v.SetDefault("format", prefs.DefaultFormat)
		}
		if prefs.ChartWidth > 0 {
			a.v.SetDefault("chart_width", prefs.ChartWidth)
		}
		a.v.SetDefault("no_color", prefs.NoColor)
	}

	configFile, _ := cmd.Flags().GetString("config")
	settings, err := config.LoadCLISettings(a.v, configFile)
	if err != nil {
		return err
	}
	a.settings = settings

	logger, err := config.NewLogger(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger

	rules := calculation.DefaultCpfRules()
	if settings.RulesFile != "" {
		rules, err = a.parser.LoadRules(settings.RulesFile)
		if err != nil {
			return err
		}
		logger.Info("loaded rules", zap.String("file", settings.RulesFile), zap.Int("data_year", rules.Metadata.DataYear))
	}
	a.engine = calculation.NewCalculationEngineWithConfig(rules)
	a.engine.SetLogger(logger.Sugar())
	return nil
}

// loadPlan reads a plan from the argument, falling back to the last plan
// remembered in the preferences.
func (a *app) loadPlan(args []string) (*domain.Plan, string, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		path = a.prefs.LastPlan
	}
	if path == "" {
		return nil, "", fmt.Errorf("a plan file is required")
	}
	plan, err := a.parser.LoadFromFile(path)
	if err != nil {
		return nil, path, err
	}
	a.logger.Debug("loaded plan", zap.String("file", path), zap.String("name", plan.Name))
	return plan, path, nil
}

func (a *app) render(cmd *cobra.Command, report *output.Report) error {
	f, err := output.NewFormatter(a.settings.Format, a.settings.ChartWidth, a.settings.NoColor)
	if err != nil {
		return err
	}
	return output.Write(cmd.OutOrStdout(), f, report)
}

// decimalFlag reads a string flag holding a decimal. An empty value yields def.
func decimalFlag(cmd *cobra.Command, name string, def decimal.Decimal) (decimal.Decimal, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return decimal.Zero, err
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "%")
	if raw == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s value %q", name, raw)
	}
	return d, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sgplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, path, err := a.loadPlan(args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: plan %q is valid (%d months from %s)\n",
				path, plan.Name, plan.Settings.TotalMonths(), plan.Snapshot.PersonalInfo.StartDate.Label())
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
