package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by the CLI.
const EnvPrefix = "SGPLAN"

// CLISettings are process-wide CLI defaults. Precedence is flag, then
// SGPLAN_* environment variable, then config file, then built-in default.
type CLISettings struct {
	Format     string `mapstructure:"format"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
	RulesFile  string `mapstructure:"rules"`
	ChartWidth int    `mapstructure:"chart_width"`
	NoColor    bool   `mapstructure:"no_color"`
}

// NewViper returns a viper instance with the CLI defaults and env binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("format", "console")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "console")
	v.SetDefault("rules", "")
	v.SetDefault("chart_width", 60)
	v.SetDefault("no_color", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadCLISettings resolves settings from v, reading configFile first when set.
func LoadCLISettings(v *viper.Viper, configFile string) (CLISettings, error) {
	var s CLISettings
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return s, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("unable to decode settings: %w", err)
	}
	if s.ChartWidth < 10 {
		return s, errors.New("chart_width must be at least 10")
	}
	return s, nil
}
