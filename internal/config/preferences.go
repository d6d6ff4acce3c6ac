package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Preferences are user display choices. The engine never reads them; callers
// load and save them explicitly.
type Preferences struct {
	DefaultFormat  string `yaml:"default_format"`
	ChartWidth     int    `yaml:"chart_width"`
	ShowRealValues bool   `yaml:"show_real_values"`
	NoColor        bool   `yaml:"no_color"`
	LastPlan       string `yaml:"last_plan,omitempty"`
}

// DefaultPreferences returns the preferences used when no file exists.
func DefaultPreferences() Preferences {
	return Preferences{DefaultFormat: "console", ChartWidth: 60}
}

// LoadPreferences reads preferences from path. A missing file yields the
// defaults without error.
func LoadPreferences(path string) (Preferences, error) {
	prefs := DefaultPreferences()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("failed to read preferences %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return DefaultPreferences(), fmt.Errorf("failed to parse preferences: %w", err)
	}
	return prefs, nil
}

// SavePreferences writes preferences to path, creating the directory if needed.
func SavePreferences(path string, prefs Preferences) error {
	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create preferences directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences %s: %w", path, err)
	}
	return nil
}

// DefaultPreferencesPath is ~/.config/sgplan/preferences.yaml.
func DefaultPreferencesPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sgplan", "preferences.yaml"), nil
}
