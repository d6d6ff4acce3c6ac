package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rgehrsitz/sgplan/internal/domain"
)

// Report bundles everything a command wants rendered. Sections left nil are
// skipped by every formatter.
type Report struct {
	Title       string                                 `json:"title" yaml:"title"`
	PlanName    string                                 `json:"planName,omitempty" yaml:"plan_name,omitempty"`
	Projection  *domain.ProjectionResult               `json:"projection,omitempty" yaml:"projection,omitempty"`
	Years       []domain.YearSummary                   `json:"years,omitempty" yaml:"years,omitempty"`
	CpfAccounts *domain.CpfAccountProjection           `json:"cpfAccounts,omitempty" yaml:"cpf_accounts,omitempty"`
	Schedule    []domain.AmortizationRow               `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	Sensitivity []*domain.ParameterSensitivityAnalysis `json:"sensitivity,omitempty" yaml:"sensitivity,omitempty"`
	// Details holds a single result struct such as a scenario analysis.
	Details     interface{} `json:"details,omitempty" yaml:"details,omitempty"`
	Assumptions []string    `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`
}

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                     { return ff.ID }

// Write runs a formatter and writes its output to w.
func Write(w io.Writer, f Formatter, report *Report) error {
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

var builtInFormatters = []Formatter{
	ConsoleFormatter{ChartWidth: 60},
	CSVFormatter{},
	JSONFormatter{},
	YAMLFormatter{},
}

// GetFormatterByName fetches a registered formatter, or nil.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// NewFormatter resolves a name to a formatter configured with the display options.
func NewFormatter(name string, chartWidth int, noColor bool) (Formatter, error) {
	f := GetFormatterByName(name)
	if f == nil {
		return nil, fmt.Errorf("unsupported format %q (available: %s)", name, strings.Join(AvailableFormatterNames(), ", "))
	}
	if _, ok := f.(ConsoleFormatter); ok {
		return ConsoleFormatter{ChartWidth: chartWidth, NoColor: noColor}, nil
	}
	return f, nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"table":  "console",
	"text":   "console",
	"pretty": "console",
	"yml":    "yaml",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}
