package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []PlanTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func pct(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func monthPtr(m dateutil.MonthYear) *dateutil.MonthYear {
	return &m
}

// CreateBuiltInTemplates creates the common what-if scenarios for a plan.
// Dated templates start one year after the plan's start month.
func CreateBuiltInTemplates(plan *domain.Plan) *TemplateRegistry {
	registry := NewTemplateRegistry()
	start := plan.Snapshot.PersonalInfo.StartDate.AddMonths(12)

	registry.Register(Template{
		Name:        "raise_5pct",
		Description: "Salary rises 5% immediately",
		Transforms:  []PlanTransform{&RaiseSalary{Percent: decimal.NewFromInt(5)}},
	})
	registry.Register(Template{
		Name:        "raise_10pct",
		Description: "Salary rises 10% immediately",
		Transforms:  []PlanTransform{&RaiseSalary{Percent: decimal.NewFromInt(10)}},
	})

	registry.Register(Template{
		Name:        "sabbatical_6m",
		Description: fmt.Sprintf("Six months without salary from %s", start.Label()),
		Transforms:  []PlanTransform{&CareerBreak{Start: start, Months: 6}},
	})
	registry.Register(Template{
		Name:        "sabbatical_12m",
		Description: fmt.Sprintf("Twelve months without salary from %s", start.Label()),
		Transforms:  []PlanTransform{&CareerBreak{Start: start, Months: 12}},
	})

	if plan.Snapshot.PersonalInfo.RemainingLoan.IsPositive() {
		registry.Register(Template{
			Name:        "pay_down_loan",
			Description: "Repay an extra S$500 on the loan every month",
			Transforms:  []PlanTransform{&ExtraRepayment{Amount: decimal.NewFromInt(500)}},
		})
	}

	registry.Register(Template{
		Name:        "conservative",
		Description: "Lower returns (2% investment, 1% salary growth, 3% expense growth)",
		Transforms: []PlanTransform{
			&ChangeReturn{Investment: pct(2), SalaryGrowth: pct(1), ExpenseGrowth: pct(3)},
		},
	})
	registry.Register(Template{
		Name:        "aggressive",
		Description: "Higher returns (7% investment, 5% salary growth)",
		Transforms: []PlanTransform{
			&ChangeReturn{Investment: pct(7), SalaryGrowth: pct(5)},
		},
	})
	registry.Register(Template{
		Name:        "high_inflation",
		Description: "Expenses grow 4% a year and real values deflate at 4%",
		Transforms: []PlanTransform{
			&ChangeReturn{ExpenseGrowth: pct(4), Inflation: pct(4)},
		},
	})

	registry.Register(Template{
		Name:        "sabbatical_then_raise",
		Description: "Six month break, then return at 10% higher salary",
		Transforms: []PlanTransform{
			&CareerBreak{Start: start, Months: 6},
			&RaiseSalary{Percent: decimal.NewFromInt(10), From: monthPtr(start.AddMonths(6))},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base plan
func ApplyTemplate(base *domain.Plan, template Template) (*domain.Plan, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-24s %s\n", t.Name, t.Description))
	}

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  sgplan compare plan.yaml --with raise_10pct,sabbatical_6m\n")
	sb.WriteString("  sgplan compare plan.yaml --with career_break:start=2027-01,months=3\n")

	return sb.String()
}
