package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (PlanTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("raise_salary", createRaiseSalary)
	registry.Register("career_break", createCareerBreak)
	registry.Register("add_expense", createAddExpense)
	registry.Register("extra_repayment", createExtraRepayment)
	registry.Register("change_return", createChangeReturn)
	registry.Register("extend_horizon", createExtendHorizon)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (PlanTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "career_break:start=2027-01,months=6"
func (r *TransformRegistry) ParseTransformSpec(spec string) (PlanTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func decimalParam(params map[string]string, key string) (*decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(raw, "%"))
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return &d, nil
}

func intParam(params map[string]string, key string) (*int, error) {
	raw, ok := params[key]
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return &n, nil
}

// ParseMonthYear parses "YYYY-MM".
func ParseMonthYear(s string) (dateutil.MonthYear, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return dateutil.MonthYear{}, fmt.Errorf("invalid month format, expected YYYY-MM, got: %s", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return dateutil.MonthYear{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return dateutil.MonthYear{}, fmt.Errorf("invalid month in %q: %w", s, err)
	}
	m := dateutil.MonthYear{Month: month, Year: year}
	if !m.IsValid() {
		return dateutil.MonthYear{}, fmt.Errorf("month out of range in %q", s)
	}
	return m, nil
}

// Factory functions for each transform

func createRaiseSalary(params map[string]string) (PlanTransform, error) {
	percent, err := decimalParam(params, "percent")
	if err != nil {
		return nil, err
	}
	amount, err := decimalParam(params, "amount")
	if err != nil {
		return nil, err
	}
	if percent == nil && amount == nil {
		return nil, fmt.Errorf("raise_salary requires 'percent' or 'amount' parameter")
	}

	rs := &RaiseSalary{}
	if percent != nil {
		rs.Percent = *percent
	}
	if amount != nil {
		rs.NewSalary = *amount
	}
	if from, ok := params["from"]; ok {
		m, err := ParseMonthYear(from)
		if err != nil {
			return nil, err
		}
		rs.From = &m
	}
	return rs, nil
}

func createCareerBreak(params map[string]string) (PlanTransform, error) {
	startStr, ok := params["start"]
	if !ok {
		return nil, fmt.Errorf("career_break requires 'start' parameter")
	}
	start, err := ParseMonthYear(startStr)
	if err != nil {
		return nil, err
	}
	months, err := intParam(params, "months")
	if err != nil {
		return nil, err
	}
	if months == nil {
		return nil, fmt.Errorf("career_break requires 'months' parameter")
	}
	return &CareerBreak{Start: start, Months: *months}, nil
}

func createAddExpense(params map[string]string) (PlanTransform, error) {
	name, ok := params["name"]
	if !ok {
		return nil, fmt.Errorf("add_expense requires 'name' parameter")
	}
	amount, err := decimalParam(params, "amount")
	if err != nil {
		return nil, err
	}
	if amount == nil {
		return nil, fmt.Errorf("add_expense requires 'amount' parameter")
	}

	ae := &AddExpense{ExpenseName: name, Amount: *amount}
	if month, err := intParam(params, "month"); err != nil {
		return nil, err
	} else if month != nil {
		ae.Month = *month
	}
	if year, err := intParam(params, "year"); err != nil {
		return nil, err
	} else if year != nil {
		ae.StartYear = *year
	}
	if end, err := intParam(params, "end_year"); err != nil {
		return nil, err
	} else if end != nil {
		ae.EndYear = end
	}
	return ae, nil
}

func createExtraRepayment(params map[string]string) (PlanTransform, error) {
	amount, err := decimalParam(params, "amount")
	if err != nil {
		return nil, err
	}
	if amount == nil {
		return nil, fmt.Errorf("extra_repayment requires 'amount' parameter")
	}
	return &ExtraRepayment{Amount: *amount}, nil
}

func createChangeReturn(params map[string]string) (PlanTransform, error) {
	cr := &ChangeReturn{}
	fields := []struct {
		key string
		dst **decimal.Decimal
	}{
		{"investment", &cr.Investment},
		{"cpf", &cr.Cpf},
		{"salary_growth", &cr.SalaryGrowth},
		{"expense_growth", &cr.ExpenseGrowth},
		{"inflation", &cr.Inflation},
	}
	for _, f := range fields {
		v, err := decimalParam(params, f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	if cr.Investment == nil && cr.Cpf == nil && cr.SalaryGrowth == nil && cr.ExpenseGrowth == nil && cr.Inflation == nil {
		return nil, fmt.Errorf("change_return requires at least one of 'investment', 'cpf', 'salary_growth', 'expense_growth', 'inflation'")
	}
	return cr, nil
}

func createExtendHorizon(params map[string]string) (PlanTransform, error) {
	years, err := intParam(params, "years")
	if err != nil {
		return nil, err
	}
	if years == nil {
		return nil, fmt.Errorf("extend_horizon requires 'years' parameter")
	}
	return &ExtendHorizon{Years: *years}, nil
}
