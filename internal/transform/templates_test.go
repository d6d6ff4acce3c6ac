package transform

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()

	template := Template{
		Name:        "test_template",
		Description: "A test template",
		Transforms:  []PlanTransform{},
	}

	registry.Register(template)

	retrieved, ok := registry.Get("test_template")
	if !ok {
		t.Fatal("Expected to find template")
	}
	if retrieved.Name != template.Name {
		t.Errorf("Expected name %s, got %s", template.Name, retrieved.Name)
	}

	if _, ok = registry.Get("TEST_TEMPLATE"); !ok {
		t.Fatal("Expected case-insensitive lookup to work")
	}

	if _, ok = registry.Get("nonexistent"); ok {
		t.Error("Expected not to find nonexistent template")
	}
}

func TestCreateBuiltInTemplates(t *testing.T) {
	plan := createTestPlan()
	registry := CreateBuiltInTemplates(plan)

	for _, name := range []string{"raise_5pct", "raise_10pct", "sabbatical_6m", "sabbatical_12m", "pay_down_loan", "conservative", "aggressive", "high_inflation", "sabbatical_then_raise"} {
		tmpl, ok := registry.Get(name)
		if !ok {
			t.Errorf("Expected template %s to exist", name)
			continue
		}
		if _, err := ApplyTemplate(plan, tmpl); err != nil {
			t.Errorf("template %s failed to apply: %v", name, err)
		}
	}

	sab, _ := registry.Get("sabbatical_6m")
	if !strings.Contains(sab.Description, "Jan 2027") {
		t.Errorf("sabbatical should start a year after the plan: %s", sab.Description)
	}
}

func TestCreateBuiltInTemplates_NoLoan(t *testing.T) {
	plan := createTestPlan()
	plan.Snapshot.PersonalInfo.RemainingLoan = decimal.Zero
	if _, ok := CreateBuiltInTemplates(plan).Get("pay_down_loan"); ok {
		t.Error("pay_down_loan should not be offered without a loan")
	}
}

func TestParseTemplateList(t *testing.T) {
	got := ParseTemplateList(" raise_5pct, ,aggressive ")
	if len(got) != 2 || got[0] != "raise_5pct" || got[1] != "aggressive" {
		t.Errorf("unexpected list %v", got)
	}
	if ParseTemplateList("") != nil {
		t.Error("expected nil for empty input")
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates(createTestPlan()))
	if !strings.Contains(help, "sabbatical_12m") || !strings.Contains(help, "Usage:") {
		t.Errorf("unexpected help text:\n%s", help)
	}
	if GetTemplateHelp(NewTemplateRegistry()) != "No templates registered" {
		t.Error("expected empty registry message")
	}
}
