package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/sgplan/internal/calculation"
	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Runner            calculation.ProjectionRunner
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine. The runner is usually a
// ProjectionCache so repeated alternatives are projected once.
func NewCompareEngine(runner calculation.ProjectionRunner) *CompareEngine {
	if runner == nil {
		runner = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		Runner:            runner,
		MetricsCalculator: NewMetricsCalculator(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	// Alternatives are template names or transform specs
	// ("career_break:start=2027-01,months=6"). A "+" chains several into one scenario.
	Alternatives []string
	PlanPath     string
}

// Compare projects the base plan and every alternative derived from it.
func (ce *CompareEngine) Compare(ctx context.Context, plan *domain.Plan, options CompareOptions) (*ComparisonSet, error) {
	if plan == nil {
		return nil, fmt.Errorf("base plan cannot be nil")
	}

	ce.TemplateRegistry = transform.CreateBuiltInTemplates(plan)

	baseName := plan.Name
	if baseName == "" {
		baseName = "base"
	}

	baseProjection, err := ce.Runner.RunProjection(ctx, &plan.Snapshot, plan.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseProjection)

	alternatives := []ComparisonResult{}
	for _, alt := range options.Alternatives {
		transforms, description, err := ce.resolve(alt)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(plan, transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", alt, err)
		}

		projection, err := ce.Runner.RunProjection(ctx, &modified.Snapshot, modified.Settings)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(alt, projection)
		altResult.Description = description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		PlanPath:           options.PlanPath,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// resolve turns one alternative into its transforms. Template names win over
// transform specs; specs are recognized by their "name:" prefix.
func (ce *CompareEngine) resolve(alt string) ([]transform.PlanTransform, string, error) {
	var transforms []transform.PlanTransform
	var descriptions []string

	for _, part := range strings.Split(alt, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, "", fmt.Errorf("empty alternative in %q", alt)
		}

		if tmpl, ok := ce.TemplateRegistry.Get(part); ok {
			transforms = append(transforms, tmpl.Transforms...)
			descriptions = append(descriptions, tmpl.Description)
			continue
		}

		if !strings.Contains(part, ":") {
			return nil, "", fmt.Errorf("template %s not found", part)
		}
		t, err := ce.TransformRegistry.ParseTransformSpec(part)
		if err != nil {
			return nil, "", err
		}
		transforms = append(transforms, t)
		descriptions = append(descriptions, t.Description())
	}

	return transforms, strings.Join(descriptions, "; "), nil
}
