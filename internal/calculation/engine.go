package calculation

import (
	"github.com/rgehrsitz/sgplan/internal/domain"
)

// CalculationEngine orchestrates the projection and the calculators it composes.
type CalculationEngine struct {
	Rules   domain.RegulatoryConfig
	CpfCalc *CpfCalculator
	TaxCalc *IncomeTaxCalculator
	Logger  Logger
}

// NewCalculationEngine creates a new calculation engine with the built-in rules
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConfig(DefaultCpfRules())
}

// NewCalculationEngineWithConfig creates a new calculation engine with configurable rules
func NewCalculationEngineWithConfig(rules domain.RegulatoryConfig) *CalculationEngine {
	return &CalculationEngine{
		Rules:   rules,
		CpfCalc: NewCpfCalculatorWithRules(rules),
		TaxCalc: NewIncomeTaxCalculatorWithRules(rules.IncomeTax),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the engine logger. Nil restores the no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}
