package calculation

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.CpfCalc, "Should initialize CPF calculator")
	assert.NotNil(t, engine.TaxCalc, "Should initialize tax calculator")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Equal(t, 2024, engine.Rules.Metadata.DataYear)
}

func TestNewCalculationEngineWithConfig(t *testing.T) {
	rules := DefaultCpfRules()
	rules.Ceilings.OrdinaryWageMonthly = dec("8000")
	engine := NewCalculationEngineWithConfig(rules)

	res, err := engine.CpfCalc.CalculateContribution(ContributionInput{Salary: dec("8000"), Age: 30})
	require.NoError(t, err)
	assertDecimal(t, "1600", res.Employee, "custom ceiling flows into the calculator")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	// Test setting a custom logger
	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)

	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	// Test setting nil logger (should use no-op logger)
	engine.SetLogger(nil)

	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_LogsProjection(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	snap := testSnapshot()
	snap.PersonalInfo.RemainingLoan = dec("2000")
	snap.PersonalInfo.MonthlyRepayment = dec("1000")

	_, err := engine.RunProjection(context.Background(), snap, flatSettings(1))
	require.NoError(t, err)
	assert.NotEmpty(t, logger.infos, "Should log start and end")
	assert.Contains(t, logger.debugs[0], "loan paid off in month 2")
}

func TestCalculationEngine_WarnsWhenRepaymentBelowInterest(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	snap := testSnapshot()
	snap.PersonalInfo.RemainingLoan = dec("300000")
	snap.PersonalInfo.MonthlyRepayment = dec("100")
	snap.PersonalInfo.InterestRate = dec("2.6")

	result, err := engine.RunProjection(context.Background(), snap, flatSettings(1))
	require.NoError(t, err)
	require.Len(t, logger.warns, 1, "Should warn once per run")
	assert.Contains(t, logger.warns[0], "does not cover interest")
	assert.Contains(t, logger.warns[0], "Jan 2026")
	for _, p := range result.Points {
		assertDecimal(t, "300000", p.LoanRemaining, p.DateLabel)
	}

	logger.warns = nil
	snap.PersonalInfo.MonthlyRepayment = dec("2000")
	_, err = engine.RunProjection(context.Background(), snap, flatSettings(1))
	require.NoError(t, err)
	assert.Empty(t, logger.warns, "Covered interest should not warn")
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	debugs, infos, warns, errors []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.debugs = append(tl.debugs, fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.infos = append(tl.infos, fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.warns = append(tl.warns, fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.errors = append(tl.errors, fmt.Sprintf(format, args...))
}
