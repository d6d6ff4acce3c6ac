package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncomeTaxCalculator_CalculateTax(t *testing.T) {
	tc := NewIncomeTaxCalculator()
	tests := []struct {
		chargeable string
		want       string
	}{
		{"0", "0"},
		{"20000", "0"},
		{"30000", "200"},
		{"40000", "550"},
		{"47000", "1040"},
		{"80000", "3350"},
		{"100000", "5650"},
	}
	for _, tt := range tests {
		t.Run(tt.chargeable, func(t *testing.T) {
			assertDecimal(t, tt.want, tc.CalculateTax(dec(tt.chargeable)), "tax")
		})
	}
}

func TestIncomeTaxCalculator_TopBracketOpenEnded(t *testing.T) {
	tc := NewIncomeTaxCalculator()
	low := tc.CalculateTax(dec("1000000"))
	high := tc.CalculateTax(dec("1100000"))
	assertDecimal(t, "24000", high.Sub(low), "24% above 1M")
	assertDecimal(t, "0.24", tc.MarginalRate(dec("1100000")), "marginal rate")
}

func TestIncomeTaxCalculator_ChargeableIncome(t *testing.T) {
	tc := NewIncomeTaxCalculator()
	assertDecimal(t, "47000", tc.ChargeableIncome(dec("60000"), dec("12000")), "reliefs applied")
	assertDecimal(t, "78600", tc.ChargeableIncome(dec("100000"), dec("30000")), "CPF relief capped")
	assertDecimal(t, "0", tc.ChargeableIncome(dec("500"), dec("0")), "never negative")
	assertDecimal(t, "1040", tc.AnnualTax(dec("60000"), dec("12000")), "annual tax")
}

func TestBuyerStampDuty(t *testing.T) {
	rules := DefaultCpfRules().Housing
	assertDecimal(t, "1800", BuyerStampDuty(dec("180000"), rules), "first tier")
	assertDecimal(t, "9600", BuyerStampDuty(dec("500000"), rules), "three tiers")
	assertDecimal(t, "24600", BuyerStampDuty(dec("1000000"), rules), "1M")
	assert.True(t, BuyerStampDuty(dec("0"), rules).IsZero())
}
