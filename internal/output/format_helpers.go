package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as Singapore dollars with 2 decimals and
// thousands separators.
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	return sign + "S$" + groupThousands(amount.StringFixed(2))
}

// FormatPercentage formats a decimal percentage value (2.5 means 2.5%).
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatFraction formats a fraction (0.025) as a percentage.
func FormatFraction(f decimal.Decimal) string {
	return FormatPercentage(f.Mul(decimal.NewFromInt(100)))
}

// FormatMonth renders an optional 1-based projection month.
func FormatMonth(m *int) string {
	if m == nil {
		return "not reached"
	}
	return fmt.Sprintf("month %d", *m)
}

func groupThousands(s string) string {
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return intPart + frac
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + frac
}
