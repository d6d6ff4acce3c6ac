package output

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a human readable report with lipgloss styling and
// an ASCII chart of the projection.
type ConsoleFormatter struct {
	ChartWidth int
	NoColor    bool
}

func (cf ConsoleFormatter) Name() string { return "console" }

func (cf ConsoleFormatter) Format(report *Report) ([]byte, error) {
	p := painter{plain: cf.NoColor}
	var buf bytes.Buffer

	title := report.Title
	if report.PlanName != "" {
		title = fmt.Sprintf("%s: %s", title, report.PlanName)
	}
	buf.WriteString(p.paint(titleStyle, strings.ToUpper(title)))
	buf.WriteString("\n")
	buf.WriteString(strings.Repeat("=", len([]rune(title))))
	buf.WriteString("\n\n")

	if report.Projection != nil {
		cf.writeProjection(&buf, p, report.Projection)
	}
	if len(report.Years) > 0 {
		writeSection(&buf, p, "YEARLY SUMMARY")
		buf.WriteString(renderTable(p, yearTable(report.Years)))
		buf.WriteString("\n")
	}
	if report.CpfAccounts != nil {
		writeCpfAccounts(&buf, p, report.CpfAccounts)
	}
	if len(report.Schedule) > 0 {
		writeSchedule(&buf, p, report.Schedule)
	}
	for _, a := range report.Sensitivity {
		writeSensitivity(&buf, p, a)
	}
	if report.Details != nil {
		writeDetails(&buf, p, report.Details)
	}
	if len(report.Assumptions) > 0 {
		writeSection(&buf, p, "ASSUMPTIONS")
		for _, a := range report.Assumptions {
			buf.WriteString(p.paint(mutedStyle, "  • "+a))
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

func writeSection(buf *bytes.Buffer, p painter, name string) {
	buf.WriteString(p.paint(sectionStyle, name))
	buf.WriteString("\n")
}

func writeKV(buf *bytes.Buffer, p painter, label, value string) {
	fmt.Fprintf(buf, "  %s %s\n", p.paint(labelStyle, fmt.Sprintf("%-28s", label+":")), value)
}

func (cf ConsoleFormatter) writeProjection(buf *bytes.Buffer, p painter, r *domain.ProjectionResult) {
	final, ok := r.Final()
	if !ok {
		buf.WriteString(p.paint(mutedStyle, "Projection is empty"))
		buf.WriteString("\n\n")
		return
	}

	writeSection(buf, p, "PROJECTION SUMMARY")
	writeKV(buf, p, "Horizon", fmt.Sprintf("%d months (to %s, age %s)", final.Month, final.DateLabel, final.AgeLabel))
	writeKV(buf, p, "Final net worth", p.signed(final.TotalNetWorth.IsNegative(), FormatCurrency(final.TotalNetWorth)))
	writeKV(buf, p, "Final net worth (today's $)", FormatCurrency(final.RealNetWorth))
	writeKV(buf, p, "Cash savings", p.signed(final.CashSavings.IsNegative(), FormatCurrency(final.CashSavings)))
	writeKV(buf, p, "CPF balance", FormatCurrency(final.CpfBalance))
	writeKV(buf, p, "Loan remaining", FormatCurrency(final.LoanRemaining))
	writeKV(buf, p, "Loan paid off", FormatMonth(r.LoanPaidOffMonth))
	writeKV(buf, p, "Savings goal reached", FormatMonth(r.SavingsGoalReachedMonth))
	buf.WriteString("\n")

	if len(r.Milestones) > 0 {
		writeSection(buf, p, "MILESTONES")
		for _, m := range r.Milestones {
			fmt.Fprintf(buf, "  %s  %s\n", p.paint(labelStyle, fmt.Sprintf("%-9s (month %d)", m.DateLabel, m.Month)), m.Label)
		}
		buf.WriteString("\n")
	}

	width := cf.ChartWidth
	if width <= 0 {
		width = 60
	}
	n := len(r.Points)
	netWorth := make([]float64, n)
	cash := make([]float64, n)
	cpf := make([]float64, n)
	labels := make([]string, n)
	for i, pt := range r.Points {
		netWorth[i] = pt.TotalNetWorth.InexactFloat64()
		cash[i] = pt.CashSavings.InexactFloat64()
		cpf[i] = pt.CpfBalance.InexactFloat64()
		labels[i] = pt.DateLabel
	}
	chart := NewASCIIChart("Net worth").
		WithSize(width, 12).
		WithLabels(labels).
		Plain(cf.NoColor).
		AddSeries("Net worth", netWorth, colorChartLine1).
		AddSeries("Cash", cash, colorChartLine2).
		AddSeries("CPF", cpf, colorChartLine3)
	buf.WriteString(chart.Render())
	buf.WriteString("\n")
}

func yearTable(years []domain.YearSummary) [][]string {
	rows := [][]string{{"Year", "Age", "Income", "Employee CPF", "Tax", "Expenses", "Savings", "Cash", "CPF", "Net worth"}}
	for _, y := range years {
		rows = append(rows, []string{
			strconv.Itoa(y.Year), strconv.Itoa(y.Age),
			FormatCurrency(y.GrossIncome.Add(y.Bonuses)), FormatCurrency(y.EmployeeCpf),
			FormatCurrency(y.EstimatedIncomeTax), FormatCurrency(y.Expenses.Add(y.LoanPayments)),
			FormatCurrency(y.Savings), FormatCurrency(y.ClosingCash), FormatCurrency(y.ClosingCpf),
			FormatCurrency(y.ClosingNetWorth),
		})
	}
	return rows
}

func writeCpfAccounts(buf *bytes.Buffer, p painter, proj *domain.CpfAccountProjection) {
	writeSection(buf, p, "CPF ACCOUNTS")
	rows := [][]string{{"Year", "Age", "Contributions", "Interest", "OA", "SA", "MA", "RA", "Total"}}
	for _, y := range proj.Years {
		c := y.Closing
		rows = append(rows, []string{
			strconv.Itoa(y.Year), strconv.Itoa(y.Age), FormatCurrency(y.Contributions), FormatCurrency(y.Interest),
			FormatCurrency(c.OA), FormatCurrency(c.SA), FormatCurrency(c.MA), FormatCurrency(c.RA), FormatCurrency(c.Total()),
		})
	}
	buf.WriteString(renderTable(p, rows))
	writeKV(buf, p, "Total interest", FormatCurrency(proj.TotalInterest))
	writeKV(buf, p, "Retirement account formed", FormatMonth(proj.RAFormedMonth))
	for _, pt := range proj.Points {
		if pt.Milestone != "" {
			writeKV(buf, p, pt.DateLabel, pt.Milestone)
		}
	}
	buf.WriteString("\n")
}

// writeSchedule prints every month of short schedules and one row per year
// (plus the final month) of long ones.
func writeSchedule(buf *bytes.Buffer, p painter, schedule []domain.AmortizationRow) {
	writeSection(buf, p, "AMORTIZATION SCHEDULE")
	rows := [][]string{{"Month", "Payment", "Principal", "Interest", "Balance", "Total interest"}}
	long := len(schedule) > 36
	for i, r := range schedule {
		if long && r.Month%12 != 0 && i != len(schedule)-1 {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(r.Month), FormatCurrency(r.Payment), FormatCurrency(r.Principal),
			FormatCurrency(r.Interest), FormatCurrency(r.Balance), FormatCurrency(r.CumulativeInterest),
		})
	}
	buf.WriteString(renderTable(p, rows))
	buf.WriteString("\n")
}

func writeSensitivity(buf *bytes.Buffer, p painter, a *domain.ParameterSensitivityAnalysis) {
	param := a.Parameter
	writeSection(buf, p, "SENSITIVITY ANALYSIS: "+strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	writeKV(buf, p, "Base case", formatParamValue(param, param.BaseValue))
	writeKV(buf, p, "Range", fmt.Sprintf("%s to %s (%d steps)",
		formatParamValue(param, param.MinValue), formatParamValue(param, param.MaxValue), param.Steps))
	if param.Description != "" {
		writeKV(buf, p, "Description", param.Description)
	}

	rows := [][]string{{param.Name, "Final net worth", "Change", "Change %", "Goal reached"}}
	for _, r := range a.Results {
		value := formatParamValue(param, r.ParameterValue)
		if r.ParameterValue.Equal(param.BaseValue) {
			value += " <- BASE"
		}
		rows = append(rows, []string{
			value, FormatCurrency(r.FinalNetWorth), FormatCurrency(r.NetWorthChange),
			FormatPercentage(r.NetWorthChangePct), FormatMonth(r.SavingsGoalReachedMonth),
		})
	}
	buf.WriteString(renderTable(p, rows))

	s := a.Summary
	writeKV(buf, p, "Spread", FormatCurrency(s.Spread))
	writeKV(buf, p, "Sensitivity score", s.SensitivityScore.StringFixed(2))
	risk := s.RiskLevel
	switch risk {
	case "HIGH":
		risk = p.paint(negativeStyle, risk)
	case "LOW":
		risk = p.paint(positiveStyle, risk)
	}
	writeKV(buf, p, "Risk level", risk)
	for _, rec := range s.Recommendations {
		buf.WriteString("  • " + rec + "\n")
	}
	buf.WriteString("\n")
}

func formatParamValue(param domain.SensitivityParameter, v decimal.Decimal) string {
	switch param.Unit {
	case "percent":
		return FormatPercentage(v)
	case "dollars":
		return FormatCurrency(v)
	}
	return v.String()
}

func writeDetails(buf *bytes.Buffer, p painter, details interface{}) {
	writeSection(buf, p, "DETAILS")
	for _, f := range flattenFields("", details) {
		parts := strings.Split(f.Name, ".")
		for i := range parts {
			parts[i] = humanize(parts[i])
		}
		writeKV(buf, p, strings.Join(parts, " / "), f.Display)
	}
	buf.WriteString("\n")
}

// renderTable pads columns to their widest cell; the first column is left
// aligned and the rest right aligned.
func renderTable(p painter, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	var b strings.Builder
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == 0 {
				cells[i] = fmt.Sprintf("%-*s", widths[i], cell)
			} else {
				cells[i] = fmt.Sprintf("%*s", widths[i], cell)
			}
		}
		line := "  " + strings.Join(cells, "  ")
		if r == 0 {
			b.WriteString(p.paint(tableHeaderStyle, line))
			b.WriteString("\n")
			total := 0
			for _, w := range widths {
				total += w + 2
			}
			b.WriteString("  " + strings.Repeat("-", total-2))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
