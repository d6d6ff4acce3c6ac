package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes the most detailed table present in the report: monthly
// projection points, then CPF account points, loan schedule, yearly summary,
// sensitivity results, and finally the details as field/value rows.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	var rows [][]string
	switch {
	case report.Projection != nil:
		rows = projectionRows(report.Projection)
	case report.CpfAccounts != nil:
		rows = cpfAccountRows(report.CpfAccounts)
	case len(report.Schedule) > 0:
		rows = scheduleRows(report.Schedule)
	case len(report.Years) > 0:
		rows = yearRows(report.Years)
	case len(report.Sensitivity) > 0:
		rows = sensitivityRows(report.Sensitivity)
	case report.Details != nil:
		rows = [][]string{{"Field", "Value"}}
		for _, f := range flattenFields("", report.Details) {
			rows = append(rows, []string{f.Name, f.Raw})
		}
	default:
		return nil, fmt.Errorf("report %q has nothing to export", report.Title)
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func optionalMonth(m *int) string {
	if m == nil {
		return ""
	}
	return strconv.Itoa(*m)
}

func projectionRows(p *domain.ProjectionResult) [][]string {
	rows := [][]string{{
		"Month", "Date", "Age", "Salary", "Bonus", "EmployeeCPF", "EmployerCPF", "TakeHome",
		"Expenses", "LoanPayment", "LoanRemaining", "Savings", "CashSavings", "CPFBalance",
		"NetWorth", "RealNetWorth", "Milestone",
	}}
	for _, pt := range p.Points {
		rows = append(rows, []string{
			strconv.Itoa(pt.Month), pt.DateLabel, pt.AgeLabel,
			money(pt.MonthlySalary), money(pt.BonusAmount),
			money(pt.CpfContribution), money(pt.EmployerCpfContribution),
			money(pt.TakeHomePay), money(pt.Expenses), money(pt.LoanPayment),
			money(pt.LoanRemaining), money(pt.MonthlySavings), money(pt.CashSavings),
			money(pt.CpfBalance), money(pt.TotalNetWorth), money(pt.RealNetWorth),
			pt.Milestone,
		})
	}
	return rows
}

func cpfAccountRows(p *domain.CpfAccountProjection) [][]string {
	rows := [][]string{{"Month", "Date", "Age", "Contribution", "ToOA", "ToSA", "ToMA", "Interest", "OA", "SA", "MA", "RA", "Total", "Milestone"}}
	for _, pt := range p.Points {
		rows = append(rows, []string{
			strconv.Itoa(pt.Month), pt.DateLabel, strconv.Itoa(pt.Age),
			money(pt.Contribution), money(pt.Allocation.OA), money(pt.Allocation.SA), money(pt.Allocation.MA),
			money(pt.Interest),
			money(pt.Balances.OA), money(pt.Balances.SA), money(pt.Balances.MA), money(pt.Balances.RA),
			money(pt.Balances.Total()), pt.Milestone,
		})
	}
	return rows
}

func scheduleRows(s []domain.AmortizationRow) [][]string {
	rows := [][]string{{"Month", "Payment", "Principal", "Interest", "Balance", "CumulativePrincipal", "CumulativeInterest"}}
	for _, r := range s {
		rows = append(rows, []string{
			strconv.Itoa(r.Month), money(r.Payment), money(r.Principal), money(r.Interest),
			money(r.Balance), money(r.CumulativePrincipal), money(r.CumulativeInterest),
		})
	}
	return rows
}

func yearRows(years []domain.YearSummary) [][]string {
	rows := [][]string{{"Year", "Age", "Months", "GrossIncome", "Bonuses", "EmployeeCPF", "EmployerCPF", "IncomeTax", "Expenses", "LoanPayments", "Savings", "ClosingCash", "ClosingCPF", "ClosingLoan", "ClosingNetWorth"}}
	for _, y := range years {
		rows = append(rows, []string{
			strconv.Itoa(y.Year), strconv.Itoa(y.Age), strconv.Itoa(y.Months),
			money(y.GrossIncome), money(y.Bonuses), money(y.EmployeeCpf), money(y.EmployerCpf),
			money(y.EstimatedIncomeTax), money(y.Expenses), money(y.LoanPayments), money(y.Savings),
			money(y.ClosingCash), money(y.ClosingCpf), money(y.ClosingLoan), money(y.ClosingNetWorth),
		})
	}
	return rows
}

func sensitivityRows(analyses []*domain.ParameterSensitivityAnalysis) [][]string {
	rows := [][]string{{"Parameter", "Value", "FinalNetWorth", "FinalCash", "FinalCPF", "NetWorthChange", "NetWorthChangePct", "LoanPaidOffMonth", "SavingsGoalMonth"}}
	for _, a := range analyses {
		for _, r := range a.Results {
			rows = append(rows, []string{
				a.Parameter.Name, r.ParameterValue.String(),
				money(r.FinalNetWorth), money(r.FinalCash), money(r.FinalCpf),
				money(r.NetWorthChange), r.NetWorthChangePct.StringFixed(2),
				optionalMonth(r.LoanPaidOffMonth), optionalMonth(r.SavingsGoalReachedMonth),
			})
		}
	}
	return rows
}
