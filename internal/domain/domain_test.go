package domain

import (
	"testing"

	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseEmployeeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want EmployeeCategory
	}{
		{"citizen", CategoryCitizen},
		{"", CategoryCitizen},
		{"PR1", CategoryPRYear1},
		{"pr-year-2", CategoryPRYear2},
		{"PR 3+", CategoryPRYear3Plus},
		{"pr_year_3_plus", CategoryPRYear3Plus},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEmployeeCategory(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseEmployeeCategory("tourist")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestEmployeeCategory_YAML(t *testing.T) {
	var pi struct {
		Category EmployeeCategory `yaml:"category"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("category: pr2\n"), &pi))
	assert.Equal(t, CategoryPRYear2, pi.Category)

	out, err := yaml.Marshal(pi)
	require.NoError(t, err)
	assert.Equal(t, "category: pr_year_2\n", string(out))

	_, err = EmployeeCategory(9).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Equal(t, "EmployeeCategory(9)", EmployeeCategory(9).String())
}

func TestBracketLabels(t *testing.T) {
	assert.Equal(t, "<=55", ContributionUpTo55.String())
	assert.Equal(t, ">70", ContributionAbove70.String())
	assert.Equal(t, "50-55", Allocation50To55.String())
	assert.Equal(t, "AllocationBracket(8)", AllocationBracket(8).String())
}

func TestYearlyExpense_AppliesIn(t *testing.T) {
	end := 2028
	recurring := YearlyExpense{Name: "Insurance", Amount: decimal.NewFromInt(1200), Month: 3, StartYear: 2026, EndYear: &end}
	once := YearlyExpense{Name: "Wedding", Amount: decimal.NewFromInt(30000), Month: 6, StartYear: 2027}

	assert.False(t, recurring.AppliesIn(dateutil.NewMonthYear(3, 2025)))
	assert.True(t, recurring.AppliesIn(dateutil.NewMonthYear(3, 2026)))
	assert.True(t, recurring.AppliesIn(dateutil.NewMonthYear(3, 2028)))
	assert.False(t, recurring.AppliesIn(dateutil.NewMonthYear(3, 2029)))
	assert.False(t, recurring.AppliesIn(dateutil.NewMonthYear(4, 2026)))

	assert.True(t, once.AppliesIn(dateutil.NewMonthYear(6, 2027)))
	assert.False(t, once.AppliesIn(dateutil.NewMonthYear(6, 2028)))

	e := Expenses{
		Monthly: []ExpenseItem{{Name: "Rent", Amount: decimal.NewFromInt(2000)}, {Name: "Food", Amount: decimal.NewFromInt(600)}},
		Yearly:  []YearlyExpense{recurring, once},
	}
	assert.True(t, e.MonthlyExpenseTotal().Equal(decimal.NewFromInt(2600)))
	assert.True(t, e.YearlyExpensesDue(dateutil.NewMonthYear(3, 2027)).Equal(decimal.NewFromInt(1200)))
	assert.True(t, e.YearlyExpensesDue(dateutil.NewMonthYear(1, 2027)).IsZero())
}

func TestFinancialSnapshot_DeepCopy(t *testing.T) {
	end := 2030
	rate := decimal.NewFromInt(20)
	original := &FinancialSnapshot{
		PersonalInfo: PersonalInfo{
			Birthday:    dateutil.NewMonthYear(5, 1990),
			StartDate:   dateutil.NewMonthYear(1, 2026),
			CpfBalances: &CpfBalances{OA: decimal.NewFromInt(1000)},
		},
		Income: Income{
			CurrentSalary:     decimal.NewFromInt(6000),
			CpfRate:           &rate,
			SalaryAdjustments: []SalaryAdjustment{{Month: 1, Year: 2027, NewSalary: decimal.NewFromInt(7000)}},
		},
		Expenses: Expenses{
			Monthly: []ExpenseItem{{Name: "Rent", Amount: decimal.NewFromInt(2000)}},
			Yearly:  []YearlyExpense{{Name: "Tax", Month: 4, StartYear: 2026, EndYear: &end}},
		},
		YearlyBonuses: []YearlyBonus{{Month: 12, Year: 2026, Amount: decimal.NewFromInt(5000)}},
	}

	copied := original.DeepCopy()
	assert.NotSame(t, original, copied)
	assert.Equal(t, original, copied)

	copied.PersonalInfo.CpfBalances.OA = decimal.NewFromInt(1)
	*copied.Income.CpfRate = decimal.NewFromInt(5)
	copied.Income.SalaryAdjustments[0].NewSalary = decimal.Zero
	copied.Expenses.Monthly[0].Name = "Mortgage"
	*copied.Expenses.Yearly[0].EndYear = 2040
	copied.YearlyBonuses[0].Amount = decimal.Zero

	assert.True(t, original.PersonalInfo.CpfBalances.OA.Equal(decimal.NewFromInt(1000)))
	assert.True(t, original.Income.CpfRate.Equal(decimal.NewFromInt(20)))
	assert.True(t, original.Income.SalaryAdjustments[0].NewSalary.Equal(decimal.NewFromInt(7000)))
	assert.Equal(t, "Rent", original.Expenses.Monthly[0].Name)
	assert.Equal(t, 2030, *original.Expenses.Yearly[0].EndYear)
	assert.True(t, original.YearlyBonuses[0].Amount.Equal(decimal.NewFromInt(5000)))

	var nilSnap *FinancialSnapshot
	assert.Nil(t, nilSnap.DeepCopy())
}

func TestProjectionSettings(t *testing.T) {
	s := DefaultProjectionSettings()
	assert.Equal(t, 120, s.TotalMonths())
	assert.True(t, s.Goal().Equal(DefaultSavingsGoal))

	s.SavingsGoal = decimal.Zero
	assert.True(t, s.Goal().Equal(DefaultSavingsGoal))
	s.SavingsGoal = decimal.NewFromInt(50000)
	assert.True(t, s.Goal().Equal(decimal.NewFromInt(50000)))

	s.ProjectionYears = 0
	assert.Equal(t, 0, s.TotalMonths())
}

func TestCpfHelpers(t *testing.T) {
	b := CpfBalances{OA: decimal.NewFromInt(1), SA: decimal.NewFromInt(2), MA: decimal.NewFromInt(3), RA: decimal.NewFromInt(4)}
	assert.True(t, b.Total().Equal(decimal.NewFromInt(10)))
	assert.True(t, b.Get(AccountRA).Equal(decimal.NewFromInt(4)))
	assert.True(t, b.Get(Account("XX")).IsZero())

	pi := PersonalInfo{CurrentCpfBalance: decimal.NewFromInt(500)}
	assert.True(t, pi.StartingCpfBalances().OA.Equal(decimal.NewFromInt(500)))

	assert.True(t, Income{}.HasRateOverride() == false)

	r := ProjectionResult{}
	_, ok := r.Final()
	assert.False(t, ok)
}

func TestLookupParameter(t *testing.T) {
	p, ok := LookupParameter("cpf_interest")
	require.True(t, ok)
	assert.Equal(t, "percent", p.Unit)
	_, ok = LookupParameter("nope")
	assert.False(t, ok)
}
