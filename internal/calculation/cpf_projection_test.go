package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectCpfAccounts_Young(t *testing.T) {
	engine := NewCalculationEngine()
	snap := testSnapshot()
	snap.PersonalInfo.CpfBalances = &domain.CpfBalances{OA: dec("20000"), SA: dec("10000"), MA: dec("8000")}

	proj, err := engine.ProjectCpfAccounts(context.Background(), snap, flatSettings(2))
	require.NoError(t, err)
	require.Len(t, proj.Points, 24)
	require.Len(t, proj.Years, 2)
	assert.Nil(t, proj.RAFormedMonth)

	first := proj.Points[0]
	assertDecimal(t, "1850", first.Contribution, "contribution")
	assert.True(t, first.Allocation.Sum().Equal(first.Contribution), "allocation sums to contribution")
	assert.True(t, first.Interest.IsPositive())

	prev := snap.PersonalInfo.CpfBalances.Total()
	for _, p := range proj.Points {
		assert.True(t, p.Balances.Total().GreaterThan(prev), "month %d balance should grow", p.Month)
		prev = p.Balances.Total()
	}
	assert.True(t, proj.TotalInterest.IsPositive())
	assert.True(t, proj.Years[1].Closing.Total().Equal(proj.Points[23].Balances.Total()))
	assertDecimal(t, "22200", proj.Years[0].Contributions, "a year of contributions")
}

func TestProjectCpfAccounts_FormsRetirementAccountAt55(t *testing.T) {
	engine := NewCalculationEngine()
	snap := testSnapshot()
	snap.PersonalInfo.Birthday = dateutil.NewMonthYear(6, 1971)
	snap.PersonalInfo.CpfBalances = &domain.CpfBalances{OA: dec("150000"), SA: dec("100000"), MA: dec("60000")}

	proj, err := engine.ProjectCpfAccounts(context.Background(), snap, flatSettings(1))
	require.NoError(t, err)
	require.NotNil(t, proj.RAFormedMonth)
	assert.Equal(t, 6, *proj.RAFormedMonth)

	before := proj.Points[4].Balances
	assert.True(t, before.RA.IsZero(), "no RA before 55")

	at55 := proj.Points[5]
	assert.Equal(t, 55, at55.Age)
	assert.Contains(t, at55.Milestone, "Retirement account formed")
	assert.Contains(t, at55.Milestone, "Full Retirement Sum reached")
	assert.True(t, at55.Balances.SA.IsZero(), "SA closes into RA")
	assert.True(t, at55.Balances.RA.GreaterThanOrEqual(dec("213000")))
	assert.True(t, at55.Balances.OA.LessThan(before.OA), "OA tops up RA")

	after := proj.Points[6].Balances
	assert.True(t, after.RA.GreaterThan(at55.Balances.RA), "SA share flows to RA")
	assert.True(t, after.SA.IsZero())
}

func TestProjectCpfAccounts_MediSaveCeilingResetsInJanuary(t *testing.T) {
	rules := DefaultCpfRules()
	rules.Ceilings.MediSaveAnnual = dec("1000")
	engine := NewCalculationEngineWithConfig(rules)

	snap := testSnapshot()
	snap.PersonalInfo.StartDate = dateutil.NewMonthYear(11, 2026)
	proj, err := engine.ProjectCpfAccounts(context.Background(), snap, flatSettings(1))
	require.NoError(t, err)

	// 399.97 per month: Nov and Dec fill 799.94, Jan starts a new year.
	assertDecimal(t, "399.97", proj.Points[0].Allocation.MA, "Nov")
	assertDecimal(t, "399.97", proj.Points[1].Allocation.MA, "Dec")
	assertDecimal(t, "399.97", proj.Points[2].Allocation.MA, "Jan after reset")
	assertDecimal(t, "399.97", proj.Points[3].Allocation.MA, "Feb")
	assertDecimal(t, "200.06", proj.Points[4].Allocation.MA, "Mar capped at ceiling")
	assert.True(t, proj.Points[4].Allocation.MediSave.ExceededCeiling)
}

func TestProjectCpfAccounts_NilSnapshot(t *testing.T) {
	_, err := NewCalculationEngine().ProjectCpfAccounts(context.Background(), nil, flatSettings(1))
	assert.Error(t, err)
}
