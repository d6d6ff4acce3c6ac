package calculation

import (
	"math"

	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TieredInterest computes interest on the four CPF accounts for the given
// number of months. The extra-interest tiers apply to the combined balance and
// are filled from SA, MA, RA and then OA.
func (c *CpfCalculator) TieredInterest(balances domain.CpfBalances, age, months int) domain.InterestBreakdown {
	ir := c.Rules.Interest
	out := domain.InterestBreakdown{
		Age:           age,
		Months:        months,
		Tier1Applied:  decimal.Zero,
		Tier2Applied:  decimal.Zero,
		TotalInterest: decimal.Zero,
	}
	if months <= 0 {
		return out
	}
	m := decimal.NewFromInt(int64(months))

	tier1Extra := ir.Tier1Extra
	if age >= 55 {
		tier1Extra = ir.Tier1Extra55Plus
	}
	room1 := ir.Tier1Limit
	room2 := ir.Tier2Limit

	for _, acct := range domain.BonusFillOrder {
		bal := nonNegative(balances.Get(acct))
		base := ir.BaseRate(acct)
		left := bal

		t1 := minDecimal(left, room1)
		room1 = room1.Sub(t1)
		left = left.Sub(t1)
		t2 := minDecimal(left, room2)
		room2 = room2.Sub(t2)
		left = left.Sub(t2)

		ai := domain.AccountInterest{Account: acct, Balance: bal, BaseRate: base, Interest: decimal.Zero}
		for _, slice := range []domain.TierSlice{
			{Tier: 1, Amount: t1, ExtraRate: tier1Extra},
			{Tier: 2, Amount: t2, ExtraRate: ir.Tier2Extra},
			{Tier: 0, Amount: left, ExtraRate: decimal.Zero},
		} {
			if !slice.Amount.IsPositive() {
				continue
			}
			slice.Interest = slice.Amount.Mul(base.Add(slice.ExtraRate)).Mul(m).Div(twelve)
			ai.Interest = ai.Interest.Add(slice.Interest)
			ai.Tiers = append(ai.Tiers, slice)
		}
		if bal.IsPositive() {
			ai.EffectiveRate = ai.Interest.Mul(twelve).Div(bal.Mul(m))
		} else {
			ai.EffectiveRate = base
		}
		out.Accounts = append(out.Accounts, ai)
		out.TotalInterest = out.TotalInterest.Add(ai.Interest)
	}

	out.Tier1Applied = ir.Tier1Limit.Sub(room1)
	out.Tier2Applied = ir.Tier2Limit.Sub(room2)
	return out
}

// TieredCpfGrowth advances account balances by one month of tiered interest and
// then credits the allocation. From 55 the SA share is credited to RA.
func (c *CpfCalculator) TieredCpfGrowth(balances domain.CpfBalances, alloc domain.CpfAllocation, age int) (domain.CpfBalances, domain.InterestBreakdown) {
	ib := c.TieredInterest(balances, age, 1)
	next := balances
	for _, ai := range ib.Accounts {
		switch ai.Account {
		case domain.AccountOA:
			next.OA = next.OA.Add(ai.Interest)
		case domain.AccountSA:
			next.SA = next.SA.Add(ai.Interest)
		case domain.AccountMA:
			next.MA = next.MA.Add(ai.Interest)
		case domain.AccountRA:
			next.RA = next.RA.Add(ai.Interest)
		}
	}
	next.OA = next.OA.Add(alloc.OA)
	next.MA = next.MA.Add(alloc.MA)
	if age >= 55 {
		next.RA = next.RA.Add(alloc.SA)
	} else {
		next.SA = next.SA.Add(alloc.SA)
	}
	return next, ib
}

// SimpleCpfGrowth compounds a single CPF balance by one month at a flat annual
// rate and adds the month's contribution.
func SimpleCpfGrowth(balance, contribution, annualRatePct decimal.Decimal) decimal.Decimal {
	return balance.Mul(one.Add(monthlyRateFromAnnual(annualRatePct))).Add(contribution)
}

// monthlyRateFromAnnual converts an annual percentage into the equivalent
// compound monthly rate, (1+r)^(1/12) - 1.
func monthlyRateFromAnnual(annualPct decimal.Decimal) decimal.Decimal {
	if annualPct.IsZero() {
		return decimal.Zero
	}
	r := pctToFraction(annualPct).InexactFloat64()
	if r <= -1 {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromFloat(math.Pow(1+r, 1.0/12) - 1)
}
