package calculation

import (
	"github.com/rgehrsitz/sgplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Allocate splits a total contribution across OA, SA and MA for the member's
// age. MA is capped by the remaining annual MediSave ceiling and by the Basic
// Healthcare Sum; the excess goes to SA and OA in their bracket ratio below 55
// and to SA (the RA share) from 55. The three amounts always sum to total:
// MA and SA are rounded to cents and OA takes the remainder.
func (c *CpfCalculator) Allocate(total decimal.Decimal, age int, mediSaveBalance, ytdMediSave decimal.Decimal) domain.CpfAllocation {
	bracket := AllocationBracketForAge(age)
	ceil := c.Rules.Ceilings
	total = nonNegative(total)
	ytdMediSave = nonNegative(ytdMediSave)
	mediSaveBalance = nonNegative(mediSaveBalance)

	alloc := domain.CpfAllocation{
		Total:   total,
		Age:     age,
		Bracket: bracket,
		OA:      decimal.Zero,
		SA:      decimal.Zero,
		MA:      decimal.Zero,
		Excess:  decimal.Zero,
	}

	var s domain.AllocationSplit
	if int(bracket) < len(c.Rules.Allocation) {
		s = c.Rules.Allocation[bracket]
	} else {
		// no row for this bracket: everything to OA
		s = domain.AllocationSplit{OA: one, SA: decimal.Zero, MA: decimal.Zero}
	}

	oa := total.Mul(s.OA)
	sa := total.Mul(s.SA)
	ma := total.Mul(s.MA)

	status := domain.MediSaveStatus{Ceiling: ceil.MediSaveAnnual}

	excess := decimal.Zero
	ceilingRoom := nonNegative(ceil.MediSaveAnnual.Sub(ytdMediSave))
	if ma.GreaterThan(ceilingRoom) {
		excess = excess.Add(ma.Sub(ceilingRoom))
		ma = ceilingRoom
		status.ExceededCeiling = true
	}
	bhsRoom := nonNegative(ceil.BasicHealthcareSum.Sub(mediSaveBalance))
	if ma.GreaterThan(bhsRoom) {
		excess = excess.Add(ma.Sub(bhsRoom))
		ma = bhsRoom
		status.ExceededBHS = true
	}

	if excess.IsPositive() {
		if age < 55 {
			ratioBase := s.SA.Add(s.OA)
			if ratioBase.IsPositive() {
				toSA := excess.Mul(s.SA).Div(ratioBase)
				sa = sa.Add(toSA)
				oa = oa.Add(excess.Sub(toSA))
			} else {
				oa = oa.Add(excess)
			}
		} else {
			sa = sa.Add(excess)
		}
	}

	alloc.MA = ma.Round(2)
	alloc.SA = sa.Round(2)
	alloc.OA = total.Sub(alloc.MA).Sub(alloc.SA)
	if alloc.OA.IsNegative() {
		alloc.SA = alloc.SA.Add(alloc.OA)
		alloc.OA = decimal.Zero
	}
	alloc.Excess = excess.Round(2)

	status.Contributed = ytdMediSave.Add(alloc.MA)
	status.RemainingRoom = nonNegative(ceil.MediSaveAnnual.Sub(status.Contributed))
	alloc.MediSave = status
	return alloc
}
