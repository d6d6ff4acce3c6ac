package calculation

import "github.com/rgehrsitz/sgplan/internal/domain"

var (
	contributionBoundaries = []int{55, 60, 65, 70}
	allocationBoundaries   = []int{35, 45, 50, 55, 60, 65, 70}
)

// ContributionBracketForAge maps an age to its contribution band. Each band is
// inclusive of its upper age, so 55 is still in the <=55 band. Negative ages
// fall into the lowest band.
func ContributionBracketForAge(age int) domain.ContributionBracket {
	for i, b := range contributionBoundaries {
		if age <= b {
			return domain.ContributionBracket(i)
		}
	}
	return domain.ContributionAbove70
}

// AllocationBracketForAge maps an age to its allocation band.
func AllocationBracketForAge(age int) domain.AllocationBracket {
	for i, b := range allocationBoundaries {
		if age <= b {
			return domain.AllocationBracket(i)
		}
	}
	return domain.AllocationAbove70
}

// crossed returns the boundaries b with age <= b < age+years.
func crossed(boundaries []int, age, years int) []int {
	if years <= 0 {
		return nil
	}
	var out []int
	for _, b := range boundaries {
		if age <= b && b < age+years {
			out = append(out, b)
		}
	}
	return out
}

// BracketCrossing reports the contribution boundaries passed while ageing
// yearsAhead years from currentAge.
func BracketCrossing(currentAge, yearsAhead int) domain.BracketCrossing {
	bs := crossed(contributionBoundaries, currentAge, yearsAhead)
	to := currentAge
	if yearsAhead > 0 {
		to = currentAge + yearsAhead
	}
	return domain.BracketCrossing{
		Crosses:           len(bs) > 0,
		CrossedBoundaries: bs,
		From:              ContributionBracketForAge(currentAge),
		To:                ContributionBracketForAge(to),
	}
}

// AllocationBracketCrossing is BracketCrossing for the allocation bands.
func AllocationBracketCrossing(currentAge, yearsAhead int) domain.AllocationCrossing {
	bs := crossed(allocationBoundaries, currentAge, yearsAhead)
	to := currentAge
	if yearsAhead > 0 {
		to = currentAge + yearsAhead
	}
	return domain.AllocationCrossing{
		Crosses:           len(bs) > 0,
		CrossedBoundaries: bs,
		From:              AllocationBracketForAge(currentAge),
		To:                AllocationBracketForAge(to),
	}
}
