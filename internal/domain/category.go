package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCategory is returned when an employee category is outside the
// four recognised residency categories.
var ErrInvalidCategory = errors.New("invalid employee category")

// EmployeeCategory is the CPF residency category that selects a contribution rate table.
type EmployeeCategory int

const (
	CategoryCitizen EmployeeCategory = iota
	CategoryPRYear1
	CategoryPRYear2
	CategoryPRYear3Plus
)

var categoryNames = [...]string{
	CategoryCitizen:     "citizen",
	CategoryPRYear1:     "pr_year_1",
	CategoryPRYear2:     "pr_year_2",
	CategoryPRYear3Plus: "pr_year_3_plus",
}

// AllCategories lists every category in table order.
func AllCategories() []EmployeeCategory {
	return []EmployeeCategory{CategoryCitizen, CategoryPRYear1, CategoryPRYear2, CategoryPRYear3Plus}
}

// IsValid reports whether c is one of the declared categories.
func (c EmployeeCategory) IsValid() bool {
	return c >= CategoryCitizen && c <= CategoryPRYear3Plus
}

func (c EmployeeCategory) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("EmployeeCategory(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseEmployeeCategory accepts the canonical names plus a few common spellings
// ("pr1", "pr-year-2", "PR 3+").
func ParseEmployeeCategory(s string) (EmployeeCategory, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)

	switch key {
	case "", "citizen", "sc", "singapore_citizen":
		return CategoryCitizen, nil
	case "pr_year_1", "pr1", "pr_1", "pr_first_year":
		return CategoryPRYear1, nil
	case "pr_year_2", "pr2", "pr_2", "pr_second_year":
		return CategoryPRYear2, nil
	case "pr_year_3_plus", "pr3", "pr_3", "pr_3+", "pr3+", "pr_year_3+", "pr":
		return CategoryPRYear3Plus, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c EmployeeCategory) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	return []byte(categoryNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *EmployeeCategory) UnmarshalText(text []byte) error {
	parsed, err := ParseEmployeeCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
