package dateutil

import (
	"fmt"
	"time"
)

// MonthYear is a calendar month without a day component. Month is 1-12.
type MonthYear struct {
	Month int `yaml:"month" json:"month"`
	Year  int `yaml:"year" json:"year"`
}

// NewMonthYear normalizes month overflow, so NewMonthYear(13, 2024) is Jan 2025.
func NewMonthYear(month, year int) MonthYear {
	return MonthYear{Month: 1, Year: year}.AddMonths(month - 1)
}

// IsValid reports whether the month is in range.
func (m MonthYear) IsValid() bool {
	return m.Month >= 1 && m.Month <= 12
}

// AddMonths returns the month n months later (n may be negative).
func (m MonthYear) AddMonths(n int) MonthYear {
	idx := m.index() + n
	year := idx / 12
	month := idx % 12
	if month < 0 {
		month += 12
		year--
	}
	return MonthYear{Month: month + 1, Year: year}
}

// MonthsUntil returns the signed number of months from m to other.
func (m MonthYear) MonthsUntil(other MonthYear) int {
	return other.index() - m.index()
}

// Equal reports whether both refer to the same calendar month.
func (m MonthYear) Equal(other MonthYear) bool {
	return m.Month == other.Month && m.Year == other.Year
}

// Before reports whether m is strictly earlier than other.
func (m MonthYear) Before(other MonthYear) bool {
	return m.index() < other.index()
}

// Label formats the month as "Jan 2025".
func (m MonthYear) Label() string {
	if !m.IsValid() {
		return fmt.Sprintf("%02d/%d", m.Month, m.Year)
	}
	return fmt.Sprintf("%s %d", time.Month(m.Month).String()[:3], m.Year)
}

func (m MonthYear) String() string {
	return m.Label()
}

func (m MonthYear) index() int {
	return m.Year*12 + m.Month - 1
}

// AgeAt returns completed years of age at the given month. The birthday month
// counts as the month the new age is reached.
func AgeAt(birthday, at MonthYear) int {
	age := at.Year - birthday.Year
	if at.Month < birthday.Month {
		age--
	}
	return age
}

// AgeLabel formats age at the given month as "35y 4m".
func AgeLabel(birthday, at MonthYear) string {
	months := birthday.MonthsUntil(at)
	if months < 0 {
		return "0y 0m"
	}
	return fmt.Sprintf("%dy %dm", months/12, months%12)
}

// FormatDuration renders a month count as "2 years 3 months".
func FormatDuration(months int) string {
	years := months / 12
	rem := months % 12
	switch {
	case years == 0:
		return plural(rem, "month")
	case rem == 0:
		return plural(years, "year")
	default:
		return plural(years, "year") + " " + plural(rem, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
