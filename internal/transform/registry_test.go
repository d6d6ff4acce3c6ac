package transform

import (
	"reflect"
	"testing"

	"github.com/rgehrsitz/sgplan/pkg/dateutil"
	"github.com/shopspring/decimal"
)

func TestTransformRegistry_List(t *testing.T) {
	want := []string{"add_expense", "career_break", "change_return", "extend_horizon", "extra_repayment", "raise_salary"}
	if got := NewTransformRegistry().List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec    string
		name    string
		wantErr bool
	}{
		{"raise_salary:percent=10", "raise_salary", false},
		{"raise_salary:amount=7000,from=2027-01", "raise_salary", false},
		{"career_break:start=2027-01,months=6", "career_break", false},
		{"add_expense:name=Car,amount=20000,month=5,year=2028", "add_expense", false},
		{"extra_repayment:amount=300", "extra_repayment", false},
		{"change_return:investment=6%,cpf=3", "change_return", false},
		{"extend_horizon:years=5", "extend_horizon", false},
		{"raise_salary", "", true},
		{"raise_salary:", "", true},
		{"raise_salary:percent", "", true},
		{"raise_salary:percent=abc", "", true},
		{"career_break:months=6", "", true},
		{"career_break:start=2027-13,months=6", "", true},
		{"career_break:start=2027-01", "", true},
		{"add_expense:amount=1", "", true},
		{"change_return:foo=1", "", true},
		{"unknown:x=1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := registry.ParseTransformSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.spec)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tr.Name() != tt.name {
				t.Errorf("Name() = %s, want %s", tr.Name(), tt.name)
			}
		})
	}
}

func TestParseTransformSpec_Values(t *testing.T) {
	tr, err := NewTransformRegistry().ParseTransformSpec("raise_salary:amount=7000,from=2027-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rs := tr.(*RaiseSalary)
	if !rs.NewSalary.Equal(decimal.NewFromInt(7000)) {
		t.Errorf("NewSalary = %s", rs.NewSalary)
	}
	if rs.From == nil || *rs.From != (dateutil.MonthYear{Month: 3, Year: 2027}) {
		t.Errorf("From = %v", rs.From)
	}

	tr, err = NewTransformRegistry().ParseTransformSpec("add_expense:name=Holiday,amount=4000,month=12,year=2026,end_year=2030")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ae := tr.(*AddExpense)
	if ae.EndYear == nil || *ae.EndYear != 2030 || ae.Month != 12 || ae.StartYear != 2026 {
		t.Errorf("unexpected expense %+v", ae)
	}
}

func TestParseMonthYear(t *testing.T) {
	m, err := ParseMonthYear("2028-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Month != 9 || m.Year != 2028 {
		t.Errorf("got %v", m)
	}
	for _, bad := range []string{"2028", "09-2028x", "2028-00", "x-01"} {
		if _, err := ParseMonthYear(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
