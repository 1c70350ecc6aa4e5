package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func TestConstructors(t *testing.T) {
	m := NewMoney(45000)
	if m.String() != "45000" {
		t.Fatalf("NewMoney display mismatch: got %s", m.String())
	}

	d := stddec.NewFromFloat(10.125)
	m2 := NewMoneyFromDecimal(d)
	if !m2.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m2.Decimal, d)
	}

	m3, err := NewMoneyFromString("123.45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m3.String() != "123.45" {
		t.Fatalf("NewMoneyFromString display mismatch: got %s", m3.String())
	}

	if _, err := NewMoneyFromString("not-a-number"); err == nil {
		t.Fatalf("expected error for invalid string")
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"20000", "20000", true},
		{"  1500.5 ", "1500.5", true},
		{"45,000", "45000", true},
		{"0", "0", true},
		{"", "", false},
		{"   ", "", false},
		{"abc", "", false},
		{"12abc", "", false},
	}
	for _, c := range cases {
		m, ok := ParseAmount(c.in)
		if ok != c.ok {
			t.Fatalf("ParseAmount(%q) ok=%v want %v", c.in, ok, c.ok)
		}
		if ok && m.String() != c.out {
			t.Fatalf("ParseAmount(%q) got %s want %s", c.in, m.String(), c.out)
		}
	}

	if got := ParseAmountOrZero("oops").String(); got != "0" {
		t.Fatalf("ParseAmountOrZero fallback got %s", got)
	}
}

func TestRoundUnit(t *testing.T) {
	// Halves round toward positive infinity
	cases := []struct{ in, out string }{
		{"42857.142857", "42857"},
		{"4285.714285", "4286"},
		{"527.5", "528"},
		{"422.4", "422"},
		{"2.5", "3"},
		{"-2.5", "-2"},
		{"-2.6", "-3"},
	}
	for _, c := range cases {
		m, _ := NewMoneyFromString(c.in)
		if got := m.RoundUnit().String(); got != c.out {
			t.Fatalf("RoundUnit(%s) got %s want %s", c.in, got, c.out)
		}
	}
}

func TestFloorAndPercent(t *testing.T) {
	m, _ := NewMoneyFromString("34285.71")
	if got := m.Floor().String(); got != "34285" {
		t.Fatalf("Floor got %s", got)
	}

	fee := NewMoney(45000).Percent(stddec.NewFromInt(10))
	if got := fee.String(); got != "4500" {
		t.Fatalf("Percent got %s", got)
	}
}

func TestArithmeticAndComparisons(t *testing.T) {
	a := NewMoney(1000)
	b := NewMoney(250)
	if got := a.Add(b).String(); got != "1250" {
		t.Fatalf("Add got %s", got)
	}
	if got := a.Sub(b).String(); got != "750" {
		t.Fatalf("Sub got %s", got)
	}
	if got := a.Mul(stddec.NewFromFloat(0.1)).String(); got != "100" {
		t.Fatalf("Mul got %s", got)
	}
	if got := a.Div(stddec.NewFromInt(4)).String(); got != "250" {
		t.Fatalf("Div got %s", got)
	}
	if got := Sum(a, b, NewMoney(-50)).String(); got != "1200" {
		t.Fatalf("Sum got %s", got)
	}
	if !a.GreaterThan(b) || !b.LessThan(a) || !a.GreaterThanOrEqual(NewMoney(1000)) {
		t.Fatalf("comparison helpers disagree")
	}
	if !Zero().Equal(NewMoney(0)) {
		t.Fatalf("Zero should equal NewMoney(0)")
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in  Money
		out string
	}{
		{NewMoney(0), "$0"},
		{NewMoney(999), "$999"},
		{NewMoney(42857), "$42,857"},
		{NewMoney(1234567), "$1,234,567"},
		{NewMoney(-2036), "-$2,036"},
		{NewMoneyFromFloat(1500.5), "$1,500.5"},
	}
	for _, c := range cases {
		if got := c.in.Format(); got != c.out {
			t.Fatalf("Format(%s) got %s want %s", c.in, got, c.out)
		}
	}
}
