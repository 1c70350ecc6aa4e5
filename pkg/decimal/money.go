package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	half    = decimal.New(5, -1)
	hundred = decimal.NewFromInt(100)
)

// Money represents a monetary amount in whole currency units with exact decimal arithmetic
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from an integer amount
func NewMoney(value int64) Money {
	return Money{decimal.NewFromInt(value)}
}

// NewMoneyFromFloat creates a new Money instance from a float64
func NewMoneyFromFloat(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// ParseAmount parses user-entered text. Surrounding whitespace and thousands
// separators are ignored. The second return value is false when the text is
// empty or not a finite number.
func ParseAmount(value string) (Money, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if s == "" {
		return Money{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, false
	}
	return Money{d}, true
}

// ParseAmountOrZero is the permissive variant used for optional line items.
func ParseAmountOrZero(value string) Money {
	m, ok := ParseAmount(value)
	if !ok {
		return Zero()
	}
	return m
}

// RoundUnit rounds to the nearest whole currency unit, halves toward positive
// infinity (2.5 -> 3, -2.5 -> -2).
func (m Money) RoundUnit() Money {
	return Money{m.Decimal.Add(half).Floor()}
}

// Floor truncates toward negative infinity to a whole currency unit
func (m Money) Floor() Money {
	return Money{m.Decimal.Floor()}
}

// Percent returns m * rate / 100 where rate is expressed in percent
func (m Money) Percent(rate decimal.Decimal) Money {
	return Money{m.Decimal.Mul(rate).Div(hundred)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Div divides by a decimal factor
func (m Money) Div(factor decimal.Decimal) Money {
	return Money{m.Decimal.Div(factor)}
}

// GreaterThan checks if this amount is greater than another
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// GreaterThanOrEqual checks if this amount is greater than or equal to another
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.Decimal.GreaterThanOrEqual(other.Decimal)
}

// LessThan checks if this amount is less than another
func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// Equal checks if this amount equals another
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// Sum adds up a list of amounts
func Sum(amounts ...Money) Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the plain representation without trailing zeros
func (m Money) String() string {
	return m.Decimal.String()
}

// Format renders the amount with a dollar sign and thousands separators,
// e.g. 42857 -> "$42,857" and -1200.5 -> "-$1,200.5".
func (m Money) Format() string {
	s := m.Decimal.Abs().String()
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	if m.Decimal.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}
