package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point amount with two fraction digits. Prices are stored
// as exact decimal strings, so every comparison goes through this type
// instead of ad-hoc float casts at each call site.
type Money struct {
	d decimal.Decimal
}

func Zero() Money {
	return Money{}
}

func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

func FromInt(n int64) Money {
	return Money{d: decimal.NewFromInt(n)}
}

// Parse converts a decimal string like "19.99" into Money. The input must be
// a plain decimal number; anything else is rejected rather than coerced.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", s, err)
	}

	return Money{d: d}, nil
}

func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Float64 is for the outward JSON shape only; internal comparisons stay exact.
func (m Money) Float64() float64 {
	return m.d.InexactFloat64()
}

// String renders with exactly two fraction digits, matching the stored form.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

func (m Money) LessThan(other Money) bool {
	return m.d.LessThan(other.d)
}

func (m Money) GreaterThan(other Money) bool {
	return m.d.GreaterThan(other.d)
}

func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

func (m Money) IsZero() bool {
	return m.d.IsZero()
}
