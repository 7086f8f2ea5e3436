package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Epsilon is one minor currency unit (0.01). Balances within Epsilon of zero
// are treated as settled; split sums are validated against it.
var Epsilon = decimal.New(1, -2)

// Money is a fixed-point currency amount. All arithmetic is exact decimal;
// rounding to the minor unit happens only where a share is assigned or a
// value is formatted.
type Money struct {
	amount decimal.Decimal
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// FromFloat converts a float64 amount (as received over the API) to Money.
func FromFloat(f float64) Money {
	return Money{amount: decimal.NewFromFloat(f)}
}

// FromCents builds a Money from an integer number of minor units.
func FromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -2)}
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs()}
}

// Div divides by n without rounding. Callers assign shares with RoundCents
// and let the last share absorb the residual.
func (m Money) Div(n int64) Money {
	return Money{amount: m.amount.Div(decimal.NewFromInt(n))}
}

// Mul multiplies by an integer count.
func (m Money) Mul(n int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(n))}
}

// MulFloat multiplies by a float factor (percentage shares).
func (m Money) MulFloat(f float64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromFloat(f))}
}

// RoundCents rounds to the minor unit, half away from zero.
func (m Money) RoundCents() Money {
	return Money{amount: m.amount.Round(2)}
}

func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// WithinEpsilon reports whether the amount is close enough to zero to be
// treated as settled.
func (m Money) WithinEpsilon() bool {
	return m.amount.Abs().LessThanOrEqual(Epsilon)
}

// Min returns the smaller of m and other.
func Min(a, b Money) Money {
	if a.amount.LessThan(b.amount) {
		return a
	}
	return b
}

// Float64 converts for JSON responses. Amounts are rounded to the minor unit
// first so the float is exactly representable for practical magnitudes.
func (m Money) Float64() float64 {
	f, _ := m.amount.Round(2).Float64()
	return f
}

// String formats with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Scan implements sql.Scanner so numeric columns scan directly into Money.
func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("scan money: %w", err)
	}
	m.amount = d
	return nil
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.amount.Value()
}
