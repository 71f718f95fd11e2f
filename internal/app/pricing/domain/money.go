package domain

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"golang.org/x/text/currency"
)

// percentScale is the finest percentage precision we accept (1/10000 of a percent point),
// keeping every stored percentage well inside Spanner NUMERIC scale.
const percentScale = 10000

var hundred = big.NewRat(100, 1)

// Currency is a validated ISO-4217 currency with its minor-unit scale.
type Currency struct {
	code  string
	scale int
}

// ParseCurrency validates an ISO-4217 code and resolves its minor-unit scale.
// Example: "EUR" has scale 2 (1 EUR = 100 cents), "JPY" has scale 0.
func ParseCurrency(code string) (Currency, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return Currency{}, fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return Currency{code: unit.String(), scale: scale}, nil
}

// Code returns the ISO-4217 code.
func (c Currency) Code() string { return c.code }

// Scale returns the number of minor-unit decimal places.
func (c Currency) Scale() int { return c.scale }

// IsZero reports whether the currency was never set.
func (c Currency) IsZero() bool { return c.code == "" }

// MinorPerMajor returns how many minor units make one whole currency unit.
func (c Currency) MinorPerMajor() int64 {
	n := int64(1)
	for i := 0; i < c.scale; i++ {
		n *= 10
	}
	return n
}

// String returns the currency code.
func (c Currency) String() string { return c.code }

// Percent is an exact percentage value: 12.5 means 12.5%.
// It wraps big.Rat so that percentage math never goes through floating point.
// The zero value is 0%.
type Percent struct {
	rat *big.Rat
}

// NewPercent parses a decimal percentage such as "20" or "12.5".
func NewPercent(s string) (Percent, error) {
	rat, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return Percent{}, fmt.Errorf("%w: %q", ErrInvalidPercent, s)
	}
	return PercentFromRat(rat)
}

// PercentFromRat builds a Percent from a rational number.
func PercentFromRat(rat *big.Rat) (Percent, error) {
	if rat == nil {
		return Percent{}, nil
	}
	scaled := new(big.Rat).Mul(rat, big.NewRat(percentScale, 1))
	if !scaled.IsInt() {
		return Percent{}, fmt.Errorf("%w: %s has more than 4 decimal places", ErrInvalidPercent, rat.FloatString(10))
	}
	return Percent{rat: new(big.Rat).Set(rat)}, nil
}

// PercentOf returns a whole-number percentage. Handy for configuration defaults and tests.
func PercentOf(whole int64) Percent {
	return Percent{rat: big.NewRat(whole, 1)}
}

// Rat returns a copy of the underlying rational value.
func (p Percent) Rat() *big.Rat {
	if p.rat == nil {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.rat)
}

// IsZero returns true for 0%.
func (p Percent) IsZero() bool { return p.rat == nil || p.rat.Sign() == 0 }

// IsNegative returns true for percentages below zero.
func (p Percent) IsNegative() bool { return p.rat != nil && p.rat.Sign() < 0 }

// GreaterThan compares two percentages.
func (p Percent) GreaterThan(other Percent) bool { return p.Rat().Cmp(other.Rat()) > 0 }

// Equals compares two percentages exactly.
func (p Percent) Equals(other Percent) bool { return p.Rat().Cmp(other.Rat()) == 0 }

// Of applies the percentage to an amount in minor units with round-half-up.
// Formula: round(amount * p / 100). ErrAmountOverflow when the result leaves int64.
func (p Percent) Of(amount int64) (int64, error) {
	if p.IsZero() || amount == 0 {
		return 0, nil
	}
	r := new(big.Rat).SetInt64(amount)
	r.Mul(r, p.rat)
	r.Quo(r, hundred)
	return roundHalfUp(r)
}

// String renders the percentage without trailing zeros ("12.5", "20").
func (p Percent) String() string {
	s := p.Rat().FloatString(4)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// MarshalText implements encoding.TextMarshaler.
func (p Percent) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Percent) UnmarshalText(text []byte) error {
	parsed, err := NewPercent(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// roundHalfUp rounds a rational to the nearest integer, halves toward +infinity.
// floor((2*num + den) / (2*den)); big.Int.Div is Euclidean, so with den > 0 it floors.
func roundHalfUp(r *big.Rat) (int64, error) {
	num := new(big.Int).Mul(r.Num(), big.NewInt(2))
	num.Add(num, r.Denom())
	den := new(big.Int).Mul(r.Denom(), big.NewInt(2))
	q := new(big.Int).Div(num, den)
	if !q.IsInt64() {
		return 0, ErrAmountOverflow
	}
	return q.Int64(), nil
}

// ceilToMultiple rounds a non-negative amount up to the next multiple of step.
func ceilToMultiple(amount, step int64) (int64, error) {
	if step <= 1 {
		return amount, nil
	}
	rem := amount % step
	if rem == 0 {
		return amount, nil
	}
	if rem < 0 {
		return amount - rem, nil
	}
	return addAmounts(amount, step-rem)
}

// addAmounts sums minor-unit amounts, failing with ErrAmountOverflow instead of wrapping.
func addAmounts(amounts ...int64) (int64, error) {
	var sum int64
	for _, a := range amounts {
		next := sum + a
		if (a > 0 && next < sum) || (a < 0 && next > sum) {
			return 0, ErrAmountOverflow
		}
		sum = next
	}
	return sum, nil
}

// mulAmount multiplies a minor-unit amount by a count, failing with ErrAmountOverflow
// instead of wrapping.
func mulAmount(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrAmountOverflow
	}
	return p, nil
}
