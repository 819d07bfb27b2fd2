// Package money represents monetary values as signed integer cents.
//
// Amounts cross the API boundary as decimal numbers and are parsed with exact
// decimal arithmetic, so sums never accumulate binary floating-point error.
package money

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a value cannot be represented in cents.
var ErrInvalidAmount = errors.New("invalid money amount")

// Scale is the number of fractional digits kept for every amount.
const Scale = 2

var maxCents = decimal.NewFromInt(math.MaxInt64)

// Amount is a monetary value in cents.
type Amount int64

// Zero is the zero amount.
const Zero Amount = 0

// FromDecimal converts d to cents, rounding half away from zero at two places.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	cents := d.Round(Scale).Shift(Scale)
	if cents.Abs().GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %s is out of range", ErrInvalidAmount, d.String())
	}
	return Amount(cents.IntPart()), nil
}

// Parse converts a decimal string such as "12.34" to cents.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromCents returns the amount for a number of cents.
func FromCents(cents int64) Amount { return Amount(cents) }

// Cents returns the raw number of cents.
func (a Amount) Cents() int64 { return int64(a) }

// Decimal returns the amount as an exact decimal in major units.
func (a Amount) Decimal() decimal.Decimal { return decimal.New(int64(a), -Scale) }

// IsPositive reports whether a is strictly greater than zero.
func (a Amount) IsPositive() bool { return a > 0 }

// Neg returns -a.
func (a Amount) Neg() Amount { return -a }

// String formats the amount with exactly two fractional digits.
func (a Amount) String() string { return a.Decimal().StringFixed(Scale) }

// Float64 returns the closest float64, for spreadsheet cells only.
func (a Amount) Float64() float64 {
	f, _ := a.Decimal().Float64()
	return f
}

// MarshalJSON renders the amount as a bare JSON number ("12.34").
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"' {
		b = b[1 : len(b)-1]
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
