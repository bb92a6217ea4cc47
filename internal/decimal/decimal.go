// Package decimal provides checked fixed-point decimal arithmetic for curve
// geometry and interpolation.
//
// All operations are routed through a single immutable context so identical
// inputs always produce bit-identical results. Overflow, underflow, division
// by zero, and invalid operations surface as errors - values never wrap,
// saturate, or become NaN. Inexact rounding (division that does not
// terminate within the working precision) is permitted; every other
// operation in this domain is exact.
package decimal

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// ctx is the shared arithmetic context. 34 digits comfortably covers the
// full u32 sample range at any supported scale (0..9). DefaultTraps turns
// overflow/underflow/division-by-zero/invalid-operation conditions into
// returned errors.
var ctx = apd.Context{
	Precision:   34,
	MaxExponent: apd.BaseContext.MaxExponent,
	MinExponent: apd.BaseContext.MinExponent,
	Rounding:    apd.RoundHalfUp,
	Traps:       apd.DefaultTraps,
}

// Decimal is an immutable fixed-point decimal value.
//
// The zero value is 0.
type Decimal struct {
	v apd.Decimal
}

// Error reports a failed arithmetic operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("decimal %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns value scaled down by 10^scale, i.e. value·10^-scale.
// New(250, 2) is 2.50.
func New(value int64, scale uint32) Decimal {
	var d Decimal
	d.v.SetFinite(value, -int32(scale))
	return d
}

// Ten is the base used when rescaling between human and grid units.
func Ten() Decimal {
	return New(10, 0)
}

// Parse reads a decimal from its text form, e.g. "2.50" or "-0.01".
func Parse(s string) (Decimal, error) {
	var d Decimal
	if _, _, err := d.v.SetString(s); err != nil {
		return Decimal{}, &Error{Op: "parse", Err: err}
	}
	return d, nil
}

// Add returns d + o, erroring on overflow.
func (d Decimal) Add(o Decimal) (Decimal, error) {
	var r Decimal
	if _, err := ctx.Add(&r.v, &d.v, &o.v); err != nil {
		return Decimal{}, &Error{Op: "add", Err: err}
	}
	return r, nil
}

// Sub returns d - o, erroring on overflow.
func (d Decimal) Sub(o Decimal) (Decimal, error) {
	var r Decimal
	if _, err := ctx.Sub(&r.v, &d.v, &o.v); err != nil {
		return Decimal{}, &Error{Op: "sub", Err: err}
	}
	return r, nil
}

// Mul returns d · o, erroring on overflow.
func (d Decimal) Mul(o Decimal) (Decimal, error) {
	var r Decimal
	if _, err := ctx.Mul(&r.v, &d.v, &o.v); err != nil {
		return Decimal{}, &Error{Op: "mul", Err: err}
	}
	return r, nil
}

// Div returns d / o, erroring on division by zero or overflow. The result
// is rounded half-up to the working precision when the quotient does not
// terminate.
func (d Decimal) Div(o Decimal) (Decimal, error) {
	var r Decimal
	if _, err := ctx.Quo(&r.v, &d.v, &o.v); err != nil {
		return Decimal{}, &Error{Op: "div", Err: err}
	}
	return r, nil
}

// Pow returns d^o, erroring on overflow or invalid exponents.
func (d Decimal) Pow(o Decimal) (Decimal, error) {
	var r Decimal
	if _, err := ctx.Pow(&r.v, &d.v, &o.v); err != nil {
		return Decimal{}, &Error{Op: "pow", Err: err}
	}
	return r, nil
}

// Cmp compares d and o numerically: -1 if d < o, 0 if equal, +1 if d > o.
// Values with different exponents but equal magnitude compare equal.
func (d Decimal) Cmp(o Decimal) int {
	return d.v.Cmp(&o.v)
}

// Floor returns the largest integer not greater than d, as an int64.
func (d Decimal) Floor() (int64, error) {
	var f apd.Decimal
	if _, err := ctx.Floor(&f, &d.v); err != nil {
		return 0, &Error{Op: "floor", Err: err}
	}
	n, err := f.Int64()
	if err != nil {
		return 0, &Error{Op: "floor", Err: err}
	}
	return n, nil
}

// IsZero reports whether d is numerically zero.
func (d Decimal) IsZero() bool {
	return d.v.IsZero()
}

// String renders d in plain fixed-point notation, never scientific.
func (d Decimal) String() string {
	return d.v.Text('f')
}
