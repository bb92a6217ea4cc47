package curve

import (
	"fmt"

	"github.com/curvyfi/curvy/internal/decimal"
)

// Lookup computes y(x) for a curve given by samples y on the uniform grid
// starting at x0 with spacing xStep, all scaled by 10^decimals.
//
// x is supplied in human units (without the scale); it is rescaled into grid
// units before the range check. Queries outside [x0, x_last] fail with a
// RangeError and are never clamped. Queries that hit a grid point exactly
// return the stored sample with zero interpolation error; queries strictly
// between two grid points return the linear blend of the neighbouring
// samples, computed entirely with checked decimal arithmetic.
//
// Identical inputs always produce a bit-identical result.
func Lookup(y []uint32, decimals uint8, xStep uint32, x0 uint32, x decimal.Decimal) (decimal.Decimal, error) {
	if len(y) == 0 {
		return decimal.Decimal{}, &ParamError{Reason: ReasonZeroYCount, Message: "no samples"}
	}

	scale := uint32(decimals)
	x0d := decimal.New(int64(x0), 0)
	step := decimal.New(int64(xStep), 0)

	span, err := step.Mul(decimal.New(int64(len(y))-1, 0))
	if err != nil {
		return decimal.Decimal{}, err
	}
	xLast, err := x0d.Add(span)
	if err != nil {
		return decimal.Decimal{}, err
	}

	// Rescale the query onto the grid.
	factor, err := decimal.Ten().Pow(decimal.New(int64(decimals), 0))
	if err != nil {
		return decimal.Decimal{}, err
	}
	xScaled, err := x.Mul(factor)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if xScaled.Cmp(x0d) < 0 || xScaled.Cmp(xLast) > 0 {
		return decimal.Decimal{}, &RangeError{X: xScaled, Min: x0d, Max: xLast}
	}

	offset, err := xScaled.Sub(x0d)
	if err != nil {
		return decimal.Decimal{}, err
	}
	idx, err := offset.Div(step)
	if err != nil {
		return decimal.Decimal{}, err
	}

	pre, err := idx.Floor()
	if err != nil {
		return decimal.Decimal{}, err
	}
	if pre < 0 || pre >= int64(len(y)) {
		return decimal.Decimal{}, fmt.Errorf("grid index %d out of bounds for %d samples", pre, len(y))
	}

	if idx.Cmp(decimal.New(pre, 0)) == 0 {
		// Exact grid hit. This also covers the right boundary, where a
		// "next" index would not exist.
		return decimal.New(int64(y[pre]), scale), nil
	}

	post := pre + 1
	if post >= int64(len(y)) {
		return decimal.Decimal{}, fmt.Errorf("grid index %d out of bounds for %d samples", post, len(y))
	}

	xPre, err := gridX(x0d, step, pre)
	if err != nil {
		return decimal.Decimal{}, err
	}
	xPost, err := gridX(x0d, step, post)
	if err != nil {
		return decimal.Decimal{}, err
	}

	yPre := decimal.New(int64(y[pre]), scale)
	yPost := decimal.New(int64(y[post]), scale)

	// How far x sits into its segment, as a fraction of the segment width.
	diffX, err := xPost.Sub(xPre)
	if err != nil {
		return decimal.Decimal{}, err
	}
	num, err := xScaled.Sub(xPre)
	if err != nil {
		return decimal.Decimal{}, err
	}
	n, err := num.Div(diffX)
	if err != nil {
		return decimal.Decimal{}, err
	}

	diffY, err := yPost.Sub(yPre)
	if err != nil {
		return decimal.Decimal{}, err
	}
	blend, err := diffY.Mul(n)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return blend.Add(yPre)
}

// Lookup computes y(x) against the record's samples. The record must have
// passed CheckParams when it was committed.
func (r *Record) Lookup(x decimal.Decimal) (decimal.Decimal, error) {
	return Lookup(r.Samples(), r.Decimals, r.XStep, r.X0, x)
}

func gridX(x0, step decimal.Decimal, idx int64) (decimal.Decimal, error) {
	offset, err := step.Mul(decimal.New(idx, 0))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return x0.Add(offset)
}
