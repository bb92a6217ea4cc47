package curve

import (
	"fmt"
	"math"

	"github.com/curvyfi/curvy/internal/decimal"
)

// CheckParams verifies that curve geometry is internally consistent. It is
// pure and must pass before any create or alter commits: it is the sole gate
// protecting Lookup from fixed-point overflow.
//
// Each check fails with its own ParamError reason:
//
//  1. x_step is non-zero.
//  2. y_count is non-zero. Callers must reject sample lists longer than
//     MaxYCount before this layer.
//  3. decimals is in 0..9.
//  4. max_x = x0 + x_step·(y_count−1), at `decimals` scale, fits the sample
//     type at that scale.
//  5. max_x is strictly greater than x0.
func CheckParams(params Params) error {
	if _, err := PackLabel(params.Name); err != nil {
		return &ParamError{Reason: ReasonBadLabel, Message: fmt.Sprintf("name: %v", err)}
	}
	if _, err := PackLabel(params.Formula); err != nil {
		return &ParamError{Reason: ReasonBadLabel, Message: fmt.Sprintf("formula: %v", err)}
	}

	if params.XStep == 0 {
		return &ParamError{Reason: ReasonZeroXStep, Message: "x_step must be non-zero"}
	}
	if params.YCount == 0 {
		return &ParamError{Reason: ReasonZeroYCount, Message: "y_count must be non-zero"}
	}
	if params.Decimals > MaxDecimals {
		return &ParamError{
			Reason:  ReasonDecimalsRange,
			Message: fmt.Sprintf("decimals=%d must be in range [0, %d]", params.Decimals, MaxDecimals),
		}
	}

	scale := uint32(params.Decimals)
	x0 := decimal.New(int64(params.X0), scale)
	step := decimal.New(int64(params.XStep), scale)

	span, err := step.Mul(decimal.New(int64(params.YCount)-1, 0))
	if err != nil {
		return err
	}
	maxX, err := x0.Add(span)
	if err != nil {
		return err
	}

	bound := decimal.New(int64(math.MaxUint32), scale)
	if maxX.Cmp(bound) > 0 {
		return &ParamError{
			Reason: ReasonDomainOverflow,
			Message: fmt.Sprintf(
				"x0, x_step and y_count give maximum X %s which exceeds %s", maxX, bound),
		}
	}

	if maxX.Cmp(x0) <= 0 {
		return &ParamError{
			Reason: ReasonDegenerateDomain,
			Message: fmt.Sprintf(
				"maximum X %s does not advance past x0 %s", maxX, x0),
		}
	}

	return nil
}
