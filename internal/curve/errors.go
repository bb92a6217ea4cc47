package curve

import (
	"errors"
	"fmt"

	"github.com/curvyfi/curvy/internal/decimal"
)

// ParamReason identifies which geometry check a parameter set failed.
type ParamReason string

const (
	// ReasonZeroXStep: x_step must be non-zero.
	ReasonZeroXStep ParamReason = "ZERO_X_STEP"

	// ReasonZeroYCount: at least one sample is required.
	ReasonZeroYCount ParamReason = "ZERO_Y_COUNT"

	// ReasonDecimalsRange: decimals must be in 0..9.
	ReasonDecimalsRange ParamReason = "DECIMALS_RANGE"

	// ReasonDomainOverflow: the maximum x coordinate exceeds what the
	// sample type can represent at the given scale.
	ReasonDomainOverflow ParamReason = "DOMAIN_OVERFLOW"

	// ReasonDegenerateDomain: the domain does not advance past x0.
	ReasonDegenerateDomain ParamReason = "DEGENERATE_DOMAIN"

	// ReasonBadLabel: a name or formula label does not fit the fixed field.
	ReasonBadLabel ParamReason = "BAD_LABEL"
)

// ParamError reports invalid curve geometry or labels.
type ParamError struct {
	Reason  ParamReason
	Message string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid curve params: %s: %s", e.Reason, e.Message)
}

// LayoutReason identifies why persisted bytes were rejected.
type LayoutReason string

const (
	// ReasonBadSize: the byte slice is not exactly RecordSize long.
	ReasonBadSize LayoutReason = "BAD_SIZE"

	// ReasonBadDiscriminator: the record-type tag does not match.
	ReasonBadDiscriminator LayoutReason = "BAD_DISCRIMINATOR"

	// ReasonBadVersion: the layout version is not the one this code reads.
	ReasonBadVersion LayoutReason = "BAD_VERSION"
)

// LayoutError reports malformed, undersized, or version-mismatched persisted
// bytes. Bytes that produce a LayoutError are never interpreted as a record.
type LayoutError struct {
	Reason  LayoutReason
	Message string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("record layout: %s: %s", e.Reason, e.Message)
}

// RangeError reports a lookup query outside the curve domain. X, Min and Max
// are in grid units (scaled integers).
type RangeError struct {
	X   decimal.Decimal
	Min decimal.Decimal
	Max decimal.Decimal
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("x=%s is out of curve range %s..=%s", e.X, e.Min, e.Max)
}

// IsParamError reports whether err is (or wraps) a ParamError.
func IsParamError(err error) bool {
	var pe *ParamError
	return errors.As(err, &pe)
}

// IsLayoutError reports whether err is (or wraps) a LayoutError.
func IsLayoutError(err error) bool {
	var le *LayoutError
	return errors.As(err, &le)
}

// IsRangeError reports whether err is (or wraps) a RangeError.
func IsRangeError(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}
