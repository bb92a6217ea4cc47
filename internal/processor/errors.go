package processor

import (
	"errors"
	"fmt"

	"github.com/curvyfi/curvy/internal/acct"
)

// InstructionError reports a rejected instruction. The state it describes
// was left untouched.
type InstructionError struct {
	// Code identifies the error category.
	Code InstructionErrorCode

	// Message is a human-readable description.
	Message string

	// Curve identifies the affected slot.
	Curve acct.Address
}

// InstructionErrorCode categorizes instruction failures.
type InstructionErrorCode string

const (
	// ErrCodeAuthorizationMissing indicates a required identity did not
	// co-sign the request.
	ErrCodeAuthorizationMissing InstructionErrorCode = "AUTHORIZATION_MISSING"

	// ErrCodeOwnerMismatch indicates the authorizing identity is not the
	// record's stored owner.
	ErrCodeOwnerMismatch InstructionErrorCode = "OWNER_MISMATCH"

	// ErrCodeSlotExists indicates creation targeted an occupied slot.
	ErrCodeSlotExists InstructionErrorCode = "SLOT_EXISTS"

	// ErrCodeSlotAbsent indicates the instruction expected an existing record.
	ErrCodeSlotAbsent InstructionErrorCode = "SLOT_ABSENT"

	// ErrCodeInsufficientBalance indicates funding or the defensive balance
	// check failed.
	ErrCodeInsufficientBalance InstructionErrorCode = "INSUFFICIENT_BALANCE"

	// ErrCodeInvalidInstruction indicates undecodable instruction bytes.
	ErrCodeInvalidInstruction InstructionErrorCode = "INVALID_INSTRUCTION"
)

// Error implements the error interface.
func (e *InstructionError) Error() string {
	if !e.Curve.IsZero() {
		return fmt.Sprintf("%s: %s (curve=%s)", e.Code, e.Message, e.Curve)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsAuthorizationError reports whether err is a missing-signature or
// owner-mismatch rejection. Uses errors.As to handle wrapped errors.
func IsAuthorizationError(err error) bool {
	var ie *InstructionError
	if errors.As(err, &ie) {
		return ie.Code == ErrCodeAuthorizationMissing || ie.Code == ErrCodeOwnerMismatch
	}
	return false
}

// IsStateError reports whether err is a slot present/absent or balance
// precondition failure.
func IsStateError(err error) bool {
	var ie *InstructionError
	if errors.As(err, &ie) {
		switch ie.Code {
		case ErrCodeSlotExists, ErrCodeSlotAbsent, ErrCodeInsufficientBalance:
			return true
		}
	}
	return false
}

func newAuthorizationError(curveAddr acct.Address, who string) *InstructionError {
	return &InstructionError{
		Code:    ErrCodeAuthorizationMissing,
		Message: fmt.Sprintf("%s must co-sign the request", who),
		Curve:   curveAddr,
	}
}

func newOwnerMismatchError(curveAddr acct.Address) *InstructionError {
	return &InstructionError{
		Code:    ErrCodeOwnerMismatch,
		Message: "owner specified doesn't match the stored one",
		Curve:   curveAddr,
	}
}
