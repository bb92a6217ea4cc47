package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/curvyfi/curvy/internal/curve"
	"github.com/curvyfi/curvy/internal/decimal"
	"github.com/curvyfi/curvy/internal/processor"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Instruction rejected (bad params, missing signature, etc.)
	ExitCommandError = 2 // Command error (invalid paths, database not found, etc.)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for diagnostic output (defaults to Writer)
	Verbose   bool
}

// Response is the standard JSON envelope for CLI output.
type Response struct {
	Status string         `json:"status"`          // "ok" or "error"
	Data   interface{}    `json:"data,omitempty"`  // success payload
	Error  *ResponseError `json:"error,omitempty"` // error details
}

// ResponseError is the error structure for CLI responses.
type ResponseError struct {
	Code    string `json:"code"`    // e.g. "OWNER_MISMATCH", "DEGENERATE_DOMAIN"
	Message string `json:"message"` // human-readable message
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Failure outputs a rejected-instruction error in the configured format
// and returns an ExitError carrying ExitFailure.
func (f *OutputFormatter) Failure(err error) error {
	code := ErrorCode(err)
	if f.Format == "json" {
		if encErr := json.NewEncoder(f.Writer).Encode(Response{
			Status: "error",
			Error: &ResponseError{
				Code:    code,
				Message: err.Error(),
			},
		}); encErr != nil {
			return encErr
		}
	} else {
		fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, err.Error())
	}
	return WrapExitError(ExitFailure, code, err)
}

// ErrorCode maps a domain error to its stable code string.
func ErrorCode(err error) string {
	var paramErr *curve.ParamError
	if errors.As(err, &paramErr) {
		return string(paramErr.Reason)
	}
	var layoutErr *curve.LayoutError
	if errors.As(err, &layoutErr) {
		return string(layoutErr.Reason)
	}
	var rangeErr *curve.RangeError
	if errors.As(err, &rangeErr) {
		return "X_OUT_OF_RANGE"
	}
	var instrErr *processor.InstructionError
	if errors.As(err, &instrErr) {
		return string(instrErr.Code)
	}
	var decErr *decimal.Error
	if errors.As(err, &decErr) {
		return "ARITHMETIC"
	}
	return "ERROR"
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, diagnostics go to ErrWriter to avoid corrupting
// the JSON stream.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
