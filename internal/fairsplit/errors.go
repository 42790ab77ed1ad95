package fairsplit

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeInvalidInput indicates a malformed valuation vector or total rent.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeDegenerateValuation indicates proportional pricing over an
	// assignment whose selected valuations are all zero.
	ErrCodeDegenerateValuation ErrorCode = "DEGENERATE_VALUATION"
)

// Error is returned by the engine for invalid or degenerate input.
// Failing to find an exact solution is never an Error.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Person is the offending person index, or -1 when not person-specific.
	Person int

	// Details contains additional context.
	Details map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Person >= 0 {
		return fmt.Sprintf("%s: %s (person=%d)", e.Code, e.Message, e.Person)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidInput returns true if err is an INVALID_INPUT engine error.
func IsInvalidInput(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeInvalidInput
	}
	return false
}

// IsDegenerateValuation returns true if err is a DEGENERATE_VALUATION engine error.
func IsDegenerateValuation(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == ErrCodeDegenerateValuation
	}
	return false
}

// CodeOf returns the engine error code carried by err, or "" if none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func newInvalidInput(person int, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidInput,
		Message: fmt.Sprintf(format, args...),
		Person:  person,
	}
}

func newDegenerateValuation(a Assignment) *Error {
	return &Error{
		Code:    ErrCodeDegenerateValuation,
		Message: "selected valuations are all zero; proportional pricing is undefined",
		Person:  -1,
		Details: map[string]string{
			"assignment": a.String(),
		},
	}
}
