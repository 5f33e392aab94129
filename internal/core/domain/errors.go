// Package domain defines the error taxonomy shared by the nullmap packages.
package domain

import (
	"errors"
	"fmt"
)

// DomainError is an error carrying a stable, machine-readable code.
//
// Codes have the form NM-<AREA>-<NNNN>. Two DomainErrors compare equal
// under errors.Is when their codes match, so sentinel values below can be
// returned with extra details and still be matched by callers.
type DomainError struct {
	Code    string // Error code (e.g., "NM-MAP-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Map Errors (MAP)
// ============================================================================

var (
	// ErrInvalidKey indicates the map primitive refuses the key
	// (a zero key under a policy that forbids zero keys).
	ErrInvalidKey = NewDomainError("NM-MAP-4000", "invalid key")

	// ErrNilValue indicates the map primitive refuses a nil value.
	ErrNilValue = NewDomainError("NM-MAP-4001", "nil value not permitted")
)

// ============================================================================
// Configuration Errors (CFG)
// ============================================================================

var (
	// ErrInvalidConfig indicates a configuration value is out of range.
	ErrInvalidConfig = NewDomainError("NM-CFG-4000", "invalid configuration")
)

// ============================================================================
// Workload Errors (WRK)
// ============================================================================

var (
	// ErrInvariantViolated indicates a workload observed a map state that
	// no linearizable execution could produce.
	ErrInvariantViolated = NewDomainError("NM-WRK-5000", "map invariant violated")
)
