/*
Package shared - domain-level error kernel.

Design principles:
1. The domain layer defines sentinel errors for type-safe errors.Is() checks.
2. DomainError captures its stack at creation time but formats it lazily.
3. Domain errors carry no HTTP status codes or other transport concepts.
4. Standard library errors only; no third-party error package.

Stack capture strategy:
- Captured when the error is constructed (inside the constructor).
- Formatted only when a log line actually needs it (Stack() method).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Sentinel errors
// Used with errors.Is() for error classification; they carry no context.
// ============================================================================

var (
	// ErrNotFound a referenced resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict the operation conflicts with current state
	// (purchase lock, concurrent modification)
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput request shape or referenced id is malformed
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized requester identity missing or unverifiable
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden requester is known but not allowed
	ErrForbidden = errors.New("forbidden")

	// ErrDelivery outbound email delivery failed; never rolls back a
	// committed mutation
	ErrDelivery = errors.New("delivery failed")
)

// ============================================================================
// DomainError
// Structured error carrying business context and the origin stack.
// Supports errors.Is() and errors.As() via Unwrap.
// ============================================================================

// DomainError domain error with context and lazily formatted stack
type DomainError struct {
	// Err underlying sentinel, for errors.Is()
	Err error

	// Entity the entity the error concerns (e.g. "course", "review")
	Entity string

	// Message human-readable description
	Message string

	// Field optional field name for validation errors
	Field string

	// stack call frames captured at construction
	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack on demand (only called when logging)
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// ============================================================================
// Stack helpers
// ============================================================================

// CaptureStack captures the current call stack (exported for subdomain packages)
// skip: frames to skip (usually 3: Callers, CaptureStack, NewXxxError)
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack formats stack frames, filtering runtime internals, max 10 frames
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Constructors
// ============================================================================

// NewNotFoundError create a "not found" domain error
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError create a "conflict" domain error
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError create a "validation failed" domain error
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewForbiddenError create a "forbidden" domain error
func NewForbiddenError(entity, reason string) error {
	return &DomainError{
		Err:     ErrForbidden,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewDeliveryError create a "delivery failed" domain error wrapping the cause
func NewDeliveryError(entity string, cause error) error {
	return &DomainError{
		Err:     ErrDelivery,
		Entity:  entity,
		Message: "failed to deliver email for " + entity + ": " + cause.Error(),
		stack:   CaptureStack(3),
	}
}

// ============================================================================
// Stacker
// Implemented by errors that can report their origin stack; the API layer
// uses it to log the point of failure.
// ============================================================================

// Stacker an error that can provide its origin stack
type Stacker interface {
	Stack() []string
}
