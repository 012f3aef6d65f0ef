package user

import (
	"errors"

	"learnhub/domain/shared"
)

var (
	// ErrUserNotFound user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrUnknownRole role string is not part of the closed enumeration
	ErrUnknownRole = errors.New("unknown role")
)

// NewUserNotFoundError create a user-not-found error (with stack)
func NewUserNotFoundError(userID string) error {
	return &userDomainError{
		sentinel: ErrUserNotFound,
		message:  "user not found: " + userID,
		stack:    shared.CaptureStack(3),
	}
}

// NewUnknownRoleError create an unknown-role error (with stack)
func NewUnknownRoleError(role string) error {
	return &userDomainError{
		sentinel: ErrUnknownRole,
		message:  "unknown role: " + role,
		stack:    shared.CaptureStack(3),
	}
}

// userDomainError user domain error (with stack)
type userDomainError struct {
	sentinel error
	message  string
	stack    []uintptr
}

func (e *userDomainError) Error() string {
	return e.message
}

func (e *userDomainError) Unwrap() error {
	return e.sentinel
}

// Stack implements shared.Stacker
func (e *userDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
