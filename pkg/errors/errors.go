package errors

import (
	"errors"
	"fmt"
	"net/http"

	"learnhub/domain/course"
	"learnhub/domain/shared"
	"learnhub/domain/user"
)

// ErrorCode stable machine-readable error code
type ErrorCode string

const (
	// Generic codes
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// Business codes
	CodeCourseNotFound   ErrorCode = "COURSE_NOT_FOUND"
	CodeContentNotFound  ErrorCode = "CONTENT_NOT_FOUND"
	CodeQuestionNotFound ErrorCode = "QUESTION_NOT_FOUND"
	CodeReviewNotFound   ErrorCode = "REVIEW_NOT_FOUND"
	CodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	CodeNotEnrolled      ErrorCode = "NOT_ENROLLED"
	CodeStatusLocked     ErrorCode = "STATUS_LOCKED"
	CodeCoursePurchased  ErrorCode = "COURSE_PURCHASED"
	CodeConcurrentModify ErrorCode = "CONCURRENT_MODIFICATION"
	CodeMailDelivery     ErrorCode = "MAIL_DELIVERY_FAILED"
	CodeUnknownRole      ErrorCode = "UNKNOWN_ROLE"
)

// AppError application-layer error, carrying a code for transport mapping
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode maps the code to an HTTP status. Only the API layer calls
// this; domain and application layers never see transport concepts.
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation, CodeUnknownRole:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden, CodeNotEnrolled:
		return http.StatusForbidden
	case CodeNotFound, CodeCourseNotFound, CodeContentNotFound,
		CodeQuestionNotFound, CodeReviewNotFound, CodeUserNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeStatusLocked, CodeCoursePurchased, CodeConcurrentModify:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeMailDelivery:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// New create a new error
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wrap an underlying error
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common constructors

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// FromDomainError converts a domain error into an AppError, picking the
// most specific business code first and falling back to the shared
// sentinel classification. Unknown errors become internal errors so that
// driver details never leak to clients.
func FromDomainError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, course.ErrCourseNotFound):
		return Wrap(err, CodeCourseNotFound, err.Error())
	case errors.Is(err, course.ErrContentNotFound):
		return Wrap(err, CodeContentNotFound, err.Error())
	case errors.Is(err, course.ErrQuestionNotFound):
		return Wrap(err, CodeQuestionNotFound, err.Error())
	case errors.Is(err, course.ErrReviewNotFound):
		return Wrap(err, CodeReviewNotFound, err.Error())
	case errors.Is(err, course.ErrNotEnrolled):
		return Wrap(err, CodeNotEnrolled, err.Error())
	case errors.Is(err, course.ErrStatusLocked):
		return Wrap(err, CodeStatusLocked, err.Error())
	case errors.Is(err, course.ErrCoursePurchased):
		return Wrap(err, CodeCoursePurchased, err.Error())
	case errors.Is(err, course.ErrConcurrentModification):
		return Wrap(err, CodeConcurrentModify, err.Error())
	case errors.Is(err, course.ErrStatusChangeForbidden):
		return Wrap(err, CodeForbidden, err.Error())
	case errors.Is(err, course.ErrInvalidCourse):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		return Wrap(err, CodeUserNotFound, err.Error())
	case errors.Is(err, user.ErrUnknownRole):
		return Wrap(err, CodeUnknownRole, err.Error())
	case errors.Is(err, shared.ErrDelivery):
		return Wrap(err, CodeMailDelivery, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrForbidden):
		return Wrap(err, CodeForbidden, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}

// Is reports whether err carries the given code
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
