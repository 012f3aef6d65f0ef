/*
Package course - course domain error definitions.

Same pattern as the shared kernel: sentinel errors for errors.Is(),
constructors that capture the stack at the point of failure, no transport
concepts. Every lookup failure has its own sentinel so that a bad content
id, a bad question id and a bad review id are distinguishable all the way
to the client.
*/
package course

import (
	"errors"
	"fmt"

	"learnhub/domain/shared"
)

var (
	// ErrCourseNotFound course does not exist. Always an explicit error:
	// the engine never reports success with a "not found" message.
	ErrCourseNotFound = errors.New("course not found")

	// ErrContentNotFound referenced content item does not exist in the
	// course's content sequence
	ErrContentNotFound = errors.New("content item not found")

	// ErrQuestionNotFound referenced question does not exist under the
	// content item
	ErrQuestionNotFound = errors.New("question not found")

	// ErrReviewNotFound referenced review does not exist
	ErrReviewNotFound = errors.New("review not found")

	// ErrNotEnrolled requester is not enrolled in the course
	ErrNotEnrolled = errors.New("not enrolled in this course")

	// ErrStatusLocked an Approved course with purchases cannot leave
	// Approved
	ErrStatusLocked = errors.New("course status is locked by purchases")

	// ErrStatusChangeForbidden only administrators may change course
	// status
	ErrStatusChangeForbidden = errors.New("not allowed to change course status")

	// ErrCoursePurchased a purchased course cannot be deleted
	ErrCoursePurchased = errors.New("cannot delete a purchased course")

	// ErrConcurrentModification the course row changed underneath the
	// writer; the caller should retry
	ErrConcurrentModification = errors.New("course was modified by another request, please retry")

	// ErrInvalidCourse malformed course input
	ErrInvalidCourse = errors.New("invalid course input")
)

// NewCourseNotFoundError create a course-not-found error (with stack)
func NewCourseNotFoundError(courseID string) error {
	return &courseDomainError{
		sentinel: ErrCourseNotFound,
		message:  "course not found: " + courseID,
		stack:    shared.CaptureStack(3),
	}
}

// NewContentNotFoundError create a content-item-not-found error
func NewContentNotFoundError(contentID string) error {
	return &courseDomainError{
		sentinel: ErrContentNotFound,
		field:    "content_id",
		message:  "content item not found: " + contentID,
		stack:    shared.CaptureStack(3),
	}
}

// NewQuestionNotFoundError create a question-not-found error
func NewQuestionNotFoundError(questionID string) error {
	return &courseDomainError{
		sentinel: ErrQuestionNotFound,
		field:    "question_id",
		message:  "question not found: " + questionID,
		stack:    shared.CaptureStack(3),
	}
}

// NewReviewNotFoundError create a review-not-found error
func NewReviewNotFoundError(reviewID string) error {
	return &courseDomainError{
		sentinel: ErrReviewNotFound,
		field:    "review_id",
		message:  "review not found: " + reviewID,
		stack:    shared.CaptureStack(3),
	}
}

// NewNotEnrolledError create an enrollment eligibility error
func NewNotEnrolledError(courseID string) error {
	return &courseDomainError{
		sentinel: ErrNotEnrolled,
		message:  "you are not eligible to access this course",
		stack:    shared.CaptureStack(3),
	}
}

// NewStatusLockedError create a purchase-lock conflict error
func NewStatusLockedError(courseID string) error {
	return &courseDomainError{
		sentinel: ErrStatusLocked,
		message:  "cannot change status of an already purchased course",
		stack:    shared.CaptureStack(3),
	}
}

// NewStatusChangeForbiddenError create a role-gate error
func NewStatusChangeForbiddenError(role string) error {
	return &courseDomainError{
		sentinel: ErrStatusChangeForbidden,
		message:  role + " cannot change the status of a course",
		stack:    shared.CaptureStack(3),
	}
}

// NewCoursePurchasedError create a delete-guard conflict error
func NewCoursePurchasedError(courseID string, purchased int) error {
	return &courseDomainError{
		sentinel: ErrCoursePurchased,
		message:  fmt.Sprintf("cannot delete course %s: purchased by %d learner(s)", courseID, purchased),
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError create a concurrent-write conflict error
func NewConcurrentModificationError(courseID string) error {
	return &courseDomainError{
		sentinel: ErrConcurrentModification,
		message:  "course " + courseID + " was modified by another request, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidCourseError create a validation error
func NewInvalidCourseError(field, reason string) error {
	return &courseDomainError{
		sentinel: ErrInvalidCourse,
		field:    field,
		message:  reason,
		stack:    shared.CaptureStack(3),
	}
}

// courseDomainError course domain error (with stack)
type courseDomainError struct {
	sentinel error
	field    string
	message  string
	stack    []uintptr
}

func (e *courseDomainError) Error() string {
	return e.message
}

func (e *courseDomainError) Unwrap() error {
	return e.sentinel
}

// Stack implements shared.Stacker
func (e *courseDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
