package notification

import (
	"context"
	"fmt"

	"learnhub/domain/course"
	"learnhub/domain/shared"
	"learnhub/domain/user"
)

// TriggerKind the engagement events the dispatcher knows about. Replying
// to a review is deliberately absent: that operation notifies nobody.
type TriggerKind int

const (
	TriggerStatusChanged TriggerKind = iota
	TriggerQuestionAsked
	TriggerQuestionAnswered
	TriggerReviewAdded
	TriggerCourseCreated
)

// Trigger one qualifying engagement event
type Trigger struct {
	Kind       TriggerKind
	CourseID   string
	CourseName string
	Actor      user.Identity

	// ContentTitle set for question/answer triggers
	ContentTitle string

	// Asker the original asker's snapshot, set for answer triggers
	Asker course.AuthorRef

	// NewStatus set for status-change triggers
	NewStatus course.Status
}

// Draft a notification to be persisted by the caller
type Draft struct {
	RecipientUserID string
	Title           string
	Message         string
}

// EmailRequest an outbound templated email to be sent by the caller
type EmailRequest struct {
	To       string
	ToName   string
	Subject  string
	Template string
	Data     map[string]string
}

// Decision zero or one notification and, independently, zero or one
// email. The dispatcher only computes what and to whom; it never
// persists or delivers anything itself.
type Decision struct {
	Notification *Draft
	Email        *EmailRequest
}

// Dispatcher decides the side effects of engagement triggers. It is
// stateless; the user repository is only consulted to resolve course
// ownership.
type Dispatcher struct {
	users user.Repository
}

func NewDispatcher(users user.Repository) *Dispatcher {
	return &Dispatcher{users: users}
}

// resolveOwnerID the owner is the user whose created_courses list
// references the course. If the store holds more than one match (a data
// anomaly; creation enforces one owner) the first in store order wins.
func (d *Dispatcher) resolveOwnerID(ctx context.Context, courseID string) (string, error) {
	owners, err := d.users.FindOwnersOf(ctx, courseID)
	if err != nil {
		return "", err
	}
	if len(owners) == 0 {
		return "", shared.NewNotFoundError("course owner")
	}
	return owners[0].ID(), nil
}

// Decide compute the side effects owed for a trigger. Exactly one of the
// two outputs is set for answer triggers; at most one for the rest.
func (d *Dispatcher) Decide(ctx context.Context, t Trigger) (Decision, error) {
	switch t.Kind {
	case TriggerStatusChanged:
		ownerID, err := d.resolveOwnerID(ctx, t.CourseID)
		if err != nil {
			return Decision{}, err
		}
		// The admin changing their own course owes themselves nothing.
		if ownerID == t.Actor.ID {
			return Decision{}, nil
		}
		return Decision{Notification: &Draft{
			RecipientUserID: ownerID,
			Title:           "Course Status Changed",
			Message:         fmt.Sprintf("%s changed %s course status to %s.", t.Actor.Name, t.CourseName, t.NewStatus),
		}}, nil

	case TriggerQuestionAsked:
		ownerID, err := d.resolveOwnerID(ctx, t.CourseID)
		if err != nil {
			return Decision{}, err
		}
		// Unconditional: the asker may be the owner, no self-notification
		// suppression here.
		return Decision{Notification: &Draft{
			RecipientUserID: ownerID,
			Title:           "New Question Received",
			Message:         fmt.Sprintf("You have a new question in %s course from %s", t.ContentTitle, t.Actor.Name),
		}}, nil

	case TriggerQuestionAnswered:
		// The original asker following up on their own question goes to
		// the owner as a notification; anyone else answering emails the
		// asker instead. Exactly one of the two, never both.
		if t.Actor.ID == t.Asker.UserID {
			ownerID, err := d.resolveOwnerID(ctx, t.CourseID)
			if err != nil {
				return Decision{}, err
			}
			return Decision{Notification: &Draft{
				RecipientUserID: ownerID,
				Title:           "New Question Reply Received",
				Message:         fmt.Sprintf("You have a new question reply in %s from %s", t.ContentTitle, t.Actor.Name),
			}}, nil
		}
		return Decision{Email: &EmailRequest{
			To:       t.Asker.Email,
			ToName:   t.Asker.Name,
			Subject:  "Question Reply",
			Template: "question-reply",
			Data: map[string]string{
				"name":  t.Asker.Name,
				"title": t.ContentTitle,
			},
		}}, nil

	case TriggerReviewAdded:
		ownerID, err := d.resolveOwnerID(ctx, t.CourseID)
		if err != nil {
			return Decision{}, err
		}
		return Decision{Notification: &Draft{
			RecipientUserID: ownerID,
			Title:           "New Review Received",
			Message:         fmt.Sprintf("%s has given a review in %s", t.Actor.Name, t.CourseName),
		}}, nil

	case TriggerCourseCreated:
		// Tutors get a record of their own submission; admin-created
		// courses go straight to Approved and need none.
		if t.Actor.Role != user.RoleTutor {
			return Decision{}, nil
		}
		return Decision{Notification: &Draft{
			RecipientUserID: t.Actor.ID,
			Title:           "New Course",
			Message:         fmt.Sprintf("%s created a course %s", t.Actor.Name, t.CourseName),
		}}, nil

	default:
		return Decision{}, shared.NewValidationError("notification", "trigger", "unknown trigger kind")
	}
}
