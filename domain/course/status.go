package course

import (
	"learnhub/domain/user"
)

// Status course lifecycle status
type Status string

const (
	StatusPending  Status = "Pending"  // awaiting review
	StatusApproved Status = "Approved" // visible to learners
	StatusRejected Status = "Rejected" // refused by an administrator
)

// ParseStatus validates a status string from a request
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", NewInvalidCourseError("status", "unknown course status: "+s)
	}
}

// InitialStatus status at creation time: admins publish directly,
// everyone else awaits review
func InitialStatus(role user.Role) Status {
	if role == user.RoleAdmin {
		return StatusApproved
	}
	return StatusPending
}

// Transition the outcome of an accepted status transition request
type Transition struct {
	From Status
	To   Status
	// Changed is false for an accepted no-op (requested == current);
	// no notification is owed for a no-op.
	Changed bool
}

// DecideTransition validates a requested status change against the
// approval rules and, on success, applies it to the aggregate.
//
// Rules, in order:
//  1. A requested status equal to the current one is accepted as a no-op
//     for any role.
//  2. Non-admins (the owning "tutor" role included) may never change
//     status: Forbidden.
//  3. An Approved course with at least one purchase is locked: an admin
//     requesting any other status gets a Conflict, course unchanged.
//  4. Any other admin transition is accepted.
func (c *Course) DecideTransition(actor user.Identity, requested Status) (Transition, error) {
	if requested == c.status {
		return Transition{From: c.status, To: c.status, Changed: false}, nil
	}

	if actor.Role != user.RoleAdmin {
		return Transition{}, NewStatusChangeForbiddenError(string(actor.Role))
	}

	if c.status == StatusApproved && c.purchasedCount > 0 {
		return Transition{}, NewStatusLockedError(c.id)
	}

	from := c.status
	c.status = requested
	return Transition{From: from, To: requested, Changed: true}, nil
}
