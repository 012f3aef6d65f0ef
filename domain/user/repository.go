package user

import "context"

// Repository persistence boundary for users.
//
// FindOwnersOf returns every user whose created_courses list references
// the course id, in underlying store order. More than one match is a data
// anomaly the dispatcher resolves by taking the first; see the notification
// package.
type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	Save(ctx context.Context, u *User) error

	FindOwnersOf(ctx context.Context, courseID string) ([]*User, error)

	// RemoveCourseRefs pulls the course id from every user's enrolled and
	// created course lists. Part of the course delete cascade.
	RemoveCourseRefs(ctx context.Context, courseID string) error
}
