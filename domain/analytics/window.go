/*
Package analytics - rolling-window analytics for the admin/tutor
dashboards.

Twelve fixed 28-day buckets, oldest first. The windows are deliberately
NOT calendar months: twelve buckets span 336 days, not a year. Dashboards
label each bucket with the calendar date one day before the window's end.
*/
package analytics

import (
	"context"
	"time"

	"learnhub/domain/user"
)

// Collection the target collection to count over
type Collection int

const (
	CollectionUsers Collection = iota
	CollectionCourses
	CollectionOrders
)

// BucketCount the number of windows a dashboard shows
const BucketCount = 12

// WindowDays fixed bucket width
const WindowDays = 28

// Window one counting window. Start and End are both inclusive for the
// user and course collections; for orders the start bound is exclusive —
// an asymmetry of the data this engine reports on, preserved exactly.
type Window struct {
	Start time.Time
	End   time.Time
	Label string
}

// Bucket one labeled count
type Bucket struct {
	Label string `json:"month"`
	Count int64  `json:"count"`
}

// LastWindows computes the BucketCount windows ending around now, oldest
// first.
//
// Anchor = now + 1 day, truncated to midnight UTC. For bucket i (11 down
// to 0): the window's last day is anchor − i·28 days, its End that day's
// 23:59:59.999 UTC, its Start the midnight 27 days earlier, its Label the
// calendar day before the last day, formatted "2 January 2006".
func LastWindows(now time.Time) []Window {
	anchor := now.UTC().AddDate(0, 0, 1)
	anchor = time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)

	windows := make([]Window, 0, BucketCount)
	for i := BucketCount - 1; i >= 0; i-- {
		endDay := anchor.AddDate(0, 0, -i*WindowDays)
		end := endDay.Add(24*time.Hour - time.Millisecond)
		start := endDay.AddDate(0, 0, -(WindowDays - 1))
		label := endDay.AddDate(0, 0, -1).Format("2 January 2006")
		windows = append(windows, Window{Start: start, End: end, Label: label})
	}
	return windows
}

// Scope role-scoped counting predicate. For the tutor role counts are
// restricted to the tutor's own audience; for every other role no
// restriction applies. Role handling is exhaustive: the identity boundary
// rejects unknown roles before they reach here.
type Scope struct {
	Role           user.Role
	RequesterID    string
	OwnedCourseIDs []string
}

// ScopeFor build the counting scope for a requester
func ScopeFor(requester user.Identity) Scope {
	return Scope{
		Role:           requester.Role,
		RequesterID:    requester.ID,
		OwnedCourseIDs: append([]string(nil), requester.CreatedCourses...),
	}
}

// Restricted whether any predicate applies at all
func (s Scope) Restricted() bool {
	return s.Role == user.RoleTutor
}

// Counter counting boundary implemented by the persistence layer
type Counter interface {
	// CountCreatedInRange counts documents of the collection created
	// within the window under the scope's predicate, honoring the
	// per-collection bound inclusivity.
	CountCreatedInRange(ctx context.Context, col Collection, w Window, scope Scope) (int64, error)
}
