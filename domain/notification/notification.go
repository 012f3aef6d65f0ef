/*
Package notification - notification subdomain.

A Notification is its own small aggregate, independent of Course: a
message addressed to one user, carried until read. The interesting logic
lives in the Dispatcher, which decides for each engagement trigger
whether a notification record, an outbound email, or neither is owed.
*/
package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status read state of a notification
type Status string

const (
	StatusUnread Status = "unread"
	StatusRead   Status = "read"
)

// Notification one message addressed to one user
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New create an unread notification
func New(userID, title, message string) *Notification {
	now := time.Now()
	return &Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Status:    StatusUnread,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkRead flip the notification to read
func (n *Notification) MarkRead() {
	n.Status = StatusRead
	n.UpdatedAt = time.Now()
}

// Repository persistence boundary for notifications
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id string) (*Notification, error)
	FindByUser(ctx context.Context, userID string) ([]*Notification, error)
	Save(ctx context.Context, n *Notification) error

	// DeleteReadOlderThan prunes read notifications created before the
	// cutoff; run periodically by the janitor.
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
