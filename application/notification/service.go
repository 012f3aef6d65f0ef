// Package notification Application Layer - notification feed orchestration
package notification

import (
	"context"
	"time"

	"learnhub/domain/notification"
	"learnhub/domain/shared"
)

// NotificationResponse Notification response DTO
type NotificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ApplicationService notification application service
type ApplicationService struct {
	notifications notification.Repository
}

// NewApplicationService Create notification application service
func NewApplicationService(notifications notification.Repository) *ApplicationService {
	return &ApplicationService{notifications: notifications}
}

// GetAll the requester's notifications, newest first
func (s *ApplicationService) GetAll(ctx context.Context, userID string) ([]*NotificationResponse, error) {
	all, err := s.notifications.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*NotificationResponse, len(all))
	for i, n := range all {
		out[i] = toNotificationResponse(n)
	}
	return out, nil
}

// MarkRead flip one of the requester's notifications to read. Marking
// an already-read notification is an accepted no-op; someone else's
// notification is off limits.
func (s *ApplicationService) MarkRead(ctx context.Context, userID, id string) (*NotificationResponse, error) {
	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, shared.NewForbiddenError("notification", "only the recipient may mark it read")
	}

	n.MarkRead()
	if err := s.notifications.Save(ctx, n); err != nil {
		return nil, err
	}
	return toNotificationResponse(n), nil
}

func toNotificationResponse(n *notification.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
