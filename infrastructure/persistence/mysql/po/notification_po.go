package po

import (
	"time"

	"learnhub/domain/notification"
)

// NotificationPO Notification persistence object
// Note: Only used for database mapping, does not contain any business logic
type NotificationPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;index;not null"` // Only store ID, no association with User
	Title     string    `gorm:"size:255;not null"`
	Message   string    `gorm:"type:text;not null"`
	Status    string    `gorm:"size:20;index;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (NotificationPO) TableName() string {
	return "notifications"
}

// FromNotificationDomain Convert domain model to persistence object
func FromNotificationDomain(n *notification.Notification) *NotificationPO {
	return &NotificationPO{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Status:    string(n.Status),
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// ToDomain Convert persistence object to domain model
func (po *NotificationPO) ToDomain() *notification.Notification {
	return &notification.Notification{
		ID:        po.ID,
		UserID:    po.UserID,
		Title:     po.Title,
		Message:   po.Message,
		Status:    notification.Status(po.Status),
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}
