package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"learnhub/domain/notification"
	"learnhub/domain/shared"
)

// MockNotificationRepository Mock implementation of notification repository
type MockNotificationRepository struct {
	notifications map[string]notification.Notification
	mu            sync.RWMutex

	FailNextWrite error
}

// NewMockNotificationRepository Create Mock notification repository
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		notifications: make(map[string]notification.Notification),
	}
}

func (r *MockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailNextWrite != nil {
		err := r.FailNextWrite
		r.FailNextWrite = nil
		return err
	}
	r.notifications[n.ID] = *n
	return nil
}

func (r *MockNotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, exists := r.notifications[id]
	if !exists {
		return nil, shared.NewNotFoundError("notification")
	}
	return &n, nil
}

func (r *MockNotificationRepository) FindByUser(ctx context.Context, userID string) ([]*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*notification.Notification, 0, len(r.notifications))
	for id := range r.notifications {
		n := r.notifications[id]
		if n.UserID != userID {
			continue
		}
		all = append(all, &n)
	}
	// newest first, id as tiebreaker for deterministic tests
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	return all, nil
}

func (r *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailNextWrite != nil {
		err := r.FailNextWrite
		r.FailNextWrite = nil
		return err
	}
	if _, exists := r.notifications[n.ID]; !exists {
		return shared.NewNotFoundError("notification")
	}
	r.notifications[n.ID] = *n
	return nil
}

func (r *MockNotificationRepository) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, n := range r.notifications {
		if n.Status == notification.StatusRead && n.CreatedAt.Before(cutoff) {
			delete(r.notifications, id)
			removed++
		}
	}
	return removed, nil
}

// Count the number of stored notifications
func (r *MockNotificationRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.notifications)
}

var _ notification.Repository = (*MockNotificationRepository)(nil)
