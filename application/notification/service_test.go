package notification

import (
	"context"
	"errors"
	"testing"

	"learnhub/domain/notification"
	"learnhub/domain/shared"
	"learnhub/infrastructure/persistence/mocks"
)

func TestGetAllScopedToRequester(t *testing.T) {
	repo := mocks.NewMockNotificationRepository()
	svc := NewApplicationService(repo)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if err := repo.Create(ctx, notification.New("tutor-1", title, "m")); err != nil {
			t.Fatalf("Failed to seed notification: %v", err)
		}
	}
	if err := repo.Create(ctx, notification.New("tutor-2", "someone else's", "m")); err != nil {
		t.Fatalf("Failed to seed notification: %v", err)
	}

	all, err := svc.GetAll(ctx, "tutor-1")
	if err != nil {
		t.Fatalf("Failed to list notifications: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 notifications for the requester, got %d", len(all))
	}
	for _, n := range all {
		if n.UserID != "tutor-1" {
			t.Errorf("Feed leaked another user's notification: %+v", n)
		}
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Errorf("Feed should be newest first, position %d is older than %d", i-1, i)
		}
	}

	t.Log("✓ Notification feed tests passed")
}

func TestMarkRead(t *testing.T) {
	repo := mocks.NewMockNotificationRepository()
	svc := NewApplicationService(repo)
	ctx := context.Background()

	n := notification.New("tutor-1", "Title", "Message")
	if err := repo.Create(ctx, n); err != nil {
		t.Fatalf("Failed to seed notification: %v", err)
	}

	resp, err := svc.MarkRead(ctx, "tutor-1", n.ID)
	if err != nil {
		t.Fatalf("Failed to mark read: %v", err)
	}
	if resp.Status != string(notification.StatusRead) {
		t.Errorf("Expected status read, got %s", resp.Status)
	}

	reloaded, err := repo.FindByID(ctx, n.ID)
	if err != nil {
		t.Fatalf("Failed to reload notification: %v", err)
	}
	if reloaded.Status != notification.StatusRead {
		t.Errorf("Read flag not persisted, got %s", reloaded.Status)
	}

	// Marking again is an accepted no-op.
	if _, err := svc.MarkRead(ctx, "tutor-1", n.ID); err != nil {
		t.Errorf("Re-marking a read notification should succeed: %v", err)
	}

	t.Log("✓ Mark read tests passed")
}

func TestMarkReadByNonRecipient(t *testing.T) {
	repo := mocks.NewMockNotificationRepository()
	svc := NewApplicationService(repo)
	ctx := context.Background()

	n := notification.New("tutor-1", "Title", "Message")
	if err := repo.Create(ctx, n); err != nil {
		t.Fatalf("Failed to seed notification: %v", err)
	}

	_, err := svc.MarkRead(ctx, "tutor-2", n.ID)
	if !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden for a non-recipient, got %v", err)
	}

	reloaded, err := repo.FindByID(ctx, n.ID)
	if err != nil {
		t.Fatalf("Failed to reload notification: %v", err)
	}
	if reloaded.Status != notification.StatusUnread {
		t.Errorf("Refused mark must not change the notification, got %s", reloaded.Status)
	}

	t.Log("✓ Non-recipient tests passed")
}

func TestMarkReadMissing(t *testing.T) {
	svc := NewApplicationService(mocks.NewMockNotificationRepository())

	_, err := svc.MarkRead(context.Background(), "tutor-1", "missing")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	t.Log("✓ Missing notification tests passed")
}
