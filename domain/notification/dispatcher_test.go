package notification_test

import (
	"context"
	"errors"
	"testing"

	"learnhub/domain/course"
	"learnhub/domain/notification"
	"learnhub/domain/shared"
	"learnhub/domain/user"
	"learnhub/infrastructure/persistence/mocks"
)

func seedOwner(t *testing.T, users *mocks.MockUserRepository, courseID string) user.Identity {
	t.Helper()
	owner := user.FromDTO(user.DTO{
		ID:              "tutor-1",
		Name:            "Ada",
		Email:           "ada@example.com",
		Role:            user.RoleTutor,
		EnrolledCourses: []string{courseID},
		CreatedCourses:  []string{courseID},
	})
	users.Add(owner)
	return owner.Identity()
}

func TestDecideStatusChanged(t *testing.T) {
	users := mocks.NewMockUserRepository()
	owner := seedOwner(t, users, "course-1")
	d := notification.NewDispatcher(users)
	ctx := context.Background()

	admin := user.Identity{ID: "admin-1", Name: "Root", Role: user.RoleAdmin}
	dec, err := d.Decide(ctx, notification.Trigger{
		Kind:       notification.TriggerStatusChanged,
		CourseID:   "course-1",
		CourseName: "Go Fundamentals",
		Actor:      admin,
		NewStatus:  course.StatusApproved,
	})
	if err != nil {
		t.Fatalf("Failed to decide status change: %v", err)
	}
	if dec.Email != nil {
		t.Error("Status change should never produce an email")
	}
	if dec.Notification == nil {
		t.Fatal("Status change by a non-owner admin should notify the owner")
	}
	if dec.Notification.RecipientUserID != owner.ID {
		t.Errorf("Notification should go to the owner, got %s", dec.Notification.RecipientUserID)
	}
	if dec.Notification.Message != "Root changed Go Fundamentals course status to Approved." {
		t.Errorf("Unexpected message: %q", dec.Notification.Message)
	}

	// An admin who owns the course gets nothing from their own change.
	dec, err = d.Decide(ctx, notification.Trigger{
		Kind:       notification.TriggerStatusChanged,
		CourseID:   "course-1",
		CourseName: "Go Fundamentals",
		Actor:      owner,
		NewStatus:  course.StatusRejected,
	})
	if err != nil {
		t.Fatalf("Failed to decide owner status change: %v", err)
	}
	if dec.Notification != nil || dec.Email != nil {
		t.Error("Owner changing their own course should produce no side effects")
	}

	t.Log("✓ Status change dispatch tests passed")
}

func TestDecideQuestionAsked(t *testing.T) {
	users := mocks.NewMockUserRepository()
	owner := seedOwner(t, users, "course-1")
	d := notification.NewDispatcher(users)
	ctx := context.Background()

	// Even the owner asking on their own course notifies the owner: no
	// self-notification suppression on this trigger.
	for _, actor := range []user.Identity{
		{ID: "learner-1", Name: "Linus", Role: user.RoleLearner},
		owner,
	} {
		dec, err := d.Decide(ctx, notification.Trigger{
			Kind:         notification.TriggerQuestionAsked,
			CourseID:     "course-1",
			ContentTitle: "Goroutines",
			Actor:        actor,
		})
		if err != nil {
			t.Fatalf("Failed to decide question asked: %v", err)
		}
		if dec.Notification == nil || dec.Email != nil {
			t.Fatalf("Question asked should produce exactly a notification, got %+v", dec)
		}
		if dec.Notification.RecipientUserID != owner.ID {
			t.Errorf("Notification should go to the owner, got %s", dec.Notification.RecipientUserID)
		}
		want := "You have a new question in Goroutines course from " + actor.Name
		if dec.Notification.Message != want {
			t.Errorf("Unexpected message: %q", dec.Notification.Message)
		}
	}

	t.Log("✓ Question asked dispatch tests passed")
}

func TestDecideQuestionAnswered(t *testing.T) {
	users := mocks.NewMockUserRepository()
	owner := seedOwner(t, users, "course-1")
	d := notification.NewDispatcher(users)
	ctx := context.Background()
	asker := course.AuthorRef{UserID: "learner-1", Name: "Linus", Email: "linus@example.com"}

	// Someone other than the asker answers: email to the asker, no
	// notification.
	dec, err := d.Decide(ctx, notification.Trigger{
		Kind:         notification.TriggerQuestionAnswered,
		CourseID:     "course-1",
		ContentTitle: "Goroutines",
		Actor:        owner,
		Asker:        asker,
	})
	if err != nil {
		t.Fatalf("Failed to decide answer by owner: %v", err)
	}
	if dec.Notification != nil {
		t.Error("Third-party answer should not produce a notification")
	}
	if dec.Email == nil {
		t.Fatal("Third-party answer should email the asker")
	}
	if dec.Email.To != asker.Email || dec.Email.ToName != asker.Name {
		t.Errorf("Email should address the asker snapshot, got %+v", dec.Email)
	}
	if dec.Email.Template != "question-reply" {
		t.Errorf("Unexpected template: %s", dec.Email.Template)
	}
	if dec.Email.Data["name"] != "Linus" || dec.Email.Data["title"] != "Goroutines" {
		t.Errorf("Unexpected template data: %v", dec.Email.Data)
	}

	// The asker following up on their own question: notification to the
	// owner, no email.
	dec, err = d.Decide(ctx, notification.Trigger{
		Kind:         notification.TriggerQuestionAnswered,
		CourseID:     "course-1",
		ContentTitle: "Goroutines",
		Actor:        user.Identity{ID: asker.UserID, Name: asker.Name, Role: user.RoleLearner},
		Asker:        asker,
	})
	if err != nil {
		t.Fatalf("Failed to decide self-answer: %v", err)
	}
	if dec.Email != nil {
		t.Error("Self-answer should not produce an email")
	}
	if dec.Notification == nil || dec.Notification.RecipientUserID != owner.ID {
		t.Fatalf("Self-answer should notify the owner, got %+v", dec.Notification)
	}
	if dec.Notification.Message != "You have a new question reply in Goroutines from Linus" {
		t.Errorf("Unexpected message: %q", dec.Notification.Message)
	}

	t.Log("✓ Question answered dispatch tests passed")
}

func TestDecideReviewAdded(t *testing.T) {
	users := mocks.NewMockUserRepository()
	owner := seedOwner(t, users, "course-1")
	d := notification.NewDispatcher(users)

	dec, err := d.Decide(context.Background(), notification.Trigger{
		Kind:       notification.TriggerReviewAdded,
		CourseID:   "course-1",
		CourseName: "Go Fundamentals",
		Actor:      user.Identity{ID: "learner-1", Name: "Linus", Role: user.RoleLearner},
	})
	if err != nil {
		t.Fatalf("Failed to decide review added: %v", err)
	}
	if dec.Notification == nil || dec.Email != nil {
		t.Fatalf("Review should produce exactly a notification, got %+v", dec)
	}
	if dec.Notification.RecipientUserID != owner.ID {
		t.Errorf("Notification should go to the owner, got %s", dec.Notification.RecipientUserID)
	}
	if dec.Notification.Message != "Linus has given a review in Go Fundamentals" {
		t.Errorf("Unexpected message: %q", dec.Notification.Message)
	}

	t.Log("✓ Review added dispatch tests passed")
}

func TestDecideCourseCreated(t *testing.T) {
	users := mocks.NewMockUserRepository()
	d := notification.NewDispatcher(users)
	ctx := context.Background()

	// Tutors get a record of their own submission.
	tutor := user.Identity{ID: "tutor-1", Name: "Ada", Role: user.RoleTutor}
	dec, err := d.Decide(ctx, notification.Trigger{
		Kind:       notification.TriggerCourseCreated,
		CourseID:   "course-1",
		CourseName: "Go Fundamentals",
		Actor:      tutor,
	})
	if err != nil {
		t.Fatalf("Failed to decide course created: %v", err)
	}
	if dec.Notification == nil || dec.Notification.RecipientUserID != tutor.ID {
		t.Fatalf("Tutor creation should notify the tutor, got %+v", dec.Notification)
	}
	if dec.Notification.Title != "New Course" {
		t.Errorf("Unexpected title: %s", dec.Notification.Title)
	}

	// Admin-created courses go straight to Approved; no record owed.
	dec, err = d.Decide(ctx, notification.Trigger{
		Kind:       notification.TriggerCourseCreated,
		CourseID:   "course-2",
		CourseName: "Admin Course",
		Actor:      user.Identity{ID: "admin-1", Name: "Root", Role: user.RoleAdmin},
	})
	if err != nil {
		t.Fatalf("Failed to decide admin course created: %v", err)
	}
	if dec.Notification != nil || dec.Email != nil {
		t.Error("Admin course creation should produce no side effects")
	}

	t.Log("✓ Course created dispatch tests passed")
}

func TestDecideMissingOwner(t *testing.T) {
	users := mocks.NewMockUserRepository()
	d := notification.NewDispatcher(users)

	_, err := d.Decide(context.Background(), notification.Trigger{
		Kind:     notification.TriggerReviewAdded,
		CourseID: "orphan-course",
		Actor:    user.Identity{ID: "learner-1", Name: "Linus"},
	})
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for a course with no owner, got %v", err)
	}

	t.Log("✓ Missing owner dispatch tests passed")
}

func TestNotificationMarkRead(t *testing.T) {
	n := notification.New("user-1", "Title", "Message")
	if n.Status != notification.StatusUnread {
		t.Errorf("New notification should be unread, got %s", n.Status)
	}
	if n.ID == "" {
		t.Error("New notification should get a generated id")
	}

	n.MarkRead()
	if n.Status != notification.StatusRead {
		t.Errorf("MarkRead should flip status to read, got %s", n.Status)
	}

	t.Log("✓ Notification lifecycle tests passed")
}
