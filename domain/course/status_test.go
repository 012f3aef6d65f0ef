package course

import (
	"errors"
	"testing"

	"learnhub/domain/user"
)

func approvedCourse(t *testing.T, purchased int) *Course {
	t.Helper()
	c := FromDTO(DTO{
		ID:             "course-1",
		Name:           "Go Fundamentals",
		Status:         StatusApproved,
		PurchasedCount: purchased,
		OwnerID:        "tutor-1",
	})
	return c
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Approved", "Rejected"} {
		got, err := ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q", s, got)
		}
	}

	if _, err := ParseStatus("published"); !errors.Is(err, ErrInvalidCourse) {
		t.Errorf("Expected ErrInvalidCourse for unknown status, got %v", err)
	}
	if _, err := ParseStatus("approved"); err == nil {
		t.Error("Expected lowercase status string to be rejected")
	}

	t.Log("✓ Status parsing tests passed")
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(user.RoleAdmin); got != StatusApproved {
		t.Errorf("Admin-created course should start Approved, got %s", got)
	}
	if got := InitialStatus(user.RoleTutor); got != StatusPending {
		t.Errorf("Tutor-created course should start Pending, got %s", got)
	}
	if got := InitialStatus(user.RoleLearner); got != StatusPending {
		t.Errorf("Learner-created course should start Pending, got %s", got)
	}

	t.Log("✓ Initial status tests passed")
}

func TestDecideTransitionNoOp(t *testing.T) {
	c := approvedCourse(t, 5)
	learner := user.Identity{ID: "u1", Role: user.RoleLearner}

	tr, err := c.DecideTransition(learner, StatusApproved)
	if err != nil {
		t.Fatalf("Requesting the current status should be accepted: %v", err)
	}
	if tr.Changed {
		t.Error("No-op transition should report Changed=false")
	}
	if tr.From != StatusApproved || tr.To != StatusApproved {
		t.Errorf("No-op transition should be Approved->Approved, got %s->%s", tr.From, tr.To)
	}

	t.Log("✓ No-op transition tests passed")
}

func TestDecideTransitionRoleGate(t *testing.T) {
	owner := user.Identity{ID: "tutor-1", Role: user.RoleTutor, CreatedCourses: []string{"course-1"}}
	learner := user.Identity{ID: "u1", Role: user.RoleLearner}

	for _, actor := range []user.Identity{owner, learner} {
		c := approvedCourse(t, 0)
		if _, err := c.DecideTransition(actor, StatusRejected); !errors.Is(err, ErrStatusChangeForbidden) {
			t.Errorf("Expected ErrStatusChangeForbidden for role %s, got %v", actor.Role, err)
		}
		if c.Status() != StatusApproved {
			t.Errorf("Rejected transition must not mutate the course, status is %s", c.Status())
		}
	}

	t.Log("✓ Transition role gate tests passed")
}

func TestDecideTransitionPurchaseLock(t *testing.T) {
	admin := user.Identity{ID: "admin-1", Role: user.RoleAdmin}
	c := approvedCourse(t, 3)

	if _, err := c.DecideTransition(admin, StatusRejected); !errors.Is(err, ErrStatusLocked) {
		t.Fatalf("Expected ErrStatusLocked for a purchased Approved course, got %v", err)
	}
	if c.Status() != StatusApproved {
		t.Errorf("Locked course must keep its status, got %s", c.Status())
	}

	// The no-op escape still works on a locked course.
	if _, err := c.DecideTransition(admin, StatusApproved); err != nil {
		t.Errorf("No-op on a locked course should succeed: %v", err)
	}

	t.Log("✓ Purchase lock tests passed")
}

func TestDecideTransitionAdmin(t *testing.T) {
	admin := user.Identity{ID: "admin-1", Role: user.RoleAdmin}

	cases := []struct {
		from, to Status
	}{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusRejected, StatusApproved},
		{StatusApproved, StatusRejected}, // no purchases, so not locked
	}
	for _, tc := range cases {
		c := FromDTO(DTO{ID: "course-1", Name: "n", Status: tc.from})
		tr, err := c.DecideTransition(admin, tc.to)
		if err != nil {
			t.Errorf("Admin transition %s->%s should succeed: %v", tc.from, tc.to, err)
			continue
		}
		if !tr.Changed || tr.From != tc.from || tr.To != tc.to {
			t.Errorf("Unexpected transition result for %s->%s: %+v", tc.from, tc.to, tr)
		}
		if c.Status() != tc.to {
			t.Errorf("Course status not applied for %s->%s, got %s", tc.from, tc.to, c.Status())
		}
	}

	t.Log("✓ Admin transition tests passed")
}
