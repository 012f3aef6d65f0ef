package course

import (
	"context"
	"errors"
	"testing"
	"time"

	"learnhub/domain/course"
	"learnhub/domain/user"
	"learnhub/infrastructure/cache"
	"learnhub/infrastructure/persistence/mocks"
)

type testEnv struct {
	courses       *mocks.MockCourseRepository
	users         *mocks.MockUserRepository
	notifications *mocks.MockNotificationRepository
	mailer        *mocks.MockEmailSender
	store         *cache.CourseStore
	svc           *ApplicationService
}

// newTestEnv wires the service against in-memory collaborators and seeds
// the three actors the scenarios need: an admin, a tutor and a learner.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		courses:       mocks.NewMockCourseRepository(),
		users:         mocks.NewMockUserRepository(),
		notifications: mocks.NewMockNotificationRepository(),
		mailer:        mocks.NewMockEmailSender(),
		store:         cache.NewCourseStore(cache.NewMemoryKV(), time.Hour),
	}
	env.svc = NewApplicationService(env.courses, env.users, env.store,
		env.notifications, env.mailer, mocks.NoopTransactor{})

	env.users.Add(user.FromDTO(user.DTO{
		ID: "admin-1", Name: "Root", Email: "root@example.com", Role: user.RoleAdmin,
	}))
	env.users.Add(user.FromDTO(user.DTO{
		ID: "tutor-1", Name: "Ada", Email: "ada@example.com", Role: user.RoleTutor,
	}))
	env.users.Add(user.FromDTO(user.DTO{
		ID: "learner-1", Name: "Linus", Email: "linus@example.com", Role: user.RoleLearner,
	}))
	return env
}

func (e *testEnv) identity(t *testing.T, id string) user.Identity {
	t.Helper()
	u, err := e.users.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to load user %s: %v", id, err)
	}
	return u.Identity()
}

// seedCourse stores a course owned by tutor-1 with one content item and
// records the references on the owner and, for learners, the enrollment.
func (e *testEnv) seedCourse(t *testing.T, status course.Status, purchased int) *course.Course {
	t.Helper()
	ctx := context.Background()
	c := course.FromDTO(course.DTO{
		ID:             "course-1",
		Name:           "Go Fundamentals",
		Description:    "intro course",
		Price:          49.99,
		Status:         status,
		PurchasedCount: purchased,
		OwnerID:        "tutor-1",
		Content: []course.ContentItem{
			{ID: "content-1", Title: "Goroutines", VideoURL: "https://cdn/video.mp4", Suggestion: "watch twice", Questions: []course.Question{}},
		},
		Reviews: []course.Review{},
	})
	if err := e.courses.Create(ctx, c); err != nil {
		t.Fatalf("Failed to seed course: %v", err)
	}

	owner, err := e.users.FindByID(ctx, "tutor-1")
	if err != nil {
		t.Fatalf("Failed to load owner: %v", err)
	}
	owner.RecordCreatedCourse(c.ID())
	if err := e.users.Save(ctx, owner); err != nil {
		t.Fatalf("Failed to save owner: %v", err)
	}

	learner, err := e.users.FindByID(ctx, "learner-1")
	if err != nil {
		t.Fatalf("Failed to load learner: %v", err)
	}
	e.users.Add(user.FromDTO(user.DTO{
		ID: learner.ID(), Name: learner.Name(), Email: learner.Email(), Role: learner.Role(),
		EnrolledCourses: append(learner.EnrolledCourses(), c.ID()),
	}))
	return c
}

func TestCreateCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tutor := env.identity(t, "tutor-1")

	resp, err := env.svc.Create(ctx, tutor, CreateCourseRequest{
		Name:        "Go Fundamentals",
		Description: "intro course",
		Price:       49.99,
		Content:     []ContentItemRequest{{Title: "Goroutines"}},
	})
	if err != nil {
		t.Fatalf("Failed to create course: %v", err)
	}
	if resp.Status != string(course.StatusPending) {
		t.Errorf("Tutor-created course should be Pending, got %s", resp.Status)
	}
	if resp.OwnerID != "tutor-1" {
		t.Errorf("Owner should be the creator, got %s", resp.OwnerID)
	}

	// The creator's reference lists were updated in the same transaction.
	owner, err := env.users.FindByID(ctx, "tutor-1")
	if err != nil {
		t.Fatalf("Failed to reload owner: %v", err)
	}
	if !owner.Identity().Owns(resp.ID) || !owner.Identity().IsEnrolledIn(resp.ID) {
		t.Error("Creator should own and be enrolled in the new course")
	}

	// The tutor gets a submission record; nothing is emailed.
	if env.notifications.Count() != 1 {
		t.Errorf("Expected 1 notification, got %d", env.notifications.Count())
	}
	if len(env.mailer.Sent()) != 0 {
		t.Errorf("Course creation should not send email, sent %d", len(env.mailer.Sent()))
	}

	// The cache was warmed.
	if _, ok := env.store.Get(ctx, resp.ID); !ok {
		t.Error("New course should be in the cache")
	}

	t.Log("✓ Course creation flow tests passed")
}

func TestCreateCourseStoreFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.courses.FailNextWrite = errors.New("connection reset")

	_, err := env.svc.Create(ctx, env.identity(t, "tutor-1"), CreateCourseRequest{
		Name:    "Go Fundamentals",
		Content: []ContentItemRequest{{Title: "Goroutines"}},
	})
	if err == nil {
		t.Fatal("Expected the store failure to surface")
	}

	// Nothing downstream happened: no notification, no email, no cache
	// entry.
	if env.notifications.Count() != 0 {
		t.Errorf("Failed create must not notify, got %d", env.notifications.Count())
	}
	if len(env.mailer.Sent()) != 0 {
		t.Errorf("Failed create must not email, sent %d", len(env.mailer.Sent()))
	}

	t.Log("✓ Create store failure tests passed")
}

func TestEditCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCourse(t, course.StatusPending, 0)

	newName := "Advanced Go"
	resp, err := env.svc.Edit(ctx, env.identity(t, "tutor-1"), "course-1", EditCourseRequest{Name: &newName})
	if err != nil {
		t.Fatalf("Failed to edit course: %v", err)
	}
	if resp.Name != "Advanced Go" {
		t.Errorf("Name not applied, got %s", resp.Name)
	}
	if resp.Description != "intro course" {
		t.Errorf("Omitted field must stay unchanged, got %s", resp.Description)
	}

	reloaded, err := env.courses.FindByID(ctx, "course-1")
	if err != nil {
		t.Fatalf("Failed to reload course: %v", err)
	}
	if reloaded.Name() != "Advanced Go" {
		t.Errorf("Edit not persisted, got %s", reloaded.Name())
	}

	t.Log("✓ Course edit tests passed")
}

func TestEditConflictingSnapshots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCourse(t, course.StatusPending, 0)

	// Two editors load the same version of the course.
	first, err := env.courses.FindByID(ctx, "course-1")
	if err != nil {
		t.Fatalf("Failed to load course: %v", err)
	}
	second, err := env.courses.FindByID(ctx, "course-1")
	if err != nil {
		t.Fatalf("Failed to load course: %v", err)
	}

	firstName := "Advanced Go"
	first.ApplyEdit(course.EditPatch{Name: &firstName})
	if err := env.courses.Save(ctx, first); err != nil {
		t.Fatalf("First save should win: %v", err)
	}

	// The second editor's snapshot is now stale and must lose.
	secondName := "Go from Scratch"
	second.ApplyEdit(course.EditPatch{Name: &secondName})
	err = env.courses.Save(ctx, second)
	if !errors.Is(err, course.ErrConcurrentModification) {
		t.Fatalf("Expected ErrConcurrentModification for a stale save, got %v", err)
	}

	reloaded, err := env.courses.FindByID(ctx, "course-1")
	if err != nil {
		t.Fatalf("Failed to reload course: %v", err)
	}
	if reloaded.Name() != "Advanced Go" {
		t.Errorf("Losing save must not land, got %s", reloaded.Name())
	}
	if reloaded.Version() != first.Version()+1 {
		t.Errorf("Accepted save must bump the version, got %d", reloaded.Version())
	}

	// A fresh load carries the current version and can edit again.
	if _, err := env.svc.Edit(ctx, env.identity(t, "tutor-1"), "course-1",
		EditCourseRequest{Name: &secondName}); err != nil {
		t.Fatalf("Fresh edit after conflict should succeed: %v", err)
	}

	t.Log("✓ Concurrent edit conflict tests passed")
}

func TestEditMissingCourse(t *testing.T) {
	env := newTestEnv(t)

	name := "x"
	_, err := env.svc.Edit(context.Background(), env.identity(t, "admin-1"), "missing", EditCourseRequest{Name: &name})
	if !errors.Is(err, course.ErrCourseNotFound) {
		t.Fatalf("Expected ErrCourseNotFound, got %v", err)
	}

	t.Log("✓ Missing course edit tests passed")
}

func TestEditStatusTransition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCourse(t, course.StatusPending, 0)

	// Admin approval notifies the owner.
	status := string(course.StatusApproved)
	resp, err := env.svc.Edit(ctx, env.identity(t, "admin-1"), "course-1", EditCourseRequest{Status: &status})
	if err != nil {
		t.Fatalf("Failed to approve course: %v", err)
	}
	if resp.Status != string(course.StatusApproved) {
		t.Errorf("Status not applied, got %s", resp.Status)
	}
	if env.notifications.Count() != 1 {
		t.Fatalf("Expected 1 notification for the owner, got %d", env.notifications.Count())
	}

	// Re-requesting the same status is a no-op and owes nothing.
	if _, err := env.svc.Edit(ctx, env.identity(t, "admin-1"), "course-1", EditCourseRequest{Status: &status}); err != nil {
		t.Fatalf("No-op status edit should succeed: %v", err)
	}
	if env.notifications.Count() != 1 {
		t.Errorf("No-op transition must not notify, got %d", env.notifications.Count())
	}

	// A tutor requesting a change is refused and nothing is persisted.
	rejected := string(course.StatusRejected)
	if _, err := env.svc.Edit(ctx, env.identity(t, "tutor-1"), "course-1", EditCourseRequest{Status: &rejected}); !errors.Is(err, course.ErrStatusChangeForbidden) {
		t.Fatalf("Expected ErrStatusChangeForbidden, got %v", err)
	}
	reloaded, err := env.courses.FindByID(ctx, "course-1")
	if err != nil {
		t.Fatalf("Failed to reload course: %v", err)
	}
	if reloaded.Status() != course.StatusApproved {
		t.Errorf("Refused transition must not persist, got %s", reloaded.Status())
	}

	t.Log("✓ Status transition flow tests passed")
}

func TestGetSingleCacheAside(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCourse(t, course.StatusApproved, 0)

	// First read misses the cache and fills it.
	resp, err := env.svc.GetSingle(ctx, "course-1")
	if err != nil {
		t.Fatalf("Failed to get course: %v", err)
	}
	if _, ok := env.store.Get(ctx, "course-1"); !ok {
		t.Error("First read should fill the cache")
	}

	// The public shape strips everything behind the paywall.
	if len(resp.Content) != 1 {
		t.Fatalf("Expected 1 content item, got %d", len(resp.Content))
	}
	if resp.Content[0].Title != "Goroutines" {
		t.Errorf("Public content should keep the title, got %s", resp.Content[0].Title)
	}

	// Second read is served from the cache: drop the row underneath and
	// the answer still comes back.
	if err := env.courses.Delete(ctx, "course-1"); err != nil {
		t.Fatalf("Failed to drop row: %v", err)
	}
	if _, err := env.svc.GetSingle(ctx, "course-1"); err != nil {
		t.Errorf("Cached read should not touch the store: %v", err)
	}

	t.Log("✓ Cache-aside read tests passed")
}

func TestGetByUserEnrollmentGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCourse(t, course.StatusApproved, 0)

	// Not enrolled: refused before any load.
	admin := env.identity(t, "admin-1")
	if _, err := env.svc.GetByUser(ctx, admin, "course-1"); !errors.Is(err, course.ErrNotEnrolled) {
		t.Fatalf("Expected ErrNotEnrolled, got %v", err)
	}

	// Enrolled: the full shape, video urls included.
	resp, err := env.svc.GetByUser(ctx, env.identity(t, "learner-1"), "course-1")
	if err != nil {
		t.Fatalf("Failed to get course content: %v", err)
	}
	if len(resp.Content) != 1 || resp.Content[0].VideoURL != "https://cdn/video.mp4" {
		t.Errorf("Detail shape should carry the video url, got %+v", resp.Content)
	}

	t.Log("✓ Enrollment gate tests passed")
}

func TestGetAllApprovedOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCourse(t, course.StatusPending, 0)

	courses, err := env.svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("Failed to list catalog: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("Pending courses must not be in the catalog, got %d", len(courses))
	}

	status := string(course.StatusApproved)
	if _, err := env.svc.Edit(ctx, env.identity(t, "admin-1"), "course-1", EditCourseRequest{Status: &status}); err != nil {
		t.Fatalf("Failed to approve: %v", err)
	}
	courses, err = env.svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("Failed to list catalog: %v", err)
	}
	if len(courses) != 1 {
		t.Errorf("Approved course should be in the catalog, got %d", len(courses))
	}

	t.Log("✓ Catalog listing tests passed")
}

func TestListOwned(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCourse(t, course.StatusPending, 0)

	owned, err := env.svc.ListOwned(ctx, env.identity(t, "tutor-1"))
	if err != nil {
		t.Fatalf("Failed to list owned courses: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != "course-1" {
		t.Errorf("Tutor should see their own course, got %+v", owned)
	}

	other, err := env.svc.ListOwned(ctx, env.identity(t, "learner-1"))
	if err != nil {
		t.Fatalf("Failed to list owned courses: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("Learner owns nothing, got %d", len(other))
	}

	t.Log("✓ Owned course listing tests passed")
}

func TestDeleteCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.seedCourse(t, course.StatusApproved, 0)
	env.store.Set(ctx, c)

	if err := env.svc.Delete(ctx, "course-1"); err != nil {
		t.Fatalf("Failed to delete course: %v", err)
	}

	if _, err := env.courses.FindByID(ctx, "course-1"); !errors.Is(err, course.ErrCourseNotFound) {
		t.Errorf("Deleted course should be gone, got %v", err)
	}
	if _, ok := env.store.Get(ctx, "course-1"); ok {
		t.Error("Deleted course should be evicted from the cache")
	}

	// The cascade removed the dangling references.
	owner, err := env.users.FindByID(ctx, "tutor-1")
	if err != nil {
		t.Fatalf("Failed to reload owner: %v", err)
	}
	if owner.Identity().Owns("course-1") || owner.Identity().IsEnrolledIn("course-1") {
		t.Error("Delete should cascade into the owner's reference lists")
	}
	learner, err := env.users.FindByID(ctx, "learner-1")
	if err != nil {
		t.Fatalf("Failed to reload learner: %v", err)
	}
	if learner.Identity().IsEnrolledIn("course-1") {
		t.Error("Delete should cascade into enrollment lists")
	}

	t.Log("✓ Course delete cascade tests passed")
}

func TestDeletePurchasedCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedCourse(t, course.StatusApproved, 3)

	if err := env.svc.Delete(ctx, "course-1"); !errors.Is(err, course.ErrCoursePurchased) {
		t.Fatalf("Expected ErrCoursePurchased, got %v", err)
	}
	if _, err := env.courses.FindByID(ctx, "course-1"); err != nil {
		t.Errorf("Refused delete must leave the course in place: %v", err)
	}

	t.Log("✓ Purchased course delete guard tests passed")
}
