/*
Package course Application Layer - course business process orchestration

Responsibilities:
 1. Receive external requests (usually from Controller)
 2. Load the authoritative aggregate from the durable store
 3. Call aggregate methods to execute business operations
 4. Mirror accepted mutations into the cache and hand qualifying
    triggers to the notification dispatcher

Ordering rule for every mutation: durable store first, cache second,
notifications last. A store failure aborts before any side effect; a
cache failure after the commit is logged and swallowed. Email delivery
failures are reported to the caller on the paths that promise mail,
but the committed mutation stands either way.
*/
package course

import (
	"context"

	"go.uber.org/zap"

	"learnhub/domain/course"
	"learnhub/domain/notification"
	"learnhub/domain/user"
	"learnhub/pkg/logger"
)

// CourseCache write-through cache boundary. Implementations never fail
// loudly; a miss or error just means the durable store answers.
type CourseCache interface {
	Get(ctx context.Context, courseID string) (*course.Course, bool)
	Set(ctx context.Context, c *course.Course)
	Invalidate(ctx context.Context, courseID string)
}

// EmailSender outbound mail boundary
type EmailSender interface {
	Send(ctx context.Context, req notification.EmailRequest) error
}

// Transactor runs a function inside one storage transaction
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ApplicationService course application service - coordinates course
// lifecycle and engagement processes
type ApplicationService struct {
	courses       course.Repository
	users         user.Repository
	cache         CourseCache
	dispatcher    *notification.Dispatcher
	notifications notification.Repository
	mailer        EmailSender
	tx            Transactor
}

// NewApplicationService Create course application service
func NewApplicationService(
	courses course.Repository,
	users user.Repository,
	courseCache CourseCache,
	notifications notification.Repository,
	mailer EmailSender,
	tx Transactor,
) *ApplicationService {
	return &ApplicationService{
		courses:       courses,
		users:         users,
		cache:         courseCache,
		dispatcher:    notification.NewDispatcher(users),
		notifications: notifications,
		mailer:        mailer,
		tx:            tx,
	}
}

// dispatch hand a trigger to the dispatcher and carry out its decision.
// Runs only after the durable write committed, so the mutation stands
// regardless of the outcome. In-app notification failures are logged
// and swallowed; a failed email delivery is returned so callers that
// promise mail can report it.
func (s *ApplicationService) dispatch(ctx context.Context, t notification.Trigger) error {
	decision, err := s.dispatcher.Decide(ctx, t)
	if err != nil {
		logger.Warn("notification dispatch skipped",
			zap.String("course_id", t.CourseID),
			zap.Int("trigger", int(t.Kind)),
			zap.Error(err))
		return nil
	}

	if decision.Notification != nil {
		n := notification.New(decision.Notification.RecipientUserID,
			decision.Notification.Title, decision.Notification.Message)
		if err := s.notifications.Create(ctx, n); err != nil {
			logger.Warn("notification record not persisted",
				zap.String("course_id", t.CourseID),
				zap.String("recipient", decision.Notification.RecipientUserID),
				zap.Error(err))
		}
	}

	if decision.Email != nil {
		if err := s.mailer.Send(ctx, *decision.Email); err != nil {
			logger.Warn("notification email not delivered",
				zap.String("course_id", t.CourseID),
				zap.String("to", decision.Email.To),
				zap.Error(err))
			return err
		}
	}
	return nil
}

// ============================================================================
// Lifecycle operations
// ============================================================================

// Create create a course. The creator's course references are updated in
// the same transaction; tutors get a submission record, admin courses go
// straight to Approved.
func (s *ApplicationService) Create(ctx context.Context, creator user.Identity, req CreateCourseRequest) (*CourseDetailResponse, error) {
	c, err := course.NewCourse(creator, req.Name, req.Description, req.Price,
		toDomainThumbnail(req.Thumbnail), req.DemoURL, toDomainContent(req.Content))
	if err != nil {
		return nil, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.courses.Create(ctx, c); err != nil {
			return err
		}
		u, err := s.users.FindByID(ctx, creator.ID)
		if err != nil {
			return err
		}
		u.RecordCreatedCourse(c.ID())
		return s.users.Save(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, c)
	s.dispatch(ctx, notification.Trigger{
		Kind:       notification.TriggerCourseCreated,
		CourseID:   c.ID(),
		CourseName: c.Name(),
		Actor:      creator,
	})

	logger.Info("course created",
		zap.String("course_id", c.ID()),
		zap.String("owner_id", creator.ID),
		zap.String("status", string(c.Status())))

	return toCourseDetailResponse(c), nil
}

// Edit partial edit of the scalar fields plus, when requested, a status
// transition through the approval rules. Editing a missing course is an
// explicit not-found error.
func (s *ApplicationService) Edit(ctx context.Context, actor user.Identity, courseID string, req EditCourseRequest) (*CourseDetailResponse, error) {
	c, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	patch := course.EditPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DemoURL:     req.DemoURL,
	}
	if req.Thumbnail != nil {
		t := toDomainThumbnail(*req.Thumbnail)
		patch.Thumbnail = &t
	}
	c.ApplyEdit(patch)

	var transition course.Transition
	if req.Status != nil {
		requested, err := course.ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		transition, err = c.DecideTransition(actor, requested)
		if err != nil {
			return nil, err
		}
	}

	if err := s.courses.Save(ctx, c); err != nil {
		return nil, err
	}
	s.cache.Set(ctx, c)

	if transition.Changed {
		s.dispatch(ctx, notification.Trigger{
			Kind:       notification.TriggerStatusChanged,
			CourseID:   c.ID(),
			CourseName: c.Name(),
			Actor:      actor,
			NewStatus:  transition.To,
		})
	}

	return toCourseDetailResponse(c), nil
}

// GetSingle public course view, cache-aside: serve from cache when
// present, otherwise load from the store and refill the cache
func (s *ApplicationService) GetSingle(ctx context.Context, courseID string) (*CourseResponse, error) {
	if c, ok := s.cache.Get(ctx, courseID); ok {
		return toCourseResponse(c), nil
	}

	c, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, c)
	return toCourseResponse(c), nil
}

// GetAll the public catalog: approved courses only
func (s *ApplicationService) GetAll(ctx context.Context) ([]*CourseResponse, error) {
	courses, err := s.courses.FindByStatus(ctx, course.StatusApproved)
	if err != nil {
		return nil, err
	}
	return toCourseResponses(courses), nil
}

// GetByUser the full course content, gated on the requester's
// enrollment list
func (s *ApplicationService) GetByUser(ctx context.Context, requester user.Identity, courseID string) (*CourseDetailResponse, error) {
	if !requester.IsEnrolledIn(courseID) {
		return nil, course.NewNotEnrolledError(courseID)
	}

	if c, ok := s.cache.Get(ctx, courseID); ok {
		return toCourseDetailResponse(c), nil
	}
	c, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, c)
	return toCourseDetailResponse(c), nil
}

// ListAll every course regardless of status, for the admin dashboard
func (s *ApplicationService) ListAll(ctx context.Context) ([]*CourseDetailResponse, error) {
	courses, err := s.courses.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*CourseDetailResponse, len(courses))
	for i, c := range courses {
		out[i] = toCourseDetailResponse(c)
	}
	return out, nil
}

// ListOwned the requester's own courses, for the tutor dashboard
func (s *ApplicationService) ListOwned(ctx context.Context, requester user.Identity) ([]*CourseDetailResponse, error) {
	courses, err := s.courses.FindByIDs(ctx, requester.CreatedCourses)
	if err != nil {
		return nil, err
	}
	out := make([]*CourseDetailResponse, len(courses))
	for i, c := range courses {
		out[i] = toCourseDetailResponse(c)
	}
	return out, nil
}

// Delete removes an unpurchased course and cascades the reference
// cleanup: the row and every user's pointers to it go in one
// transaction, then the cache entry is dropped. A course with even one
// purchase is never deletable.
func (s *ApplicationService) Delete(ctx context.Context, courseID string) error {
	c, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if err := c.EnsureDeletable(); err != nil {
		return err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.courses.Delete(ctx, courseID); err != nil {
			return err
		}
		return s.users.RemoveCourseRefs(ctx, courseID)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, courseID)
	logger.Info("course deleted", zap.String("course_id", courseID))
	return nil
}
