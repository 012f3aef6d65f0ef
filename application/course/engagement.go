package course

import (
	"context"

	"learnhub/domain/course"
	"learnhub/domain/notification"
	"learnhub/domain/user"
)

// Engagement mutations share one shape: load the authoritative aggregate,
// let it validate and apply the mutation in memory, mirror the mutation
// into the store as one atomic targeted append, refresh the cache, then
// dispatch. A store failure aborts before cache and notifications; the
// indexes fed to the append come from the loaded aggregate, which the
// append-only collections keep stable.

// AddQuestion ask a question under a content item
func (s *ApplicationService) AddQuestion(ctx context.Context, actor user.Identity, req AddQuestionRequest) (*CourseDetailResponse, error) {
	c, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	q, contentIdx, err := c.AskQuestion(actor, req.ContentID, req.Question)
	if err != nil {
		return nil, err
	}

	if err := s.courses.AppendQuestion(ctx, c.ID(), contentIdx, q); err != nil {
		return nil, err
	}
	s.cache.Set(ctx, c)

	s.dispatch(ctx, notification.Trigger{
		Kind:         notification.TriggerQuestionAsked,
		CourseID:     c.ID(),
		CourseName:   c.Name(),
		Actor:        actor,
		ContentTitle: c.Content()[contentIdx].Title,
	})

	return toCourseDetailResponse(c), nil
}

// AddAnswer answer a question. Who hears about it depends on who
// answers: the original asker's follow-up notifies the owner, anyone
// else's answer emails the asker.
func (s *ApplicationService) AddAnswer(ctx context.Context, actor user.Identity, req AddAnswerRequest) (*CourseDetailResponse, error) {
	c, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	q, _, _, err := c.FindQuestion(req.ContentID, req.QuestionID)
	if err != nil {
		return nil, err
	}
	asker := q.Author

	a, contentIdx, questionIdx, err := c.AnswerQuestion(actor, req.ContentID, req.QuestionID, req.Answer)
	if err != nil {
		return nil, err
	}

	if err := s.courses.AppendAnswer(ctx, c.ID(), contentIdx, questionIdx, a); err != nil {
		return nil, err
	}
	s.cache.Set(ctx, c)

	// The answer is committed at this point; a failed mail to the asker
	// must still reach the caller because this path promises delivery.
	if err := s.dispatch(ctx, notification.Trigger{
		Kind:         notification.TriggerQuestionAnswered,
		CourseID:     c.ID(),
		CourseName:   c.Name(),
		Actor:        actor,
		ContentTitle: c.Content()[contentIdx].Title,
		Asker:        asker,
	}); err != nil {
		return nil, err
	}

	return toCourseDetailResponse(c), nil
}

// AddReview add a review. Only enrolled learners may review; the rating
// average is recomputed and persisted in the same atomic statement as
// the review itself.
func (s *ApplicationService) AddReview(ctx context.Context, actor user.Identity, req AddReviewRequest) (*CourseDetailResponse, error) {
	if !actor.IsEnrolledIn(req.CourseID) {
		return nil, course.NewNotEnrolledError(req.CourseID)
	}

	c, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	rev, err := c.AddReview(actor, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.courses.AppendReview(ctx, c.ID(), rev, c.RatingAverage()); err != nil {
		return nil, err
	}
	s.cache.Set(ctx, c)

	s.dispatch(ctx, notification.Trigger{
		Kind:       notification.TriggerReviewAdded,
		CourseID:   c.ID(),
		CourseName: c.Name(),
		Actor:      actor,
	})

	return toCourseDetailResponse(c), nil
}

// AddReviewReply reply under a review. Notifies nobody.
func (s *ApplicationService) AddReviewReply(ctx context.Context, actor user.Identity, req AddReviewReplyRequest) (*CourseDetailResponse, error) {
	c, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	reply, reviewIdx, err := c.ReplyToReview(actor, req.ReviewID, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.courses.AppendReviewReply(ctx, c.ID(), reviewIdx, reply); err != nil {
		return nil, err
	}
	s.cache.Set(ctx, c)

	return toCourseDetailResponse(c), nil
}
