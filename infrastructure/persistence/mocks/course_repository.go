package mocks

import (
	"context"
	"sync"

	"learnhub/domain/course"
)

// MockCourseRepository Mock implementation of course repository
// Stores aggregates by deep-copying DTOs so test callers never share
// mutable state with the "store": a mutation applied to a loaded
// aggregate is only visible after the matching write call.
type MockCourseRepository struct {
	courses map[string]course.DTO
	mu      sync.RWMutex

	// Error to return from the next mutating call, consumed on use.
	// Lets tests verify that nothing downstream happens on store failure.
	FailNextWrite error
}

// NewMockCourseRepository Create Mock course repository
func NewMockCourseRepository() *MockCourseRepository {
	return &MockCourseRepository{
		courses: make(map[string]course.DTO),
	}
}

func (r *MockCourseRepository) takeWriteError() error {
	if r.FailNextWrite != nil {
		err := r.FailNextWrite
		r.FailNextWrite = nil
		return err
	}
	return nil
}

func cloneCourseDTO(dto course.DTO) course.DTO {
	dto.Content = cloneContent(dto.Content)
	dto.Reviews = cloneReviews(dto.Reviews)
	return dto
}

func cloneContent(items []course.ContentItem) []course.ContentItem {
	if items == nil {
		return nil
	}
	out := make([]course.ContentItem, len(items))
	copy(out, items)
	for i := range out {
		out[i].Links = append([]course.Link(nil), out[i].Links...)
		questions := make([]course.Question, len(out[i].Questions))
		copy(questions, out[i].Questions)
		for j := range questions {
			questions[j].Replies = append([]course.Answer(nil), questions[j].Replies...)
		}
		out[i].Questions = questions
	}
	return out
}

func cloneReviews(reviews []course.Review) []course.Review {
	if reviews == nil {
		return nil
	}
	out := make([]course.Review, len(reviews))
	copy(out, reviews)
	for i := range out {
		out[i].Replies = append([]course.ReviewReply(nil), out[i].Replies...)
	}
	return out
}

func (r *MockCourseRepository) FindByID(ctx context.Context, id string) (*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, exists := r.courses[id]
	if !exists {
		return nil, course.NewCourseNotFoundError(id)
	}
	return course.FromDTO(cloneCourseDTO(dto)), nil
}

func (r *MockCourseRepository) FindAll(ctx context.Context) ([]*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	courses := make([]*course.Course, 0, len(r.courses))
	for _, dto := range r.courses {
		courses = append(courses, course.FromDTO(cloneCourseDTO(dto)))
	}
	return courses, nil
}

func (r *MockCourseRepository) FindByStatus(ctx context.Context, status course.Status) ([]*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	courses := make([]*course.Course, 0)
	for _, dto := range r.courses {
		if dto.Status == status {
			courses = append(courses, course.FromDTO(cloneCourseDTO(dto)))
		}
	}
	return courses, nil
}

func (r *MockCourseRepository) FindByIDs(ctx context.Context, ids []string) ([]*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	courses := make([]*course.Course, 0, len(ids))
	for _, id := range ids {
		if dto, exists := r.courses[id]; exists {
			courses = append(courses, course.FromDTO(cloneCourseDTO(dto)))
		}
	}
	return courses, nil
}

func (r *MockCourseRepository) Create(ctx context.Context, c *course.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeWriteError(); err != nil {
		return err
	}
	r.courses[c.ID()] = cloneCourseDTO(c.ToDTO())
	return nil
}

func (r *MockCourseRepository) Save(ctx context.Context, c *course.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeWriteError(); err != nil {
		return err
	}
	stored, exists := r.courses[c.ID()]
	if !exists {
		return course.NewCourseNotFoundError(c.ID())
	}
	// Same optimistic lock as the real store: a stale snapshot loses.
	if stored.Version != c.Version() {
		return course.NewConcurrentModificationError(c.ID())
	}
	dto := cloneCourseDTO(c.ToDTO())
	dto.Version++
	r.courses[c.ID()] = dto
	return nil
}

func (r *MockCourseRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeWriteError(); err != nil {
		return err
	}
	if _, exists := r.courses[id]; !exists {
		return course.NewCourseNotFoundError(id)
	}
	delete(r.courses, id)
	return nil
}

func (r *MockCourseRepository) AppendQuestion(ctx context.Context, courseID string, contentIdx int, q course.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeWriteError(); err != nil {
		return err
	}
	dto, exists := r.courses[courseID]
	if !exists {
		return course.NewCourseNotFoundError(courseID)
	}
	if contentIdx < 0 || contentIdx >= len(dto.Content) {
		return course.NewContentNotFoundError("")
	}
	dto.Content[contentIdx].Questions = append(dto.Content[contentIdx].Questions, q)
	r.courses[courseID] = dto
	return nil
}

func (r *MockCourseRepository) AppendAnswer(ctx context.Context, courseID string, contentIdx, questionIdx int, a course.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeWriteError(); err != nil {
		return err
	}
	dto, exists := r.courses[courseID]
	if !exists {
		return course.NewCourseNotFoundError(courseID)
	}
	if contentIdx < 0 || contentIdx >= len(dto.Content) {
		return course.NewContentNotFoundError("")
	}
	questions := dto.Content[contentIdx].Questions
	if questionIdx < 0 || questionIdx >= len(questions) {
		return course.NewQuestionNotFoundError("")
	}
	questions[questionIdx].Replies = append(questions[questionIdx].Replies, a)
	r.courses[courseID] = dto
	return nil
}

func (r *MockCourseRepository) AppendReview(ctx context.Context, courseID string, rev course.Review, ratingAverage float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeWriteError(); err != nil {
		return err
	}
	dto, exists := r.courses[courseID]
	if !exists {
		return course.NewCourseNotFoundError(courseID)
	}
	dto.Reviews = append(dto.Reviews, rev)
	dto.RatingAverage = ratingAverage
	r.courses[courseID] = dto
	return nil
}

func (r *MockCourseRepository) AppendReviewReply(ctx context.Context, courseID string, reviewIdx int, reply course.ReviewReply) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.takeWriteError(); err != nil {
		return err
	}
	dto, exists := r.courses[courseID]
	if !exists {
		return course.NewCourseNotFoundError(courseID)
	}
	if reviewIdx < 0 || reviewIdx >= len(dto.Reviews) {
		return course.NewReviewNotFoundError("")
	}
	dto.Reviews[reviewIdx].Replies = append(dto.Reviews[reviewIdx].Replies, reply)
	r.courses[courseID] = dto
	return nil
}

var _ course.Repository = (*MockCourseRepository)(nil)
