package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"learnhub/domain/course"
	"learnhub/pkg/logger"
)

const courseKeyPrefix = "course:"

// CourseStore cache-aside store for course aggregates.
//
// Entries hold the full aggregate state as JSON. Cache errors never
// surface to callers: Get reports a miss, Set and Invalidate log and
// return. Staleness is bounded by the entry TTL.
type CourseStore struct {
	kv  KV
	ttl time.Duration
}

func NewCourseStore(kv KV, ttl time.Duration) *CourseStore {
	return &CourseStore{kv: kv, ttl: ttl}
}

// Get returns the cached course, or (nil, false) on miss or any cache
// failure
func (s *CourseStore) Get(ctx context.Context, courseID string) (*course.Course, bool) {
	data, err := s.kv.Get(ctx, courseKeyPrefix+courseID)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			logger.Warn("course cache read failed",
				zap.String("course_id", courseID),
				zap.Error(err))
		}
		return nil, false
	}

	var dto course.DTO
	if err := json.Unmarshal(data, &dto); err != nil {
		logger.Warn("course cache entry corrupt, dropping",
			zap.String("course_id", courseID),
			zap.Error(err))
		_ = s.kv.Del(ctx, courseKeyPrefix+courseID)
		return nil, false
	}
	return course.FromDTO(dto), true
}

// Set refreshes the cached entry after a successful write to the
// durable store
func (s *CourseStore) Set(ctx context.Context, c *course.Course) {
	dto := c.ToDTO()
	data, err := json.Marshal(dto)
	if err != nil {
		logger.Warn("course cache encode failed",
			zap.String("course_id", dto.ID),
			zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, courseKeyPrefix+dto.ID, data, s.ttl); err != nil {
		logger.Warn("course cache write failed",
			zap.String("course_id", dto.ID),
			zap.Error(err))
	}
}

// Invalidate drops the cached entry, used on course deletion
func (s *CourseStore) Invalidate(ctx context.Context, courseID string) {
	if err := s.kv.Del(ctx, courseKeyPrefix+courseID); err != nil {
		logger.Warn("course cache invalidate failed",
			zap.String("course_id", courseID),
			zap.Error(err))
	}
}
