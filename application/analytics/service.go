// Package analytics Application Layer - dashboard analytics orchestration
package analytics

import (
	"context"
	"time"

	"learnhub/domain/analytics"
	"learnhub/domain/user"
)

// SeriesResponse twelve labeled 28-day buckets, oldest first
type SeriesResponse struct {
	LastTwelveMonths []analytics.Bucket `json:"last12Months"`
}

// ApplicationService analytics application service
type ApplicationService struct {
	counter analytics.Counter

	// now injectable for tests, defaults to time.Now
	now func() time.Time
}

// NewApplicationService Create analytics application service
func NewApplicationService(counter analytics.Counter) *ApplicationService {
	return &ApplicationService{counter: counter, now: time.Now}
}

// UserSeries registration counts over the rolling windows
func (s *ApplicationService) UserSeries(ctx context.Context, requester user.Identity) (*SeriesResponse, error) {
	return s.series(ctx, analytics.CollectionUsers, requester)
}

// CourseSeries course creation counts over the rolling windows
func (s *ApplicationService) CourseSeries(ctx context.Context, requester user.Identity) (*SeriesResponse, error) {
	return s.series(ctx, analytics.CollectionCourses, requester)
}

// OrderSeries order counts over the rolling windows
func (s *ApplicationService) OrderSeries(ctx context.Context, requester user.Identity) (*SeriesResponse, error) {
	return s.series(ctx, analytics.CollectionOrders, requester)
}

func (s *ApplicationService) series(ctx context.Context, col analytics.Collection, requester user.Identity) (*SeriesResponse, error) {
	scope := analytics.ScopeFor(requester)
	windows := analytics.LastWindows(s.now())

	buckets := make([]analytics.Bucket, 0, len(windows))
	for _, w := range windows {
		count, err := s.counter.CountCreatedInRange(ctx, col, w, scope)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, analytics.Bucket{Label: w.Label, Count: count})
	}
	return &SeriesResponse{LastTwelveMonths: buckets}, nil
}
