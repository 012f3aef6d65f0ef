package mysql

import (
	"context"
	"encoding/json"
	"fmt"

	"learnhub/domain/analytics"
	"learnhub/infrastructure/persistence"
	"learnhub/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// AnalyticsRepository window counting over the users, courses and
// orders tables.
//
// The order count uses an exclusive start bound where the other two are
// inclusive; see analytics.Window.
type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *AnalyticsRepository) CountCreatedInRange(ctx context.Context, col analytics.Collection, w analytics.Window, scope analytics.Scope) (int64, error) {
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	db := r.getDB(ctx)

	switch col {
	case analytics.CollectionUsers:
		db = db.Model(&po.UserPO{}).
			Where("created_at >= ? AND created_at <= ?", w.Start, w.End)
		if scope.Restricted() {
			owned, err := ownedJSON(scope)
			if err != nil {
				return 0, err
			}
			// tutors count their audience: enrolled in an owned
			// course, excluding themselves
			db = db.Where("id != ?", scope.RequesterID).
				Where("JSON_OVERLAPS(courses, ?)", owned)
		}

	case analytics.CollectionCourses:
		db = db.Model(&po.CoursePO{}).
			Where("created_at >= ? AND created_at <= ?", w.Start, w.End)
		if scope.Restricted() {
			db = db.Where("id IN ?", emptySafe(scope.OwnedCourseIDs))
		}

	case analytics.CollectionOrders:
		db = db.Model(&po.OrderPO{}).
			Where("created_at > ? AND created_at <= ?", w.Start, w.End)
		if scope.Restricted() {
			db = db.Where("course_id IN ?", emptySafe(scope.OwnedCourseIDs))
		}

	default:
		return 0, fmt.Errorf("unknown analytics collection: %d", col)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func ownedJSON(scope analytics.Scope) (string, error) {
	ids := scope.OwnedCourseIDs
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("failed to marshal owned course ids: %w", err)
	}
	return string(data), nil
}

// emptySafe keeps `IN ?` valid when a tutor owns nothing yet
func emptySafe(ids []string) []string {
	if len(ids) == 0 {
		return []string{""}
	}
	return ids
}

var _ analytics.Counter = (*AnalyticsRepository)(nil)
