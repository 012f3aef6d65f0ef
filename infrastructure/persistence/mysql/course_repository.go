package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"learnhub/domain/course"
	"learnhub/infrastructure/persistence"
	"learnhub/infrastructure/persistence/mysql/po"
	"learnhub/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// CourseRepository gorm-backed course store.
//
// Engagement appends run as single UPDATE statements using
// JSON_ARRAY_APPEND at the nested path, so two concurrent appends
// against distinct sub-paths of the same course both survive. The path
// indexes are stable because content and questions are append-only.
//
// Writes run under the retry policy: deadlocks and lock timeouts back
// off and retry, everything else fails fast.
type CourseRepository struct {
	db       *gorm.DB
	retryCfg retry.Config
}

func NewCourseRepository(db *gorm.DB, retryCfg retry.Config) *CourseRepository {
	return &CourseRepository{db: db, retryCfg: retryCfg}
}

func (r *CourseRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*course.Course, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var coursePO po.CoursePO
	result := r.getDB(ctx).First(&coursePO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, course.NewCourseNotFoundError(id)
		}
		return nil, result.Error
	}

	return coursePO.ToDomain()
}

func (r *CourseRepository) FindAll(ctx context.Context) ([]*course.Course, error) {
	var coursePOs []po.CoursePO
	if err := r.getDB(ctx).Order("created_at DESC").Find(&coursePOs).Error; err != nil {
		return nil, err
	}
	return toDomainCourses(coursePOs)
}

func (r *CourseRepository) FindByStatus(ctx context.Context, status course.Status) ([]*course.Course, error) {
	var coursePOs []po.CoursePO
	err := r.getDB(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&coursePOs).Error
	if err != nil {
		return nil, err
	}
	return toDomainCourses(coursePOs)
}

func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) ([]*course.Course, error) {
	if len(ids) == 0 {
		return []*course.Course{}, nil
	}
	var coursePOs []po.CoursePO
	err := r.getDB(ctx).
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&coursePOs).Error
	if err != nil {
		return nil, err
	}
	return toDomainCourses(coursePOs)
}

func (r *CourseRepository) Create(ctx context.Context, c *course.Course) error {
	coursePO, err := po.FromCourseDomain(c)
	if err != nil {
		return err
	}
	return r.getDB(ctx).Create(coursePO).Error
}

// Save persists the scalar fields as a whole-row update. Engagement
// collections are excluded here: they only change through the Append
// operations below.
// Save persists the scalar course state behind an optimistic lock: the
// update only lands when the stored version still matches the loaded
// snapshot's, and bumps it. The zero-rows disambiguation runs outside
// the retry loop so a stale snapshot fails fast instead of burning the
// remaining attempts on a conflict that cannot resolve itself.
func (r *CourseRepository) Save(ctx context.Context, c *course.Course) error {
	coursePO, err := po.FromCourseDomain(c)
	if err != nil {
		return err
	}

	var rowsAffected int64
	err = retry.ExecuteWithRetry(ctx, r.retryCfg, func(ctx context.Context) error {
		result := r.getDB(ctx).Model(&po.CoursePO{}).
			Where("id = ? AND version = ?", coursePO.ID, coursePO.Version).
			Updates(map[string]interface{}{
				"name":            coursePO.Name,
				"description":     coursePO.Description,
				"price":           coursePO.Price,
				"thumbnail":       coursePO.Thumbnail,
				"demo_url":        coursePO.DemoURL,
				"status":          coursePO.Status,
				"purchased_count": coursePO.PurchasedCount,
				"version":         coursePO.Version + 1,
				"updated_at":      coursePO.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		rowsAffected = result.RowsAffected
		return nil
	})
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		if err := r.ensureExists(ctx, coursePO.ID); err != nil {
			return err
		}
		return course.NewConcurrentModificationError(coursePO.ID)
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.CoursePO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return course.NewCourseNotFoundError(id)
	}
	return nil
}

func (r *CourseRepository) AppendQuestion(ctx context.Context, courseID string, contentIdx int, q course.Question) error {
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal question: %w", err)
	}
	path := fmt.Sprintf("$[%d].questions", contentIdx)
	return r.appendAt(ctx, courseID, "content", path, payload, nil)
}

func (r *CourseRepository) AppendAnswer(ctx context.Context, courseID string, contentIdx, questionIdx int, a course.Answer) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	path := fmt.Sprintf("$[%d].questions[%d].replies", contentIdx, questionIdx)
	return r.appendAt(ctx, courseID, "content", path, payload, nil)
}

func (r *CourseRepository) AppendReview(ctx context.Context, courseID string, rev course.Review, ratingAverage float64) error {
	payload, err := json.Marshal(rev)
	if err != nil {
		return fmt.Errorf("failed to marshal review: %w", err)
	}
	extra := map[string]interface{}{"rating_average": ratingAverage}
	return r.appendAt(ctx, courseID, "reviews", "$", payload, extra)
}

func (r *CourseRepository) AppendReviewReply(ctx context.Context, courseID string, reviewIdx int, reply course.ReviewReply) error {
	payload, err := json.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to marshal review reply: %w", err)
	}
	path := fmt.Sprintf("$[%d].replies", reviewIdx)
	return r.appendAt(ctx, courseID, "reviews", path, payload, nil)
}

// appendAt one atomic JSON_ARRAY_APPEND into the named column at the
// given path, optionally updating extra scalar columns in the same
// statement
func (r *CourseRepository) appendAt(ctx context.Context, courseID, column, path string, payload []byte, extra map[string]interface{}) error {
	updates := map[string]interface{}{
		column: gorm.Expr(
			fmt.Sprintf("JSON_ARRAY_APPEND(%s, ?, CAST(? AS JSON))", column),
			path, string(payload),
		),
		"updated_at": time.Now(),
	}
	for k, v := range extra {
		updates[k] = v
	}

	return retry.ExecuteWithRetry(ctx, r.retryCfg, func(ctx context.Context) error {
		result := r.getDB(ctx).Model(&po.CoursePO{}).
			Where("id = ?", courseID).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.ensureExists(ctx, courseID)
		}
		return nil
	})
}

// ensureExists distinguishes "row gone" from "update matched but wrote
// identical values" after RowsAffected == 0
func (r *CourseRepository) ensureExists(ctx context.Context, courseID string) error {
	var count int64
	if err := r.getDB(ctx).Model(&po.CoursePO{}).Where("id = ?", courseID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return course.NewCourseNotFoundError(courseID)
	}
	return nil
}

func toDomainCourses(coursePOs []po.CoursePO) ([]*course.Course, error) {
	courses := make([]*course.Course, len(coursePOs))
	for i := range coursePOs {
		c, err := coursePOs[i].ToDomain()
		if err != nil {
			return nil, err
		}
		courses[i] = c
	}
	return courses, nil
}

var _ course.Repository = (*CourseRepository)(nil)
