package mysql

import (
	"context"
	"errors"
	"time"

	"learnhub/domain/user"
	"learnhub/infrastructure/persistence"
	"learnhub/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var userPO po.UserPO
	result := r.getDB(ctx).First(&userPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.NewUserNotFoundError(id)
		}
		return nil, result.Error
	}

	return userPO.ToDomain()
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	userPO, err := po.FromUserDomain(u)
	if err != nil {
		return err
	}

	result := r.getDB(ctx).Model(&po.UserPO{}).
		Where("id = ?", userPO.ID).
		Updates(map[string]interface{}{
			"name":            userPO.Name,
			"email":           userPO.Email,
			"role":            userPO.Role,
			"courses":         userPO.Courses,
			"created_courses": userPO.CreatedCourses,
			"updated_at":      userPO.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.getDB(ctx).Model(&po.UserPO{}).Where("id = ?", userPO.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return user.NewUserNotFoundError(userPO.ID)
		}
	}
	return nil
}

// FindOwnersOf matches users whose created_courses JSON array contains
// the course id, in primary key order
func (r *UserRepository) FindOwnersOf(ctx context.Context, courseID string) ([]*user.User, error) {
	var userPOs []po.UserPO
	err := r.getDB(ctx).
		Where("JSON_CONTAINS(created_courses, JSON_QUOTE(?))", courseID).
		Order("id").
		Find(&userPOs).Error
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, len(userPOs))
	for i := range userPOs {
		u, err := userPOs[i].ToDomain()
		if err != nil {
			return nil, err
		}
		users[i] = u
	}
	return users, nil
}

// RemoveCourseRefs pulls the course id from every user's enrolled and
// created lists. JSON_SEARCH finds the id's path, JSON_REMOVE drops it;
// users without the reference are left untouched by the WHERE filter.
func (r *UserRepository) RemoveCourseRefs(ctx context.Context, courseID string) error {
	db := r.getDB(ctx)

	result := db.Model(&po.UserPO{}).
		Where("JSON_CONTAINS(courses, JSON_QUOTE(?))", courseID).
		Updates(map[string]interface{}{
			"courses":    gorm.Expr("JSON_REMOVE(courses, JSON_UNQUOTE(JSON_SEARCH(courses, 'one', ?)))", courseID),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}

	result = db.Model(&po.UserPO{}).
		Where("JSON_CONTAINS(created_courses, JSON_QUOTE(?))", courseID).
		Updates(map[string]interface{}{
			"created_courses": gorm.Expr("JSON_REMOVE(created_courses, JSON_UNQUOTE(JSON_SEARCH(created_courses, 'one', ?)))", courseID),
			"updated_at":      time.Now(),
		})
	return result.Error
}

var _ user.Repository = (*UserRepository)(nil)
