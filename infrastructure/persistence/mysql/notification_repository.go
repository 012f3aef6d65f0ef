package mysql

import (
	"context"
	"errors"
	"time"

	"learnhub/domain/notification"
	"learnhub/domain/shared"
	"learnhub/infrastructure/persistence"
	"learnhub/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.getDB(ctx).Create(po.FromNotificationDomain(n)).Error
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	var notificationPO po.NotificationPO
	result := r.getDB(ctx).First(&notificationPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("notification")
		}
		return nil, result.Error
	}
	return notificationPO.ToDomain(), nil
}

func (r *NotificationRepository) FindByUser(ctx context.Context, userID string) ([]*notification.Notification, error) {
	var notificationPOs []po.NotificationPO
	if err := r.getDB(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&notificationPOs).Error; err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, len(notificationPOs))
	for i := range notificationPOs {
		notifications[i] = notificationPOs[i].ToDomain()
	}
	return notifications, nil
}

func (r *NotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	result := r.getDB(ctx).Model(&po.NotificationPO{}).
		Where("id = ?", n.ID).
		Updates(map[string]interface{}{
			"status":     string(n.Status),
			"updated_at": n.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.getDB(ctx).Model(&po.NotificationPO{}).Where("id = ?", n.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.NewNotFoundError("notification")
		}
	}
	return nil
}

func (r *NotificationRepository) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.getDB(ctx).
		Where("status = ? AND created_at < ?", string(notification.StatusRead), cutoff).
		Delete(&po.NotificationPO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ notification.Repository = (*NotificationRepository)(nil)
