package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"inventory_dev_v2_202608/internal/model"
)

// ==================== NotificationRepository 通知仓库 ====================

// NotificationRepository 通知仓储接口
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id int64) (*model.Notification, error)
	Update(ctx context.Context, n *model.Notification) error
	Delete(ctx context.Context, id int64) error
	ListByShop(ctx context.Context, shopID int64) ([]model.Notification, error)
	MarkAllRead(ctx context.Context, shopID int64) error
	CountUnread(ctx context.Context, shopID int64) (int64, error)
}

// ==================== 实现 ====================

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓库
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	var n model.Notification
	err := r.db.WithContext(ctx).First(&n, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &n, err
}

func (r *notificationRepository) Update(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *notificationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Notification{}, id).Error
}

// ListByShop 按店铺列出通知，新的排前面
func (r *notificationRepository) ListByShop(ctx context.Context, shopID int64) ([]model.Notification, error) {
	var list []model.Notification
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// MarkAllRead 店铺全部通知置为已读
func (r *notificationRepository) MarkAllRead(ctx context.Context, shopID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("shop_id = ?", shopID).
		Update("read", true).Error
}

// CountUnread 未读数量
func (r *notificationRepository) CountUnread(ctx context.Context, shopID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("shop_id = ? AND read = ?", shopID, false).
		Count(&count).Error
	return count, err
}
