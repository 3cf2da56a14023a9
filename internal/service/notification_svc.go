package service

import (
	"context"
	"errors"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/model"
	"inventory_dev_v2_202608/internal/repository"
)

// ==================== NotificationService 通知服务 ====================

// NotificationService 店铺事件通知
type NotificationService struct {
	notifRepo repository.NotificationRepository
	webhook   *WebhookService
}

// NewNotificationService 创建通知服务，webhook 可为 nil
func NewNotificationService(notifRepo repository.NotificationRepository, webhook *WebhookService) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		webhook:   webhook,
	}
}

// CreateNotification 创建通知，无论请求怎么写，新通知一律未读
func (s *NotificationService) CreateNotification(ctx context.Context, shopID int64, req *dto.CreateNotificationRequest) (*model.Notification, error) {
	n := &model.Notification{
		ShopID:  shopID,
		Title:   req.Title,
		Message: req.Message,
		Read:    false,
		Payload: req.Payload,
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.webhook != nil {
		s.webhook.Push(ctx, n)
	}

	return n, nil
}

// ListNotifications 店铺通知列表，新的排前面
func (s *NotificationService) ListNotifications(ctx context.Context, shopID int64) ([]model.Notification, error) {
	return s.notifRepo.ListByShop(ctx, shopID)
}

// UpdateNotification 更新通知
func (s *NotificationService) UpdateNotification(ctx context.Context, id int64, req *dto.UpdateNotificationRequest) (*model.Notification, error) {
	n, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotificationNotFound
	}

	if req.Title != "" {
		n.Title = req.Title
	}
	if req.Message != "" {
		n.Message = req.Message
	}
	if req.Read != nil {
		n.Read = *req.Read
	}

	if err := s.notifRepo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// DeleteNotification 删除通知
func (s *NotificationService) DeleteNotification(ctx context.Context, id int64) error {
	n, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotificationNotFound
	}
	return s.notifRepo.Delete(ctx, id)
}

// MarkAsRead 单条置为已读
func (s *NotificationService) MarkAsRead(ctx context.Context, id int64) (*model.Notification, error) {
	n, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotificationNotFound
	}

	n.Read = true
	if err := s.notifRepo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllAsRead 店铺全部通知置为已读
func (s *NotificationService) MarkAllAsRead(ctx context.Context, shopID int64) error {
	return s.notifRepo.MarkAllRead(ctx, shopID)
}

// GetUnreadCount 未读数量
func (s *NotificationService) GetUnreadCount(ctx context.Context, shopID int64) (*dto.UnreadCountResponse, error) {
	count, err := s.notifRepo.CountUnread(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

// ==================== 错误定义 ====================

var (
	ErrNotificationNotFound = errors.New("通知不存在")
)
