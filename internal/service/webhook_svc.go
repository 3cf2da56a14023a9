package service

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"inventory_dev_v2_202608/internal/model"
)

// ==================== WebhookService 通知外推 ====================

// WebhookService 把新产生的通知推送到部署方配置的回调地址
// 未配置地址时为空操作；推送失败只记日志，不影响通知入库
type WebhookService struct {
	client *resty.Client
	url    string
	logger *zap.SugaredLogger
}

// NewWebhookService 创建通知外推服务，url 为空表示关闭
func NewWebhookService(url string, logger *zap.SugaredLogger) *WebhookService {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2)

	return &WebhookService{
		client: client,
		url:    url,
		logger: logger,
	}
}

// Enabled 是否已配置回调地址
func (s *WebhookService) Enabled() bool {
	return s.url != ""
}

// Push 推送单条通知，尽力而为
func (s *WebhookService) Push(ctx context.Context, n *model.Notification) {
	if !s.Enabled() {
		return
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(n).
		Post(s.url)
	if err != nil {
		s.logger.Warnw("通知推送失败", "notification_id", n.ID, "err", err)
		return
	}
	if resp.StatusCode() >= 300 {
		s.logger.Warnw("通知推送被拒绝", "notification_id", n.ID, "status", resp.StatusCode())
	}
}
