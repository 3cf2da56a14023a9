package dto

import "gorm.io/datatypes"

// CreateNotificationRequest 创建通知请求
// Read 字段不可由调用方指定，新通知一律未读
type CreateNotificationRequest struct {
	ShopID  int64          `json:"shop_id"`
	Title   string         `json:"title" binding:"required"`
	Message string         `json:"message"`
	Payload datatypes.JSON `json:"payload"`
}

// UpdateNotificationRequest 更新通知请求
type UpdateNotificationRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Read    *bool  `json:"read"`
}

// UnreadCountResponse 未读数量响应
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
