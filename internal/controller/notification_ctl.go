package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/middleware"
	"inventory_dev_v2_202608/internal/service"
)

// ==================== NotificationController 通知控制器 ====================

// NotificationController 通知控制器，挂在 ShopScope 之后
type NotificationController struct {
	notifService *service.NotificationService
}

// NewNotificationController 创建通知控制器
func NewNotificationController(notifService *service.NotificationService) *NotificationController {
	return &NotificationController{notifService: notifService}
}

// ListNotifications 通知列表
// @Summary 店铺通知列表
// @Tags Notification
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Notification
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	shopID := middleware.GetShopID(ctx)

	list, err := c.notifService.ListNotifications(ctx.Request.Context(), shopID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, list)
}

// CreateNotification 创建通知
// @Summary 创建通知（一律未读）
// @Tags Notification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNotificationRequest true "通知内容"
// @Success 201 {object} model.Notification
// @Router /notifications [post]
func (c *NotificationController) CreateNotification(ctx *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	shopID := middleware.GetShopID(ctx)

	n, err := c.notifService.CreateNotification(ctx.Request.Context(), shopID, &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	created(ctx, n)
}

// UpdateNotification 更新通知
// @Summary 更新通知
// @Tags Notification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "通知 ID"
// @Param request body dto.UpdateNotificationRequest true "通知内容"
// @Success 200 {object} model.Notification
// @Failure 404 {object} map[string]interface{}
// @Router /notifications/{id} [put]
func (c *NotificationController) UpdateNotification(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "通知 ID 必须是数字")
		return
	}

	var req dto.UpdateNotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	n, err := c.notifService.UpdateNotification(ctx.Request.Context(), id, &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, n)
}

// DeleteNotification 删除通知
// @Summary 删除通知
// @Tags Notification
// @Produce json
// @Security BearerAuth
// @Param id path int true "通知 ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /notifications/{id} [delete]
func (c *NotificationController) DeleteNotification(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "通知 ID 必须是数字")
		return
	}

	if err := c.notifService.DeleteNotification(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}

	ctx.Status(204)
}

// MarkAsRead 单条置为已读
// @Summary 通知置为已读
// @Tags Notification
// @Produce json
// @Security BearerAuth
// @Param id path int true "通知 ID"
// @Success 200 {object} model.Notification
// @Failure 404 {object} map[string]interface{}
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkAsRead(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "通知 ID 必须是数字")
		return
	}

	n, err := c.notifService.MarkAsRead(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, n)
}

// MarkAllAsRead 全部置为已读
// @Summary 店铺通知全部置为已读
// @Tags Notification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /notifications/read-all [put]
func (c *NotificationController) MarkAllAsRead(ctx *gin.Context) {
	shopID := middleware.GetShopID(ctx)

	if err := c.notifService.MarkAllAsRead(ctx.Request.Context(), shopID); err != nil {
		fail(ctx, err)
		return
	}

	okMessage(ctx, "已全部置为已读", nil)
}

// GetUnreadCount 未读数量
// @Summary 未读通知数量
// @Tags Notification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UnreadCountResponse
// @Router /notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount(ctx *gin.Context) {
	shopID := middleware.GetShopID(ctx)

	resp, err := c.notifService.GetUnreadCount(ctx.Request.Context(), shopID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, resp)
}
