package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inventory_dev_v2_202608/internal/service"
)

// ==================== 统一响应 ====================

// ok 成功响应
func ok(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": data,
	})
}

// okMessage 带消息的成功响应
func okMessage(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

// created 创建成功响应
func created(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, gin.H{
		"code": 0,
		"data": data,
	})
}

// badRequest 参数错误响应
func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"code":    400,
		"message": message,
	})
}

// fail 按错误分类映射状态码
// 未识别的错误一律 500，且不把内部错误信息透给调用方
func fail(ctx *gin.Context, err error) {
	status := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "服务器内部错误"
	}
	ctx.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

// errorStatus 错误分类 -> HTTP 状态码
func errorStatus(err error) int {
	switch {
	// 404 实体不存在
	case errors.Is(err, service.ErrShopNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrInventoryNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		return http.StatusNotFound

	// 403 授权失败
	case errors.Is(err, service.ErrMissingTenant),
		errors.Is(err, service.ErrNotAMember),
		errors.Is(err, service.ErrShopMismatch):
		return http.StatusForbidden

	// 400 参数问题
	case errors.Is(err, service.ErrInvalidTenant):
		return http.StatusBadRequest

	// 401 认证失败
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidOldPassword),
		errors.Is(err, service.ErrPasswordNotSet):
		return http.StatusUnauthorized

	// 409 唯一键冲突
	case errors.Is(err, service.ErrEmailExists):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
