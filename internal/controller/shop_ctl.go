package controller

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/middleware"
	"inventory_dev_v2_202608/internal/service"
)

// ==================== ShopController 店铺控制器 ====================

// ShopController 店铺控制器
type ShopController struct {
	shopService *service.ShopService
}

// NewShopController 创建店铺控制器
func NewShopController(shopService *service.ShopService) *ShopController {
	return &ShopController{shopService: shopService}
}

// ListShops 店铺列表
// @Summary 店铺列表
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "名称关键词"
// @Param page query int false "页码"
// @Param per_page query int false "每页条数"
// @Success 200 {object} dto.PageResult
// @Router /shops [get]
func (c *ShopController) ListShops(ctx *gin.Context) {
	var req dto.ShopListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.shopService.ListShops(ctx.Request.Context(), &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, resp)
}

// GetShop 店铺详情
// @Summary 店铺详情
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺 ID"
// @Success 200 {object} model.Shop
// @Failure 404 {object} map[string]interface{}
// @Router /shops/{id} [get]
func (c *ShopController) GetShop(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "店铺 ID 必须是数字")
		return
	}

	shop, err := c.shopService.GetShop(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, shop)
}

// CreateShop 创建店铺
// @Summary 创建店铺（创建人直接成为已接纳成员）
// @Tags Shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateShopRequest true "店铺信息"
// @Success 201 {object} model.Shop
// @Router /shops [post]
func (c *ShopController) CreateShop(ctx *gin.Context) {
	var req dto.CreateShopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	creatorID := middleware.GetUserID(ctx)

	shop, err := c.shopService.CreateShop(ctx.Request.Context(), &req, creatorID)
	if err != nil {
		fail(ctx, err)
		return
	}

	created(ctx, shop)
}

// UpdateShop 更新店铺
// @Summary 更新店铺
// @Tags Shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺 ID"
// @Param request body dto.UpdateShopRequest true "店铺信息"
// @Success 200 {object} model.Shop
// @Failure 404 {object} map[string]interface{}
// @Router /shops/{id} [put]
func (c *ShopController) UpdateShop(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "店铺 ID 必须是数字")
		return
	}

	var req dto.UpdateShopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	shop, err := c.shopService.UpdateShop(ctx.Request.Context(), id, &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, shop)
}

// DeleteShop 删除店铺
// @Summary 删除店铺
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺 ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /shops/{id} [delete]
func (c *ShopController) DeleteShop(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "店铺 ID 必须是数字")
		return
	}

	if err := c.shopService.DeleteShop(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}

	ctx.Status(204)
}

// VerifyShop 按名称校验店铺
// @Summary 按名称校验店铺是否存在
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Param name query string true "店铺名称"
// @Success 200 {object} dto.VerifyShopResponse
// @Router /shops/verify [get]
func (c *ShopController) VerifyShop(ctx *gin.Context) {
	name := ctx.Query("name")
	if name == "" {
		badRequest(ctx, "缺少店铺名称")
		return
	}

	resp, err := c.shopService.VerifyShopByName(ctx.Request.Context(), name)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, resp)
}

// ==================== 成员列表 ====================

// ListShopUsers 店铺全部成员
// @Summary 店铺全部成员（不含密码哈希）
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺 ID"
// @Success 200 {array} dto.ShopUserInfo
// @Router /shops/{id}/users [get]
func (c *ShopController) ListShopUsers(ctx *gin.Context) {
	c.listMembers(ctx, c.shopService.ListShopUsers)
}

// ListAcceptedUsers 已接纳成员
// @Summary 已接纳成员
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺 ID"
// @Success 200 {array} dto.ShopUserInfo
// @Router /shops/{id}/users/accepted [get]
func (c *ShopController) ListAcceptedUsers(ctx *gin.Context) {
	c.listMembers(ctx, c.shopService.ListAcceptedUsers)
}

// ListUnacceptedUsers 待审核成员
// @Summary 待审核成员
// @Tags Shop
// @Produce json
// @Security BearerAuth
// @Param id path int true "店铺 ID"
// @Success 200 {array} dto.ShopUserInfo
// @Router /shops/{id}/users/unaccepted [get]
func (c *ShopController) ListUnacceptedUsers(ctx *gin.Context) {
	c.listMembers(ctx, c.shopService.ListUnacceptedUsers)
}

func (c *ShopController) listMembers(ctx *gin.Context, list func(context.Context, int64) ([]*dto.ShopUserInfo, error)) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "店铺 ID 必须是数字")
		return
	}

	users, err := list(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, users)
}
