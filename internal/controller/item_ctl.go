package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/middleware"
	"inventory_dev_v2_202608/internal/service"
)

// ==================== ItemController 商品控制器 ====================

// ItemController 商品控制器
// 路由组挂在 ShopScope 之后，店铺 ID 一律从 Context 取；
// 按 ID 操作前先用 TenantService 校验商品归属
type ItemController struct {
	itemService   *service.ItemService
	tenantService *service.TenantService
}

// NewItemController 创建商品控制器
func NewItemController(itemService *service.ItemService, tenantService *service.TenantService) *ItemController {
	return &ItemController{
		itemService:   itemService,
		tenantService: tenantService,
	}
}

// ListItems 商品列表
// @Summary 商品列表（按解析出的店铺过滤）
// @Tags Item
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param perPage query int false "每页条数"
// @Success 200 {object} dto.PageResult
// @Router /items [get]
func (c *ItemController) ListItems(ctx *gin.Context) {
	shopID := middleware.GetShopID(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(ctx.DefaultQuery("perPage", "10"))

	resp, err := c.itemService.ListItems(ctx.Request.Context(), shopID, page, perPage)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, resp)
}

// SearchItems 搜索商品
// @Summary 店铺内按关键词搜索商品
// @Tags Item
// @Produce json
// @Security BearerAuth
// @Param keyword query string true "关键词"
// @Success 200 {array} model.Item
// @Router /items/search [get]
func (c *ItemController) SearchItems(ctx *gin.Context) {
	shopID := middleware.GetShopID(ctx)
	keyword := ctx.Query("keyword")

	items, err := c.itemService.SearchItems(ctx.Request.Context(), shopID, keyword)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, items)
}

// ListBelowRefillLimit 低库存商品
// @Summary 库存低于补货阈值的商品（阈值为空按 5 处理）
// @Tags Item
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Item
// @Router /items/below-refill-limit [get]
func (c *ItemController) ListBelowRefillLimit(ctx *gin.Context) {
	shopID := middleware.GetShopID(ctx)

	items, err := c.itemService.ListItemsBelowRefillLimit(ctx.Request.Context(), shopID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, items)
}

// GetItem 商品详情
// @Summary 商品详情（商品必须归属解析出的店铺）
// @Tags Item
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品 ID"
// @Success 200 {object} model.Item
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /items/{id} [get]
func (c *ItemController) GetItem(ctx *gin.Context) {
	id, authorized := c.authorizeItem(ctx)
	if !authorized {
		return
	}

	item, err := c.itemService.GetItem(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, item)
}

// CreateItem 创建商品
// @Summary 创建商品（归属解析出的店铺）
// @Tags Item
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateItemRequest true "商品信息"
// @Success 201 {object} model.Item
// @Router /items [post]
func (c *ItemController) CreateItem(ctx *gin.Context) {
	var req dto.CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	shopID := middleware.GetShopID(ctx)

	item, err := c.itemService.CreateItem(ctx.Request.Context(), shopID, &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	created(ctx, item)
}

// UpdateItem 更新商品
// @Summary 更新商品
// @Tags Item
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品 ID"
// @Param request body dto.UpdateItemRequest true "商品信息"
// @Success 200 {object} model.Item
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /items/{id} [put]
func (c *ItemController) UpdateItem(ctx *gin.Context) {
	id, authorized := c.authorizeItem(ctx)
	if !authorized {
		return
	}

	var req dto.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	item, err := c.itemService.UpdateItem(ctx.Request.Context(), id, &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, item)
}

// DeleteItem 删除商品
// @Summary 删除商品
// @Tags Item
// @Produce json
// @Security BearerAuth
// @Param id path int true "商品 ID"
// @Success 204
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /items/{id} [delete]
func (c *ItemController) DeleteItem(ctx *gin.Context) {
	id, authorized := c.authorizeItem(ctx)
	if !authorized {
		return
	}

	if err := c.itemService.DeleteItem(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}

	ctx.Status(204)
}

// authorizeItem 解析路径商品 ID 并校验归属
// 商品不存在返回 404，归属不符返回 403，顺序不可颠倒
func (c *ItemController) authorizeItem(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "商品 ID 必须是数字")
		return 0, false
	}

	shopID := middleware.GetShopID(ctx)
	if err := c.tenantService.AuthorizeItem(ctx.Request.Context(), id, shopID); err != nil {
		fail(ctx, err)
		return 0, false
	}

	return id, true
}
