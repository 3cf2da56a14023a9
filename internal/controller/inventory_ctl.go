package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/middleware"
	"inventory_dev_v2_202608/internal/service"
)

// ==================== InventoryController 库存流水控制器 ====================

// InventoryController 库存流水控制器，挂在 ShopScope 之后
type InventoryController struct {
	invService *service.InventoryService
}

// NewInventoryController 创建库存流水控制器
func NewInventoryController(invService *service.InventoryService) *InventoryController {
	return &InventoryController{invService: invService}
}

// ListInventories 流水列表
// @Summary 店铺流水列表
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param perPage query int false "每页条数"
// @Success 200 {object} dto.PageResult
// @Router /inventories [get]
func (c *InventoryController) ListInventories(ctx *gin.Context) {
	shopID := middleware.GetShopID(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(ctx.DefaultQuery("perPage", "25"))

	resp, err := c.invService.ListInventories(ctx.Request.Context(), shopID, page, perPage)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, resp)
}

// CreateInventory 记录流水
// @Summary 记录一次售出/补货
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateInventoryRequest true "流水信息"
// @Success 201 {object} model.Inventory
// @Router /inventories [post]
func (c *InventoryController) CreateInventory(ctx *gin.Context) {
	var req dto.CreateInventoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	shopID := middleware.GetShopID(ctx)
	userID := middleware.GetUserID(ctx)

	inv, err := c.invService.CreateInventory(ctx.Request.Context(), shopID, userID, &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	created(ctx, inv)
}

// UpdateInventory 更新流水
// @Summary 更新流水
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "流水 ID"
// @Param request body dto.UpdateInventoryRequest true "流水信息"
// @Success 200 {object} model.Inventory
// @Failure 404 {object} map[string]interface{}
// @Router /inventories/{id} [put]
func (c *InventoryController) UpdateInventory(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "流水 ID 必须是数字")
		return
	}

	var req dto.UpdateInventoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	inv, err := c.invService.UpdateInventory(ctx.Request.Context(), id, &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, inv)
}

// DeleteInventory 删除流水
// @Summary 删除流水
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "流水 ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /inventories/{id} [delete]
func (c *InventoryController) DeleteInventory(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "流水 ID 必须是数字")
		return
	}

	if err := c.invService.DeleteInventory(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}

	ctx.Status(204)
}

// GetSums 成本汇总
// @Summary 日/周/月成本汇总
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.InventorySums
// @Router /inventories/sums [get]
func (c *InventoryController) GetSums(ctx *gin.Context) {
	shopID := middleware.GetShopID(ctx)

	sums, err := c.invService.GetGeneralSums(ctx.Request.Context(), shopID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, sums)
}

// GetRecentlySold 最近售出
// @Summary 最近售出的流水
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Inventory
// @Router /inventories/recently-sold [get]
func (c *InventoryController) GetRecentlySold(ctx *gin.Context) {
	shopID := middleware.GetShopID(ctx)

	list, err := c.invService.GetRecentlySold(ctx.Request.Context(), shopID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, list)
}

// GetRecentlyRefilled 最近补货
// @Summary 最近补货的流水
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Inventory
// @Router /inventories/recently-refilled [get]
func (c *InventoryController) GetRecentlyRefilled(ctx *gin.Context) {
	shopID := middleware.GetShopID(ctx)

	list, err := c.invService.GetRecentlyRefilled(ctx.Request.Context(), shopID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, list)
}

// SearchInventories 按商品名称搜索流水
// @Summary 按商品名称搜索流水
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param qitem query string true "商品名称关键词"
// @Param page query int false "页码"
// @Param perPage query int false "每页条数"
// @Success 200 {object} dto.PageResult
// @Router /inventories/search [get]
func (c *InventoryController) SearchInventories(ctx *gin.Context) {
	shopID := middleware.GetShopID(ctx)
	keyword := ctx.Query("qitem")
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(ctx.DefaultQuery("perPage", "25"))

	resp, err := c.invService.SearchInventories(ctx.Request.Context(), shopID, keyword, page, perPage)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, resp)
}

// GetInventoryByItem 单品流水履历
// @Summary 单品流水履历
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param itemId path int true "商品 ID"
// @Success 200 {object} map[string]interface{}
// @Router /inventories/items/{itemId} [get]
func (c *InventoryController) GetInventoryByItem(ctx *gin.Context) {
	itemID, err := strconv.ParseInt(ctx.Param("itemId"), 10, 64)
	if err != nil {
		badRequest(ctx, "商品 ID 必须是数字")
		return
	}

	total, list, err := c.invService.GetInventoryByItem(ctx.Request.Context(), itemID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, gin.H{
		"total_items": total,
		"inventory":   list,
	})
}
