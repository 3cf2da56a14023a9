package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/service"
)

// ==================== UserController 用户控制器 ====================

// UserController 用户管理接口
type UserController struct {
	userService *service.UserService
}

// NewUserController 创建用户控制器
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// ListUsers 用户列表
// @Summary 用户列表
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "关键词"
// @Param page query int false "页码"
// @Param per_page query int false "每页条数"
// @Success 200 {object} dto.PageResult
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	keyword := ctx.Query("keyword")
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(ctx.DefaultQuery("per_page", "20"))

	resp, err := c.userService.ListUsers(ctx.Request.Context(), keyword, page, perPage)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, resp)
}

// GetUser 用户详情
// @Summary 用户详情
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Success 200 {object} dto.UserInfo
// @Failure 404 {object} map[string]interface{}
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "用户 ID 必须是数字")
		return
	}

	user, err := c.userService.GetUserByID(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, user)
}

// GetUserByUid 根据 UUID 获取用户
// @Summary 根据 UUID 获取用户
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param uid path string true "用户 UUID"
// @Success 200 {object} dto.UserInfo
// @Failure 404 {object} map[string]interface{}
// @Router /users/uid/{uid} [get]
func (c *UserController) GetUserByUid(ctx *gin.Context) {
	uid := ctx.Param("uid")

	user, err := c.userService.GetUserByUid(ctx.Request.Context(), uid)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, user)
}

// CreateUser 创建用户
// @Summary 创建用户
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "用户信息"
// @Success 201 {object} dto.UserInfo
// @Failure 409 {object} map[string]interface{}
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	user, err := c.userService.CreateUser(ctx.Request.Context(), &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	created(ctx, user)
}

// UpdateUser 更新用户
// @Summary 更新用户
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Param request body dto.UpdateUserRequest true "用户信息"
// @Success 200 {object} dto.UserInfo
// @Failure 404 {object} map[string]interface{}
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "用户 ID 必须是数字")
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	user, err := c.userService.UpdateUser(ctx.Request.Context(), id, &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, user)
}

// DeleteUser 删除用户
// @Summary 删除用户
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户 ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		badRequest(ctx, "用户 ID 必须是数字")
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}

	ctx.Status(204)
}

// ==================== 接纳流程 ====================

// AcceptUser 接纳成员
// @Summary 接纳成员进入店铺
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MembershipRequest true "用户与店铺"
// @Success 200 {object} dto.ShopUserInfo
// @Failure 404 {object} map[string]interface{}
// @Router /users/accept [put]
func (c *UserController) AcceptUser(ctx *gin.Context) {
	var req dto.MembershipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	user, err := c.userService.AcceptUser(ctx.Request.Context(), req.UserID, req.ShopID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, user)
}

// DeacceptUser 取消接纳
// @Summary 取消接纳（回到待审核，不删除记录）
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MembershipRequest true "用户与店铺"
// @Success 200 {object} dto.ShopUserInfo
// @Failure 404 {object} map[string]interface{}
// @Router /users/deaccept [put]
func (c *UserController) DeacceptUser(ctx *gin.Context) {
	var req dto.MembershipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	user, err := c.userService.DeacceptUser(ctx.Request.Context(), req.UserID, req.ShopID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, user)
}
