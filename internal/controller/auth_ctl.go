package controller

import (
	"github.com/gin-gonic/gin"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/middleware"
	"inventory_dev_v2_202608/internal/service"
)

// ==================== AuthController 认证控制器 ====================

// AuthController 认证控制器
type AuthController struct {
	authService *service.AuthService
}

// NewAuthController 创建认证控制器
func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register 注册
// @Summary 注册用户
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	created(ctx, resp)
}

// Login 登录
// @Summary 用户登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	okMessage(ctx, "登录成功", resp)
}

// RefreshToken 刷新 Token
// @Summary 刷新 Token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} map[string]interface{}
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.authService.RefreshToken(ctx.Request.Context(), &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	okMessage(ctx, "刷新成功", resp)
}

// Logout 登出（无状态，客户端丢弃 Token 即可）
// @Summary 登出
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	okMessage(ctx, "已登出", nil)
}

// Me 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserInfo
// @Failure 401 {object} map[string]interface{}
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	user, err := c.authService.GetCurrentUser(ctx.Request.Context(), userID)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, user)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "密码信息"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	userID := middleware.GetUserID(ctx)

	if err := c.authService.ChangePassword(ctx.Request.Context(), userID, &req); err != nil {
		fail(ctx, err)
		return
	}

	okMessage(ctx, "密码修改成功", nil)
}

// ConnectShop 申请加入店铺
// @Summary 申请加入店铺（重复申请幂等，两条路径都重签 Token）
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ConnectShopRequest true "店铺 ID"
// @Success 200 {object} dto.ConnectShopResponse
// @Failure 404 {object} map[string]interface{}
// @Router /auth/connect-shop [post]
func (c *AuthController) ConnectShop(ctx *gin.Context) {
	var req dto.ConnectShopRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "参数错误: "+err.Error())
		return
	}

	userID := middleware.GetUserID(ctx)

	resp, err := c.authService.ConnectToShop(ctx.Request.Context(), userID, &req)
	if err != nil {
		fail(ctx, err)
		return
	}

	ok(ctx, resp)
}
