package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ==================== ShopScope 租户范围中间件 ====================

// ContextKeyShopID 解析出的店铺 ID 在 gin Context 里的 key
const ContextKeyShopID = "shop_id"

// TenantResolver 租户解析契约，由 service.TenantService 实现
// 用接口解耦，避免 middleware 与 service 互相引用
type TenantResolver interface {
	ResolveShopID(tokenShopID int64, queryShopID, bodyShopID, cookieShopID string) (int64, error)
	AuthorizeMember(ctx context.Context, userID, shopID int64) error
}

// ShopScope 在 JWTAuth 之后运行：
//  1. 按 Token > query > body > cookie 的优先级裁定店铺 ID
//  2. 对裁定结果重新校验成员关系（绝不单凭 Token 放行）
//  3. 将店铺 ID 注入 Context 供后续 handler 使用
// statusOf 把解析错误翻译成 HTTP 状态码（service.TenantErrorStatus），
// 传 nil 时一律按 403 处理
func ShopScope(resolver TenantResolver, statusOf func(error) int) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetUserClaims(c)
		if claims == nil {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "用户未认证",
			})
			c.Abort()
			return
		}

		cookieShopID, _ := c.Cookie("shopId")
		shopID, err := resolver.ResolveShopID(
			claims.ShopID,
			c.Query("shopId"),
			peekBodyShopID(c),
			cookieShopID,
		)
		if err != nil {
			status := http.StatusForbidden
			if statusOf != nil {
				status = statusOf(err)
			}
			c.JSON(status, gin.H{
				"code":    status,
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		if err := resolver.AuthorizeMember(c.Request.Context(), claims.UserID, shopID); err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(ContextKeyShopID, shopID)
		c.Next()
	}
}

// GetShopID 从 Context 获取解析出的店铺 ID
func GetShopID(c *gin.Context) int64 {
	if id, exists := c.Get(ContextKeyShopID); exists {
		return id.(int64)
	}
	return 0
}

// peekBodyShopID 无副作用地偷看 JSON body 里的 shop_id / shopId。
// 读完后把 body 原样放回去，不影响后续的 ShouldBindJSON。
func peekBodyShopID(c *gin.Context) string {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return ""
	}
	if !strings.Contains(c.ContentType(), "application/json") {
		return ""
	}

	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var body struct {
		ShopID *json.Number `json:"shop_id"`
		ShopId *json.Number `json:"shopId"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.ShopID != nil {
		return body.ShopID.String()
	}
	if body.ShopId != nil {
		return body.ShopId.String()
	}
	return ""
}
