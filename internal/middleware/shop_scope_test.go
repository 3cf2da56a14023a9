package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

// fakeResolver 按固定优先级解析，只认店铺 10 的成员
type fakeResolver struct {
	memberShops map[int64]bool
}

func (f *fakeResolver) ResolveShopID(tokenShopID int64, queryShopID, bodyShopID, cookieShopID string) (int64, error) {
	if tokenShopID != 0 {
		return tokenShopID, nil
	}
	for _, raw := range []string{queryShopID, bodyShopID, cookieShopID} {
		if raw == "" {
			continue
		}
		switch raw {
		case "10":
			return 10, nil
		case "20":
			return 20, nil
		default:
			return 0, errInvalid
		}
	}
	return 0, errMissing
}

func (f *fakeResolver) AuthorizeMember(ctx context.Context, userID, shopID int64) error {
	if !f.memberShops[shopID] {
		return errDenied
	}
	return nil
}

type scopeErr string

func (e scopeErr) Error() string { return string(e) }

const (
	errMissing scopeErr = "missing shop id"
	errInvalid scopeErr = "invalid shop id"
	errDenied  scopeErr = "not a member"
)

func statusOf(err error) int {
	if err == errInvalid {
		return http.StatusBadRequest
	}
	return http.StatusForbidden
}

func newScopeRouter(tokenShopID int64) *gin.Engine {
	resolver := &fakeResolver{memberShops: map[int64]bool{10: true}}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextKeyClaims, &UserClaims{UserID: 1, Email: "a@test.com", ShopID: tokenShopID})
	})
	r.Use(ShopScope(resolver, statusOf))
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"shop_id": GetShopID(c)})
	}
	r.GET("/ping", handler)
	r.POST("/ping", handler)
	return r
}

func doReq(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 单元测试 ====================

func TestShopScope_TokenWinsOverQuery(t *testing.T) {
	r := newScopeRouter(10)

	// query 指向 20，Token 指向 10：Token 优先，成员校验通过
	req, _ := http.NewRequest("GET", "/ping?shopId=20", nil)
	w := doReq(r, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"shop_id":10`) {
		t.Errorf("body = %s, want shop_id 10", w.Body.String())
	}
}

func TestShopScope_QueryUsedWithoutToken(t *testing.T) {
	r := newScopeRouter(0)

	req, _ := http.NewRequest("GET", "/ping?shopId=10", nil)
	w := doReq(r, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

// 解析出的店铺不是成员：即使带合法 Token 也拒绝
func TestShopScope_MembershipRecheckedOnResolvedShop(t *testing.T) {
	r := newScopeRouter(0)

	req, _ := http.NewRequest("GET", "/ping?shopId=20", nil)
	w := doReq(r, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestShopScope_BodyShopID(t *testing.T) {
	r := newScopeRouter(0)

	req, _ := http.NewRequest("POST", "/ping", strings.NewReader(`{"shop_id":10,"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := doReq(r, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body = %s", w.Code, w.Body.String())
	}
}

func TestShopScope_CookieShopID(t *testing.T) {
	r := newScopeRouter(0)

	req, _ := http.NewRequest("GET", "/ping", nil)
	req.AddCookie(&http.Cookie{Name: "shopId", Value: "10"})
	w := doReq(r, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestShopScope_MissingEverywhere(t *testing.T) {
	r := newScopeRouter(0)

	req, _ := http.NewRequest("GET", "/ping", nil)
	w := doReq(r, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestShopScope_InvalidShopID(t *testing.T) {
	r := newScopeRouter(0)

	req, _ := http.NewRequest("GET", "/ping?shopId=abc", nil)
	w := doReq(r, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestShopScope_NoClaims(t *testing.T) {
	resolver := &fakeResolver{memberShops: map[int64]bool{10: true}}

	r := gin.New()
	r.Use(ShopScope(resolver, statusOf))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req, _ := http.NewRequest("GET", "/ping", nil)
	w := doReq(r, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

// peekBodyShopID 不能吃掉 body，后续 handler 还要正常绑定
func TestShopScope_BodyStillReadable(t *testing.T) {
	resolver := &fakeResolver{memberShops: map[int64]bool{10: true}}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextKeyClaims, &UserClaims{UserID: 1, ShopID: 0})
	})
	r.Use(ShopScope(resolver, statusOf))
	r.POST("/echo", func(c *gin.Context) {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": body.Name})
	})

	req, _ := http.NewRequest("POST", "/echo", strings.NewReader(`{"shop_id":10,"name":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	w := doReq(r, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "hello") {
		t.Errorf("body 被中间件消费掉了: %s", w.Body.String())
	}
}

// ==================== JWT 辅助 ====================

func TestGenerateAndParseToken(t *testing.T) {
	access, refresh, err := GenerateTokenPair(7, "a@test.com", 10)
	if err != nil {
		t.Fatalf("生成 Token 对失败: %v", err)
	}

	claims, err := ParseToken(access)
	if err != nil {
		t.Fatalf("解析 Access Token 失败: %v", err)
	}
	if claims.UserID != 7 || claims.ShopID != 10 || claims.Subject != "access" {
		t.Errorf("claims = %+v", claims)
	}

	claims, err = ParseToken(refresh)
	if err != nil {
		t.Fatalf("解析 Refresh Token 失败: %v", err)
	}
	if claims.Subject != "refresh" {
		t.Errorf("subject = %s, want refresh", claims.Subject)
	}

	if _, err := ParseToken("garbage"); err == nil {
		t.Error("非法 Token 应解析失败")
	}
}
