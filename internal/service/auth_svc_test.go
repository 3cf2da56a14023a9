package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/middleware"
	"inventory_dev_v2_202608/internal/model"
	"inventory_dev_v2_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupAuthTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Shop{}, &model.ShopMember{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewShopRepository(db),
		repository.NewMemberRepository(db),
	)
}

// ==================== 注册 / 登录 ====================

func TestAuthService_Register(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@test.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("注册应签发 Token 对")
	}
	if resp.User.Uid == "" {
		t.Error("注册应生成 UUID")
	}

	// 落库的必须是 bcrypt 哈希，不能是明文
	var user model.User
	db.Where("email = ?", "alice@test.com").First(&user)
	if user.Password == "secret123" {
		t.Fatal("密码不能明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")); err != nil {
		t.Errorf("哈希校验失败: %v", err)
	}
	if user.Permission != model.PermissionStaff {
		t.Errorf("默认权限 = %s, want %s", user.Permission, model.PermissionStaff)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := newAuthService(setupAuthTestDB(t))
	ctx := context.Background()

	req := &dto.RegisterRequest{Username: "alice", Email: "alice@test.com", Password: "secret123"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrEmailExists) {
		t.Errorf("重复邮箱应返回 ErrEmailExists, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthService(setupAuthTestDB(t))
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "bob", Email: "bob@test.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 正确密码
	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "bob@test.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("登录应签发 Access Token")
	}

	// 错误密码
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "bob@test.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("错误密码应返回 ErrInvalidCredentials, got %v", err)
	}

	// 不存在的邮箱
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@test.com", Password: "secret123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("不存在的邮箱应返回 ErrInvalidCredentials, got %v", err)
	}
}

// ==================== Token 维护 ====================

func TestAuthService_RefreshToken(t *testing.T) {
	svc := newAuthService(setupAuthTestDB(t))
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "carol", Email: "carol@test.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// Refresh Token 换新
	refreshed, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("应返回新的 Access Token")
	}

	// Access Token 不能当 Refresh Token 用
	if _, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: resp.AccessToken}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Access Token 刷新应返回 ErrInvalidToken, got %v", err)
	}

	// 乱写的 Token
	if _, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: "garbage"}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("非法 Token 应返回 ErrInvalidToken, got %v", err)
	}
}

// ==================== 加入店铺 ====================

func TestAuthService_ConnectToShop(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "dave", Email: "dave@test.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	userID := resp.User.ID

	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 10}, Name: "目标店铺"})

	// 首次申请：生成待审核记录
	connected, err := svc.ConnectToShop(ctx, userID, &dto.ConnectShopRequest{ShopID: 10})
	if err != nil {
		t.Fatalf("申请加入失败: %v", err)
	}
	if connected.Message != "成功申请加入店铺，等待审核" {
		t.Errorf("message = %s", connected.Message)
	}

	var member model.ShopMember
	if err := db.Where("user_id = ? AND shop_id = ?", userID, 10).First(&member).Error; err != nil {
		t.Fatalf("成员记录未创建: %v", err)
	}
	if member.AcceptedIntoShop {
		t.Error("新申请应为待审核状态")
	}

	// 新 Token 必须携带目标店铺
	claims, err := middleware.ParseToken(connected.AccessToken)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.ShopID != 10 {
		t.Errorf("Token shopID = %d, want 10", claims.ShopID)
	}

	// 重复申请：幂等，不新建记录
	again, err := svc.ConnectToShop(ctx, userID, &dto.ConnectShopRequest{ShopID: 10})
	if err != nil {
		t.Fatalf("重复申请失败: %v", err)
	}
	if again.Message != "用户已在该店铺中" {
		t.Errorf("message = %s", again.Message)
	}

	var count int64
	db.Model(&model.ShopMember{}).Where("user_id = ? AND shop_id = ?", userID, 10).Count(&count)
	if count != 1 {
		t.Errorf("成员记录数 = %d, want 1", count)
	}

	// 审核通过后再次申请：绝不降级回待审核
	db.Model(&model.ShopMember{}).Where("user_id = ? AND shop_id = ?", userID, 10).
		Update("accepted_into_shop", true)

	if _, err := svc.ConnectToShop(ctx, userID, &dto.ConnectShopRequest{ShopID: 10}); err != nil {
		t.Fatalf("已接纳后重复申请失败: %v", err)
	}

	db.Where("user_id = ? AND shop_id = ?", userID, 10).First(&member)
	if !member.AcceptedIntoShop {
		t.Error("重复申请不能把已接纳状态降级")
	}
}

func TestAuthService_ConnectToShop_ShopNotFound(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "eve", Email: "eve@test.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	if _, err := svc.ConnectToShop(ctx, resp.User.ID, &dto.ConnectShopRequest{ShopID: 999}); !errors.Is(err, ErrShopNotFound) {
		t.Errorf("不存在的店铺应返回 ErrShopNotFound, got %v", err)
	}
}

// Token 默认店铺取最早加入的店铺
func TestAuthService_IssueTokens_FirstShop(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "frank", Email: "frank@test.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	// 新用户没有店铺，Token shopID 应为 0
	claims, err := middleware.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.ShopID != 0 {
		t.Errorf("无店铺用户 Token shopID = %d, want 0", claims.ShopID)
	}

	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 10}, Name: "第一家"})
	db.Create(&model.ShopMember{UserID: resp.User.ID, ShopID: 10, AcceptedIntoShop: true})

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "frank@test.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	claims, _ = middleware.ParseToken(login.AccessToken)
	if claims.ShopID != 10 {
		t.Errorf("Token shopID = %d, want 10", claims.ShopID)
	}
}
