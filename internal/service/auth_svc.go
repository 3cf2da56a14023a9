package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/middleware"
	"inventory_dev_v2_202608/internal/model"
	"inventory_dev_v2_202608/internal/repository"
)

// ==================== AuthService 认证服务 ====================

// AuthService 注册/登录/Token 维护/加入店铺
type AuthService struct {
	userRepo   repository.UserRepository
	shopRepo   repository.ShopRepository
	memberRepo repository.MemberRepository
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo repository.UserRepository, shopRepo repository.ShopRepository, memberRepo repository.MemberRepository) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		shopRepo:   shopRepo,
		memberRepo: memberRepo,
	}
}

// ==================== 注册 / 登录 ====================

// Register 注册用户
// Token 里的 shopId 取用户最早加入的店铺，新用户没有店铺则为 0
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hashedPassword),
		Phone:      req.Phone,
		Uid:        uuid.NewString(),
		Permission: model.PermissionStaff,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Login 用户登录
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if user.Password == "" {
		return nil, ErrPasswordNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// issueTokens 以用户最早加入的店铺为 Token 默认店铺签发 Token 对
func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*dto.AuthResponse, error) {
	var shopID int64
	first, err := s.memberRepo.GetFirstByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if first != nil {
		shopID = first.ShopID
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Email, shopID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserInfo(user),
	}, nil
}

// ==================== Token 维护 ====================

// RefreshToken 用 Refresh Token 换取新的 Access Token
func (s *AuthService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// 验证是否为 Refresh Token
	if claims.Subject != "refresh" {
		return nil, ErrInvalidToken
	}

	// 确认用户仍然有效
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 沿用 Token 里的店铺，没有则回查最早加入的店铺
	shopID := claims.ShopID
	if shopID == 0 {
		first, err := s.memberRepo.GetFirstByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if first != nil {
			shopID = first.ShopID
		}
	}

	accessToken, err := middleware.GenerateAccessToken(user.ID, user.Email, shopID)
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.RefreshTokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(cfg.AccessTokenTTL),
	}, nil
}

// GetCurrentUser 获取当前用户信息
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserInfo(user), nil
}

// ChangePassword 修改密码
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if user.Password == "" {
		return ErrPasswordNotSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidOldPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword))
}

// ==================== 加入店铺 ====================

// ConnectToShop 申请加入店铺
//   - 店铺必须存在
//   - 没有成员记录时创建 PENDING 记录；已有记录（无论状态）则幂等返回成功，
//     绝不把 ACCEPTED 降级回 PENDING
//   - 两条路径都重签携带该店铺 ID 的 Token 对：Token 是旧单店模型的信任锚点，
//     下游按店铺过滤的调用依赖它，这是兼容行为而非优化
func (s *AuthService) ConnectToShop(ctx context.Context, userID int64, req *dto.ConnectShopRequest) (*dto.ConnectShopResponse, error) {
	shop, err := s.shopRepo.GetByID(ctx, req.ShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// ON CONFLICT DO NOTHING：并发重复 connect 只会落一条记录，
	// 输掉的一方 created=false，走下面的幂等分支
	member := &model.ShopMember{
		UserID:           userID,
		ShopID:           req.ShopID,
		AcceptedIntoShop: false,
	}
	created, err := s.memberRepo.CreateIfAbsent(ctx, member)
	if err != nil {
		return nil, err
	}

	message := "成功申请加入店铺，等待审核"
	if !created {
		message = "用户已在该店铺中"
	}

	_ = s.userRepo.UpdateLastShop(ctx, userID, req.ShopID)

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Email, req.ShopID)
	if err != nil {
		return nil, err
	}

	return &dto.ConnectShopResponse{
		Message:      message,
		User:         toUserInfo(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ==================== 错误定义 ====================

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrPasswordNotSet     = errors.New("账号未设置密码")
	ErrInvalidToken       = errors.New("Token 无效")
	ErrInvalidOldPassword = errors.New("当前密码错误")
	ErrEmailExists        = errors.New("该邮箱已被注册")
)
