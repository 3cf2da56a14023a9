package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/model"
	"inventory_dev_v2_202608/internal/repository"
)

// ==================== UserService 用户服务 ====================

// UserService 用户管理与成员接纳流程
type UserService struct {
	userRepo   repository.UserRepository
	memberRepo repository.MemberRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, memberRepo repository.MemberRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		memberRepo: memberRepo,
	}
}

// ==================== 用户管理 ====================

// ListUsers 用户列表
func (s *UserService) ListUsers(ctx context.Context, keyword string, page, pageSize int) (*dto.PageResult, error) {
	users, total, err := s.userRepo.List(ctx, repository.UserFilter{
		Keyword:  keyword,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	list := make([]*dto.UserInfo, len(users))
	for i, u := range users {
		list[i] = toUserInfo(&u)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return dto.NewPageResult(total, page, pageSize, list), nil
}

// GetUserByID 获取用户详情
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserInfo(user), nil
}

// GetUserByUid 根据 UUID 获取用户详情
func (s *UserService) GetUserByUid(ctx context.Context, uid string) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByUid(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserInfo(user), nil
}

// CreateUser 创建用户（管理接口）
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserInfo, error) {
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

	permission := req.Permission
	if permission == "" {
		permission = model.PermissionStaff
	}

	user := &model.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hashedPassword),
		Phone:      req.Phone,
		Uid:        uuid.NewString(),
		Permission: permission,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// UpdateUser 更新用户
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 邮箱不能撞到其他用户
	if req.Email != "" && req.Email != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrEmailExists
		}
		user.Email = req.Email
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Permission != "" {
		user.Permission = req.Permission
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

// DeleteUser 删除用户
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(ctx, id)
}

// ==================== 接纳流程 ====================

// AcceptUser 接纳成员：PENDING -> ACCEPTED
func (s *UserService) AcceptUser(ctx context.Context, userID, shopID int64) (*dto.ShopUserInfo, error) {
	return s.setAccepted(ctx, userID, shopID, true)
}

// DeacceptUser 取消接纳：ACCEPTED -> PENDING，记录不会删除
func (s *UserService) DeacceptUser(ctx context.Context, userID, shopID int64) (*dto.ShopUserInfo, error) {
	return s.setAccepted(ctx, userID, shopID, false)
}

func (s *UserService) setAccepted(ctx context.Context, userID, shopID int64, accepted bool) (*dto.ShopUserInfo, error) {
	member, err := s.memberRepo.Get(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotAMember
	}

	if err := s.memberRepo.UpdateAccepted(ctx, userID, shopID, accepted); err != nil {
		return nil, err
	}

	// 回读带用户信息的记录，组装生效权限（成员覆盖优先）
	updated, err := s.memberRepo.GetWithUser(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	if updated == nil || updated.User == nil {
		return nil, ErrUserNotFound
	}

	return toShopUserInfo(updated), nil
}

// ==================== 辅助方法 ====================

// toUserInfo 转换为 DTO，密码哈希永不外泄
func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Phone:      user.Phone,
		Permission: user.Permission,
		Uid:        user.Uid,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// ==================== 错误定义 ====================

var (
	ErrUserNotFound = errors.New("用户不存在")
)
