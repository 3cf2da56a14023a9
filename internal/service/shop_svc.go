package service

import (
	"context"
	"errors"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/model"
	"inventory_dev_v2_202608/internal/repository"
)

// ==================== ShopService 店铺服务 ====================

// ShopService 店铺 CRUD 与成员列表
type ShopService struct {
	shopRepo   repository.ShopRepository
	memberRepo repository.MemberRepository
	userRepo   repository.UserRepository
}

// NewShopService 创建店铺服务
func NewShopService(shopRepo repository.ShopRepository, memberRepo repository.MemberRepository, userRepo repository.UserRepository) *ShopService {
	return &ShopService{
		shopRepo:   shopRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
	}
}

// ==================== 店铺 CRUD ====================

// CreateShop 创建店铺
// 创建人直接以 ACCEPTED 状态写入成员表（创建者天然可信，不经过 PENDING），
// 并刷新其最近活跃店铺提示
func (s *ShopService) CreateShop(ctx context.Context, req *dto.CreateShopRequest, creatorID int64) (*model.Shop, error) {
	shop := &model.Shop{Name: req.Name}
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}

	member := &model.ShopMember{
		UserID:           creatorID,
		ShopID:           shop.ID,
		AcceptedIntoShop: true,
	}
	if _, err := s.memberRepo.CreateIfAbsent(ctx, member); err != nil {
		return nil, err
	}

	_ = s.userRepo.UpdateLastShop(ctx, creatorID, shop.ID)

	return shop, nil
}

// ListShops 店铺列表
func (s *ShopService) ListShops(ctx context.Context, req *dto.ShopListRequest) (*dto.PageResult, error) {
	shops, total, err := s.shopRepo.List(ctx, repository.ShopFilter{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PerPage,
	})
	if err != nil {
		return nil, err
	}

	page, perPage := req.Page, req.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return dto.NewPageResult(total, page, perPage, shops), nil
}

// GetShop 获取店铺详情
func (s *ShopService) GetShop(ctx context.Context, id int64) (*model.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}
	return shop, nil
}

// UpdateShop 更新店铺
func (s *ShopService) UpdateShop(ctx context.Context, id int64, req *dto.UpdateShopRequest) (*model.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}

	if req.Name != "" {
		shop.Name = req.Name
	}
	if req.Description != "" {
		shop.Description = req.Description
	}
	if req.Address != "" {
		shop.Address = req.Address
	}
	if req.Phone != "" {
		shop.Phone = req.Phone
	}
	if req.Email != "" {
		shop.Email = req.Email
	}
	if req.Website != "" {
		shop.Website = req.Website
	}

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// DeleteShop 删除店铺
func (s *ShopService) DeleteShop(ctx context.Context, id int64) error {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if shop == nil {
		return ErrShopNotFound
	}
	return s.shopRepo.Delete(ctx, id)
}

// VerifyShopByName 按名称查店铺是否存在
func (s *ShopService) VerifyShopByName(ctx context.Context, name string) (*dto.VerifyShopResponse, error) {
	shop, err := s.shopRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return &dto.VerifyShopResponse{
			Exists:  false,
			Message: "店铺不存在",
		}, nil
	}
	return &dto.VerifyShopResponse{Exists: true, Shop: shop}, nil
}

// ==================== 成员列表 ====================

// ListShopUsers 店铺全部成员
func (s *ShopService) ListShopUsers(ctx context.Context, shopID int64) ([]*dto.ShopUserInfo, error) {
	return s.listMembers(ctx, shopID, nil)
}

// ListAcceptedUsers 已接纳成员
func (s *ShopService) ListAcceptedUsers(ctx context.Context, shopID int64) ([]*dto.ShopUserInfo, error) {
	accepted := true
	return s.listMembers(ctx, shopID, &accepted)
}

// ListUnacceptedUsers 待审核成员
func (s *ShopService) ListUnacceptedUsers(ctx context.Context, shopID int64) ([]*dto.ShopUserInfo, error) {
	accepted := false
	return s.listMembers(ctx, shopID, &accepted)
}

func (s *ShopService) listMembers(ctx context.Context, shopID int64, accepted *bool) ([]*dto.ShopUserInfo, error) {
	members, err := s.memberRepo.ListByShop(ctx, shopID, accepted)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.ShopUserInfo, 0, len(members))
	for _, m := range members {
		if m.User == nil {
			continue
		}
		list = append(list, toShopUserInfo(&m))
	}
	return list, nil
}

// toShopUserInfo 组装成员视角的用户信息
// 密码哈希无条件排除；生效权限取成员覆盖，否则回退用户全局权限
func toShopUserInfo(m *model.ShopMember) *dto.ShopUserInfo {
	permission := m.User.Permission
	if m.Permission != "" {
		permission = m.Permission
	}
	return &dto.ShopUserInfo{
		UserInfo: dto.UserInfo{
			ID:         m.User.ID,
			Username:   m.User.Username,
			Email:      m.User.Email,
			Phone:      m.User.Phone,
			Permission: permission,
			Uid:        m.User.Uid,
			CreatedAt:  m.User.CreatedAt,
			UpdatedAt:  m.User.UpdatedAt,
		},
		ShopID:           m.ShopID,
		AcceptedIntoShop: m.AcceptedIntoShop,
	}
}

// ==================== 错误定义 ====================

var (
	ErrShopNotFound = errors.New("店铺不存在")
)
