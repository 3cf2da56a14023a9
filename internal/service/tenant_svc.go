package service

import (
	"context"
	"errors"
	"strconv"

	"inventory_dev_v2_202608/internal/repository"
)

// ==================== TenantService 租户解析 ====================

// TenantService 为每个请求裁定唯一的店铺 ID，并校验调用方是否可以在该店铺内操作。
//
// 历史上 shopId 有四个来源：Token、query、body、cookie。旧的单店模型直接
// 信任 Token 里的 shopId；多店模型下 query/body 可以指向另一家店，所以无论
// shopId 从哪个来源解析出来，都必须对解析结果重新校验成员关系。
type TenantService struct {
	memberRepo repository.MemberRepository
	itemRepo   repository.ItemRepository
}

// NewTenantService 创建租户解析服务
func NewTenantService(memberRepo repository.MemberRepository, itemRepo repository.ItemRepository) *TenantService {
	return &TenantService{
		memberRepo: memberRepo,
		itemRepo:   itemRepo,
	}
}

// ResolveShopID 按固定优先级裁定店铺 ID：Token > query > body > cookie。
// 取第一个非空来源；全部为空返回 ErrMissingTenant；非数字返回 ErrInvalidTenant。
// 纯函数，无副作用，同一请求内可重复调用。
func (s *TenantService) ResolveShopID(tokenShopID int64, queryShopID, bodyShopID, cookieShopID string) (int64, error) {
	if tokenShopID != 0 {
		return tokenShopID, nil
	}

	for _, raw := range []string{queryShopID, bodyShopID, cookieShopID} {
		if raw == "" {
			continue
		}
		shopID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, ErrInvalidTenant
		}
		return shopID, nil
	}

	return 0, ErrMissingTenant
}

// AuthorizeMember 校验调用方在解析出的店铺中有成员记录。
// 必须传入 ResolveShopID 的结果，而不是 Token 里的 shopId。
func (s *TenantService) AuthorizeMember(ctx context.Context, userID, shopID int64) error {
	exists, err := s.memberRepo.Exists(ctx, userID, shopID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotAMember
	}
	return nil
}

// AuthorizeItem 校验路径上的商品归属于解析出的店铺。
// 商品不存在优先返回 ErrItemNotFound，其次才是归属不符的 ErrShopMismatch。
func (s *TenantService) AuthorizeItem(ctx context.Context, itemID, shopID int64) error {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	if item.ShopID != shopID {
		return ErrShopMismatch
	}
	return nil
}

// TenantErrorStatus 把租户解析/鉴权错误翻译成 HTTP 状态码。
// 非数字的 shopId 属于参数错误(400)，缺失或无权限属于授权错误(403)。
func TenantErrorStatus(err error) int {
	if errors.Is(err, ErrInvalidTenant) {
		return 400
	}
	return 403
}

// ==================== 错误定义 ====================

var (
	ErrMissingTenant = errors.New("缺少店铺 ID：Token、query、body、cookie 均未提供")
	ErrInvalidTenant = errors.New("店铺 ID 必须是数字")
	ErrNotAMember    = errors.New("用户不是该店铺的成员")
	ErrShopMismatch  = errors.New("无权访问其他店铺的资源")
)
