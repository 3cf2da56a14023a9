package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inventory_dev_v2_202608/internal/model"
)

// ==================== MemberRepository 店铺成员仓库 ====================

// MemberRepository 用户-店铺成员关系仓储接口
type MemberRepository interface {
	// CreateIfAbsent 插入成员记录，(user_id, shop_id) 冲突时静默跳过
	// 返回是否真正插入了新记录
	CreateIfAbsent(ctx context.Context, member *model.ShopMember) (bool, error)
	Get(ctx context.Context, userID, shopID int64) (*model.ShopMember, error)
	GetWithUser(ctx context.Context, userID, shopID int64) (*model.ShopMember, error)
	GetFirstByUserID(ctx context.Context, userID int64) (*model.ShopMember, error)
	Exists(ctx context.Context, userID, shopID int64) (bool, error)
	UpdateAccepted(ctx context.Context, userID, shopID int64, accepted bool) error
	ListByShop(ctx context.Context, shopID int64, accepted *bool) ([]model.ShopMember, error)
}

// ==================== 实现 ====================

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建成员仓库
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// CreateIfAbsent 依赖 idx_user_shop 联合唯一索引兜底并发：
// 两个并发 connect 只会落一条记录，输掉的一方走幂等路径而不是唯一键报错
func (r *memberRepository) CreateIfAbsent(ctx context.Context, member *model.ShopMember) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "shop_id"}},
			DoNothing: true,
		}).
		Create(member)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Get 获取成员记录
func (r *memberRepository) Get(ctx context.Context, userID, shopID int64) (*model.ShopMember, error) {
	var member model.ShopMember
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND shop_id = ?", userID, shopID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

// GetWithUser 获取成员记录并预加载用户
func (r *memberRepository) GetWithUser(ctx context.Context, userID, shopID int64) (*model.ShopMember, error) {
	var member model.ShopMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ? AND shop_id = ?", userID, shopID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

// GetFirstByUserID 获取用户最早加入的店铺记录，用作 Token 默认店铺
func (r *memberRepository) GetFirstByUserID(ctx context.Context, userID int64) (*model.ShopMember, error) {
	var member model.ShopMember
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

// Exists 成员记录是否存在（不区分接纳状态）
func (r *memberRepository) Exists(ctx context.Context, userID, shopID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ShopMember{}).
		Where("user_id = ? AND shop_id = ?", userID, shopID).
		Count(&count).Error
	return count > 0, err
}

// UpdateAccepted 翻转接纳状态
func (r *memberRepository) UpdateAccepted(ctx context.Context, userID, shopID int64, accepted bool) error {
	return r.db.WithContext(ctx).
		Model(&model.ShopMember{}).
		Where("user_id = ? AND shop_id = ?", userID, shopID).
		Update("accepted_into_shop", accepted).Error
}

// ListByShop 列出店铺成员，accepted 为 nil 时不按状态过滤
func (r *memberRepository) ListByShop(ctx context.Context, shopID int64, accepted *bool) ([]model.ShopMember, error) {
	query := r.db.WithContext(ctx).
		Preload("User").
		Where("shop_id = ?", shopID)
	if accepted != nil {
		query = query.Where("accepted_into_shop = ?", *accepted)
	}

	var members []model.ShopMember
	err := query.Order("id ASC").Find(&members).Error
	return members, err
}
