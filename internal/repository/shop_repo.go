package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"inventory_dev_v2_202608/internal/model"
)

// ==================== 接口定义 ====================

// ShopRepository 店铺仓储接口
type ShopRepository interface {
	Create(ctx context.Context, shop *model.Shop) error
	GetByID(ctx context.Context, id int64) (*model.Shop, error)
	GetByName(ctx context.Context, name string) (*model.Shop, error)
	Update(ctx context.Context, shop *model.Shop) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ShopFilter) ([]model.Shop, int64, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Shop, error)
}

// ShopFilter 店铺过滤条件
type ShopFilter struct {
	Keyword  string
	Page     int
	PageSize int
}

// ==================== 仓储实现 ====================

type shopRepo struct {
	db *gorm.DB
}

// NewShopRepository 创建店铺仓储
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepo{db: db}
}

func (r *shopRepo) Create(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

func (r *shopRepo) GetByID(ctx context.Context, id int64) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).First(&shop, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

func (r *shopRepo) GetByName(ctx context.Context, name string) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

func (r *shopRepo) Update(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

// Delete 删除店铺，店铺的成员关系一并删除
func (r *shopRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shop_id = ?", id).Delete(&model.ShopMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Shop{}, id).Error
	})
}

func (r *shopRepo) List(ctx context.Context, filter ShopFilter) ([]model.Shop, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Shop{})

	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	offset := (filter.Page - 1) * filter.PageSize

	var shops []model.Shop
	err := query.
		Order("id DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&shops).Error

	return shops, total, err
}

// ListByUserID 查询用户（以成员身份）所在的全部店铺
func (r *shopRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Shop, error) {
	var shops []model.Shop
	err := r.db.WithContext(ctx).
		Joins("JOIN shop_members ON shop_members.shop_id = shops.id").
		Where("shop_members.user_id = ?", userID).
		Find(&shops).Error
	return shops, err
}
