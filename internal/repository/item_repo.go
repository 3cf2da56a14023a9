package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"inventory_dev_v2_202608/internal/model"
)

// ==================== ItemRepository 商品仓库 ====================

// ItemRepository 商品仓储接口
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ItemFilter) ([]model.Item, int64, error)
	Search(ctx context.Context, shopID int64, keyword string) ([]model.Item, error)
	ListByShop(ctx context.Context, shopID int64) ([]model.Item, error)
}

// ItemFilter 商品筛选条件，ShopID 必填
type ItemFilter struct {
	ShopID   int64
	Page     int
	PageSize int
}

// ==================== 实现 ====================

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository 创建商品仓库
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Item{}, id).Error
}

// List 按店铺分页列出商品，新创建的排前面
func (r *itemRepository) List(ctx context.Context, filter ItemFilter) ([]model.Item, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("shop_id = ?", filter.ShopID)

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

	var items []model.Item
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&items).Error

	return items, total, err
}

// Search 店铺内按名称/描述模糊搜索
func (r *itemRepository) Search(ctx context.Context, shopID int64, keyword string) ([]model.Item, error) {
	var items []model.Item
	kw := "%" + keyword + "%"
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Where("name LIKE ? OR description LIKE ?", kw, kw).
		Find(&items).Error
	return items, err
}

// ListByShop 列出店铺全部商品（补货阈值筛查用）
func (r *itemRepository) ListByShop(ctx context.Context, shopID int64) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Find(&items).Error
	return items, err
}
