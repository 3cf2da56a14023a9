package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"inventory_dev_v2_202608/internal/model"
)

// ==================== InventoryRepository 库存流水仓库 ====================

// InventoryRepository 库存流水仓储接口
type InventoryRepository interface {
	Create(ctx context.Context, inv *model.Inventory) error
	GetByID(ctx context.Context, id int64) (*model.Inventory, error)
	Update(ctx context.Context, inv *model.Inventory) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter InventoryFilter) ([]model.Inventory, int64, error)
	SumCostBetween(ctx context.Context, shopID int64, start, end time.Time) (float64, error)
	ListRecentByAction(ctx context.Context, shopID int64, action string, limit int) ([]model.Inventory, error)
	ListByItem(ctx context.Context, itemID int64, limit int) ([]model.Inventory, int64, error)
}

// InventoryFilter 库存流水筛选条件
// ItemIDs 非空时按商品集合过滤（名称搜索先查 items 再查流水）
type InventoryFilter struct {
	ShopID   int64
	ItemIDs  []int64
	Page     int
	PageSize int
}

// ==================== 实现 ====================

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存流水仓库
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, inv *model.Inventory) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *inventoryRepository) GetByID(ctx context.Context, id int64) (*model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &inv, err
}

func (r *inventoryRepository) Update(ctx context.Context, inv *model.Inventory) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *inventoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Inventory{}, id).Error
}

// List 分页列出流水，预加载商品与操作人
func (r *inventoryRepository) List(ctx context.Context, filter InventoryFilter) ([]model.Inventory, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Inventory{})

	if filter.ShopID != 0 {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if len(filter.ItemIDs) > 0 {
		query = query.Where("item_id IN ?", filter.ItemIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 25
	}
	offset := (filter.Page - 1) * filter.PageSize

	var list []model.Inventory
	err := query.
		Preload("Item").
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&list).Error

	return list, total, err
}

// SumCostBetween 统计店铺在时间窗内的成本合计
func (r *inventoryRepository) SumCostBetween(ctx context.Context, shopID int64, start, end time.Time) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).
		Model(&model.Inventory{}).
		Where("shop_id = ?", shopID).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(cost), 0)").
		Scan(&sum).Error
	return sum, err
}

// ListRecentByAction 按动作取最近的流水（最近售出/最近补货）
func (r *inventoryRepository) ListRecentByAction(ctx context.Context, shopID int64, action string, limit int) ([]model.Inventory, error) {
	var list []model.Inventory
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("shop_id = ? AND action = ?", shopID, action).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// ListByItem 商品维度的流水履历
func (r *inventoryRepository) ListByItem(ctx context.Context, itemID int64, limit int) ([]model.Inventory, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Inventory{}).
		Where("item_id = ?", itemID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Inventory
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, total, err
}
