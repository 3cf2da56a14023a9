package service

import (
	"context"
	"errors"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/model"
	"inventory_dev_v2_202608/internal/repository"
)

// ==================== ItemService 商品服务 ====================

// ItemService 商品 CRUD，所有查询都以解析出的店铺 ID 为边界
type ItemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService 创建商品服务
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// ListItems 分页列出店铺商品
func (s *ItemService) ListItems(ctx context.Context, shopID int64, page, perPage int) (*dto.PageResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	items, total, err := s.itemRepo.List(ctx, repository.ItemFilter{
		ShopID:   shopID,
		Page:     page,
		PageSize: perPage,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewPageResult(total, page, perPage, items), nil
}

// GetItem 获取商品详情
func (s *ItemService) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// CreateItem 创建商品，shopID 为租户解析结果
func (s *ItemService) CreateItem(ctx context.Context, shopID int64, req *dto.CreateItemRequest) (*model.Item, error) {
	item := &model.Item{
		ShopID:      shopID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Quantity:    req.Quantity,
		ImageUrl:    req.ImageUrl,
		RefillCount: req.RefillCount,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem 更新商品
func (s *ItemService) UpdateItem(ctx context.Context, id int64, req *dto.UpdateItemRequest) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.ImageUrl != "" {
		item.ImageUrl = req.ImageUrl
	}
	if req.RefillCount != nil {
		item.RefillCount = req.RefillCount
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem 删除商品
func (s *ItemService) DeleteItem(ctx context.Context, id int64) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	return s.itemRepo.Delete(ctx, id)
}

// SearchItems 店铺内按关键词搜索商品
func (s *ItemService) SearchItems(ctx context.Context, shopID int64, keyword string) ([]model.Item, error) {
	return s.itemRepo.Search(ctx, shopID, keyword)
}

// ListItemsBelowRefillLimit 列出库存低于补货阈值的商品
// 阈值为空的商品按默认值 5 处理
func (s *ItemService) ListItemsBelowRefillLimit(ctx context.Context, shopID int64) ([]model.Item, error) {
	items, err := s.itemRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	low := make([]model.Item, 0)
	for _, item := range items {
		if item.BelowRefillLimit() {
			low = append(low, item)
		}
	}
	return low, nil
}

// ==================== 错误定义 ====================

var (
	ErrItemNotFound = errors.New("商品不存在")
)
