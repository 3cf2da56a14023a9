package service

import (
	"context"
	"errors"
	"time"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/model"
	"inventory_dev_v2_202608/internal/repository"
)

// ==================== InventoryService 库存流水服务 ====================

const (
	recentListLimit      = 10 // 最近售出/补货条数
	itemHistoryListLimit = 20 // 单品流水履历条数
)

// InventoryService 库存流水 CRUD 与统计
type InventoryService struct {
	invRepo  repository.InventoryRepository
	itemRepo repository.ItemRepository
}

// NewInventoryService 创建库存流水服务
func NewInventoryService(invRepo repository.InventoryRepository, itemRepo repository.ItemRepository) *InventoryService {
	return &InventoryService{
		invRepo:  invRepo,
		itemRepo: itemRepo,
	}
}

// ListInventories 分页列出店铺流水
func (s *InventoryService) ListInventories(ctx context.Context, shopID int64, page, perPage int) (*dto.PageResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 25
	}

	list, total, err := s.invRepo.List(ctx, repository.InventoryFilter{
		ShopID:   shopID,
		Page:     page,
		PageSize: perPage,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewPageResult(total, page, perPage, list), nil
}

// CreateInventory 记录一次售出/补货
// shopID 与 userID 来自租户解析与认证结果，冗余写入流水行
func (s *InventoryService) CreateInventory(ctx context.Context, shopID, userID int64, req *dto.CreateInventoryRequest) (*model.Inventory, error) {
	inv := &model.Inventory{
		ItemID: req.ItemID,
		ShopID: shopID,
		UserID: userID,
		Action: req.Action,
		Cost:   req.Cost,
	}
	if err := s.invRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// UpdateInventory 更新流水
func (s *InventoryService) UpdateInventory(ctx context.Context, id int64, req *dto.UpdateInventoryRequest) (*model.Inventory, error) {
	inv, err := s.invRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrInventoryNotFound
	}

	if req.Action != "" {
		inv.Action = req.Action
	}
	if req.Cost != nil {
		inv.Cost = *req.Cost
	}

	if err := s.invRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// DeleteInventory 删除流水
func (s *InventoryService) DeleteInventory(ctx context.Context, id int64) error {
	inv, err := s.invRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return ErrInventoryNotFound
	}
	return s.invRepo.Delete(ctx, id)
}

// GetGeneralSums 日/周/月成本汇总
// 日为当天 0 点起，周为本周日起，月为本月 1 号起；只读查询，无需加锁
func (s *InventoryService) GetGeneralSums(ctx context.Context, shopID int64) (*dto.InventorySums, error) {
	now := time.Now()

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7).Add(-time.Nanosecond)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	daySum, err := s.invRepo.SumCostBetween(ctx, shopID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	weekSum, err := s.invRepo.SumCostBetween(ctx, shopID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	monthSum, err := s.invRepo.SumCostBetween(ctx, shopID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	return &dto.InventorySums{
		DaySum:   daySum,
		WeekSum:  weekSum,
		MonthSum: monthSum,
	}, nil
}

// GetRecentlySold 最近售出的流水
func (s *InventoryService) GetRecentlySold(ctx context.Context, shopID int64) ([]model.Inventory, error) {
	return s.invRepo.ListRecentByAction(ctx, shopID, model.InventoryActionSell, recentListLimit)
}

// GetRecentlyRefilled 最近补货的流水
func (s *InventoryService) GetRecentlyRefilled(ctx context.Context, shopID int64) ([]model.Inventory, error) {
	return s.invRepo.ListRecentByAction(ctx, shopID, model.InventoryActionRefill, recentListLimit)
}

// SearchInventories 按商品名称搜索流水：先查商品，再按商品集合查流水
func (s *InventoryService) SearchInventories(ctx context.Context, shopID int64, keyword string, page, perPage int) (*dto.PageResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 25
	}

	items, err := s.itemRepo.Search(ctx, shopID, keyword)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &dto.PageResult{
			TotalItems:  0,
			TotalPages:  0,
			CurrentPage: page,
			PerPage:     perPage,
			Items:       []model.Inventory{},
		}, nil
	}

	itemIDs := make([]int64, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}

	list, total, err := s.invRepo.List(ctx, repository.InventoryFilter{
		ItemIDs:  itemIDs,
		Page:     page,
		PageSize: perPage,
	})
	if err != nil {
		return nil, err
	}

	return dto.NewPageResult(total, page, perPage, list), nil
}

// GetInventoryByItem 单品流水履历
func (s *InventoryService) GetInventoryByItem(ctx context.Context, itemID int64) (int64, []model.Inventory, error) {
	list, total, err := s.invRepo.ListByItem(ctx, itemID, itemHistoryListLimit)
	if err != nil {
		return 0, nil, err
	}
	return total, list, nil
}

// ==================== 错误定义 ====================

var (
	ErrInventoryNotFound = errors.New("库存流水不存在")
)
