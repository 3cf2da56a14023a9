package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/model"
	"inventory_dev_v2_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupItemTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Shop{}, &model.Item{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newItemService(db *gorm.DB) *ItemService {
	return NewItemService(repository.NewItemRepository(db))
}

// ==================== 单元测试 ====================

func TestItemService_ListItems_Pagination(t *testing.T) {
	db := setupItemTestDB(t)
	svc := newItemService(db)
	ctx := context.Background()

	for i := 1; i <= 57; i++ {
		db.Create(&model.Item{ShopID: 10, Name: fmt.Sprintf("商品%d", i)})
	}
	// 其他店铺的数据不能混进来
	db.Create(&model.Item{ShopID: 20, Name: "别家的货"})

	result, err := svc.ListItems(ctx, 10, 1, 25)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if result.TotalItems != 57 {
		t.Errorf("total_items = %d, want 57", result.TotalItems)
	}
	if result.TotalPages != 3 {
		t.Errorf("total_pages = %d, want 3", result.TotalPages)
	}
	if len(result.Items.([]model.Item)) != 25 {
		t.Errorf("第一页条数 = %d, want 25", len(result.Items.([]model.Item)))
	}

	// 末页只剩零头
	result, err = svc.ListItems(ctx, 10, 3, 25)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(result.Items.([]model.Item)) != 7 {
		t.Errorf("第三页条数 = %d, want 7", len(result.Items.([]model.Item)))
	}
	if result.CurrentPage != 3 {
		t.Errorf("current_page = %d, want 3", result.CurrentPage)
	}
}

func TestItemService_ListItems_Defaults(t *testing.T) {
	db := setupItemTestDB(t)
	svc := newItemService(db)
	ctx := context.Background()

	for i := 1; i <= 15; i++ {
		db.Create(&model.Item{ShopID: 10, Name: fmt.Sprintf("商品%d", i)})
	}

	// page/perPage 传 0 时回退默认值
	result, err := svc.ListItems(ctx, 10, 0, 0)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if result.PerPage != 10 {
		t.Errorf("默认 per_page = %d, want 10", result.PerPage)
	}
	if result.CurrentPage != 1 {
		t.Errorf("默认 current_page = %d, want 1", result.CurrentPage)
	}
	if len(result.Items.([]model.Item)) != 10 {
		t.Errorf("默认页条数 = %d, want 10", len(result.Items.([]model.Item)))
	}
}

func TestItemService_CreateAndUpdate(t *testing.T) {
	db := setupItemTestDB(t)
	svc := newItemService(db)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, 10, &dto.CreateItemRequest{
		Name:     "保温杯",
		Category: "杯具",
		Quantity: 20,
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if item.ShopID != 10 {
		t.Errorf("shop_id = %d, want 10", item.ShopID)
	}

	// 数量可以更新为 0（指针字段区分「没传」和「传 0」）
	zero := 0
	updated, err := svc.UpdateItem(ctx, item.ID, &dto.UpdateItemRequest{Quantity: &zero})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", updated.Quantity)
	}

	if _, err := svc.UpdateItem(ctx, 999, &dto.UpdateItemRequest{Name: "x"}); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("不存在的商品应返回 ErrItemNotFound, got %v", err)
	}
}

func TestItemService_SearchItems(t *testing.T) {
	db := setupItemTestDB(t)
	svc := newItemService(db)
	ctx := context.Background()

	db.Create(&model.Item{ShopID: 10, Name: "陶瓷杯", Description: "白色"})
	db.Create(&model.Item{ShopID: 10, Name: "玻璃瓶", Description: "装杯子的盒子"})
	db.Create(&model.Item{ShopID: 10, Name: "毛巾", Description: "纯棉"})
	db.Create(&model.Item{ShopID: 20, Name: "陶瓷杯", Description: "别家的"})

	// 名称或描述命中都算，且只在本店范围内
	found, err := svc.SearchItems(ctx, 10, "杯")
	if err != nil {
		t.Fatalf("搜索失败: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("命中条数 = %d, want 2", len(found))
	}
}

func TestItemService_ListItemsBelowRefillLimit(t *testing.T) {
	db := setupItemTestDB(t)
	svc := newItemService(db)
	ctx := context.Background()

	ten := 10
	// 默认阈值 5：4 在线下，5 不算
	db.Create(&model.Item{ShopID: 10, Name: "低于默认", Quantity: 4})
	db.Create(&model.Item{ShopID: 10, Name: "等于默认", Quantity: 5})
	// 自定义阈值 10：9 在线下
	db.Create(&model.Item{ShopID: 10, Name: "低于自定义", Quantity: 9, RefillCount: &ten})
	db.Create(&model.Item{ShopID: 10, Name: "高于自定义", Quantity: 11, RefillCount: &ten})

	low, err := svc.ListItemsBelowRefillLimit(ctx, 10)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("低库存条数 = %d, want 2", len(low))
	}

	names := map[string]bool{}
	for _, item := range low {
		names[item.Name] = true
	}
	if !names["低于默认"] || !names["低于自定义"] {
		t.Errorf("低库存命中 = %v", names)
	}
}

func TestItemService_DeleteItem(t *testing.T) {
	db := setupItemTestDB(t)
	svc := newItemService(db)
	ctx := context.Background()

	db.Create(&model.Item{BaseModel: model.BaseModel{ID: 1}, ShopID: 10, Name: "要删的"})

	if err := svc.DeleteItem(ctx, 1); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if err := svc.DeleteItem(ctx, 1); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("重复删除应返回 ErrItemNotFound, got %v", err)
	}
}
