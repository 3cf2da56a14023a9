package task

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory_dev_v2_202608/internal/model"
	"inventory_dev_v2_202608/internal/repository"
	"inventory_dev_v2_202608/internal/service"
)

// ==================== 测试辅助 ====================

func setupStockTaskTest(t *testing.T) (*StockSweepTask, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Shop{}, &model.Item{}, &model.Notification{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	notifSvc := service.NewNotificationService(repository.NewNotificationRepository(db), nil)
	task := NewStockSweepTask(
		repository.NewShopRepository(db),
		repository.NewItemRepository(db),
		notifSvc,
		"",
	)
	return task, db
}

// ==================== 单元测试 ====================

func TestStockSweepTask_CreatesNotification(t *testing.T) {
	task, db := setupStockTaskTest(t)

	ten := 10
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, Name: "缺货的店"})
	db.Create(&model.Item{ShopID: 1, Name: "低于默认阈值", Quantity: 2})
	db.Create(&model.Item{ShopID: 1, Name: "低于自定义阈值", Quantity: 8, RefillCount: &ten})
	db.Create(&model.Item{ShopID: 1, Name: "库存充足", Quantity: 100})

	task.Execute(context.Background())

	var notifs []model.Notification
	db.Where("shop_id = ?", 1).Find(&notifs)
	if len(notifs) != 1 {
		t.Fatalf("通知条数 = %d, want 1", len(notifs))
	}

	n := notifs[0]
	if n.Read {
		t.Error("巡检通知应为未读")
	}
	if !strings.Contains(n.Message, "2 件") {
		t.Errorf("message = %s, 应包含低库存件数", n.Message)
	}

	payload := string(n.Payload)
	if !strings.Contains(payload, "low_stock") {
		t.Errorf("payload 缺少类型标记: %s", payload)
	}
	if !strings.Contains(payload, "低于默认阈值") || !strings.Contains(payload, "低于自定义阈值") {
		t.Errorf("payload 缺少低库存商品: %s", payload)
	}
	if strings.Contains(payload, "库存充足") {
		t.Errorf("payload 混入正常商品: %s", payload)
	}
}

func TestStockSweepTask_SkipsHealthyShops(t *testing.T) {
	task, db := setupStockTaskTest(t)

	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, Name: "健康的店"})
	db.Create(&model.Item{ShopID: 1, Name: "够用", Quantity: 50})
	// 没有商品的店也不该有通知
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 2}, Name: "空店"})

	task.Execute(context.Background())

	var count int64
	db.Model(&model.Notification{}).Count(&count)
	if count != 0 {
		t.Errorf("健康店铺不应产生通知, got %d", count)
	}
}

func TestStockSweepTask_EachShopGetsOwnNotification(t *testing.T) {
	task, db := setupStockTaskTest(t)

	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 1}, Name: "店1"})
	db.Create(&model.Shop{BaseModel: model.BaseModel{ID: 2}, Name: "店2"})
	db.Create(&model.Item{ShopID: 1, Name: "缺货A", Quantity: 0})
	db.Create(&model.Item{ShopID: 2, Name: "缺货B", Quantity: 1})

	task.Execute(context.Background())

	for _, shopID := range []int64{1, 2} {
		var count int64
		db.Model(&model.Notification{}).Where("shop_id = ?", shopID).Count(&count)
		if count != 1 {
			t.Errorf("店铺 %d 通知条数 = %d, want 1", shopID, count)
		}
	}
}
