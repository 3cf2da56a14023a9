package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/model"
	"inventory_dev_v2_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupNotifTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Shop{}, &model.Notification{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func newNotifService(db *gorm.DB) *NotificationService {
	// webhook 未配置
	return NewNotificationService(repository.NewNotificationRepository(db), nil)
}

// ==================== 单元测试 ====================

func TestNotificationService_Create_AlwaysUnread(t *testing.T) {
	db := setupNotifTestDB(t)
	svc := newNotifService(db)
	ctx := context.Background()

	n, err := svc.CreateNotification(ctx, 10, &dto.CreateNotificationRequest{
		Title:   "库存提醒",
		Message: "有商品需要补货",
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if n.Read {
		t.Error("新通知必须是未读状态")
	}
	if n.ShopID != 10 {
		t.Errorf("shop_id = %d, want 10", n.ShopID)
	}
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	db := setupNotifTestDB(t)
	svc := newNotifService(db)
	ctx := context.Background()

	created, err := svc.CreateNotification(ctx, 10, &dto.CreateNotificationRequest{Title: "t1"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	n, err := svc.MarkAsRead(ctx, created.ID)
	if err != nil {
		t.Fatalf("置为已读失败: %v", err)
	}
	if !n.Read {
		t.Error("置为已读后 read 应为 true")
	}

	if _, err := svc.MarkAsRead(ctx, 999); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("不存在的通知应返回 ErrNotificationNotFound, got %v", err)
	}
}

func TestNotificationService_UnreadCountAndMarkAll(t *testing.T) {
	db := setupNotifTestDB(t)
	svc := newNotifService(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateNotification(ctx, 10, &dto.CreateNotificationRequest{Title: "t"}); err != nil {
			t.Fatalf("创建失败: %v", err)
		}
	}
	// 别家店铺的未读不计入
	if _, err := svc.CreateNotification(ctx, 20, &dto.CreateNotificationRequest{Title: "other"}); err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	resp, err := svc.GetUnreadCount(ctx, 10)
	if err != nil {
		t.Fatalf("统计失败: %v", err)
	}
	if resp.Count != 3 {
		t.Errorf("未读数 = %d, want 3", resp.Count)
	}

	if err := svc.MarkAllAsRead(ctx, 10); err != nil {
		t.Fatalf("全部置为已读失败: %v", err)
	}

	resp, _ = svc.GetUnreadCount(ctx, 10)
	if resp.Count != 0 {
		t.Errorf("全部已读后未读数 = %d, want 0", resp.Count)
	}

	// 只影响目标店铺
	other, _ := svc.GetUnreadCount(ctx, 20)
	if other.Count != 1 {
		t.Errorf("别家店铺未读数 = %d, want 1", other.Count)
	}
}

func TestNotificationService_Update(t *testing.T) {
	db := setupNotifTestDB(t)
	svc := newNotifService(db)
	ctx := context.Background()

	created, err := svc.CreateNotification(ctx, 10, &dto.CreateNotificationRequest{Title: "旧标题"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	read := true
	n, err := svc.UpdateNotification(ctx, created.ID, &dto.UpdateNotificationRequest{
		Title: "新标题",
		Read:  &read,
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if n.Title != "新标题" || !n.Read {
		t.Errorf("更新未生效: title=%s read=%v", n.Title, n.Read)
	}
}

func TestNotificationService_Delete(t *testing.T) {
	db := setupNotifTestDB(t)
	svc := newNotifService(db)
	ctx := context.Background()

	created, err := svc.CreateNotification(ctx, 10, &dto.CreateNotificationRequest{Title: "t"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	if err := svc.DeleteNotification(ctx, created.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if err := svc.DeleteNotification(ctx, created.ID); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("重复删除应返回 ErrNotificationNotFound, got %v", err)
	}
}
