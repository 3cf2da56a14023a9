package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory_dev_v2_202608/internal/model"
)

// ==================== 测试辅助 ====================

func setupMemberTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Shop{}, &model.ShopMember{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

// ==================== 单元测试 ====================

func TestMemberRepository_CreateIfAbsent(t *testing.T) {
	db := setupMemberTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	// 首次插入
	created, err := repo.CreateIfAbsent(ctx, &model.ShopMember{UserID: 1, ShopID: 10})
	if err != nil {
		t.Fatalf("插入失败: %v", err)
	}
	if !created {
		t.Error("首次插入应返回 created=true")
	}

	// 冲突插入：静默跳过，不报唯一键错误
	created, err = repo.CreateIfAbsent(ctx, &model.ShopMember{UserID: 1, ShopID: 10, AcceptedIntoShop: true})
	if err != nil {
		t.Fatalf("冲突插入不应报错: %v", err)
	}
	if created {
		t.Error("冲突插入应返回 created=false")
	}

	// 已有记录不被覆盖
	member, err := repo.Get(ctx, 1, 10)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if member == nil {
		t.Fatal("记录应存在")
	}
	if member.AcceptedIntoShop {
		t.Error("冲突插入不能改动已有记录的接纳状态")
	}

	var count int64
	db.Model(&model.ShopMember{}).Count(&count)
	if count != 1 {
		t.Errorf("记录数 = %d, want 1", count)
	}

	// 不同店铺是独立记录
	created, err = repo.CreateIfAbsent(ctx, &model.ShopMember{UserID: 1, ShopID: 20})
	if err != nil {
		t.Fatalf("插入失败: %v", err)
	}
	if !created {
		t.Error("不同店铺应能插入新记录")
	}
}

func TestMemberRepository_GetFirstByUserID(t *testing.T) {
	db := setupMemberTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	// 没有记录时返回 nil, nil
	first, err := repo.GetFirstByUserID(ctx, 1)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if first != nil {
		t.Error("无记录应返回 nil")
	}

	db.Create(&model.ShopMember{UserID: 1, ShopID: 10})
	db.Create(&model.ShopMember{UserID: 1, ShopID: 20})

	first, err = repo.GetFirstByUserID(ctx, 1)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if first == nil || first.ShopID != 10 {
		t.Errorf("最早店铺应为 10, got %+v", first)
	}
}

func TestMemberRepository_ListByShop_Filter(t *testing.T) {
	db := setupMemberTestDB(t)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	db.Create(&model.User{BaseModel: model.BaseModel{ID: 1}, Username: "a", Email: "a@test.com", Uid: "u-1"})
	db.Create(&model.User{BaseModel: model.BaseModel{ID: 2}, Username: "b", Email: "b@test.com", Uid: "u-2"})
	db.Create(&model.ShopMember{UserID: 1, ShopID: 10, AcceptedIntoShop: true})
	db.Create(&model.ShopMember{UserID: 2, ShopID: 10, AcceptedIntoShop: false})

	all, err := repo.ListByShop(ctx, 10, nil)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("全部成员 = %d, want 2", len(all))
	}
	// 预加载用户
	if all[0].User == nil {
		t.Error("成员列表应预加载用户信息")
	}

	accepted := true
	got, err := repo.ListByShop(ctx, 10, &accepted)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(got) != 1 || got[0].UserID != 1 {
		t.Errorf("已接纳成员 = %+v", got)
	}
}
