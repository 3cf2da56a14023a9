package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"inventory_dev_v2_202608/internal/api/dto"
	"inventory_dev_v2_202608/internal/repository"
	"inventory_dev_v2_202608/internal/service"
)

// ==================== StockSweepTask 低库存巡检 ====================

// StockSweepTask 定时扫描各店铺库存数低于补货阈值的商品，
// 为每个店铺生成一条汇总通知
type StockSweepTask struct {
	shopRepo     repository.ShopRepository
	itemRepo     repository.ItemRepository
	notifService *service.NotificationService
	Cron         *cron.Cron

	spec string
}

// NewStockSweepTask 创建低库存巡检任务
func NewStockSweepTask(
	shopRepo repository.ShopRepository,
	itemRepo repository.ItemRepository,
	notifService *service.NotificationService,
	spec string,
) *StockSweepTask {
	if spec == "" {
		// 默认每小时整点
		spec = "0 0 * * * *"
	}
	return &StockSweepTask{
		shopRepo:     shopRepo,
		itemRepo:     itemRepo,
		notifService: notifService,
		Cron:         cron.New(cron.WithSeconds()), // 支持秒级控制
		spec:         spec,
	}
}

// Start 启动巡检任务
func (t *StockSweepTask) Start() {
	_, err := t.Cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.Execute(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动 StockSweepTask: %v", err)
	}

	t.Cron.Start()
	log.Printf("StockSweepTask 低库存巡检已启动 (%s)", t.spec)
}

// Stop 停止巡检任务
func (t *StockSweepTask) Stop() {
	if t.Cron != nil {
		t.Cron.Stop()
	}
}

// Execute 执行一次完整巡检 (由 Cron 定时触发)
func (t *StockSweepTask) Execute(ctx context.Context) {
	log.Println("[StockSweep] 开始扫描低库存商品...")

	const pageSize = 100
	page := 1
	scanned := 0

	for {
		select {
		case <-ctx.Done():
			log.Println("[StockSweep] 任务超时，中止扫描")
			return
		default:
		}

		shops, total, err := t.shopRepo.List(ctx, repository.ShopFilter{Page: page, PageSize: pageSize})
		if err != nil {
			log.Printf("[StockSweep] 获取店铺列表失败: %v", err)
			return
		}

		for i := range shops {
			if err := t.sweepShop(ctx, shops[i].ID); err != nil {
				log.Printf("[StockSweep] 店铺 %d 扫描失败: %v", shops[i].ID, err)
			}
		}

		scanned += len(shops)
		if int64(scanned) >= total || len(shops) == 0 {
			break
		}
		page++
	}

	log.Printf("[StockSweep] 扫描完成，共 %d 家店铺", scanned)
}

// sweepShop 扫描单个店铺，存在低库存商品时生成一条汇总通知
func (t *StockSweepTask) sweepShop(ctx context.Context, shopID int64) error {
	items, err := t.itemRepo.ListByShop(ctx, shopID)
	if err != nil {
		return err
	}

	type lowStockEntry struct {
		ItemID   int64  `json:"item_id"`
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
		Limit    int    `json:"limit"`
	}

	var low []lowStockEntry
	for i := range items {
		if items[i].BelowRefillLimit() {
			low = append(low, lowStockEntry{
				ItemID:   items[i].ID,
				Name:     items[i].Name,
				Quantity: items[i].Quantity,
				Limit:    items[i].RefillLimit(),
			})
		}
	}

	if len(low) == 0 {
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type":  "low_stock",
		"items": low,
	})
	if err != nil {
		return err
	}

	_, err = t.notifService.CreateNotification(ctx, shopID, &dto.CreateNotificationRequest{
		Title:   "库存不足提醒",
		Message: fmt.Sprintf("共 %d 件商品库存低于补货阈值，请及时补货", len(low)),
		Payload: payload,
	})
	return err
}
