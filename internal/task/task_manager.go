package task

import (
	"context"
	"log"

	"inventory_dev_v2_202608/internal/repository"
	"inventory_dev_v2_202608/internal/service"
)

// ==================== TaskManager 定时任务管理器 ====================

// TaskManager 统一管理后台定时任务
type TaskManager struct {
	stockTask *StockSweepTask
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	ShopRepo     repository.ShopRepository
	ItemRepo     repository.ItemRepository
	NotifService *service.NotificationService
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	StockSweepEnabled bool
	StockSweepSpec    string
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		StockSweepEnabled: true,
		StockSweepSpec:    "0 0 * * * *",
	}
}

// NewTaskManager 创建任务管理器
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	tm := &TaskManager{}

	if cfg.StockSweepEnabled && deps.NotifService != nil {
		tm.stockTask = NewStockSweepTask(deps.ShopRepo, deps.ItemRepo, deps.NotifService, cfg.StockSweepSpec)
	}

	return tm
}

// ==================== 生命周期管理 ====================

// Start 启动所有任务
func (tm *TaskManager) Start() {
	if tm.stockTask != nil {
		tm.stockTask.Start()
	}
	log.Println("[TaskManager] 定时任务已启动")
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	if tm.stockTask != nil {
		tm.stockTask.Stop()
	}
	log.Println("[TaskManager] 定时任务已停止")
}

// ==================== 手动触发接口 ====================

// TriggerStockSweep 立即执行一次低库存巡检
func (tm *TaskManager) TriggerStockSweep(ctx context.Context) error {
	if tm.stockTask == nil {
		return ErrTaskDisabled
	}
	tm.stockTask.Execute(ctx)
	return nil
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled TaskError = "task is disabled"
)
