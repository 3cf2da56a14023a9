package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventory_dev_v2_202608/internal/config"
	"inventory_dev_v2_202608/internal/controller"
	"inventory_dev_v2_202608/internal/middleware"
	"inventory_dev_v2_202608/internal/model"
	"inventory_dev_v2_202608/internal/repository"
	"inventory_dev_v2_202608/internal/router"
	"inventory_dev_v2_202608/internal/service"
	"inventory_dev_v2_202608/internal/task"
	"inventory_dev_v2_202608/pkg/database"
	"inventory_dev_v2_202608/pkg/logger"
)

func main() {
	// 1. 加载配置
	cfg := config.Load()
	middleware.SetJWTConfig(cfg.JWTConfig())

	// 2. 初始化日志
	appLogger := logger.NewZapLogger(&logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	defer appLogger.Sync()

	// 3. 初始化数据库
	db := initDatabase(cfg)

	// 4. 初始化依赖
	deps := initDependencies(db, cfg, appLogger)

	// 5. 启动定时任务
	tm := initTasks(deps, cfg)
	defer tm.Stop()

	// 6. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 7. 启动服务
	startServer(r, cfg)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	Logger      *zap.SugaredLogger
}

// Repositories 仓库集合
type Repositories struct {
	User         repository.UserRepository
	Shop         repository.ShopRepository
	Member       repository.MemberRepository
	Item         repository.ItemRepository
	Inventory    repository.InventoryRepository
	Notification repository.NotificationRepository
}

// Services 服务集合
type Services struct {
	Tenant       *service.TenantService
	Auth         *service.AuthService
	User         *service.UserService
	Shop         *service.ShopService
	Item         *service.ItemService
	Inventory    *service.InventoryService
	Webhook      *service.WebhookService
	Notification *service.NotificationService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(
		cfg.Postgres.DSN(),
		cfg.Server.AppEnv == "dev",
		// Manager
		&model.User{}, &model.ShopMember{},
		// Shop
		&model.Shop{},
		// Inventory
		&model.Item{}, &model.Inventory{},
		// Notification
		&model.Notification{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.Config, appLogger *zap.SugaredLogger) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 业务服务 --------
	services := &Services{
		Tenant:    service.NewTenantService(repos.Member, repos.Item),
		Auth:      service.NewAuthService(repos.User, repos.Shop, repos.Member),
		User:      service.NewUserService(repos.User, repos.Member),
		Shop:      service.NewShopService(repos.Shop, repos.Member, repos.User),
		Item:      service.NewItemService(repos.Item),
		Inventory: service.NewInventoryService(repos.Inventory, repos.Item),
		Webhook:   service.NewWebhookService(cfg.Webhook.URL, appLogger),
	}
	services.Notification = service.NewNotificationService(repos.Notification, services.Webhook)

	// -------- Controller 层 --------
	controllers := initControllers(services)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Logger:      appLogger,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         repository.NewUserRepository(db),
		Shop:         repository.NewShopRepository(db),
		Member:       repository.NewMemberRepository(db),
		Item:         repository.NewItemRepository(db),
		Inventory:    repository.NewInventoryRepository(db),
		Notification: repository.NewNotificationRepository(db),
	}
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *router.Controllers {
	return &router.Controllers{
		Auth:         controller.NewAuthController(svc.Auth),
		Shop:         controller.NewShopController(svc.Shop),
		User:         controller.NewUserController(svc.User),
		Item:         controller.NewItemController(svc.Item, svc.Tenant),
		Inventory:    controller.NewInventoryController(svc.Inventory),
		Notification: controller.NewNotificationController(svc.Notification),
		Tenant:       svc.Tenant,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies, cfg *config.Config) *task.TaskManager {
	tm := task.NewTaskManager(
		&task.TaskManagerDeps{
			ShopRepo:     deps.Repos.Shop,
			ItemRepo:     deps.Repos.Item,
			NotifService: deps.Services.Notification,
		},
		&task.TaskManagerConfig{
			StockSweepEnabled: cfg.Task.StockSweepEnabled,
			StockSweepSpec:    cfg.Task.StockSweepSpec,
		},
	)
	tm.Start()
	return tm
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, cfg *config.Config) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}
