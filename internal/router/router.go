package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"inventory_dev_v2_202608/internal/controller"
	"inventory_dev_v2_202608/internal/middleware"
	"inventory_dev_v2_202608/internal/service"
)

// Controllers 控制器集合
type Controllers struct {
	Auth         *controller.AuthController
	Shop         *controller.ShopController
	User         *controller.UserController
	Item         *controller.ItemController
	Inventory    *controller.InventoryController
	Notification *controller.NotificationController

	// Tenant 提供 ShopScope 所需的租户解析
	Tenant *service.TenantService
}

// SetupRouter 创建 gin 引擎并注册所有路由
func SetupRouter(ctls *Controllers) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Metrics())

	InitRoutes(r, ctls)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. Prometheus 指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 3. API 路由组
	api := r.Group("/api")
	{
		// auth 鉴权组（公开部分）
		auth := api.Group("/auth")
		{
			auth.POST("/register", ctls.Auth.Register)
			auth.POST("/login", ctls.Auth.Login)
			auth.POST("/refresh", ctls.Auth.RefreshToken)
		}

		// 登录态路由
		authed := api.Group("", middleware.JWTAuth())
		{
			me := authed.Group("/auth")
			{
				me.POST("/logout", ctls.Auth.Logout)
				me.GET("/me", ctls.Auth.Me)
				me.PUT("/password", ctls.Auth.ChangePassword)
				me.POST("/connect-shop", ctls.Auth.ConnectShop)
			}

			// shop 店铺管理
			shops := authed.Group("/shops")
			{
				shops.GET("", ctls.Shop.ListShops)
				shops.GET("/verify", ctls.Shop.VerifyShop)
				shops.GET("/:id", ctls.Shop.GetShop)
				shops.POST("", ctls.Shop.CreateShop)
				shops.PUT("/:id", ctls.Shop.UpdateShop)
				shops.DELETE("/:id", ctls.Shop.DeleteShop)

				// 成员列表
				shops.GET("/:id/users", ctls.Shop.ListShopUsers)
				shops.GET("/:id/users/accepted", ctls.Shop.ListAcceptedUsers)
				shops.GET("/:id/users/unaccepted", ctls.Shop.ListUnacceptedUsers)
			}

			// user 用户管理
			users := authed.Group("/users")
			{
				users.GET("", ctls.User.ListUsers)
				users.GET("/uid/:uid", ctls.User.GetUserByUid)
				users.GET("/:id", ctls.User.GetUser)
				users.POST("", ctls.User.CreateUser)
				users.PUT("/accept", ctls.User.AcceptUser)
				users.PUT("/deaccept", ctls.User.DeacceptUser)
				users.PUT("/:id", ctls.User.UpdateUser)
				users.DELETE("/:id", ctls.User.DeleteUser)
			}

			// 下面的路由都在店铺上下文内，先解析租户再重新校验成员关系
			scoped := authed.Group("", middleware.ShopScope(ctls.Tenant, service.TenantErrorStatus))
			{
				// item 商品管理
				items := scoped.Group("/items")
				{
					items.GET("", ctls.Item.ListItems)
					items.GET("/search", ctls.Item.SearchItems)
					items.GET("/below-refill-limit", ctls.Item.ListBelowRefillLimit)
					items.GET("/:id", ctls.Item.GetItem)
					items.POST("", ctls.Item.CreateItem)
					items.PUT("/:id", ctls.Item.UpdateItem)
					items.DELETE("/:id", ctls.Item.DeleteItem)
				}

				// inventory 库存流水
				inventories := scoped.Group("/inventories")
				{
					inventories.GET("", ctls.Inventory.ListInventories)
					inventories.GET("/sums", ctls.Inventory.GetSums)
					inventories.GET("/recently-sold", ctls.Inventory.GetRecentlySold)
					inventories.GET("/recently-refilled", ctls.Inventory.GetRecentlyRefilled)
					inventories.GET("/search", ctls.Inventory.SearchInventories)
					inventories.GET("/items/:itemId", ctls.Inventory.GetInventoryByItem)
					inventories.POST("", ctls.Inventory.CreateInventory)
					inventories.PUT("/:id", ctls.Inventory.UpdateInventory)
					inventories.DELETE("/:id", ctls.Inventory.DeleteInventory)
				}

				// notification 通知
				notifications := scoped.Group("/notifications")
				{
					notifications.GET("", ctls.Notification.ListNotifications)
					notifications.GET("/unread-count", ctls.Notification.GetUnreadCount)
					notifications.POST("", ctls.Notification.CreateNotification)
					notifications.PUT("/read-all", ctls.Notification.MarkAllAsRead)
					notifications.PUT("/:id", ctls.Notification.UpdateNotification)
					notifications.PUT("/:id/read", ctls.Notification.MarkAsRead)
					notifications.DELETE("/:id", ctls.Notification.DeleteNotification)
				}
			}
		}
	}
}
