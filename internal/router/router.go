package router

import (
	"fmt"
	"strings"

	"github.com/dwarmarket/internal/cache"
	"github.com/dwarmarket/internal/config"
	adminhandlers "github.com/dwarmarket/internal/http/handlers/admin"
	publichandlers "github.com/dwarmarket/internal/http/handlers/public"
	"github.com/dwarmarket/internal/logger"
	"github.com/dwarmarket/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "dwm"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开目录接口
		public := apiV1.Group("/public")
		{
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/categories/:id", publicHandler.GetCategory)
			public.GET("/stores", publicHandler.GetStores)
			public.GET("/stores/:id", publicHandler.GetStore)
			public.GET("/store-categories", publicHandler.GetStoreCategories)
			public.GET("/store-categories/:id", publicHandler.GetStoreCategory)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:slug", publicHandler.GetProduct)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("phone")), publicHandler.Login)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetProfile)
			user.PUT("/me/profile", publicHandler.UpdateProfile)
			user.PUT("/me/password", publicHandler.ChangePassword)
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:item_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:item_id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/orders", publicHandler.Checkout)
			user.GET("/orders", publicHandler.GetMyOrders)
			user.GET("/orders/:id", publicHandler.GetMyOrder)
			user.POST("/orders/:id/cancel", publicHandler.CancelMyOrder)
			user.DELETE("/orders/:id", publicHandler.DeleteMyOrder)
		}

		// 管理端接口（员工鉴权 + RBAC）
		admin := apiV1.Group("/admin")
		admin.Use(StaffJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo), StaffRBACMiddleware(c.AuthzService))
		{
			// 分类管理
			admin.GET("/categories", adminHandler.ListCategories)
			admin.GET("/categories/:id", adminHandler.GetCategory)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			// 门店管理
			admin.GET("/stores", adminHandler.ListStores)
			admin.GET("/stores/:id", adminHandler.GetStore)
			admin.POST("/stores", adminHandler.CreateStore)
			admin.PUT("/stores/:id", adminHandler.UpdateStore)
			admin.DELETE("/stores/:id", adminHandler.DeleteStore)

			// 店内分区管理
			admin.GET("/store-categories", adminHandler.ListStoreCategories)
			admin.GET("/store-categories/:id", adminHandler.GetStoreCategory)
			admin.POST("/store-categories", adminHandler.CreateStoreCategory)
			admin.PUT("/store-categories/:id", adminHandler.UpdateStoreCategory)
			admin.DELETE("/store-categories/:id", adminHandler.DeleteStoreCategory)

			// 商品与规格管理
			admin.GET("/products", adminHandler.ListProducts)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.POST("/products/:id/sizes", adminHandler.CreateProductSize)
			admin.PUT("/products/:id/sizes/:size_id", adminHandler.UpdateProductSize)
			admin.DELETE("/products/:id/sizes/:size_id", adminHandler.DeleteProductSize)

			// 订单管理
			admin.GET("/orders", adminHandler.ListOrders)
			admin.GET("/orders/:id", adminHandler.GetOrder)
			admin.PATCH("/orders/:id", adminHandler.UpdateOrderStatus)
			admin.DELETE("/orders/:id", adminHandler.DeleteOrder)
			admin.POST("/orders/:id/items", adminHandler.AddOrderItem)
			admin.PUT("/orders/:id/items/:item_id", adminHandler.UpdateOrderItem)
			admin.DELETE("/orders/:id/items/:item_id", adminHandler.DeleteOrderItem)
			admin.PUT("/orders/:id/items", adminHandler.ReplaceOrderItems)

			// 用户管理
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id/active", adminHandler.SetUserActive)
			admin.PUT("/users/:id/staff", adminHandler.SetUserStaff)
			admin.GET("/users/:id/roles", adminHandler.GetStaffRoles)
			admin.PUT("/users/:id/roles", adminHandler.SetStaffRoles)
			admin.GET("/roles", adminHandler.ListRoles)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
