package router

import (
	"rentroll/internal/database"
	"rentroll/internal/handlers"
	"rentroll/internal/middleware"
	"rentroll/internal/models"
	"rentroll/internal/services"
	"rentroll/pkg/config"
	"rentroll/pkg/response"
	"time"

	"github.com/gin-gonic/gin"
)

// SetupRouter 设置路由
func SetupRouter() *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS())

	// 注册路由
	registerRoutes(router)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine) {
	db := database.GetDB()
	events := database.GetRedisQueue()
	cfg := config.GetConfig()

	// 服务装配
	userService := services.NewUserService(db)
	tenantService := services.NewTenantService(db)
	ledgerService := services.NewLedgerService(db, events)
	rolloverService := services.NewRolloverService(db, events)
	bookingService := services.NewBookingService(db, ledgerService)
	leaseService := services.NewLeaseService(db)
	intentService := services.NewPaymentIntentService(db, ledgerService, &cfg.Payment)
	applicationService := services.NewApplicationService(db, events)
	listingService := services.NewListingService(db)
	expenseService := services.NewExpenseService(db)
	repairService := services.NewRepairService(db)
	propertyService := services.NewPropertyService(db)
	statsService := services.NewStatsService(db)

	auth := middleware.NewAuthMiddleware(userService)

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// 认证路由（无需登录）
		authHandler := handlers.NewAuthHandler(userService)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register) // 用户注册
			authGroup.POST("/login", authHandler.Login)       // 用户登录

			// 🔒 获取当前用户信息
			authGroup.GET("/me", auth.RequireLogin(), authHandler.Me)
		}

		// 🔓 公开接口：房源浏览、租房申请、移动支付回调
		listingHandler := handlers.NewListingHandler(listingService)
		applicationHandler := handlers.NewApplicationHandler(applicationService)
		paymentHandler := handlers.NewPaymentHandler(intentService, tenantService)
		public := api.Group("/public")
		{
			public.GET("/listings", listingHandler.Public)
			public.POST("/applications", applicationHandler.Submit)
			public.POST("/payments/mobile-money/callback", paymentHandler.MobileMoneyCallback)
		}

		// 🔐 租客路由（房东管理名下租客）
		tenantHandler := handlers.NewTenantHandler(tenantService, bookingService)
		ledgerHandler := handlers.NewLedgerHandler(ledgerService, rolloverService, tenantService)
		leaseHandler := handlers.NewLeaseHandler(leaseService, tenantService)
		tenants := api.Group("/tenants")
		{
			tenants.POST("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), tenantHandler.Create)
			tenants.GET("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), tenantHandler.List)
			tenants.GET("/:id", auth.RequireLogin(), tenantHandler.GetByID)
			tenants.PUT("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), tenantHandler.Update)
			tenants.DELETE("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), tenantHandler.Delete)

			// 🔒 账本操作
			tenants.POST("/:id/payments", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), ledgerHandler.RecordCash)
			tenants.GET("/:id/payments", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), ledgerHandler.GetPayments)
			tenants.POST("/:id/book", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), tenantHandler.BookNights)

			// 🔒 租约管理
			tenants.PUT("/:id/lease", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), leaseHandler.Replace)
		}

		// 🔐 账本批量操作
		ledger := api.Group("/ledger")
		{
			// 起账不幂等，必须带confirm确认
			ledger.POST("/start-new-month", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), ledgerHandler.StartNewMonth)
		}

		// 🔐 支付网关
		payments := api.Group("/payments")
		{
			payments.POST("/intent", auth.RequireLogin(), paymentHandler.CreateIntent)
			payments.POST("/card/confirm", auth.RequireLogin(), paymentHandler.ConfirmCard)
		}

		// 🔐 租房申请流转
		applications := api.Group("/applications")
		{
			applications.GET("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), applicationHandler.List)
			applications.GET("/unassigned", auth.RequireLogin(), auth.RequireAdmin(), applicationHandler.Unassigned)
			applications.POST("/:id/assign", auth.RequireLogin(), auth.RequireAdmin(), applicationHandler.Assign)
			applications.POST("/:id/approve", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), applicationHandler.Approve)
			applications.POST("/:id/reject", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), applicationHandler.Reject)
		}

		// 🔐 租客门户（角色为tenant的登录用户）
		portal := api.Group("/portal")
		{
			portal.GET("/me", auth.RequireLogin(), auth.RequireRole(models.RoleTenant), tenantHandler.MyProfile)
			portal.POST("/lease/sign", auth.RequireLogin(), auth.RequireRole(models.RoleTenant), leaseHandler.Sign)
		}

		// 🔐 维修请求
		repairHandler := handlers.NewRepairHandler(repairService, tenantService)
		repairs := api.Group("/repairs")
		{
			repairs.POST("", auth.RequireLogin(), auth.RequireRole(models.RoleTenant), repairHandler.Submit)
			repairs.GET("/mine", auth.RequireLogin(), auth.RequireRole(models.RoleTenant), repairHandler.ListMine)
			repairs.GET("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), repairHandler.ListForOwner)
			repairs.POST("/:id/resolve", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), repairHandler.Resolve)
			repairs.DELETE("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), repairHandler.Delete)
		}

		// 🔐 招租信息管理
		listings := api.Group("/listings")
		{
			listings.POST("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), listingHandler.Create)
			listings.GET("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), listingHandler.Mine)
			listings.PUT("/:id/available", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), listingHandler.SetAvailable)
			listings.DELETE("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), listingHandler.Delete)
		}

		// 🔐 支出记录
		expenseHandler := handlers.NewExpenseHandler(expenseService)
		expenses := api.Group("/expenses")
		{
			expenses.POST("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), expenseHandler.Create)
			expenses.GET("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), expenseHandler.List)
			expenses.DELETE("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), expenseHandler.Delete)
		}

		// 🔐 物业档案
		propertyHandler := handlers.NewPropertyHandler(propertyService)
		properties := api.Group("/properties")
		{
			properties.POST("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), propertyHandler.Create)
			properties.GET("", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), propertyHandler.List)
			properties.PUT("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), propertyHandler.Update)
			properties.DELETE("/:id", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), propertyHandler.Delete)
		}

		// 🔐 统计
		statsHandler := handlers.NewStatsHandler(statsService)
		stats := api.Group("/stats")
		{
			stats.GET("/dashboard", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), statsHandler.Dashboard)
			stats.GET("/admin-overview", auth.RequireLogin(), auth.RequireAdmin(), statsHandler.AdminOverview)
		}

		// 🔐 账本事件实时推送
		eventsHandler := handlers.NewEventsHandler(events)
		eventsGroup := api.Group("/events")
		{
			eventsGroup.GET("/recent", auth.RequireLogin(), auth.RequireRole(models.RoleLandlord), eventsHandler.Recent)
			eventsGroup.GET("/stream", eventsHandler.Stream) // token走查询参数
		}
	}
}

func healthCheck(c *gin.Context) {
	data := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now(),
		"service":   "RentRoll",
		"version":   "1.0.0",
	}
	response.Success(c, data)
}

func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
