package router

import (
	"time"

	"github.com/hc2580411/vwms/internal/config"
	"github.com/hc2580411/vwms/internal/handler"
	"github.com/hc2580411/vwms/internal/infra"
	"github.com/hc2580411/vwms/internal/middleware"
	"github.com/hc2580411/vwms/internal/model"
	"github.com/hc2580411/vwms/internal/repository"
	"github.com/hc2580411/vwms/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Store/Snapshot
func New(cfg *config.Config, db *gorm.DB, snapshots *infra.SnapshotStore, rates *infra.RateClient) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:   []string{"X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	contactRepo := repository.NewContactRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	purchaseRepo := repository.NewPurchaseOrderRepository(db)
	logRepo := repository.NewInventoryLogRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, snapshots, cfg)
	catalogSvc := service.NewCatalogService(productRepo, categoryRepo, unitRepo, contactRepo, logRepo, snapshots)
	ledgerSvc := service.NewLedgerService(orderRepo, purchaseRepo, productRepo, logRepo, snapshots)
	settingsSvc := service.NewSettingsService(settingRepo, snapshots)
	analyticsSvc := service.NewAnalyticsService(orderRepo, productRepo, settingsSvc)
	transferSvc := service.NewTransferService(db, snapshots)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(catalogSvc, ledgerSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	contactsH := handler.NewContactsHandler(catalogSvc)
	ordersH := handler.NewOrdersHandler(ledgerSvc)
	purchasesH := handler.NewPurchaseOrdersHandler(ledgerSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc, rates)
	transferH := handler.NewTransferHandler(transferSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rates))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleEmployee)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/logout", anyRole, authH.Logout)
		v1.POST("/auth/register", adminOnly, authH.Register)
		v1.GET("/users", adminOnly, usersH.List)

		// Products — everyone reads, everyone sells; stock corrections and
		// catalog writes are admin territory
		v1.GET("/products", anyRole, productsH.List)
		v1.GET("/products/:id", anyRole, productsH.GetByID)
		prods := v1.Group("/products", adminOnly)
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
			prods.PATCH("/:id/stock", productsH.AdjustStock)
		}

		v1.GET("/categories", anyRole, catalogH.ListCategories)
		cats := v1.Group("/categories", adminOnly)
		{
			cats.POST("", catalogH.AddCategory)
			cats.DELETE("/:id", catalogH.DeleteCategory)
		}

		v1.GET("/units", anyRole, catalogH.ListUnits)
		units := v1.Group("/units", adminOnly)
		{
			units.POST("", catalogH.AddUnit)
			units.DELETE("/:id", catalogH.DeleteUnit)
		}

		contacts := v1.Group("/contacts", adminOnly)
		{
			contacts.POST("", contactsH.Create)
			contacts.GET("", contactsH.List)
			contacts.PUT("/:id", contactsH.Update)
			contacts.DELETE("/:id", contactsH.Delete)
		}

		// Sales orders — both roles fulfill and collect
		orders := v1.Group("/orders", anyRole)
		{
			orders.POST("", ordersH.Fulfill)
			orders.GET("", ordersH.List)
			orders.GET("/:id", ordersH.GetByID)
			orders.GET("/:id/items", ordersH.ListItems)
			orders.POST("/:id/deposit", ordersH.SettleDeposit)
		}

		// Purchase orders — admin only, receiving applies stock
		pos := v1.Group("/purchase-orders", adminOnly)
		{
			pos.POST("", purchasesH.Create)
			pos.GET("", purchasesH.List)
			pos.GET("/:id", purchasesH.GetByID)
			pos.PUT("/:id", purchasesH.Update)
			pos.POST("/:id/receive", purchasesH.Receive)
		}

		v1.GET("/inventory-log", adminOnly, catalogH.ListInventoryLog)

		v1.GET("/analytics", anyRole, analyticsH.Get)
		v1.GET("/dashboard", anyRole, analyticsH.Dashboard)

		settings := v1.Group("/settings", adminOnly)
		{
			settings.GET("", settingsH.List)
			settings.PUT("", settingsH.Save)
			settings.GET("/rate", settingsH.Rate)
		}

		transfer := v1.Group("/transfer", adminOnly)
		{
			transfer.GET("/export", transferH.Export)
			transfer.POST("/import", transferH.Import)
			transfer.POST("/reset", transferH.Reset)
		}
	}

	return r
}
