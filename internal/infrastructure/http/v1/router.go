// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockpile/internal/core/tenant"
	"stockpile/internal/domain/auth"
	"stockpile/internal/domain/catalogs/location"
	"stockpile/internal/domain/catalogs/warehouse"
	"stockpile/internal/domain/documents/delivery"
	"stockpile/internal/domain/documents/receipt"
	"stockpile/internal/domain/history"
	"stockpile/internal/domain/stock"
	"stockpile/internal/infrastructure/http/v1/handlers"
	"stockpile/internal/infrastructure/http/v1/middleware"
	"stockpile/internal/infrastructure/storage/postgres/catalog_repo"
	"stockpile/internal/infrastructure/storage/postgres/document_repo"
	"stockpile/internal/infrastructure/storage/postgres/history_repo"
	"stockpile/internal/infrastructure/storage/postgres/stock_repo"
	"stockpile/pkg/logger"
	"stockpile/pkg/refgen"
)

// RouterConfig holds router configuration for multi-tenant architecture.
type RouterConfig struct {
	// TenantManager manages database connections for all tenants
	TenantManager *tenant.Manager

	// ControlPool is the connection to the control-plane database
	// (accounts; also used by health checks)
	ControlPool *pgxpool.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service
}

// NewRouter creates and configures the Gin router.
//
// Repositories and services are created once; each obtains its tenant
// connection per-request from context, set by the TenantDB middleware.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth, no tenant required)
	healthHandler := handlers.NewHealthHandler(cfg.ControlPool, cfg.TenantManager)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
		health.GET("/tenants", healthHandler.TenantsStats)
	}

	// Domain wiring
	historyRepo, err := history_repo.NewHistoryRepo()
	if err != nil {
		return nil, err
	}
	historyService := history.NewService(historyRepo)
	stockService := stock.NewService(stock_repo.NewStockRepo(), historyService, nil)

	warehouseRepo := catalog_repo.NewWarehouseRepo()
	warehouseService := warehouse.NewService(warehouseRepo)
	locationService := location.NewService(catalog_repo.NewLocationRepo(), warehouseService)

	refs := refgen.NewFromContext()
	receiptService := receipt.NewService(
		document_repo.NewReceiptRepo(), stockService, historyService, refs, warehouseService, nil)
	deliveryService := delivery.NewService(
		document_repo.NewDeliveryRepo(), stockService, historyService, refs, warehouseService, nil)

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth endpoints work against the control-plane database only:
		// no tenant context needed.
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/verify", authHandler.VerifyEmail)
			authGroup.POST("/resend-code", authHandler.ResendCode)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/password-reset/request", authHandler.RequestPasswordReset)
			authGroup.POST("/password-reset", authHandler.ResetPassword)

			me := v1.Group("/auth")
			me.Use(middleware.Auth(cfg.JWTValidator))
			me.GET("/me", authHandler.Me)
		}

		// Protected endpoints: the JWT identifies the user, and the user
		// owns the tenant database the rest of the stack talks to.
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))        // 1. Validate JWT
		protected.Use(middleware.TenantDB(cfg.TenantManager))   // 2. Open the user's database
		protected.Use(middleware.UserContext())                 // 3. Expose user ID to the domain layer

		// Catalogs
		warehouseHandler := handlers.NewWarehouseHandler(baseHandler, warehouseService)
		RegisterCatalogRoutes(protected.Group("/warehouses"), warehouseHandler)

		locationHandler := handlers.NewLocationHandler(baseHandler, locationService)
		locations := protected.Group("/locations")
		RegisterCatalogRoutes(locations, locationHandler.CatalogHandler)
		locations.GET("/by-warehouse/:warehouseId", locationHandler.ListByWarehouse)

		// Movement documents
		RegisterDocumentRoutes(protected.Group("/receipts"), handlers.NewReceiptHandler(baseHandler, receiptService))
		RegisterDocumentRoutes(protected.Group("/deliveries"), handlers.NewDeliveryHandler(baseHandler, deliveryService))

		// Stock ledger
		stockHandler := handlers.NewStockHandler(baseHandler, stockService)
		stockGroup := protected.Group("/stock")
		{
			stockGroup.GET("", stockHandler.List)
			stockGroup.POST("", stockHandler.Upsert)
			stockGroup.GET("/:id", stockHandler.Get)
			stockGroup.GET("/by-code/:code", stockHandler.GetByCode)
			stockGroup.DELETE("/:id", stockHandler.Delete)
		}

		// History log
		historyHandler := handlers.NewHistoryHandler(baseHandler, historyService)
		historyGroup := protected.Group("/history")
		{
			historyGroup.GET("", historyHandler.List)
			historyGroup.GET("/by-related/:id", historyHandler.GetByRelated)
		}
	}

	return router, nil
}
