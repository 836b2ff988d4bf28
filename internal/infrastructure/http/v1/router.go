package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/fevxie/rma/internal/domain/audit"
	"github.com/fevxie/rma/internal/domain/auth"
	"github.com/fevxie/rma/internal/domain/catalogs/company"
	"github.com/fevxie/rma/internal/domain/catalogs/location"
	"github.com/fevxie/rma/internal/domain/catalogs/partner"
	"github.com/fevxie/rma/internal/domain/catalogs/product"
	"github.com/fevxie/rma/internal/domain/catalogs/warehouse"
	"github.com/fevxie/rma/internal/domain/claims"
	"github.com/fevxie/rma/internal/domain/picking"
	"github.com/fevxie/rma/internal/infrastructure/http/v1/handlers"
	"github.com/fevxie/rma/internal/infrastructure/http/v1/middleware"
	"github.com/fevxie/rma/internal/infrastructure/storage/postgres"
	"github.com/fevxie/rma/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/fevxie/rma/internal/infrastructure/storage/postgres/document_repo"
	"github.com/fevxie/rma/internal/infrastructure/storage/postgres/invoice_repo"
	"github.com/fevxie/rma/pkg/logger"
	"github.com/fevxie/rma/pkg/numerator"
)

// Role required for mutating catalog and document endpoints. Reads are
// open to any authenticated user.
const roleRMAManager = "rma_manager"

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (used by health checks)
	Pool *postgres.Pool

	// TxManager runs repository operations
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator for document number generation
	Numerator *numerator.Service

	// Audit records document changes
	Audit audit.Recorder
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		deps := buildDomainDeps(cfg)
		registerCatalogRoutes(protected, deps)
		registerDocumentRoutes(protected, deps)
		registerInvoiceRoutes(protected, deps)
	}

	return router
}

// domainDeps carries the wired repositories and services shared between
// route groups.
type domainDeps struct {
	cfg RouterConfig

	products   *product.Service
	partners   *partner.Service
	companies  *company.Service
	warehouses *warehouse.Service
	locations  *location.Service

	claimRepo   *document_repo.ClaimRepo
	claims      *claims.Service
	pickings    *picking.Service
	invoiceRepo *invoice_repo.InvoiceRepo
}

// buildDomainDeps wires repositories and services once for all routes.
func buildDomainDeps(cfg RouterConfig) *domainDeps {
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	partnerRepo := catalog_repo.NewPartnerRepo(cfg.TxManager)
	companyRepo := catalog_repo.NewCompanyRepo(cfg.TxManager)
	warehouseRepo := catalog_repo.NewWarehouseRepo(cfg.TxManager)
	locationRepo := catalog_repo.NewLocationRepo(cfg.TxManager)

	deps := &domainDeps{
		cfg:        cfg,
		products:   product.NewService(productRepo, cfg.TxManager, cfg.Numerator, cfg.Logger),
		partners:   partner.NewService(partnerRepo, cfg.TxManager, cfg.Numerator, cfg.Logger),
		companies:  company.NewService(companyRepo, cfg.TxManager, cfg.Logger),
		warehouses: warehouse.NewService(warehouseRepo, cfg.TxManager, cfg.Logger),
		locations:  location.NewService(locationRepo, cfg.TxManager, cfg.Logger),
	}

	deps.claimRepo = document_repo.NewClaimRepo(cfg.TxManager)
	deps.invoiceRepo = invoice_repo.NewInvoiceRepo(cfg.TxManager)

	deps.claims = claims.NewService(claims.ServiceConfig{
		Repo:       deps.claimRepo,
		Invoices:   deps.invoiceRepo,
		Products:   deps.products,
		Companies:  deps.companies,
		Warehouses: deps.warehouses,
		Numerator:  cfg.Numerator,
		TxManager:  cfg.TxManager,
		Audit:      cfg.Audit,
		Logger:     cfg.Logger,
	})

	deps.pickings = picking.NewService(picking.ServiceConfig{
		Repo:       document_repo.NewPickingRepo(cfg.TxManager),
		Claims:     deps.claims,
		ClaimLines: deps.claimRepo,
		Companies:  deps.companies,
		Partners:   deps.partners,
		Warehouses: deps.warehouses,
		Numerator:  cfg.Numerator,
		TxManager:  cfg.TxManager,
		Audit:      cfg.Audit,
		Logger:     cfg.Logger,
	})

	return deps
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	publicAuth := rg.Group("/auth")

	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, deps *domainDeps) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- PRODUCTS ---
	{
		handler := handlers.NewProductHandler(baseHandler, deps.products)
		group := catalogs.Group("/products")
		RegisterCatalogRoutes(group, handler, roleRMAManager)
		group.PUT("/:id/sellers", middleware.RequireRole(roleRMAManager), handler.SetSellers)
	}

	// --- PARTNERS ---
	{
		handler := handlers.NewPartnerHandler(baseHandler, deps.partners)
		RegisterCatalogRoutes(catalogs.Group("/partners"), handler, roleRMAManager)
	}

	// --- COMPANIES ---
	{
		handler := handlers.NewCompanyHandler(baseHandler, deps.companies)
		RegisterCatalogRoutes(catalogs.Group("/companies"), handler, roleRMAManager)
	}

	// --- WAREHOUSES ---
	{
		handler := handlers.NewWarehouseHandler(baseHandler, deps.warehouses)
		RegisterCatalogRoutes(catalogs.Group("/warehouses"), handler, roleRMAManager)
	}

	// --- STOCK LOCATIONS ---
	{
		handler := handlers.NewStockLocationHandler(baseHandler, deps.locations)
		RegisterCatalogRoutes(catalogs.Group("/stock-locations"), handler, roleRMAManager)
	}
}

// registerDocumentRoutes registers claim and picking endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, deps *domainDeps) {
	docsGroup := rg.Group("/document")
	baseHandler := handlers.NewBaseHandler()

	claimHandler := handlers.NewClaimHandler(baseHandler, deps.claims)
	pickingHandler := handlers.NewPickingHandler(baseHandler, deps.pickings)

	// --- CLAIMS ---
	{
		group := docsGroup.Group("/claims")
		group.GET("", claimHandler.List)
		group.GET("/:id", claimHandler.Get)
		group.POST("", middleware.RequireRole(roleRMAManager), claimHandler.Create)
		group.PUT("/:id", middleware.RequireRole(roleRMAManager), claimHandler.Update)
		group.DELETE("/:id", middleware.RequireRole(roleRMAManager), claimHandler.Delete)
		group.POST("/:id/set-warranty", middleware.RequireRole(roleRMAManager), claimHandler.SetWarranty)
		group.POST("/:id/refresh-warranty", middleware.RequireRole(roleRMAManager), claimHandler.RefreshWarranty)
		group.POST("/:id/build-lines", middleware.RequireRole(roleRMAManager), claimHandler.BuildLines)
		group.POST("/:id/lines/:lineId/state", middleware.RequireRole(roleRMAManager), claimHandler.SetLineState)
		group.POST("/:id/pickings", middleware.RequireRole(roleRMAManager), pickingHandler.CreateForClaim)
	}

	// --- PICKINGS ---
	{
		group := docsGroup.Group("/pickings")
		group.GET("", pickingHandler.List)
		group.GET("/:id", pickingHandler.Get)
		group.POST("/:id/cancel", middleware.RequireRole(roleRMAManager), pickingHandler.Cancel)
	}
}

// registerInvoiceRoutes registers read-only invoice endpoints.
func registerInvoiceRoutes(rg *gin.RouterGroup, deps *domainDeps) {
	baseHandler := handlers.NewBaseHandler()
	invoiceHandler := handlers.NewInvoiceHandler(baseHandler, deps.invoiceRepo)

	invoices := rg.Group("/invoices")
	invoices.GET("/:id", invoiceHandler.Get)
	invoices.GET("/lines/:lineId", invoiceHandler.GetLine)
}
