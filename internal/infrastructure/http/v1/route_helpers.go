// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/fevxie/rma/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Reads are open to any authenticated user; mutations require the given
// role (admins bypass role checks).
//
// Usage:
//
//	repo := catalog_repo.NewWarehouseRepo(txManager)
//	service := warehouse.NewService(repo, txManager, log)
//	handler := handlers.NewWarehouseHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/warehouses"), handler, "manager")
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, writeRole string) {
	group.GET("", handler.List)
	group.GET("/:id", handler.Get)
	group.POST("", middleware.RequireRole(writeRole), handler.Create)
	group.PUT("/:id", middleware.RequireRole(writeRole), handler.Update)
	group.DELETE("/:id", middleware.RequireRole(writeRole), handler.Delete)
	group.POST("/:id/deletion-mark", middleware.RequireRole(writeRole), handler.SetDeletionMark)
}
