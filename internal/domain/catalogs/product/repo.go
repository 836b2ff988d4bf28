package product

import (
	"context"

	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain"
)

// Repository defines the interface for Product persistence.
// GetByID and GetByCode return products with Sellers loaded and ordered.
type Repository interface {
	domain.CatalogRepository[*Product]

	// ReplaceSellers atomically replaces the supplier records of a product.
	ReplaceSellers(ctx context.Context, productID id.ID, sellers []SupplierInfo) error
}
