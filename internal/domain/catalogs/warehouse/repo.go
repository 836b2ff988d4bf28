package warehouse

import (
	"context"

	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain"
)

// Repository defines the interface for Warehouse persistence.
type Repository interface {
	domain.CatalogRepository[*Warehouse]

	// GetDefaultForCompany returns the first active warehouse of a company.
	GetDefaultForCompany(ctx context.Context, companyID id.ID) (*Warehouse, error)
}
