package company

import (
	"github.com/fevxie/rma/internal/domain"
)

// Repository defines the interface for Company persistence.
type Repository interface {
	domain.CatalogRepository[*Company]
}
