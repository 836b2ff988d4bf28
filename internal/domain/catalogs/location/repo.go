package location

import (
	"github.com/fevxie/rma/internal/domain"
)

// Repository defines the interface for StockLocation persistence.
type Repository interface {
	domain.CatalogRepository[*StockLocation]
}
