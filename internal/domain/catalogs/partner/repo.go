package partner

import (
	"github.com/fevxie/rma/internal/domain"
)

// Repository defines the interface for Partner persistence.
type Repository interface {
	domain.CatalogRepository[*Partner]
}
