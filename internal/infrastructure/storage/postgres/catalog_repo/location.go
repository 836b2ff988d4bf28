package catalog_repo

import (
	"github.com/fevxie/rma/internal/domain/catalogs/location"
	"github.com/fevxie/rma/internal/infrastructure/storage/postgres"
)

const locationTable = "cat_stock_locations"

// LocationRepo implements location.Repository.
type LocationRepo struct {
	*BaseCatalogRepo[*location.StockLocation]
}

// NewLocationRepo creates a new stock location repository.
func NewLocationRepo(txManager *postgres.TxManager) *LocationRepo {
	return &LocationRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*location.StockLocation](
			txManager,
			locationTable,
			postgres.ExtractDBColumns[location.StockLocation](),
			func() *location.StockLocation { return &location.StockLocation{} },
		),
	}
}
