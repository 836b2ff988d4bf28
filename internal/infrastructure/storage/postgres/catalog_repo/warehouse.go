package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain/catalogs/warehouse"
	"github.com/fevxie/rma/internal/infrastructure/storage/postgres"
)

const warehouseTable = "cat_warehouses"

// WarehouseRepo implements warehouse.Repository.
type WarehouseRepo struct {
	*BaseCatalogRepo[*warehouse.Warehouse]
}

// NewWarehouseRepo creates a new warehouse repository.
func NewWarehouseRepo(txManager *postgres.TxManager) *WarehouseRepo {
	return &WarehouseRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*warehouse.Warehouse](
			txManager,
			warehouseTable,
			postgres.ExtractDBColumns[warehouse.Warehouse](),
			func() *warehouse.Warehouse { return &warehouse.Warehouse{} },
		),
	}
}

// GetDefaultForCompany returns the first active warehouse of a company.
func (r *WarehouseRepo) GetDefaultForCompany(ctx context.Context, companyID id.ID) (*warehouse.Warehouse, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"company_id": companyID}).
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("code ASC").
		Limit(1)

	return r.FindOne(ctx, q)
}
