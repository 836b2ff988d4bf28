// Package warehouse provides the Warehouse catalog.
package warehouse

import (
	"context"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/entity"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain/warranty"
)

// Warehouse represents a physical warehouse of a company.
type Warehouse struct {
	entity.Catalog

	// CompanyID is the owning company
	CompanyID id.ID `db:"company_id" json:"companyId"`

	// StockLocationID is the main stock location returned goods default to
	StockLocationID id.ID `db:"stock_location_id" json:"stockLocationId"`

	// IsActive marks the warehouse as operational
	IsActive bool `db:"is_active" json:"isActive"`
}

// NewWarehouse creates a new Warehouse with required fields.
func NewWarehouse(code, name string, companyID, stockLocationID id.ID) *Warehouse {
	return &Warehouse{
		Catalog:         entity.NewCatalog(code, name),
		CompanyID:       companyID,
		StockLocationID: stockLocationID,
		IsActive:        true,
	}
}

// Validate implements entity.Validatable interface.
func (w *Warehouse) Validate(ctx context.Context) error {
	if err := w.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(w.CompanyID) {
		return apperror.NewValidation("warehouse requires a company").
			WithDetail("field", "companyId")
	}
	if id.IsNil(w.StockLocationID) {
		return apperror.NewValidation("warehouse requires a main stock location").
			WithDetail("field", "stockLocationId")
	}

	return nil
}

// Terms builds the return router snapshot of this warehouse.
func (w *Warehouse) Terms() *warranty.WarehouseTerms {
	return &warranty.WarehouseTerms{
		WarehouseID:     w.ID,
		StockLocationID: w.StockLocationID,
	}
}
