// Package location provides the StockLocation catalog.
package location

import (
	"context"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/entity"
)

// Usage classifies what a stock location represents.
type Usage string

const (
	UsageInternal Usage = "internal"
	UsageSupplier Usage = "supplier"
	UsageCustomer Usage = "customer"
)

// StockLocation represents a place goods can sit in or move through.
type StockLocation struct {
	entity.Catalog

	// Usage classifies the location
	Usage Usage `db:"usage" json:"usage"`
}

// NewStockLocation creates a new StockLocation with required fields.
func NewStockLocation(code, name string, usage Usage) *StockLocation {
	return &StockLocation{
		Catalog: entity.NewCatalog(code, name),
		Usage:   usage,
	}
}

// Validate implements entity.Validatable interface.
func (l *StockLocation) Validate(ctx context.Context) error {
	if err := l.Catalog.Validate(ctx); err != nil {
		return err
	}

	switch l.Usage {
	case UsageInternal, UsageSupplier, UsageCustomer:
	default:
		return apperror.NewValidation("invalid location usage").
			WithDetail("field", "usage").
			WithDetail("value", string(l.Usage))
	}

	return nil
}
