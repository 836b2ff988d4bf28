// Package product provides the Product catalog. Products carry their own
// warranty duration and an ordered list of supplier records that drive
// supplier-backed warranties and return routing.
package product

import (
	"context"
	"sort"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/entity"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain/warranty"
)

// SupplierInfo is one supplier record of a product. The lowest Sequence is
// the main supplier and decides warranty duration and routing.
type SupplierInfo struct {
	ID        id.ID `db:"id" json:"id"`
	ProductID id.ID `db:"product_id" json:"productId"`
	PartnerID id.ID `db:"partner_id" json:"partnerId"`

	// Sequence orders suppliers; lower comes first
	Sequence int `db:"sequence" json:"sequence"`

	// WarrantyMonths is the supplier warranty duration, possibly fractional
	WarrantyMonths float64 `db:"warranty_months" json:"warrantyMonths"`

	// ReturnPartnerKind states who keeps returned goods
	ReturnPartnerKind warranty.ReturnKind `db:"return_partner_kind" json:"returnPartnerKind"`

	// ReturnAddressID is the partner address customers return goods to
	ReturnAddressID id.ID `db:"return_address_id" json:"returnAddressId"`

	// StockLocationID receives goods when the supplier keeps them
	StockLocationID id.ID `db:"stock_location_id" json:"stockLocationId"`
}

// Product represents a sellable item.
type Product struct {
	entity.Catalog

	// WarrantyMonths is the company warranty duration, possibly fractional
	WarrantyMonths float64 `db:"warranty_months" json:"warrantyMonths"`

	// DefaultCode is the internal reference (SKU)
	DefaultCode *string `db:"default_code" json:"defaultCode,omitempty"`

	// Sellers is loaded from the product_suppliers table, ordered by Sequence
	Sellers []SupplierInfo `db:"-" json:"sellers,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(code, name string, warrantyMonths float64) *Product {
	return &Product{
		Catalog:        entity.NewCatalog(code, name),
		WarrantyMonths: warrantyMonths,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.WarrantyMonths < 0 {
		return apperror.NewValidation("warranty duration cannot be negative").
			WithDetail("field", "warrantyMonths")
	}

	for i := range p.Sellers {
		s := &p.Sellers[i]
		if id.IsNil(s.PartnerID) {
			return apperror.NewValidation("supplier record requires a partner").
				WithDetail("field", "sellers")
		}
		if s.WarrantyMonths < 0 {
			return apperror.NewValidation("supplier warranty duration cannot be negative").
				WithDetail("field", "sellers").
				WithDetail("partnerId", s.PartnerID.String())
		}
		if s.ReturnPartnerKind != "" && !warranty.IsValidReturnKind(s.ReturnPartnerKind) {
			return apperror.NewValidation("invalid return partner kind").
				WithDetail("field", "sellers").
				WithDetail("value", string(s.ReturnPartnerKind))
		}
	}

	return nil
}

// MainSeller returns the first supplier record by sequence, or nil.
func (p *Product) MainSeller() *SupplierInfo {
	if len(p.Sellers) == 0 {
		return nil
	}
	return &p.Sellers[0]
}

// SortSellers orders the supplier records by sequence. Repositories load
// them ordered already; this covers in-memory construction.
func (p *Product) SortSellers() {
	sort.SliceStable(p.Sellers, func(i, j int) bool {
		return p.Sellers[i].Sequence < p.Sellers[j].Sequence
	})
}

// Terms builds the warranty calculator snapshot of this product.
func (p *Product) Terms() *warranty.ProductTerms {
	t := &warranty.ProductTerms{
		ProductID:      p.ID,
		WarrantyMonths: p.WarrantyMonths,
	}
	for _, s := range p.Sellers {
		kind := s.ReturnPartnerKind
		if kind == "" {
			kind = warranty.ReturnToCompany
		}
		t.Sellers = append(t.Sellers, warranty.SupplierTerms{
			PartnerID:         s.PartnerID,
			WarrantyMonths:    s.WarrantyMonths,
			ReturnPartnerKind: kind,
			ReturnAddressID:   s.ReturnAddressID,
			StockLocationID:   s.StockLocationID,
		})
	}
	return t
}
