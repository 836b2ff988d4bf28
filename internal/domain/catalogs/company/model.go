// Package company provides the Company catalog. A company owns claims,
// configures its return address and default warehouse, and scopes claim
// numbering.
package company

import (
	"context"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/entity"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain/warranty"
)

// Company represents a legal entity operating the RMA process.
type Company struct {
	entity.Catalog

	// PartnerID is the company's own partner record (its main address)
	PartnerID id.ID `db:"partner_id" json:"partnerId"`

	// RMAReturnPartnerID is the dedicated return address, optional
	RMAReturnPartnerID id.ID `db:"rma_return_partner_id" json:"rmaReturnPartnerId"`

	// DefaultWarehouseID is where claims without an explicit warehouse
	// receive returned goods, optional
	DefaultWarehouseID id.ID `db:"default_warehouse_id" json:"defaultWarehouseId"`
}

// NewCompany creates a new Company with required fields.
func NewCompany(code, name string, partnerID id.ID) *Company {
	return &Company{
		Catalog:   entity.NewCatalog(code, name),
		PartnerID: partnerID,
	}
}

// Validate implements entity.Validatable interface.
func (c *Company) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(c.PartnerID) {
		return apperror.NewValidation("company requires a partner record").
			WithDetail("field", "partnerId")
	}

	return nil
}

// Terms builds the return router snapshot of this company.
func (c *Company) Terms() *warranty.CompanyTerms {
	return &warranty.CompanyTerms{
		CompanyID:        c.ID,
		RMAAddressID:     c.RMAReturnPartnerID,
		PartnerAddressID: c.PartnerID,
	}
}
