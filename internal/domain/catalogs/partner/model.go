// Package partner provides the Partner catalog. Partners are customers,
// suppliers, and the delivery/return addresses claims and pickings point at.
package partner

import (
	"context"
	"regexp"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/entity"
	"github.com/fevxie/rma/internal/core/id"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// PartnerType defines the commercial role of a partner.
type PartnerType string

const (
	TypeCustomer PartnerType = "customer"
	TypeSupplier PartnerType = "supplier"
	TypeBoth     PartnerType = "both"
	TypeOther    PartnerType = "other"
)

// Partner represents a business partner or one of its addresses.
type Partner struct {
	entity.Catalog

	// Type defines whether this is a customer, supplier, or both
	Type PartnerType `db:"type" json:"type"`

	// Street, City, Zip, CountryCode form the postal address
	Street      *string `db:"street" json:"street,omitempty"`
	City        *string `db:"city" json:"city,omitempty"`
	Zip         *string `db:"zip" json:"zip,omitempty"`
	CountryCode *string `db:"country_code" json:"countryCode,omitempty"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// CustomerLocationID is the stock location goods shipped to this
	// partner end up in
	CustomerLocationID id.ID `db:"customer_location_id" json:"customerLocationId"`

	// SupplierLocationID is the stock location goods received from this
	// partner come from
	SupplierLocationID id.ID `db:"supplier_location_id" json:"supplierLocationId"`

	// Comment is a free-form note
	Comment *string `db:"comment" json:"comment,omitempty"`
}

// NewPartner creates a new Partner with required fields.
func NewPartner(code, name string, pType PartnerType) *Partner {
	return &Partner{
		Catalog: entity.NewCatalog(code, name),
		Type:    pType,
	}
}

// Validate implements entity.Validatable interface.
func (p *Partner) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidPartnerType(p.Type) {
		return apperror.NewValidation("invalid partner type").
			WithDetail("field", "type").
			WithDetail("value", string(p.Type))
	}

	if p.Email != nil && *p.Email != "" && !emailRE.MatchString(*p.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}

// IsCustomer returns true if the partner buys from us.
func (p *Partner) IsCustomer() bool {
	return p.Type == TypeCustomer || p.Type == TypeBoth
}

// IsSupplier returns true if the partner sells to us.
func (p *Partner) IsSupplier() bool {
	return p.Type == TypeSupplier || p.Type == TypeBoth
}

func isValidPartnerType(t PartnerType) bool {
	switch t {
	case TypeCustomer, TypeSupplier, TypeBoth, TypeOther:
		return true
	}
	return false
}
