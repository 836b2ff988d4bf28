package entity

import (
	"context"
	"time"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
)

// Document is the base type for business transactions.
// Examples: Claim, Picking.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique within type+company)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// CompanyID is the owning company (claim numbers are scoped per company)
	CompanyID id.ID `db:"company_id" json:"companyId"`

	// Comment is an optional user comment
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument(companyID id.ID) Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
		CompanyID:    companyID,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if id.IsNil(d.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}

	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}

// SetNumber assigns the document number once. The number is immutable after
// assignment.
func (d *Document) SetNumber(number string) error {
	if d.Number != "" && d.Number != number {
		return apperror.NewConflict("document number is immutable").
			WithDetail("number", d.Number)
	}
	d.Number = number
	return nil
}

// IsBackdated checks if document date is in the past.
func (d *Document) IsBackdated() bool {
	return d.Date.Before(time.Now().UTC().Truncate(24 * time.Hour))
}
