// Package invoicing exposes read-only invoice data. Invoices are owned by
// the accounting subsystem; the RMA service only reads them to anchor
// warranty windows and to build claim lines.
package invoicing

import (
	"time"

	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/core/types"
	"github.com/fevxie/rma/internal/domain/warranty"
)

// Invoice is the read model of a customer invoice.
type Invoice struct {
	ID        id.ID  `db:"id" json:"id"`
	Number    string `db:"number" json:"number"`
	PartnerID id.ID  `db:"partner_id" json:"partnerId"`

	// Date is nil until the invoice is validated
	Date *time.Time `db:"date" json:"date,omitempty"`
}

// Terms builds the warranty calculator snapshot of this invoice.
func (i *Invoice) Terms() *warranty.InvoiceTerms {
	return &warranty.InvoiceTerms{
		InvoiceID: i.ID,
		Date:      i.Date,
	}
}

// InvoiceLine is the read model of one invoice line.
type InvoiceLine struct {
	ID          id.ID          `db:"id" json:"id"`
	InvoiceID   id.ID          `db:"invoice_id" json:"invoiceId"`
	ProductID   id.ID          `db:"product_id" json:"productId"`
	Description string         `db:"description" json:"description"`
	Quantity    types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice   types.Money    `db:"unit_price" json:"unitPrice"`
}
