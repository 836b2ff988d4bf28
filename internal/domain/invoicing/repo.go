package invoicing

import (
	"context"

	"github.com/fevxie/rma/internal/core/id"
)

// Repository is the read-only access to invoices.
type Repository interface {
	// GetByID retrieves an invoice header.
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// GetLine retrieves one invoice line.
	GetLine(ctx context.Context, lineID id.ID) (*InvoiceLine, error)

	// ListLines retrieves all lines of an invoice.
	ListLines(ctx context.Context, invoiceID id.ID) ([]InvoiceLine, error)
}
