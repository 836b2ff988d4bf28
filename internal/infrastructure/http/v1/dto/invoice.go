package dto

import (
	"time"

	"github.com/fevxie/rma/internal/core/types"
	"github.com/fevxie/rma/internal/domain/invoicing"
)

// --- Response DTOs ---

// InvoiceLineResponse represents an invoice line in API responses.
type InvoiceLineResponse struct {
	ID          string         `json:"id"`
	InvoiceID   string         `json:"invoiceId"`
	ProductID   string         `json:"productId"`
	Description string         `json:"description,omitempty"`
	Quantity    types.Quantity `json:"quantity"`
	UnitPrice   types.Money    `json:"unitPrice"`
}

// FromInvoiceLine creates response DTO from a domain line.
func FromInvoiceLine(l *invoicing.InvoiceLine) InvoiceLineResponse {
	return InvoiceLineResponse{
		ID:          l.ID.String(),
		InvoiceID:   l.InvoiceID.String(),
		ProductID:   l.ProductID.String(),
		Description: l.Description,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
	}
}

// InvoiceResponse represents an invoice header in API responses.
type InvoiceResponse struct {
	ID        string                `json:"id"`
	Number    string                `json:"number"`
	PartnerID string                `json:"partnerId"`
	Date      *time.Time            `json:"date,omitempty"`
	Lines     []InvoiceLineResponse `json:"lines,omitempty"`
}

// FromInvoice creates response DTO from domain entity.
func FromInvoice(inv *invoicing.Invoice, lines []invoicing.InvoiceLine) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:        inv.ID.String(),
		Number:    inv.Number,
		PartnerID: inv.PartnerID.String(),
		Date:      inv.Date,
	}
	for i := range lines {
		resp.Lines = append(resp.Lines, FromInvoiceLine(&lines[i]))
	}
	return resp
}
