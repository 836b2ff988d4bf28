package dto

import (
	"time"

	"github.com/fevxie/rma/internal/core/entity"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/core/types"
	"github.com/fevxie/rma/internal/domain/claims"
	"github.com/fevxie/rma/internal/domain/warranty"
)

// --- Request DTOs ---

// ClaimLineRequest represents a line in create/update requests. LineID is
// set on updates to keep the line's state and stock move links.
type ClaimLineRequest struct {
	LineID              string         `json:"lineId,omitempty"`
	Description         string         `json:"description"`
	Origin              string         `json:"origin,omitempty"`
	ProductID           string         `json:"productId" binding:"required,uuid"`
	InvoiceLineID       string         `json:"invoiceLineId,omitempty"`
	Quantity            types.Quantity `json:"quantity" binding:"required"`
	UnitSalePrice       types.Money    `json:"unitSalePrice"`
	ApplicableGuarantee string         `json:"applicableGuarantee,omitempty"`
}

func (r *ClaimLineRequest) applyEditable(l *claims.ClaimLine) {
	l.Description = r.Description
	if r.Origin != "" {
		l.Origin = claims.Origin(r.Origin)
	}
	l.ProductID = parseID(r.ProductID)
	l.InvoiceLineID = parseID(r.InvoiceLineID)
	l.Quantity = r.Quantity
	l.UnitSalePrice = r.UnitSalePrice
	l.ApplicableGuarantee = warranty.GuaranteeType(r.ApplicableGuarantee)
}

func (r *ClaimLineRequest) toEntity(claimID id.ID) claims.ClaimLine {
	line := claims.NewClaimLine(claimID, parseID(r.ProductID), r.Quantity)
	r.applyEditable(&line)
	return line
}

// CreateClaimRequest represents a request to create a claim.
type CreateClaimRequest struct {
	Number            string             `json:"number,omitempty"`
	Date              *time.Time         `json:"date,omitempty"`
	CompanyID         string             `json:"companyId" binding:"required,uuid"`
	Subject           string             `json:"subject" binding:"required"`
	Type              string             `json:"type" binding:"required"`
	InvoiceID         string             `json:"invoiceId,omitempty"`
	PartnerID         string             `json:"partnerId,omitempty"`
	DeliveryAddressID string             `json:"deliveryAddressId,omitempty"`
	WarehouseID       string             `json:"warehouseId,omitempty"`
	Comment           string             `json:"comment,omitempty"`
	Lines             []ClaimLineRequest `json:"lines" binding:"omitempty,dive"`
	Attributes        entity.Attributes  `json:"attributes"`
}

// ToEntity converts request to domain entity.
func (r *CreateClaimRequest) ToEntity() *claims.Claim {
	c := claims.NewClaim(parseID(r.CompanyID), claims.ClaimType(r.Type), r.Subject)
	c.Number = r.Number
	if r.Date != nil {
		c.Date = *r.Date
	}
	c.InvoiceID = parseID(r.InvoiceID)
	c.PartnerID = parseID(r.PartnerID)
	c.DeliveryAddressID = parseID(r.DeliveryAddressID)
	c.WarehouseID = parseID(r.WarehouseID)
	c.Comment = r.Comment
	c.Attributes = r.Attributes

	for i := range r.Lines {
		c.Lines = append(c.Lines, r.Lines[i].toEntity(c.ID))
	}

	return c
}

// UpdateClaimRequest represents a request to update a claim.
type UpdateClaimRequest struct {
	Date              *time.Time         `json:"date,omitempty"`
	Subject           *string            `json:"subject,omitempty"`
	Type              *string            `json:"type,omitempty"`
	InvoiceID         *string            `json:"invoiceId,omitempty"`
	PartnerID         *string            `json:"partnerId,omitempty"`
	DeliveryAddressID *string            `json:"deliveryAddressId,omitempty"`
	WarehouseID       *string            `json:"warehouseId,omitempty"`
	Comment           *string            `json:"comment,omitempty"`
	Lines             []ClaimLineRequest `json:"lines,omitempty" binding:"omitempty,dive"`
	Attributes        entity.Attributes  `json:"attributes"`
	Version           int                `json:"version" binding:"required"`
}

// ApplyTo applies updates to an existing claim. Lines, when provided,
// replace the table part: a request line carrying a known lineId keeps the
// stored line's state and links, the rest start as fresh draft lines.
func (r *UpdateClaimRequest) ApplyTo(c *claims.Claim) {
	if r.Date != nil {
		c.Date = *r.Date
	}
	if r.Subject != nil {
		c.Subject = *r.Subject
	}
	if r.Type != nil {
		c.Type = claims.ClaimType(*r.Type)
	}
	if r.InvoiceID != nil {
		c.InvoiceID = parseID(*r.InvoiceID)
	}
	if r.PartnerID != nil {
		c.PartnerID = parseID(*r.PartnerID)
	}
	if r.DeliveryAddressID != nil {
		c.DeliveryAddressID = parseID(*r.DeliveryAddressID)
	}
	if r.WarehouseID != nil {
		c.WarehouseID = parseID(*r.WarehouseID)
	}
	if r.Comment != nil {
		c.Comment = *r.Comment
	}
	if r.Attributes != nil {
		c.Attributes = r.Attributes
	}
	c.Version = r.Version

	if r.Lines != nil {
		merged := make([]claims.ClaimLine, 0, len(r.Lines))
		for i := range r.Lines {
			req := &r.Lines[i]
			if existing := c.Line(parseID(req.LineID)); existing != nil {
				line := *existing
				req.applyEditable(&line)
				merged = append(merged, line)
				continue
			}
			merged = append(merged, req.toEntity(c.ID))
		}
		c.Lines = merged
	}
}

// SetWarrantyRequest selects lines for warranty evaluation. Empty selects
// all lines.
type SetWarrantyRequest struct {
	LineIDs []string `json:"lineIds" binding:"omitempty,dive,uuid"`
}

// ToLineIDs parses the selection.
func (r *SetWarrantyRequest) ToLineIDs() []id.ID {
	ids := make([]id.ID, 0, len(r.LineIDs))
	for _, s := range r.LineIDs {
		ids = append(ids, parseID(s))
	}
	return ids
}

// SetLineStateRequest moves a line through its state machine.
type SetLineStateRequest struct {
	State string `json:"state" binding:"required"`
}

// --- Response DTOs ---

// ClaimLineResponse represents a claim line in API responses.
type ClaimLineResponse struct {
	LineID                string         `json:"lineId"`
	Description           string         `json:"description,omitempty"`
	Origin                string         `json:"origin,omitempty"`
	ProductID             string         `json:"productId"`
	InvoiceLineID         string         `json:"invoiceLineId,omitempty"`
	RefundLineID          string         `json:"refundLineId,omitempty"`
	Quantity              types.Quantity `json:"quantity"`
	UnitSalePrice         types.Money    `json:"unitSalePrice"`
	ReturnValue           types.Money    `json:"returnValue"`
	ApplicableGuarantee   string         `json:"applicableGuarantee,omitempty"`
	GuaranteeLimit        *time.Time     `json:"guaranteeLimit,omitempty"`
	WarrantyStatus        string         `json:"warrantyStatus,omitempty"`
	ReturnPartnerKind     string         `json:"returnPartnerKind,omitempty"`
	ReturnPartnerID       string         `json:"returnPartnerId,omitempty"`
	DestinationLocationID string         `json:"destinationLocationId,omitempty"`
	State                 string         `json:"state"`
	LastStateChange       *time.Time     `json:"lastStateChange,omitempty"`
	MoveInID              string         `json:"moveInId,omitempty"`
	MoveOutID             string         `json:"moveOutId,omitempty"`
}

// FromClaimLine creates response DTO from a domain line.
func FromClaimLine(l *claims.ClaimLine) ClaimLineResponse {
	return ClaimLineResponse{
		LineID:                l.LineID.String(),
		Description:           l.Description,
		Origin:                string(l.Origin),
		ProductID:             l.ProductID.String(),
		InvoiceLineID:         idStr(l.InvoiceLineID),
		RefundLineID:          idStr(l.RefundLineID),
		Quantity:              l.Quantity,
		UnitSalePrice:         l.UnitSalePrice,
		ReturnValue:           l.ReturnValue(),
		ApplicableGuarantee:   string(l.ApplicableGuarantee),
		GuaranteeLimit:        l.GuaranteeLimit,
		WarrantyStatus:        string(l.WarrantyStatus),
		ReturnPartnerKind:     string(l.ReturnPartnerKind),
		ReturnPartnerID:       idStr(l.ReturnPartnerID),
		DestinationLocationID: idStr(l.DestinationLocationID),
		State:                 string(l.State),
		LastStateChange:       l.LastStateChange,
		MoveInID:              idStr(l.MoveInID),
		MoveOutID:             idStr(l.MoveOutID),
	}
}

// ClaimResponse represents a claim in API responses.
type ClaimResponse struct {
	DocumentResponse
	Subject           string              `json:"subject"`
	Type              string              `json:"type"`
	InvoiceID         string              `json:"invoiceId,omitempty"`
	PartnerID         string              `json:"partnerId,omitempty"`
	DeliveryAddressID string              `json:"deliveryAddressId,omitempty"`
	WarehouseID       string              `json:"warehouseId"`
	Lines             []ClaimLineResponse `json:"lines"`
}

// FromClaim creates response DTO from domain entity.
func FromClaim(c *claims.Claim) *ClaimResponse {
	lines := make([]ClaimLineResponse, 0, len(c.Lines))
	for i := range c.Lines {
		lines = append(lines, FromClaimLine(&c.Lines[i]))
	}

	return &ClaimResponse{
		DocumentResponse:  FromDocument(c.Document),
		Subject:           c.Subject,
		Type:              string(c.Type),
		InvoiceID:         idStr(c.InvoiceID),
		PartnerID:         idStr(c.PartnerID),
		DeliveryAddressID: idStr(c.DeliveryAddressID),
		WarehouseID:       idStr(c.WarehouseID),
		Lines:             lines,
	}
}
