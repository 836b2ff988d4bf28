// Package claims provides the Claim document: a customer's return request
// with its lines, warranty decisions, and routing.
package claims

import (
	"context"
	"time"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/entity"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/core/types"
	"github.com/fevxie/rma/internal/domain/warranty"
)

// ClaimType identifies who raised the claim.
type ClaimType string

const (
	TypeCustomer ClaimType = "customer"
	TypeSupplier ClaimType = "supplier"
	TypeOther    ClaimType = "other"
)

// Origin is the commercial reason behind a returned line.
type Origin string

const (
	OriginNone         Origin = "none"
	OriginLegal        Origin = "legal"
	OriginCancellation Origin = "cancellation"
	OriginDamaged      Origin = "damaged"
	OriginError        Origin = "error"
	OriginExchange     Origin = "exchange"
	OriginLost         Origin = "lost"
	OriginOther        Origin = "other"
)

// LineState is the treatment state of one claim line.
type LineState string

const (
	StateDraft       LineState = "draft"
	StateRefused     LineState = "refused"
	StateConfirmed   LineState = "confirmed"
	StateInToControl LineState = "in_to_control"
	StateInToTreate  LineState = "in_to_treate"
	StateTreated     LineState = "treated"
)

// lineTransitions defines the legal state machine. Refusal is reachable
// from every non-final state; a refused line can be reopened to draft.
var lineTransitions = map[LineState][]LineState{
	StateDraft:       {StateConfirmed, StateRefused},
	StateConfirmed:   {StateInToControl, StateRefused},
	StateInToControl: {StateInToTreate, StateRefused},
	StateInToTreate:  {StateTreated, StateRefused},
	StateTreated:     {},
	StateRefused:     {StateDraft},
}

// ClaimLine is one returned product within a claim.
type ClaimLine struct {
	LineID  id.ID `db:"line_id" json:"lineId"`
	ClaimID id.ID `db:"claim_id" json:"claimId"`

	// Description of the problem, free text
	Description string `db:"description" json:"description"`

	// Origin is the commercial reason for the return
	Origin Origin `db:"origin" json:"origin"`

	ProductID     id.ID `db:"product_id" json:"productId"`
	InvoiceLineID id.ID `db:"invoice_line_id" json:"invoiceLineId"`

	// RefundLineID links the refund line created for this return, if any
	RefundLineID id.ID `db:"refund_line_id" json:"refundLineId"`

	Quantity      types.Quantity `db:"quantity" json:"quantity"`
	UnitSalePrice types.Money    `db:"unit_sale_price" json:"unitSalePrice"`

	// ApplicableGuarantee states who fulfills the warranty
	ApplicableGuarantee warranty.GuaranteeType `db:"applicable_guarantee" json:"applicableGuarantee"`

	// GuaranteeLimit and WarrantyStatus are set together by the warranty
	// evaluation and cleared together when its inputs are incomplete
	GuaranteeLimit *time.Time      `db:"guarantee_limit" json:"guaranteeLimit,omitempty"`
	WarrantyStatus warranty.Status `db:"warranty_status" json:"warrantyStatus,omitempty"`

	// Routing fields, set by the return router
	ReturnPartnerKind     warranty.ReturnKind `db:"return_partner_kind" json:"returnPartnerKind,omitempty"`
	ReturnPartnerID       id.ID               `db:"return_partner_id" json:"returnPartnerId"`
	DestinationLocationID id.ID               `db:"destination_location_id" json:"destinationLocationId"`

	State           LineState  `db:"state" json:"state"`
	LastStateChange *time.Time `db:"last_state_change" json:"lastStateChange,omitempty"`

	// MoveInID / MoveOutID link the stock moves created for this line
	MoveInID  id.ID `db:"move_in_id" json:"moveInId"`
	MoveOutID id.ID `db:"move_out_id" json:"moveOutId"`
}

// NewClaimLine creates a draft line.
func NewClaimLine(claimID, productID id.ID, qty types.Quantity) ClaimLine {
	return ClaimLine{
		LineID:    id.New(),
		ClaimID:   claimID,
		ProductID: productID,
		Quantity:  qty,
		Origin:    OriginNone,
		State:     StateDraft,
	}
}

// ReturnValue is the commercial value of the returned quantity. Always
// derived, never stored.
func (l *ClaimLine) ReturnValue() types.Money {
	return l.UnitSalePrice.Mul(l.Quantity.Decimal())
}

// SetState moves the line through its state machine.
func (l *ClaimLine) SetState(to LineState) error {
	for _, allowed := range lineTransitions[l.State] {
		if allowed == to {
			now := time.Now().UTC()
			l.State = to
			l.LastStateChange = &now
			return nil
		}
	}
	return apperror.NewInvalidStateTransition(string(l.State), string(to))
}

// ApplyDecision writes a warranty evaluation outcome onto the line.
func (l *ClaimLine) ApplyDecision(d *warranty.Decision) {
	if d == nil {
		l.ClearWarranty()
		return
	}
	limit := d.LimitDate
	l.GuaranteeLimit = &limit
	l.WarrantyStatus = d.Status
}

// ClearWarranty blanks the warranty fields as a unit.
func (l *ClaimLine) ClearWarranty() {
	l.GuaranteeLimit = nil
	l.WarrantyStatus = ""
}

// ApplyRouting writes a routing resolution onto the line.
func (l *ClaimLine) ApplyRouting(r *warranty.Routing) {
	if r == nil {
		l.ReturnPartnerKind = ""
		l.ReturnPartnerID = id.Nil()
		l.DestinationLocationID = id.Nil()
		return
	}
	l.ReturnPartnerKind = r.Kind
	l.ReturnPartnerID = r.AddressID
	l.DestinationLocationID = r.DestinationLocationID
}

// Copy duplicates the line for a new claim. Stock move and refund links
// never survive a copy.
func (l ClaimLine) Copy(claimID id.ID) ClaimLine {
	dup := l
	dup.LineID = id.New()
	dup.ClaimID = claimID
	dup.MoveInID = id.Nil()
	dup.MoveOutID = id.Nil()
	dup.RefundLineID = id.Nil()
	dup.State = StateDraft
	dup.LastStateChange = nil
	return dup
}

// Claim represents one return request.
type Claim struct {
	entity.Document

	// Subject is the short title of the claim
	Subject string `db:"subject" json:"subject"`

	// Type identifies who raised the claim
	Type ClaimType `db:"type" json:"type"`

	// InvoiceID is the invoice the returned goods were sold on
	InvoiceID id.ID `db:"invoice_id" json:"invoiceId"`

	// PartnerID is the claiming partner
	PartnerID id.ID `db:"partner_id" json:"partnerId"`

	// DeliveryAddressID is where pickings for this claim default to
	DeliveryAddressID id.ID `db:"delivery_address_id" json:"deliveryAddressId"`

	// WarehouseID receives incoming returned goods
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`

	// Table part
	Lines []ClaimLine `db:"-" json:"lines"`
}

// NewClaim creates a new draft claim.
func NewClaim(companyID id.ID, claimType ClaimType, subject string) *Claim {
	return &Claim{
		Document: entity.NewDocument(companyID),
		Type:     claimType,
		Subject:  subject,
		Lines:    make([]ClaimLine, 0),
	}
}

// Validate implements entity.Validatable.
func (c *Claim) Validate(ctx context.Context) error {
	if err := c.Document.Validate(ctx); err != nil {
		return err
	}

	if c.Subject == "" {
		return apperror.NewValidation("subject is required").
			WithDetail("field", "subject")
	}

	switch c.Type {
	case TypeCustomer, TypeSupplier, TypeOther:
	default:
		return apperror.NewValidation("invalid claim type").
			WithDetail("field", "type").
			WithDetail("value", string(c.Type))
	}

	if id.IsNil(c.WarehouseID) {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouseId")
	}

	for i := range c.Lines {
		l := &c.Lines[i]
		if id.IsNil(l.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if l.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if l.ApplicableGuarantee != "" && !warranty.IsValidGuaranteeType(l.ApplicableGuarantee) {
			return apperror.NewValidation("invalid guarantee type").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1).
				WithDetail("value", string(l.ApplicableGuarantee))
		}
	}

	return nil
}

// Line returns the line with the given ID, or nil.
func (c *Claim) Line(lineID id.ID) *ClaimLine {
	for i := range c.Lines {
		if c.Lines[i].LineID == lineID {
			return &c.Lines[i]
		}
	}
	return nil
}
