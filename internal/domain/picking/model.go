// Package picking provides the Picking document: a grouped shipment of
// claim lines, incoming (customer returns goods) or outgoing (replacement
// leaves the warehouse).
package picking

import (
	"context"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/entity"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/core/types"
)

// Type is the direction of a picking.
type Type string

const (
	TypeIncoming Type = "incoming"
	TypeOutgoing Type = "outgoing"
)

// State is the lifecycle state of a picking or a stock move.
type State string

const (
	StateDraft     State = "draft"
	StateConfirmed State = "confirmed"
	StateAssigned  State = "assigned"
	StateDone      State = "done"
	StateCancel    State = "cancel"
)

// StockMove is one product movement inside a picking.
type StockMove struct {
	MoveID    id.ID `db:"move_id" json:"moveId"`
	PickingID id.ID `db:"picking_id" json:"pickingId"`

	ProductID id.ID          `db:"product_id" json:"productId"`
	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`

	// PartnerID is the counterparty of this movement
	PartnerID id.ID `db:"partner_id" json:"partnerId"`

	SourceLocationID id.ID `db:"source_location_id" json:"sourceLocationId"`
	DestLocationID   id.ID `db:"dest_location_id" json:"destLocationId"`

	State State `db:"state" json:"state"`

	// ClaimLineID links back to the claim line this move serves
	ClaimLineID id.ID `db:"claim_line_id" json:"claimLineId"`
}

// IsLive reports whether the move still counts against its claim line.
// A cancelled move frees the line for a new picking.
func (m *StockMove) IsLive() bool {
	return m.State != StateCancel
}

// Picking represents one shipment document.
type Picking struct {
	entity.Document

	// ClaimID is the claim this picking serves
	ClaimID id.ID `db:"claim_id" json:"claimId"`

	// Type is the direction
	Type Type `db:"type" json:"type"`

	// PartnerID is the shipment counterparty
	PartnerID id.ID `db:"partner_id" json:"partnerId"`

	SourceLocationID id.ID `db:"source_location_id" json:"sourceLocationId"`
	DestLocationID   id.ID `db:"dest_location_id" json:"destLocationId"`

	// Note is free text carried onto the delivery order
	Note string `db:"note" json:"note,omitempty"`

	State State `db:"state" json:"state"`

	// Table part
	Moves []StockMove `db:"-" json:"moves"`
}

// NewPicking creates a new draft picking for a claim.
func NewPicking(companyID, claimID id.ID, pickType Type) *Picking {
	return &Picking{
		Document: entity.NewDocument(companyID),
		ClaimID:  claimID,
		Type:     pickType,
		State:    StateDraft,
		Moves:    make([]StockMove, 0),
	}
}

// Validate implements entity.Validatable.
func (p *Picking) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.ClaimID) {
		return apperror.NewValidation("claim is required").
			WithDetail("field", "claimId")
	}

	switch p.Type {
	case TypeIncoming, TypeOutgoing:
	default:
		return apperror.NewValidation("invalid picking type").
			WithDetail("field", "type").
			WithDetail("value", string(p.Type))
	}

	if len(p.Moves) == 0 {
		return apperror.NewValidation("at least one move is required").
			WithDetail("field", "moves")
	}

	for i := range p.Moves {
		m := &p.Moves[i]
		if id.IsNil(m.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "moves").
				WithDetail("moveNo", i+1)
		}
		if m.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "moves").
				WithDetail("moveNo", i+1)
		}
	}

	return nil
}
