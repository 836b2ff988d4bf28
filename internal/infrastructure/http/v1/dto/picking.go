package dto

import (
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/core/types"
	"github.com/fevxie/rma/internal/domain/picking"
)

// --- Request DTOs ---

// CreatePickingRequest represents a request to create a picking from a
// claim. The claim is addressed by the URL, line selection by lineIds;
// empty selects all eligible lines.
type CreatePickingRequest struct {
	LineIDs       []string `json:"lineIds" binding:"omitempty,dive,uuid"`
	Type          string   `json:"type" binding:"required"`
	ProductReturn bool     `json:"productReturn"`
	Note          string   `json:"note,omitempty"`
}

// ToCreateRequest converts to the domain request.
func (r *CreatePickingRequest) ToCreateRequest(claimID id.ID) picking.CreateRequest {
	lineIDs := make([]id.ID, 0, len(r.LineIDs))
	for _, s := range r.LineIDs {
		lineIDs = append(lineIDs, parseID(s))
	}

	return picking.CreateRequest{
		ClaimID:       claimID,
		LineIDs:       lineIDs,
		Type:          picking.Type(r.Type),
		ProductReturn: r.ProductReturn,
		Note:          r.Note,
	}
}

// --- Response DTOs ---

// StockMoveResponse represents a stock move in API responses.
type StockMoveResponse struct {
	MoveID           string         `json:"moveId"`
	ProductID        string         `json:"productId"`
	Quantity         types.Quantity `json:"quantity"`
	UnitPrice        types.Money    `json:"unitPrice"`
	PartnerID        string         `json:"partnerId,omitempty"`
	SourceLocationID string         `json:"sourceLocationId"`
	DestLocationID   string         `json:"destLocationId"`
	State            string         `json:"state"`
	ClaimLineID      string         `json:"claimLineId,omitempty"`
}

// FromStockMove creates response DTO from a domain move.
func FromStockMove(m *picking.StockMove) StockMoveResponse {
	return StockMoveResponse{
		MoveID:           m.MoveID.String(),
		ProductID:        m.ProductID.String(),
		Quantity:         m.Quantity,
		UnitPrice:        m.UnitPrice,
		PartnerID:        idStr(m.PartnerID),
		SourceLocationID: idStr(m.SourceLocationID),
		DestLocationID:   idStr(m.DestLocationID),
		State:            string(m.State),
		ClaimLineID:      idStr(m.ClaimLineID),
	}
}

// PickingResponse represents a picking in API responses.
type PickingResponse struct {
	DocumentResponse
	ClaimID          string              `json:"claimId"`
	Type             string              `json:"type"`
	PartnerID        string              `json:"partnerId,omitempty"`
	SourceLocationID string              `json:"sourceLocationId"`
	DestLocationID   string              `json:"destLocationId"`
	Note             string              `json:"note,omitempty"`
	State            string              `json:"state"`
	Moves            []StockMoveResponse `json:"moves"`
}

// FromPicking creates response DTO from domain entity.
func FromPicking(p *picking.Picking) *PickingResponse {
	moves := make([]StockMoveResponse, 0, len(p.Moves))
	for i := range p.Moves {
		moves = append(moves, FromStockMove(&p.Moves[i]))
	}

	return &PickingResponse{
		DocumentResponse: FromDocument(p.Document),
		ClaimID:          p.ClaimID.String(),
		Type:             string(p.Type),
		PartnerID:        idStr(p.PartnerID),
		SourceLocationID: idStr(p.SourceLocationID),
		DestLocationID:   idStr(p.DestLocationID),
		Note:             p.Note,
		State:            string(p.State),
		Moves:            moves,
	}
}
