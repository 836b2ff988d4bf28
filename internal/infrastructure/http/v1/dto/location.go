package dto

import (
	"github.com/fevxie/rma/internal/core/entity"
	"github.com/fevxie/rma/internal/domain/catalogs/location"
)

// --- Request DTOs ---

// CreateStockLocationRequest is the request body for creating a stock location.
type CreateStockLocationRequest struct {
	Code       string            `json:"code"`
	Name       string            `json:"name" binding:"required"`
	Usage      string            `json:"usage" binding:"required"`
	ParentID   *string           `json:"parentId"`
	Attributes entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateStockLocationRequest) ToEntity() *location.StockLocation {
	l := location.NewStockLocation(r.Code, r.Name, location.Usage(r.Usage))
	l.ParentID = r.ParentID
	l.Attributes = r.Attributes
	return l
}

// UpdateStockLocationRequest is the request body for updating a stock location.
type UpdateStockLocationRequest struct {
	Code       string            `json:"code"`
	Name       string            `json:"name" binding:"required"`
	Usage      string            `json:"usage" binding:"required"`
	ParentID   *string           `json:"parentId,omitempty"`
	Attributes entity.Attributes `json:"attributes"`
	Version    int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateStockLocationRequest) ApplyTo(l *location.StockLocation) {
	l.Code = r.Code
	l.Name = r.Name
	l.Usage = location.Usage(r.Usage)
	l.ParentID = r.ParentID
	l.Attributes = r.Attributes
	l.Version = r.Version
}

// --- Response DTOs ---

// StockLocationResponse is the response body for a stock location.
type StockLocationResponse struct {
	ID           string            `json:"id"`
	Code         string            `json:"code"`
	Name         string            `json:"name"`
	Usage        string            `json:"usage"`
	ParentID     *string           `json:"parentId,omitempty"`
	DeletionMark bool              `json:"deletionMark"`
	Version      int               `json:"version"`
	Attributes   entity.Attributes `json:"attributes,omitempty"`
}

// FromStockLocation creates response DTO from domain entity.
func FromStockLocation(l *location.StockLocation) *StockLocationResponse {
	return &StockLocationResponse{
		ID:           l.ID.String(),
		Code:         l.Code,
		Name:         l.Name,
		Usage:        string(l.Usage),
		ParentID:     l.ParentID,
		DeletionMark: l.DeletionMark,
		Version:      l.Version,
		Attributes:   l.Attributes,
	}
}
