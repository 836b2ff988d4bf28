package dto

import (
	"github.com/fevxie/rma/internal/core/entity"
	"github.com/fevxie/rma/internal/domain/catalogs/warehouse"
)

// --- Request DTOs ---

// CreateWarehouseRequest is the request body for creating a warehouse.
type CreateWarehouseRequest struct {
	Code            string            `json:"code"`
	Name            string            `json:"name" binding:"required"`
	CompanyID       string            `json:"companyId" binding:"required,uuid"`
	StockLocationID string            `json:"stockLocationId" binding:"required,uuid"`
	IsActive        *bool             `json:"isActive"`
	Attributes      entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateWarehouseRequest) ToEntity() *warehouse.Warehouse {
	wh := warehouse.NewWarehouse(r.Code, r.Name, parseID(r.CompanyID), parseID(r.StockLocationID))
	if r.IsActive != nil {
		wh.IsActive = *r.IsActive
	}
	wh.Attributes = r.Attributes
	return wh
}

// UpdateWarehouseRequest is the request body for updating a warehouse.
type UpdateWarehouseRequest struct {
	Code            string            `json:"code"`
	Name            string            `json:"name" binding:"required"`
	CompanyID       string            `json:"companyId" binding:"required,uuid"`
	StockLocationID string            `json:"stockLocationId" binding:"required,uuid"`
	IsActive        bool              `json:"isActive"`
	Attributes      entity.Attributes `json:"attributes"`
	Version         int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateWarehouseRequest) ApplyTo(wh *warehouse.Warehouse) {
	wh.Code = r.Code
	wh.Name = r.Name
	wh.CompanyID = parseID(r.CompanyID)
	wh.StockLocationID = parseID(r.StockLocationID)
	wh.IsActive = r.IsActive
	wh.Attributes = r.Attributes
	wh.Version = r.Version
}

// --- Response DTOs ---

// WarehouseResponse is the response body for a warehouse.
type WarehouseResponse struct {
	ID              string            `json:"id"`
	Code            string            `json:"code"`
	Name            string            `json:"name"`
	CompanyID       string            `json:"companyId"`
	StockLocationID string            `json:"stockLocationId"`
	IsActive        bool              `json:"isActive"`
	DeletionMark    bool              `json:"deletionMark"`
	Version         int               `json:"version"`
	Attributes      entity.Attributes `json:"attributes,omitempty"`
}

// FromWarehouse creates response DTO from domain entity.
func FromWarehouse(wh *warehouse.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		ID:              wh.ID.String(),
		Code:            wh.Code,
		Name:            wh.Name,
		CompanyID:       wh.CompanyID.String(),
		StockLocationID: wh.StockLocationID.String(),
		IsActive:        wh.IsActive,
		DeletionMark:    wh.DeletionMark,
		Version:         wh.Version,
		Attributes:      wh.Attributes,
	}
}
