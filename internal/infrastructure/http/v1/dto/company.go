package dto

import (
	"github.com/fevxie/rma/internal/core/entity"
	"github.com/fevxie/rma/internal/domain/catalogs/company"
)

// --- Request DTOs ---

// CreateCompanyRequest is the request body for creating a company.
type CreateCompanyRequest struct {
	Code               string            `json:"code" binding:"required"`
	Name               string            `json:"name" binding:"required"`
	PartnerID          string            `json:"partnerId" binding:"required,uuid"`
	RMAReturnPartnerID string            `json:"rmaReturnPartnerId"`
	DefaultWarehouseID string            `json:"defaultWarehouseId"`
	Attributes         entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCompanyRequest) ToEntity() *company.Company {
	c := company.NewCompany(r.Code, r.Name, parseID(r.PartnerID))
	c.RMAReturnPartnerID = parseID(r.RMAReturnPartnerID)
	c.DefaultWarehouseID = parseID(r.DefaultWarehouseID)
	c.Attributes = r.Attributes
	return c
}

// UpdateCompanyRequest is the request body for updating a company.
type UpdateCompanyRequest struct {
	Code               string            `json:"code" binding:"required"`
	Name               string            `json:"name" binding:"required"`
	PartnerID          string            `json:"partnerId" binding:"required,uuid"`
	RMAReturnPartnerID string            `json:"rmaReturnPartnerId"`
	DefaultWarehouseID string            `json:"defaultWarehouseId"`
	Attributes         entity.Attributes `json:"attributes"`
	Version            int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCompanyRequest) ApplyTo(c *company.Company) {
	c.Code = r.Code
	c.Name = r.Name
	c.PartnerID = parseID(r.PartnerID)
	c.RMAReturnPartnerID = parseID(r.RMAReturnPartnerID)
	c.DefaultWarehouseID = parseID(r.DefaultWarehouseID)
	c.Attributes = r.Attributes
	c.Version = r.Version
}

// --- Response DTOs ---

// CompanyResponse is the response body for a company.
type CompanyResponse struct {
	ID                 string            `json:"id"`
	Code               string            `json:"code"`
	Name               string            `json:"name"`
	PartnerID          string            `json:"partnerId"`
	RMAReturnPartnerID string            `json:"rmaReturnPartnerId,omitempty"`
	DefaultWarehouseID string            `json:"defaultWarehouseId,omitempty"`
	DeletionMark       bool              `json:"deletionMark"`
	Version            int               `json:"version"`
	Attributes         entity.Attributes `json:"attributes,omitempty"`
}

// FromCompany creates response DTO from domain entity.
func FromCompany(c *company.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:                 c.ID.String(),
		Code:               c.Code,
		Name:               c.Name,
		PartnerID:          c.PartnerID.String(),
		RMAReturnPartnerID: idStr(c.RMAReturnPartnerID),
		DefaultWarehouseID: idStr(c.DefaultWarehouseID),
		DeletionMark:       c.DeletionMark,
		Version:            c.Version,
		Attributes:         c.Attributes,
	}
}
