package dto

import (
	"github.com/fevxie/rma/internal/core/entity"
	"github.com/fevxie/rma/internal/domain/catalogs/partner"
)

// --- Request DTOs ---

// CreatePartnerRequest is the request body for creating a partner.
type CreatePartnerRequest struct {
	Code               string            `json:"code"`
	Name               string            `json:"name" binding:"required"`
	Type               string            `json:"type" binding:"required"`
	Street             *string           `json:"street"`
	City               *string           `json:"city"`
	Zip                *string           `json:"zip"`
	CountryCode        *string           `json:"countryCode"`
	Phone              *string           `json:"phone"`
	Email              *string           `json:"email"`
	CustomerLocationID string            `json:"customerLocationId"`
	SupplierLocationID string            `json:"supplierLocationId"`
	Comment            *string           `json:"comment"`
	ParentID           *string           `json:"parentId"`
	Attributes         entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePartnerRequest) ToEntity() *partner.Partner {
	p := partner.NewPartner(r.Code, r.Name, partner.PartnerType(r.Type))
	p.Street = r.Street
	p.City = r.City
	p.Zip = r.Zip
	p.CountryCode = r.CountryCode
	p.Phone = r.Phone
	p.Email = r.Email
	p.CustomerLocationID = parseID(r.CustomerLocationID)
	p.SupplierLocationID = parseID(r.SupplierLocationID)
	p.Comment = r.Comment
	p.ParentID = r.ParentID
	p.Attributes = r.Attributes
	return p
}

// UpdatePartnerRequest is the request body for updating a partner.
type UpdatePartnerRequest struct {
	Code               string            `json:"code"`
	Name               string            `json:"name" binding:"required"`
	Type               string            `json:"type" binding:"required"`
	Street             *string           `json:"street,omitempty"`
	City               *string           `json:"city,omitempty"`
	Zip                *string           `json:"zip,omitempty"`
	CountryCode        *string           `json:"countryCode,omitempty"`
	Phone              *string           `json:"phone,omitempty"`
	Email              *string           `json:"email,omitempty"`
	CustomerLocationID string            `json:"customerLocationId"`
	SupplierLocationID string            `json:"supplierLocationId"`
	Comment            *string           `json:"comment,omitempty"`
	ParentID           *string           `json:"parentId,omitempty"`
	Attributes         entity.Attributes `json:"attributes"`
	Version            int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdatePartnerRequest) ApplyTo(p *partner.Partner) {
	p.Code = r.Code
	p.Name = r.Name
	p.Type = partner.PartnerType(r.Type)
	p.Street = r.Street
	p.City = r.City
	p.Zip = r.Zip
	p.CountryCode = r.CountryCode
	p.Phone = r.Phone
	p.Email = r.Email
	p.CustomerLocationID = parseID(r.CustomerLocationID)
	p.SupplierLocationID = parseID(r.SupplierLocationID)
	p.Comment = r.Comment
	p.ParentID = r.ParentID
	p.Attributes = r.Attributes
	p.Version = r.Version
}

// --- Response DTOs ---

// PartnerResponse is the response body for a partner.
type PartnerResponse struct {
	ID                 string            `json:"id"`
	Code               string            `json:"code"`
	Name               string            `json:"name"`
	Type               string            `json:"type"`
	Street             *string           `json:"street,omitempty"`
	City               *string           `json:"city,omitempty"`
	Zip                *string           `json:"zip,omitempty"`
	CountryCode        *string           `json:"countryCode,omitempty"`
	Phone              *string           `json:"phone,omitempty"`
	Email              *string           `json:"email,omitempty"`
	CustomerLocationID string            `json:"customerLocationId,omitempty"`
	SupplierLocationID string            `json:"supplierLocationId,omitempty"`
	Comment            *string           `json:"comment,omitempty"`
	ParentID           *string           `json:"parentId,omitempty"`
	DeletionMark       bool              `json:"deletionMark"`
	Version            int               `json:"version"`
	Attributes         entity.Attributes `json:"attributes,omitempty"`
}

// FromPartner creates response DTO from domain entity.
func FromPartner(p *partner.Partner) *PartnerResponse {
	return &PartnerResponse{
		ID:                 p.ID.String(),
		Code:               p.Code,
		Name:               p.Name,
		Type:               string(p.Type),
		Street:             p.Street,
		City:               p.City,
		Zip:                p.Zip,
		CountryCode:        p.CountryCode,
		Phone:              p.Phone,
		Email:              p.Email,
		CustomerLocationID: idStr(p.CustomerLocationID),
		SupplierLocationID: idStr(p.SupplierLocationID),
		Comment:            p.Comment,
		ParentID:           p.ParentID,
		DeletionMark:       p.DeletionMark,
		Version:            p.Version,
		Attributes:         p.Attributes,
	}
}
