package dto

import (
	"github.com/fevxie/rma/internal/core/entity"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain/catalogs/product"
	"github.com/fevxie/rma/internal/domain/warranty"
)

// --- Request DTOs ---

// SupplierInfoRequest is one supplier record in a product request.
type SupplierInfoRequest struct {
	PartnerID         string  `json:"partnerId" binding:"required,uuid"`
	Sequence          int     `json:"sequence"`
	WarrantyMonths    float64 `json:"warrantyMonths" binding:"gte=0"`
	ReturnPartnerKind string  `json:"returnPartnerKind,omitempty"`
	ReturnAddressID   string  `json:"returnAddressId,omitempty"`
	StockLocationID   string  `json:"stockLocationId,omitempty"`
}

func (r *SupplierInfoRequest) toEntity(productID id.ID) product.SupplierInfo {
	return product.SupplierInfo{
		ID:                id.New(),
		ProductID:         productID,
		PartnerID:         parseID(r.PartnerID),
		Sequence:          r.Sequence,
		WarrantyMonths:    r.WarrantyMonths,
		ReturnPartnerKind: warranty.ReturnKind(r.ReturnPartnerKind),
		ReturnAddressID:   parseID(r.ReturnAddressID),
		StockLocationID:   parseID(r.StockLocationID),
	}
}

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code           string                `json:"code"`
	Name           string                `json:"name" binding:"required"`
	WarrantyMonths float64               `json:"warrantyMonths" binding:"gte=0"`
	DefaultCode    *string               `json:"defaultCode"`
	Sellers        []SupplierInfoRequest `json:"sellers,omitempty" binding:"omitempty,dive"`
	Attributes     entity.Attributes     `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.WarrantyMonths)
	p.DefaultCode = r.DefaultCode
	p.Attributes = r.Attributes
	for i := range r.Sellers {
		p.Sellers = append(p.Sellers, r.Sellers[i].toEntity(p.ID))
	}
	return p
}

// UpdateProductRequest is the request body for updating a product.
// Supplier records are managed through the sellers endpoint.
type UpdateProductRequest struct {
	Code           string            `json:"code"`
	Name           string            `json:"name" binding:"required"`
	WarrantyMonths float64           `json:"warrantyMonths" binding:"gte=0"`
	DefaultCode    *string           `json:"defaultCode,omitempty"`
	Attributes     entity.Attributes `json:"attributes"`
	Version        int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.WarrantyMonths = r.WarrantyMonths
	p.DefaultCode = r.DefaultCode
	p.Attributes = r.Attributes
	p.Version = r.Version
}

// SetSellersRequest replaces the supplier records of a product.
type SetSellersRequest struct {
	Sellers []SupplierInfoRequest `json:"sellers" binding:"dive"`
}

// ToEntities converts the request to domain supplier records.
func (r *SetSellersRequest) ToEntities(productID id.ID) []product.SupplierInfo {
	sellers := make([]product.SupplierInfo, 0, len(r.Sellers))
	for i := range r.Sellers {
		sellers = append(sellers, r.Sellers[i].toEntity(productID))
	}
	return sellers
}

// --- Response DTOs ---

// SupplierInfoResponse is one supplier record in API responses.
type SupplierInfoResponse struct {
	ID                string  `json:"id"`
	PartnerID         string  `json:"partnerId"`
	Sequence          int     `json:"sequence"`
	WarrantyMonths    float64 `json:"warrantyMonths"`
	ReturnPartnerKind string  `json:"returnPartnerKind,omitempty"`
	ReturnAddressID   string  `json:"returnAddressId,omitempty"`
	StockLocationID   string  `json:"stockLocationId,omitempty"`
}

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID             string                 `json:"id"`
	Code           string                 `json:"code"`
	Name           string                 `json:"name"`
	WarrantyMonths float64                `json:"warrantyMonths"`
	DefaultCode    *string                `json:"defaultCode,omitempty"`
	Sellers        []SupplierInfoResponse `json:"sellers,omitempty"`
	DeletionMark   bool                   `json:"deletionMark"`
	Version        int                    `json:"version"`
	Attributes     entity.Attributes      `json:"attributes,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	sellers := make([]SupplierInfoResponse, 0, len(p.Sellers))
	for i := range p.Sellers {
		s := &p.Sellers[i]
		sellers = append(sellers, SupplierInfoResponse{
			ID:                s.ID.String(),
			PartnerID:         s.PartnerID.String(),
			Sequence:          s.Sequence,
			WarrantyMonths:    s.WarrantyMonths,
			ReturnPartnerKind: string(s.ReturnPartnerKind),
			ReturnAddressID:   idStr(s.ReturnAddressID),
			StockLocationID:   idStr(s.StockLocationID),
		})
	}

	return &ProductResponse{
		ID:             p.ID.String(),
		Code:           p.Code,
		Name:           p.Name,
		WarrantyMonths: p.WarrantyMonths,
		DefaultCode:    p.DefaultCode,
		Sellers:        sellers,
		DeletionMark:   p.DeletionMark,
		Version:        p.Version,
		Attributes:     p.Attributes,
	}
}
