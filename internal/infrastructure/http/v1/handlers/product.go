package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain/catalogs/product"
	"github.com/fevxie/rma/internal/infrastructure/http/v1/dto"
)

// ProductHandler extends the generic catalog handler with the sellers
// endpoint.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	config := CatalogHandlerConfig[
		*product.Product,
		dto.CreateProductRequest,
		dto.UpdateProductRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "product",

		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *product.Product) any {
			return dto.FromProduct(entity)
		},
	}

	return &ProductHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// SetSellers handles PUT /catalog/products/:id/sellers - replace supplier
// records.
func (h *ProductHandler) SetSellers(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetSellersRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetSellers(ctx, productID, req.ToEntities(productID)); err != nil {
		h.Error(c, err)
		return
	}

	updated, err := h.service.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(updated))
}
