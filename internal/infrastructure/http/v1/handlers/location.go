package handlers

import (
	"github.com/fevxie/rma/internal/domain/catalogs/location"
	"github.com/fevxie/rma/internal/infrastructure/http/v1/dto"
)

// StockLocationHTTPHandler handles stock location catalog endpoints.
type StockLocationHTTPHandler = CatalogHandler[
	*location.StockLocation,
	dto.CreateStockLocationRequest,
	dto.UpdateStockLocationRequest,
]

// NewStockLocationHandler creates a new stock location handler.
func NewStockLocationHandler(base *BaseHandler, service *location.Service) *StockLocationHTTPHandler {
	config := CatalogHandlerConfig[
		*location.StockLocation,
		dto.CreateStockLocationRequest,
		dto.UpdateStockLocationRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "stock_location",

		MapCreateDTO: func(req dto.CreateStockLocationRequest) *location.StockLocation {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateStockLocationRequest, existing *location.StockLocation) *location.StockLocation {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *location.StockLocation) any {
			return dto.FromStockLocation(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
