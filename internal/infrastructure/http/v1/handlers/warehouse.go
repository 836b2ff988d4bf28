package handlers

import (
	"github.com/fevxie/rma/internal/domain/catalogs/warehouse"
	"github.com/fevxie/rma/internal/infrastructure/http/v1/dto"
)

// WarehouseHTTPHandler handles warehouse catalog endpoints.
type WarehouseHTTPHandler = CatalogHandler[
	*warehouse.Warehouse,
	dto.CreateWarehouseRequest,
	dto.UpdateWarehouseRequest,
]

// NewWarehouseHandler creates a new warehouse handler.
func NewWarehouseHandler(base *BaseHandler, service *warehouse.Service) *WarehouseHTTPHandler {
	config := CatalogHandlerConfig[
		*warehouse.Warehouse,
		dto.CreateWarehouseRequest,
		dto.UpdateWarehouseRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "warehouse",

		MapCreateDTO: func(req dto.CreateWarehouseRequest) *warehouse.Warehouse {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateWarehouseRequest, existing *warehouse.Warehouse) *warehouse.Warehouse {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *warehouse.Warehouse) any {
			return dto.FromWarehouse(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
