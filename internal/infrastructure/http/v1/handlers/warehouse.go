package handlers

import (
	"stockpile/internal/domain/catalogs/warehouse"
	"stockpile/internal/infrastructure/http/v1/dto"
)

// WarehouseHTTPHandler serves the warehouse catalog.
type WarehouseHTTPHandler = CatalogHandler[
	*warehouse.Warehouse,
	dto.CreateWarehouseRequest,
	dto.UpdateWarehouseRequest,
]

// NewWarehouseHandler wires the generic catalog handler for warehouses.
func NewWarehouseHandler(
	base *BaseHandler,
	service *warehouse.Service,
) *WarehouseHTTPHandler {

	config := CatalogHandlerConfig[
		*warehouse.Warehouse,
		dto.CreateWarehouseRequest,
		dto.UpdateWarehouseRequest,
	]{
		Service:    service,
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
