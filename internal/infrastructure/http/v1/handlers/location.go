package handlers

import (
	"github.com/gin-gonic/gin"

	"stockpile/internal/domain/catalogs/location"
	"stockpile/internal/infrastructure/http/v1/dto"
)

// LocationHandler serves the location catalog, including the
// warehouse-scoped listing.
type LocationHandler struct {
	*CatalogHandler[*location.Location, dto.CreateLocationRequest, dto.UpdateLocationRequest]
	service *location.Service
}

// NewLocationHandler wires the generic catalog handler for locations.
func NewLocationHandler(
	base *BaseHandler,
	service *location.Service,
) *LocationHandler {

	config := CatalogHandlerConfig[
		*location.Location,
		dto.CreateLocationRequest,
		dto.UpdateLocationRequest,
	]{
		Service:    service,
		EntityName: "location",

		MapCreateDTO: func(req dto.CreateLocationRequest) *location.Location {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateLocationRequest, existing *location.Location) *location.Location {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *location.Location) any {
			return dto.FromLocation(entity)
		},
	}

	return &LocationHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		service:        service,
	}
}

// ListByWarehouse handles GET /locations/by-warehouse/:warehouseId
func (h *LocationHandler) ListByWarehouse(c *gin.Context) {
	ctx := c.Request.Context()

	warehouseID, ok := h.ParseID(c, "warehouseId")
	if !ok {
		return
	}

	filter := h.ParseListFilter(c)

	result, err := h.service.ListByWarehouse(ctx, warehouseID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.LocationResponse, 0, len(result.Items))
	for _, loc := range result.Items {
		items = append(items, dto.FromLocation(loc))
	}

	h.Paginated(c, items, result.TotalCount, result.Limit, result.Offset)
}
