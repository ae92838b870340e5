package location

import (
	"context"

	"stockpile/internal/core/id"
	"stockpile/internal/domain"
)

// Repository defines the interface for Location persistence.
type Repository interface {
	domain.CatalogRepository[*Location]

	// ListByWarehouse returns locations belonging to a warehouse.
	ListByWarehouse(ctx context.Context, warehouseID id.ID, filter domain.ListFilter) (domain.ListResult[*Location], error)
}
