package warehouse

import (
	"context"

	"stockpile/internal/domain"
)

// Repository defines the interface for Warehouse persistence.
type Repository interface {
	domain.CatalogRepository[*Warehouse]

	// MostRecent returns the most recently created warehouse.
	// Used to pick the short code for new document references.
	MostRecent(ctx context.Context) (*Warehouse, error)

	// GetByName retrieves a warehouse by its exact display name.
	GetByName(ctx context.Context, name string) (*Warehouse, error)
}
