// Package location provides the Location catalog: named storage spots
// inside a warehouse (zones, racks, shelves).
package location

import (
	"context"

	"stockpile/internal/core/entity"
	"stockpile/internal/core/id"
)

// Location represents a storage spot, optionally tied to a warehouse.
type Location struct {
	entity.Catalog

	// WarehouseID links the location to its warehouse, when known
	WarehouseID *id.ID `db:"warehouse_id" json:"warehouseId,omitempty"`

	// WarehouseName as entered by the user. Kept even when the name does
	// not resolve to a warehouse row, so nothing is silently lost.
	WarehouseName string `db:"warehouse_name" json:"warehouseName,omitempty"`

	// Description for free-form remarks
	Description string `db:"description" json:"description,omitempty"`
}

// New creates a new Location with required fields.
func New(name, shortCode string) *Location {
	return &Location{
		Catalog: entity.NewCatalog(name, shortCode),
	}
}

// Validate implements entity.Validatable interface.
func (l *Location) Validate(ctx context.Context) error {
	return l.Catalog.Validate(ctx)
}
