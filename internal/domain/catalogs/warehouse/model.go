// Package warehouse provides the Warehouse catalog.
// Warehouses are the physical sites goods are stored at; their short code
// is the prefix of every document reference generated for them.
package warehouse

import (
	"context"

	"stockpile/internal/core/apperror"
	"stockpile/internal/core/entity"
)

// FallbackShortCode is used for references when no warehouse exists yet.
const FallbackShortCode = "WH1"

// Warehouse represents a storage site.
type Warehouse struct {
	entity.Catalog

	// Address is the physical address
	Address string `db:"address" json:"address,omitempty"`

	// Notes for free-form remarks
	Notes string `db:"notes" json:"notes,omitempty"`
}

// New creates a new Warehouse with required fields.
func New(name, shortCode string) *Warehouse {
	return &Warehouse{
		Catalog: entity.NewCatalog(name, shortCode),
	}
}

// Validate implements entity.Validatable interface.
func (w *Warehouse) Validate(ctx context.Context) error {
	if err := w.Catalog.Validate(ctx); err != nil {
		return err
	}

	if w.ShortCode == "" {
		return apperror.NewValidation("short code is required").
			WithDetail("field", "shortCode")
	}

	return nil
}
