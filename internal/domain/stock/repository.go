package stock

import (
	"context"

	"stockpile/internal/core/id"
	"stockpile/internal/domain"
)

// Repository defines persistence operations for the stock ledger.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, item *Item) error
	GetByID(ctx context.Context, itemID id.ID) (*Item, error)
	GetByCode(ctx context.Context, productCode string) (*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, itemID id.ID) error

	// Locking: row-locked read used during movement finalization
	GetByCodeForUpdate(ctx context.Context, productCode string) (*Item, error)

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Item], error)
}

// ListFilter for filtering ledger rows.
type ListFilter struct {
	domain.ListFilter

	// Item-specific filters
	Category string
	Status   string
	Location string

	// BelowMinStock keeps only rows at or under their minimum level
	BelowMinStock bool
}
