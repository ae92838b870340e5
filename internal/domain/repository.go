// Package domain holds the interfaces and shared types the warehouse,
// location, document and stock services are built on.
package domain

import (
	"context"

	"stockpile/internal/core/entity"
	"stockpile/internal/core/id"
)

// --- Filter & Pagination ---

// ListFilter contains common filtering options for list operations.
type ListFilter struct {
	// Search performs substring search on searchable fields
	Search string

	// IDs filters by specific IDs
	IDs []id.ID

	// OrderBy specifies sorting (e.g., "name", "-created_at")
	OrderBy string

	// Pagination
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:   50,
		OrderBy: "-created_at",
	}
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Repository Interfaces ---

// CatalogRepository defines storage for catalog entities such as
// warehouses and locations. Short codes are unique per account
// database; Update applies optimistic locking on the version column.
type CatalogRepository[T entity.Validatable] interface {
	Create(ctx context.Context, entity T) error
	GetByID(ctx context.Context, id id.ID) (T, error)
	GetByShortCode(ctx context.Context, shortCode string) (T, error)
	Update(ctx context.Context, entity T) error
	Delete(ctx context.Context, id id.ID) error
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)
	Exists(ctx context.Context, id id.ID) (bool, error)
	ExistsByShortCode(ctx context.Context, shortCode string) (bool, error)
}
