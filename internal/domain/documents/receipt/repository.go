// Package receipt provides the Receipt document repository.
package receipt

import (
	"context"
	"time"

	"stockpile/internal/core/entity"
	"stockpile/internal/core/id"
	"stockpile/internal/domain"
	"stockpile/internal/domain/documents"
)

// Repository defines operations for receipt documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Receipt) error
	GetByID(ctx context.Context, docID id.ID) (*Receipt, error)
	GetByReference(ctx context.Context, reference string) (*Receipt, error)
	Update(ctx context.Context, doc *Receipt) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Receipt], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Receipt, error)
}

// ListFilter for filtering receipts.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	Status   *entity.Status
	DateFrom *time.Time
	DateTo   *time.Time
}
