// Package delivery provides the Delivery document repository.
package delivery

import (
	"context"
	"time"

	"stockpile/internal/core/entity"
	"stockpile/internal/core/id"
	"stockpile/internal/domain"
	"stockpile/internal/domain/documents"
)

// Repository defines operations for delivery documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Delivery) error
	GetByID(ctx context.Context, docID id.ID) (*Delivery, error)
	GetByReference(ctx context.Context, reference string) (*Delivery, error)
	Update(ctx context.Context, doc *Delivery) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Delivery], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Delivery, error)
}

// ListFilter for filtering deliveries.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	Status        *entity.Status
	OperationType string
	DateFrom      *time.Time
	DateTo        *time.Time
}
