package history

import (
	"context"
	"time"

	"stockpile/internal/core/id"
	"stockpile/internal/domain"
)

// Repository defines operations for the history log.
// The log is append-only; there is no Update or Delete.
type Repository interface {
	// Append inserts a new entry.
	Append(ctx context.Context, entry *Entry) error

	// List retrieves entries, newest first.
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Entry], error)

	// GetByRelated retrieves entries linked to an entity, newest first.
	GetByRelated(ctx context.Context, relatedID id.ID, limit int) ([]*Entry, error)
}

// ListFilter for filtering history entries.
type ListFilter struct {
	domain.ListFilter

	// Entry-specific filters
	Type        string
	Operation   string
	ProductCode string
	From        *time.Time
	To          *time.Time
}
