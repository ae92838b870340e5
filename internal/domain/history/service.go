package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"stockpile/internal/core/id"
	"stockpile/internal/domain"
	"stockpile/pkg/logger"
)

// Service provides operations on the history log.
// Appends run inside the caller's transaction: a movement that cannot be
// recorded is a movement that did not happen.
type Service struct {
	repo Repository
}

// NewService creates a new history service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Append records an entry, filling in id and timestamp when absent.
func (s *Service) Append(ctx context.Context, entry *Entry) error {
	if id.IsNil(entry.ID) {
		entry.ID = id.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// AppendWithSnapshot records an entry carrying the JSON image of the
// document it describes.
func (s *Service) AppendWithSnapshot(ctx context.Context, entry *Entry, snapshot any) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		// The entry is still worth keeping without the snapshot.
		logger.Warn(ctx, "history snapshot marshal failed", "error", err)
	} else {
		entry.Snapshot = data
	}
	return s.Append(ctx, entry)
}

// List retrieves entries, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Entry], error) {
	return s.repo.List(ctx, filter)
}

// GetByRelated retrieves entries linked to an entity, newest first.
func (s *Service) GetByRelated(ctx context.Context, relatedID id.ID, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.GetByRelated(ctx, relatedID, limit)
}
