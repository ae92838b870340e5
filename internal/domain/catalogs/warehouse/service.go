package warehouse

import (
	"context"

	"stockpile/internal/core/apperror"
	"stockpile/internal/core/entity"
	"stockpile/internal/core/id"
	"stockpile/internal/domain"
)

// Service provides business logic for the Warehouse catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Warehouse]
	repo Repository
}

// NewService creates a new Warehouse service.
// In Database-per-Tenant, TxManager is obtained from context.
func NewService(repo Repository) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Warehouse]{
		Repo:       repo,
		TxManager:  nil, // Will be obtained from context
		EntityName: "warehouse",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}

// Create normalizes the short code, checks uniqueness and stores the warehouse.
func (s *Service) Create(ctx context.Context, wh *Warehouse) error {
	wh.ShortCode = entity.NormalizeShortCode(wh.ShortCode)

	if wh.ShortCode != "" {
		taken, err := s.repo.ExistsByShortCode(ctx, wh.ShortCode)
		if err != nil {
			return err
		}
		if taken {
			return apperror.NewDuplicate("warehouse", "short_code", wh.ShortCode)
		}
	}

	return s.CatalogService.Create(ctx, wh)
}

// Update normalizes the short code and stores the warehouse.
// The unique index on short_code catches collisions with other rows.
func (s *Service) Update(ctx context.Context, wh *Warehouse) error {
	wh.ShortCode = entity.NormalizeShortCode(wh.ShortCode)
	return s.CatalogService.Update(ctx, wh)
}

// ResolveID returns the ID of the warehouse with the given display name,
// or nil when no such warehouse exists.
func (s *Service) ResolveID(ctx context.Context, name string) (*id.ID, error) {
	wh, err := s.repo.GetByName(ctx, name)
	if apperror.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh.ID, nil
}

// DefaultShortCode returns the short code new document references are
// prefixed with: the most recently created warehouse, or a fallback when
// the catalog is still empty.
func (s *Service) DefaultShortCode(ctx context.Context) (string, error) {
	wh, err := s.repo.MostRecent(ctx)
	if apperror.IsNotFound(err) {
		return FallbackShortCode, nil
	}
	if err != nil {
		return "", err
	}
	return wh.ShortCode, nil
}
