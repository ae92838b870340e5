package location

import (
	"context"

	"stockpile/internal/core/entity"
	"stockpile/internal/core/id"
	"stockpile/internal/domain"
)

// Warehouses resolves warehouse names to IDs.
type Warehouses interface {
	ResolveID(ctx context.Context, name string) (*id.ID, error)
}

// Service provides business logic for the Location catalog.
type Service struct {
	*domain.CatalogService[*Location]
	repo       Repository
	warehouses Warehouses
}

// NewService creates a new Location service.
// In Database-per-Tenant, TxManager is obtained from context.
func NewService(repo Repository, warehouses Warehouses) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Location]{
		Repo:       repo,
		TxManager:  nil, // Will be obtained from context
		EntityName: "location",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
		warehouses:     warehouses,
	}
}

// resolveWarehouse fills WarehouseID from the warehouse name. An unknown
// name is not an error: the name is kept, the link stays empty.
func (s *Service) resolveWarehouse(ctx context.Context, loc *Location) error {
	if loc.WarehouseID != nil || loc.WarehouseName == "" {
		return nil
	}
	whID, err := s.warehouses.ResolveID(ctx, loc.WarehouseName)
	if err != nil {
		return err
	}
	loc.WarehouseID = whID
	return nil
}

// Create normalizes the short code, links the warehouse and stores the location.
func (s *Service) Create(ctx context.Context, loc *Location) error {
	loc.ShortCode = entity.NormalizeShortCode(loc.ShortCode)
	if err := s.resolveWarehouse(ctx, loc); err != nil {
		return err
	}
	return s.CatalogService.Create(ctx, loc)
}

// Update normalizes the short code, links the warehouse and stores the location.
func (s *Service) Update(ctx context.Context, loc *Location) error {
	loc.ShortCode = entity.NormalizeShortCode(loc.ShortCode)
	if err := s.resolveWarehouse(ctx, loc); err != nil {
		return err
	}
	return s.CatalogService.Update(ctx, loc)
}

// ListByWarehouse returns locations belonging to a warehouse.
func (s *Service) ListByWarehouse(ctx context.Context, warehouseID id.ID, filter domain.ListFilter) (domain.ListResult[*Location], error) {
	return s.repo.ListByWarehouse(ctx, warehouseID, filter)
}
