package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"stockpile/internal/domain/catalogs/warehouse"
	"stockpile/internal/infrastructure/storage/postgres"
)

const warehouseTable = "warehouses"

// WarehouseRepo implements warehouse.Repository.
type WarehouseRepo struct {
	*BaseCatalogRepo[*warehouse.Warehouse]
}

// NewWarehouseRepo creates a new warehouse repository.
func NewWarehouseRepo() *WarehouseRepo {
	return &WarehouseRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*warehouse.Warehouse](
			warehouseTable,
			postgres.ExtractDBColumns[warehouse.Warehouse](),
			func() *warehouse.Warehouse { return &warehouse.Warehouse{} },
		),
	}
}

// MostRecent returns the most recently created warehouse.
func (r *WarehouseRepo) MostRecent(ctx context.Context) (*warehouse.Warehouse, error) {
	q := r.baseSelect().
		OrderBy("created_at DESC", "id DESC").
		Limit(1)

	return r.FindOne(ctx, q)
}

// GetByName retrieves a warehouse by its exact display name.
func (r *WarehouseRepo) GetByName(ctx context.Context, name string) (*warehouse.Warehouse, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	return r.FindOne(ctx, q)
}
