package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockpile/internal/core/id"
	"stockpile/internal/domain"
	"stockpile/internal/domain/catalogs/location"
	"stockpile/internal/infrastructure/storage/postgres"
)

const locationTable = "locations"

// LocationRepo implements location.Repository.
type LocationRepo struct {
	*BaseCatalogRepo[*location.Location]
}

// NewLocationRepo creates a new location repository.
func NewLocationRepo() *LocationRepo {
	return &LocationRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*location.Location](
			locationTable,
			postgres.ExtractDBColumns[location.Location](),
			func() *location.Location { return &location.Location{} },
		),
	}
}

// ListByWarehouse returns locations belonging to a warehouse.
func (r *LocationRepo) ListByWarehouse(ctx context.Context, warehouseID id.ID, filter domain.ListFilter) (domain.ListResult[*location.Location], error) {
	result := domain.ListResult[*location.Location]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"warehouse_id": warehouseID})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"short_code": pattern},
		})
	}

	countQ := r.Builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	q = q.OrderBy("name ASC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list by warehouse: %w", err)
	}

	return result, nil
}
