// Package stock_repo provides the PostgreSQL implementation of the stock ledger.
// In Database-per-Tenant architecture, TxManager is obtained from context.
package stock_repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"stockpile/internal/core/apperror"
	"stockpile/internal/core/id"
	"stockpile/internal/domain"
	"stockpile/internal/domain/stock"
	"stockpile/internal/infrastructure/storage/postgres"
)

const stockItemsTable = "stock_items"

// StockRepo implements stock.Repository.
type StockRepo struct {
	builder    squirrel.StatementBuilderType
	selectCols []string
}

// NewStockRepo creates a new stock ledger repository.
func NewStockRepo() *StockRepo {
	return &StockRepo{
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		selectCols: postgres.ExtractDBColumns[stock.Item](),
	}
}

// getTxManager retrieves TxManager from context.
func (r *StockRepo) getTxManager(ctx context.Context) *postgres.TxManager {
	return postgres.MustGetTxManager(ctx)
}

func (r *StockRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.
		Select(r.selectCols...).
		From(stockItemsTable)
}

// Create inserts a new ledger row.
func (r *StockRepo) Create(ctx context.Context, item *stock.Item) error {
	data := postgres.StructToMap(item)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder.
		Insert(stockItemsTable).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("stock item", "product_code", item.ProductCode).
				WithCause(err)
		}
		return fmt.Errorf("insert stock item: %w", err)
	}

	return nil
}

// GetByID retrieves a ledger row by ID.
func (r *StockRepo) GetByID(ctx context.Context, itemID id.ID) (*stock.Item, error) {
	item := &stock.Item{}
	q := r.baseSelect().
		Where(squirrel.Eq{"id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("stock item", itemID.String())
		}
		return nil, fmt.Errorf("get by id: %w", err)
	}

	return item, nil
}

// GetByCode retrieves a ledger row by product code.
func (r *StockRepo) GetByCode(ctx context.Context, productCode string) (*stock.Item, error) {
	return r.getByCode(ctx, productCode, false)
}

// GetByCodeForUpdate retrieves a ledger row by product code with a row lock.
func (r *StockRepo) GetByCodeForUpdate(ctx context.Context, productCode string) (*stock.Item, error) {
	return r.getByCode(ctx, productCode, true)
}

func (r *StockRepo) getByCode(ctx context.Context, productCode string, forUpdate bool) (*stock.Item, error) {
	item := &stock.Item{}
	q := r.baseSelect().
		Where(squirrel.Eq{"product_code": productCode})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("stock item", productCode)
		}
		return nil, fmt.Errorf("get by code: %w", err)
	}

	return item, nil
}

// Update modifies a ledger row with optimistic locking.
func (r *StockRepo) Update(ctx context.Context, item *stock.Item) error {
	data := postgres.StructToMap(item)

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("stock item has no 'version' field or it is not an int")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" || col == "created_at" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder.
		Update(stockItemsTable).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": item.ID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("stock item", item.ID.String())
	}

	return nil
}

// Delete removes a ledger row.
func (r *StockRepo) Delete(ctx context.Context, itemID id.ID) error {
	q := r.builder.
		Delete(stockItemsTable).
		Where(squirrel.Eq{"id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("stock item", itemID.String())
	}

	return nil
}

// List retrieves ledger rows with filtering.
func (r *StockRepo) List(ctx context.Context, filter stock.ListFilter) (domain.ListResult[*stock.Item], error) {
	result := domain.ListResult[*stock.Item]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"product_name": pattern},
			squirrel.ILike{"product_code": pattern},
			squirrel.ILike{"supplier_name": pattern},
		})
	}

	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}

	if filter.Location != "" {
		q = q.Where(squirrel.Eq{"location": filter.Location})
	}

	if filter.BelowMinStock {
		q = q.Where(squirrel.Expr("quantity < min_stock_level"))
	}

	countQ := r.builder.Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

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
		return result, fmt.Errorf("list: %w", err)
	}

	return result, nil
}

func (r *StockRepo) parseOrderBy(orderBy string) (string, error) {
	allowed := make(map[string]struct{}, len(r.selectCols))
	for _, col := range r.selectCols {
		allowed[col] = struct{}{}
	}

	if strings.TrimSpace(orderBy) == "" {
		return "product_name ASC", nil
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	if _, ok := allowed[field]; !ok {
		return "", apperror.NewValidation("invalid orderBy").WithDetail("orderBy", orderBy)
	}

	return field + " " + direction, nil
}
