package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockpile/internal/core/id"
	"stockpile/internal/domain"
	"stockpile/internal/domain/documents"
	"stockpile/internal/domain/documents/delivery"
	"stockpile/internal/infrastructure/storage/postgres"
)

const (
	deliveriesTable    = "deliveries"
	deliveryLinesTable = "delivery_lines"
)

// DeliveryRepo implements delivery.Repository.
type DeliveryRepo struct {
	*BaseDocumentRepo[*delivery.Delivery]
}

// NewDeliveryRepo creates a new delivery repository.
func NewDeliveryRepo() *DeliveryRepo {
	return &DeliveryRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*delivery.Delivery](
			deliveriesTable,
			postgres.ExtractDBColumns[delivery.Delivery](),
			func() *delivery.Delivery { return &delivery.Delivery{} },
		),
	}
}

// GetLines retrieves lines for a delivery.
func (r *DeliveryRepo) GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	return getLines(ctx, deliveryLinesTable, docID)
}

// SaveLines replaces the delivery's lines.
func (r *DeliveryRepo) SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	return saveLines(ctx, deliveryLinesTable, docID, lines)
}

// List retrieves deliveries with filtering.
func (r *DeliveryRepo) List(ctx context.Context, filter delivery.ListFilter) (domain.ListResult[*delivery.Delivery], error) {
	result := domain.ListResult[*delivery.Delivery]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
	}

	if filter.OperationType != "" {
		q = q.Where(squirrel.Eq{"operation_type": filter.OperationType})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *filter.DateTo})
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"reference": searchPattern},
			squirrel.ILike{"delivery_address": searchPattern},
		})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
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
		return result, fmt.Errorf("select: %w", err)
	}

	return result, nil
}
