package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockpile/internal/core/id"
	"stockpile/internal/domain"
	"stockpile/internal/domain/documents"
	"stockpile/internal/domain/documents/receipt"
	"stockpile/internal/infrastructure/storage/postgres"
)

const (
	receiptsTable     = "receipts"
	receiptLinesTable = "receipt_lines"
)

// ReceiptRepo implements receipt.Repository.
type ReceiptRepo struct {
	*BaseDocumentRepo[*receipt.Receipt]
}

// NewReceiptRepo creates a new receipt repository.
func NewReceiptRepo() *ReceiptRepo {
	return &ReceiptRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*receipt.Receipt](
			receiptsTable,
			postgres.ExtractDBColumns[receipt.Receipt](),
			func() *receipt.Receipt { return &receipt.Receipt{} },
		),
	}
}

// GetLines retrieves lines for a receipt.
func (r *ReceiptRepo) GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	return getLines(ctx, receiptLinesTable, docID)
}

// SaveLines replaces the receipt's lines.
func (r *ReceiptRepo) SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	return saveLines(ctx, receiptLinesTable, docID, lines)
}

// List retrieves receipts with filtering.
func (r *ReceiptRepo) List(ctx context.Context, filter receipt.ListFilter) (domain.ListResult[*receipt.Receipt], error) {
	result := domain.ListResult[*receipt.Receipt]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.baseSelect()

	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"status": *filter.Status})
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
			squirrel.ILike{"receive_from": searchPattern},
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
