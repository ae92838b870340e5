package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockpile/internal/core/id"
	"stockpile/internal/domain/documents"
	"stockpile/internal/infrastructure/storage/postgres"
)

// Receipt and delivery lines share the same shape, only the table differs.

func getLines(ctx context.Context, table string, docID id.ID) ([]documents.Line, error) {
	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(
			"line_id", "line_no", "product_name", "product_code",
			"quantity", "unit_price", "total_price",
		).
		From(table).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []documents.Line
	querier := postgres.MustGetTxManager(ctx).GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// saveLines replaces the document's lines (delete existing + insert new).
func saveLines(ctx context.Context, table string, docID id.ID, lines []documents.Line) error {
	querier := postgres.MustGetTxManager(ctx).GetQuerier(ctx)

	deleteSQL := "DELETE FROM " + table + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert(table).
		Columns(
			"line_id", "document_id", "line_no", "product_name", "product_code",
			"quantity", "unit_price", "total_price",
		)

	for _, line := range lines {
		q = q.Values(
			line.LineID, docID, line.LineNo, line.ProductName, line.ProductCode,
			line.Quantity, line.UnitPrice, line.TotalPrice,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}
