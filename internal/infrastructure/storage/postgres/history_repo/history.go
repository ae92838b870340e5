// Package history_repo provides the PostgreSQL implementation of the
// append-only history log.
// In Database-per-Tenant architecture, TxManager is obtained from context.
package history_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/klauspost/compress/zstd"

	"stockpile/internal/core/apperror"
	"stockpile/internal/core/id"
	"stockpile/internal/domain"
	"stockpile/internal/domain/history"
	"stockpile/internal/infrastructure/storage/postgres"
)

const historyTable = "history"

// CompressionAlgo specifies how a snapshot column is stored.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// Snapshots above this size are stored zstd-compressed.
const compressThreshold = 10 * 1024

// HistoryRepo implements history.Repository.
type HistoryRepo struct {
	builder squirrel.StatementBuilderType
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewHistoryRepo creates a new history repository.
func NewHistoryRepo() (*HistoryRepo, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &HistoryRepo{
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// getTxManager retrieves TxManager from context.
func (r *HistoryRepo) getTxManager(ctx context.Context) *postgres.TxManager {
	return postgres.MustGetTxManager(ctx)
}

// Append inserts a history entry. Entries are never updated or deleted.
func (r *HistoryRepo) Append(ctx context.Context, entry *history.Entry) error {
	snapshot := entry.Snapshot
	snapshotCompressed := []byte(nil)
	algo := CompressionNone
	if len(snapshot) > compressThreshold {
		snapshotCompressed = r.encoder.EncodeAll(snapshot, nil)
		snapshot = nil
		algo = CompressionZstd
	}

	sql := `
		INSERT INTO history (
			id, type, operation, product_name, product_code,
			quantity, previous_quantity, new_quantity, price,
			related_id, description,
			snapshot, snapshot_compressed, compression_algo,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	querier := r.getTxManager(ctx).GetQuerier(ctx)
	_, err := querier.Exec(ctx, sql,
		entry.ID, entry.Type, entry.Operation, entry.ProductName, entry.ProductCode,
		entry.Quantity, entry.PreviousQuantity, entry.NewQuantity, entry.Price,
		entry.RelatedID, entry.Description,
		snapshot, snapshotCompressed, algo,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}

	return nil
}

// List retrieves history entries, newest first.
func (r *HistoryRepo) List(ctx context.Context, filter history.ListFilter) (domain.ListResult[*history.Entry], error) {
	result := domain.ListResult[*history.Entry]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder.
		Select(
			"id", "type", "operation", "product_name", "product_code",
			"quantity", "previous_quantity", "new_quantity", "price",
			"related_id", "description",
			"snapshot", "snapshot_compressed", "compression_algo",
			"created_at",
		).
		From(historyTable)

	if filter.Type != "" {
		q = q.Where(squirrel.Eq{"type": filter.Type})
	}

	if filter.Operation != "" {
		q = q.Where(squirrel.Eq{"operation": filter.Operation})
	}

	if filter.ProductCode != "" {
		q = q.Where(squirrel.Eq{"product_code": filter.ProductCode})
	}

	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}

	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"created_at": *filter.To})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"product_name": pattern},
			squirrel.ILike{"product_code": pattern},
			squirrel.ILike{"description": pattern},
		})
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

	orderBy, err := parseOrderBy(filter.OrderBy)
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

	entries, err := r.selectEntries(ctx, sql, args)
	if err != nil {
		return result, err
	}
	result.Items = entries

	return result, nil
}

// GetByRelated retrieves entries linked to a document, newest first.
func (r *HistoryRepo) GetByRelated(ctx context.Context, relatedID id.ID, limit int) ([]*history.Entry, error) {
	sql := `
		SELECT id, type, operation, product_name, product_code,
			   quantity, previous_quantity, new_quantity, price,
			   related_id, description,
			   snapshot, snapshot_compressed, compression_algo,
			   created_at
		FROM history
		WHERE related_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	return r.selectEntries(ctx, sql, []any{relatedID, limit})
}

func (r *HistoryRepo) selectEntries(ctx context.Context, sql string, args []any) ([]*history.Entry, error) {
	querier := r.getTxManager(ctx).GetQuerier(ctx)
	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []*history.Entry
	for rows.Next() {
		e := &history.Entry{}
		var snapshot, snapshotCompressed []byte
		var algo CompressionAlgo

		err := rows.Scan(
			&e.ID, &e.Type, &e.Operation, &e.ProductName, &e.ProductCode,
			&e.Quantity, &e.PreviousQuantity, &e.NewQuantity, &e.Price,
			&e.RelatedID, &e.Description,
			&snapshot, &snapshotCompressed, &algo,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		if algo == CompressionZstd && len(snapshotCompressed) > 0 {
			decompressed, err := r.decoder.DecodeAll(snapshotCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress snapshot: %w", err)
			}
			snapshot = decompressed
		}
		e.Snapshot = snapshot

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func parseOrderBy(orderBy string) (string, error) {
	allowed := map[string]struct{}{
		"id":           {},
		"type":         {},
		"operation":    {},
		"product_name": {},
		"product_code": {},
		"created_at":   {},
	}

	// UUIDv7 ids break timestamp ties in insertion order.
	if strings.TrimSpace(orderBy) == "" {
		return "created_at DESC, id DESC", nil
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
