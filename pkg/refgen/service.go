// Package refgen provides movement reference generation.
// In Database-per-Tenant architecture, uses the tenant pool from context.
package refgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"stockpile/internal/core/refgen"
	"stockpile/internal/core/tenant"
)

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service generates movement references by continuing the sequence of the
// most recently created document of the kind.
//
// The sequence is derived, not stored: the numeric suffix of the latest
// reference plus one. A tenant with no documents of the kind starts at 1,
// and so does a tenant whose latest reference has no parsable suffix.
// Read failures also fall back to 1 - reference generation must never
// block document creation.
type Service struct {
	// staticQuerier is used for single-tenant mode and tests
	staticQuerier Querier
	// useContext indicates whether to get querier from context
	useContext bool
}

// New creates a reference service with a static querier.
// Use for single-tenant or testing scenarios.
func New(querier Querier) *Service {
	return &Service{
		staticQuerier: querier,
		useContext:    false,
	}
}

// NewFromContext creates a reference service that gets querier from context.
// Use for Database-per-Tenant architecture.
func NewFromContext() *Service {
	return &Service{
		useContext: true,
	}
}

// getQuerier returns appropriate querier based on configuration.
func (s *Service) getQuerier(ctx context.Context) Querier {
	if s.useContext {
		// Reference generation runs before the document transaction opens,
		// so the tenant pool is used directly here.
		return tenant.MustGetPool(ctx)
	}
	return s.staticQuerier
}

// NextReference generates the next reference for the given kind.
// Pattern: WAREHOUSECODE/KIND/XXXX (e.g. "WH1/IN/0042").
func (s *Service) NextReference(ctx context.Context, kind refgen.Kind, warehouseCode string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("refgen service is not initialized")
	}

	table, err := tableFor(kind)
	if err != nil {
		return "", err
	}

	seq := int64(1)

	var last string
	query := fmt.Sprintf(
		"SELECT reference FROM %s ORDER BY created_at DESC, id DESC LIMIT 1", table)
	err = s.getQuerier(ctx).QueryRow(ctx, query).Scan(&last)
	switch {
	case err == nil:
		if n := refgen.ParseSequence(last); n >= 0 {
			seq = n + 1
		}
	case errors.Is(err, pgx.ErrNoRows):
		// first document of this kind
	default:
		// sequencing is best-effort: fall back to 1 instead of failing
	}

	return refgen.Format(warehouseCode, kind, seq), nil
}

func tableFor(kind refgen.Kind) (string, error) {
	switch kind {
	case refgen.KindReceipt:
		return "receipts", nil
	case refgen.KindDelivery:
		return "deliveries", nil
	default:
		return "", fmt.Errorf("unknown reference kind: %q", kind)
	}
}

// Ensure compile-time interface compliance.
var _ refgen.Generator = (*Service)(nil)
