// Package tx defines the transaction management contract the domain layer
// depends on. The pgx implementation lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs functions inside database transactions.
//
// Movement finalization relies on this contract: the status update, the
// ledger deltas and the history entries of one transition commit or roll
// back together.
type Manager interface {
	// RunInTransaction executes fn within a transaction. An error from fn
	// rolls the transaction back; nil commits it. Nested calls reuse the
	// transaction already carried by ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transaction support for
// query paths that must see a consistent snapshot without taking locks.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction. Writes inside fn fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
