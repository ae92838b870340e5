package postgres

import (
	"context"
	"fmt"

	"stockpile/internal/core/tenant"
)

// MustGetTxManager returns the *postgres.TxManager placed in context by
// the TenantDB middleware. Repositories call it to reach GetQuerier;
// services stay on the internal/core/tx.Manager interface and never
// see the concrete type.
func MustGetTxManager(ctx context.Context) *TxManager {
	txm := tenant.MustGetTxManager(ctx)
	postgresTxm, ok := txm.(*TxManager)
	if !ok || postgresTxm == nil {
		panic(fmt.Sprintf("TxManager in context has unexpected type: %T", txm))
	}
	return postgresTxm
}

