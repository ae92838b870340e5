// Package audit provides audit field enrichment for domain entities.
package audit

import (
	"context"

	"stockpile/internal/core/security"
)

// EnrichCreatedBy sets CreatedBy and UpdatedBy from the context user.
// No-op when no user is present (system operations, CLI tools).
func EnrichCreatedBy(ctx context.Context, createdBy, updatedBy *string) {
	userID := security.GetUserID(ctx)
	if userID != "" && createdBy != nil && updatedBy != nil {
		*createdBy = userID
		*updatedBy = userID
	}
}

// EnrichUpdatedBy sets UpdatedBy from the context user.
func EnrichUpdatedBy(ctx context.Context, updatedBy *string) {
	userID := security.GetUserID(ctx)
	if userID != "" && updatedBy != nil {
		*updatedBy = userID
	}
}
