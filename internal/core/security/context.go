// Package security carries the acting user through request context for
// audit stamping.
package security

import "context"

type userIDKey struct{}

// WithUserID stores the authenticated user's id in context.
// Set by middleware once per request.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserID retrieves the acting user's id from context, or an empty
// string outside of an authenticated request. Document services use it
// to fill the created_by/updated_by audit columns.
func GetUserID(ctx context.Context) string {
	if uid, ok := ctx.Value(userIDKey{}).(string); ok {
		return uid
	}
	return ""
}
