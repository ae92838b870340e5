// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// UserContext contains authenticated user information.
// The user ID doubles as the tenant key: every user owns one tenant database.
type UserContext struct {
	UserID  int64
	LoginID string
	Email   string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetUserID returns user ID from context or zero.
func GetUserID(ctx context.Context) int64 {
	if u := GetUser(ctx); u != nil {
		return u.UserID
	}
	return 0
}

// GetLoginID returns the login identifier from context or empty string.
func GetLoginID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.LoginID
	}
	return ""
}
