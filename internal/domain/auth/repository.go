package auth

import (
	"context"
)

// UserRepository defines user storage operations.
// It runs against the control-plane database, not a tenant database.
type UserRepository interface {
	// Create creates a new user and fills in the assigned ID.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves user by ID.
	GetByID(ctx context.Context, userID int64) (*User, error)

	// GetByLogin retrieves user by login ID or email.
	GetByLogin(ctx context.Context, login string) (*User, error)

	// Update updates user data.
	Update(ctx context.Context, user *User) error

	// ExistsByLogin checks whether the login ID is taken.
	ExistsByLogin(ctx context.Context, loginID string) (bool, error)

	// ExistsByEmail checks whether the email is taken.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
