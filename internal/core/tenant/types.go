// Package tenant provides multi-tenant database management for Database-per-Tenant architecture.
// Every registered user owns one isolated PostgreSQL database; the user id is the tenant key.
package tenant

import (
	"fmt"
	"time"
)

// Tenant represents a tenant record from the meta-database.
// The users table doubles as the tenant registry: one user, one database.
type Tenant struct {
	ID            int64     `db:"id"`
	LoginID       string    `db:"login_id"`
	Email         string    `db:"email"`
	EmailVerified bool      `db:"email_verified"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// IsActive returns true if tenant can accept requests.
// Unverified accounts have no usable tenant database yet.
func (t *Tenant) IsActive() bool {
	return t.EmailVerified
}

// DBName returns the tenant database name.
func (t *Tenant) DBName() string {
	return DBName(t.ID)
}

// DBName builds the tenant database name for a user id.
// Format: inventory_user_<id>
func DBName(userID int64) string {
	return fmt.Sprintf("inventory_user_%d", userID)
}

// DSN builds a PostgreSQL connection string for a tenant database.
func DSN(host string, port int, user, password, dbName, sslMode string) string {
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		user, password, host, port, dbName, sslMode,
	)
}
