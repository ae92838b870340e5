package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no user owns the requested tenant id.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantNotActive is returned for accounts that have not completed
	// email verification.
	ErrTenantNotActive = errors.New("tenant is not active")

	// ErrMaxPoolLimit is returned when the manager cannot open another
	// tenant database pool.
	ErrMaxPoolLimit = errors.New("max tenant pool limit reached")
)
