package entity

import (
	"context"
	"strings"

	"stockpile/internal/core/apperror"
)

// Catalog is the base type for reference data.
// Examples: Warehouses, Locations.
type Catalog struct {
	BaseCatalog

	// Name is the display name
	Name string `db:"name" json:"name"`

	// ShortCode is a human-readable identifier, unique within the tenant.
	// Stored trimmed and uppercased.
	ShortCode string `db:"short_code" json:"shortCode"`
}

// NewCatalog creates a new Catalog with generated ID.
// The short code is normalized on creation.
func NewCatalog(name, shortCode string) Catalog {
	return Catalog{
		BaseCatalog: NewBaseCatalog(),
		Name:        name,
		ShortCode:   NormalizeShortCode(shortCode),
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	return nil
}

// NormalizeShortCode trims surrounding whitespace and uppercases the code,
// so "wh1 " and "WH1" are the same identifier.
func NormalizeShortCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
