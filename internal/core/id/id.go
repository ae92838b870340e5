// Package id provides UUIDv7 generation for documents, catalog rows
// and history entries. UUIDv7 embeds a Unix timestamp in the first
// 48 bits, so ids sort by creation time and index well in Postgres.
package id

import (
	"github.com/google/uuid"
)

// ID is the primary key type for every stored entity.
type ID = uuid.UUID

// New generates a UUIDv7, falling back to V4 if the clock source fails.
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// Parse converts string to ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse converts string to ID, panics on error.
// Use only for constants and tests.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns zero-value UUID.
func Nil() ID {
	return uuid.Nil
}

// IsNil checks if ID is zero-value.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
