// Package refgen provides domain contracts for movement reference generation.
package refgen

import (
	"context"
)

// MockGenerator is a test implementation of Generator.
// Use in unit tests to avoid database dependencies.
type MockGenerator struct {
	NextReferenceFunc func(ctx context.Context, kind Kind, warehouseCode string) (string, error)
}

// NextReference implements Generator.
func (m *MockGenerator) NextReference(ctx context.Context, kind Kind, warehouseCode string) (string, error) {
	if m.NextReferenceFunc != nil {
		return m.NextReferenceFunc(ctx, kind, warehouseCode)
	}
	// Default: return predictable mock reference
	return Format(warehouseCode, kind, 1), nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
