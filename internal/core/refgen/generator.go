// Package refgen provides domain contracts for movement reference generation.
// Implementations live in infrastructure layer.
package refgen

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the movement direction encoded in the reference.
type Kind string

const (
	// KindReceipt marks incoming movements ("IN").
	KindReceipt Kind = "IN"

	// KindDelivery marks outgoing movements ("OUT").
	KindDelivery Kind = "OUT"
)

// Generator produces sequential movement references.
// This is the domain contract - implementations live in infrastructure layer.
//
// In Database-per-Tenant architecture, implementations should obtain
// database connections from context using tenant.GetPool or tenant.GetTxManager.
type Generator interface {
	// NextReference generates the next reference for the given kind.
	// Pattern: WAREHOUSECODE/KIND/XXXX (e.g. "WH1/IN/0042").
	//
	// Sequences are per kind and tenant-wide. Generation never blocks
	// document creation: on any read failure the sequence restarts at 1.
	NextReference(ctx context.Context, kind Kind, warehouseCode string) (string, error)
}

// Format renders a reference from its parts.
// The sequence is zero-padded to four digits; larger values keep all digits.
func Format(warehouseCode string, kind Kind, seq int64) string {
	return fmt.Sprintf("%s/%s/%04d", strings.ToUpper(warehouseCode), kind, seq)
}

// ParseSequence extracts the numeric suffix of a reference.
// Returns -1 when the reference has no parsable suffix.
func ParseSequence(reference string) int64 {
	idx := strings.LastIndex(reference, "/")
	if idx < 0 || idx == len(reference)-1 {
		return -1
	}
	n, err := strconv.ParseInt(reference[idx+1:], 10, 64)
	if err != nil || n < 0 {
		return -1
	}
	return n
}
