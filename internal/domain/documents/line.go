// Package documents provides shared types for inventory movement documents.
package documents

import (
	"stockpile/internal/core/apperror"
	"stockpile/internal/core/id"
	"stockpile/internal/core/types"
)

// MultipleProductsLabel is the generic product label used in history entries
// for documents carrying more than one line.
const MultipleProductsLabel = "Multiple Products"

// Line is a value snapshot of a product within a movement document.
// Name, code and price are copied at entry time and never re-resolved
// against the stock ledger.
type Line struct {
	// Line identification
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Product snapshot
	ProductName string `db:"product_name" json:"productName"`
	ProductCode string `db:"product_code" json:"productCode,omitempty"`

	// Quantity and pricing
	Quantity   int64       `db:"quantity" json:"quantity"`
	UnitPrice  types.Money `db:"unit_price" json:"unitPrice"`
	TotalPrice types.Money `db:"total_price" json:"totalPrice"`
}

// NewLine creates a line with computed total.
func NewLine(lineNo int, name, code string, quantity int64, unitPrice types.Money) Line {
	return Line{
		LineID:      id.New(),
		LineNo:      lineNo,
		ProductName: name,
		ProductCode: code,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  types.LineTotal(unitPrice, quantity),
	}
}

// ValidateLines checks entry-time invariants shared by all movement kinds.
func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	seen := make(map[string]struct{}, len(lines))
	for i, line := range lines {
		if line.ProductName == "" {
			return apperror.NewValidation("product name is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}

		// A product may appear on at most one line per document.
		if line.ProductCode == "" {
			continue
		}
		if _, dup := seen[line.ProductCode]; dup {
			return apperror.NewDuplicate("line", "product_code", line.ProductCode)
		}
		seen[line.ProductCode] = struct{}{}
	}

	return nil
}

// TotalQuantity sums line quantities.
func TotalQuantity(lines []Line) int64 {
	var total int64
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

// ProductLabel returns the history label for a set of lines:
// the product name for single-line documents, a generic label otherwise.
func ProductLabel(lines []Line) string {
	if len(lines) == 1 {
		return lines[0].ProductName
	}
	return MultipleProductsLabel
}
