// Package stock provides the stock ledger: the current on-hand state of
// every tracked product.
package stock

import (
	"context"
	"strings"

	"stockpile/internal/core/apperror"
	"stockpile/internal/core/entity"
	"stockpile/internal/core/types"
)

// Item statuses.
const (
	StatusInStock    = "in_stock"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
)

// Item is one row of the stock ledger.
// The product code, when present, is the unique key that movement documents
// resolve against.
type Item struct {
	entity.BaseCatalog

	ProductName string `db:"product_name" json:"productName"`
	ProductCode string `db:"product_code" json:"productCode,omitempty"`
	Category    string `db:"category" json:"category,omitempty"`

	// Quantity on hand; never negative
	Quantity int64 `db:"quantity" json:"quantity"`

	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// TotalValue is always quantity × unitPrice
	TotalValue types.Money `db:"total_value" json:"totalValue"`

	SupplierName string `db:"supplier_name" json:"supplierName,omitempty"`
	Location     string `db:"location" json:"location,omitempty"`

	MinStockLevel int64  `db:"min_stock_level" json:"minStockLevel"`
	MaxStockLevel *int64 `db:"max_stock_level" json:"maxStockLevel,omitempty"`

	Status string `db:"status" json:"status"`
	Notes  string `db:"notes" json:"notes,omitempty"`
}

// NewItem creates a ledger row with defaults matching a fresh product.
func NewItem(productName, productCode string) *Item {
	return &Item{
		BaseCatalog: entity.NewBaseCatalog(),
		ProductName: productName,
		ProductCode: productCode,
		UnitPrice:   types.Zero(),
		TotalValue:  types.Zero(),
		Status:      StatusInStock,
	}
}

// Validate implements entity.Validatable.
func (i *Item) Validate(ctx context.Context) error {
	if strings.TrimSpace(i.ProductName) == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "productName")
	}
	if i.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	if i.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}
	return nil
}

// Recalculate derives total value from quantity and unit price.
func (i *Item) Recalculate() {
	i.TotalValue = types.LineTotal(i.UnitPrice, i.Quantity)
}

// Upsert describes one change to the ledger. Either an absolute Quantity
// or a relative QuantityChange; when both are present the absolute value
// wins and the change is kept for the history record.
type Upsert struct {
	ProductName string
	ProductCode string
	Category    string

	// Quantity sets the on-hand amount outright
	Quantity *int64

	// QuantityChange adjusts the on-hand amount (+receipt, -delivery)
	QuantityChange int64

	UnitPrice *types.Money

	SupplierName  string
	Location      string
	MinStockLevel *int64
	MaxStockLevel *int64
	Status        string
	Notes         string
}
