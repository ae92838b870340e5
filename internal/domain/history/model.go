// Package history provides the append-only operation log.
package history

import (
	"time"

	"stockpile/internal/core/id"
	"stockpile/internal/core/types"
)

// Entry types group operations by the entity they touch.
const (
	TypeReceipt   = "Receipt"
	TypeDelivery  = "Delivery"
	TypeInventory = "Inventory"
)

// Inventory operations.
const (
	OpStockUpdated = "Stock Updated"
	OpItemAdded    = "Item Added"
	OpItemDeleted  = "Item Deleted"
)

// Entry is a single history record. Entries are immutable: they are
// appended when an operation happens and never updated or deleted.
type Entry struct {
	ID id.ID `db:"id" json:"id"`

	// Type is the entity group ("Receipt", "Delivery", "Inventory")
	Type string `db:"type" json:"type"`

	// Operation is the human-readable operation label
	// (e.g. "Receipt Created", "Stock Updated")
	Operation string `db:"operation" json:"operation"`

	// Product info at the time of the operation
	ProductName string `db:"product_name" json:"productName"`
	ProductCode string `db:"product_code" json:"productCode,omitempty"`

	// Quantity fields; which are set depends on the operation
	Quantity         *int64 `db:"quantity" json:"quantity,omitempty"`
	PreviousQuantity *int64 `db:"previous_quantity" json:"previousQuantity,omitempty"`
	NewQuantity      *int64 `db:"new_quantity" json:"newQuantity,omitempty"`

	Price *types.Money `db:"price" json:"price,omitempty"`

	// RelatedID links the entry to the document or stock item it describes
	RelatedID *id.ID `db:"related_id" json:"relatedId,omitempty"`

	Description string `db:"description" json:"description,omitempty"`

	// Snapshot is the JSON image of the related document at the time of
	// the operation. Stored compressed when large; transparently
	// decompressed on read.
	Snapshot []byte `db:"-" json:"snapshot,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewEntry creates an entry with generated id and timestamp.
func NewEntry(entryType, operation string) *Entry {
	return &Entry{
		ID:        id.New(),
		Type:      entryType,
		Operation: operation,
		CreatedAt: time.Now().UTC(),
	}
}

// WithProduct sets the product fields.
func (e *Entry) WithProduct(name, code string) *Entry {
	e.ProductName = name
	e.ProductCode = code
	return e
}

// WithQuantity sets the absolute quantity field.
func (e *Entry) WithQuantity(q int64) *Entry {
	e.Quantity = &q
	return e
}

// WithQuantityChange sets the previous/new quantity pair.
func (e *Entry) WithQuantityChange(previous, current int64) *Entry {
	e.PreviousQuantity = &previous
	e.NewQuantity = &current
	return e
}

// WithRelated links the entry to an entity.
func (e *Entry) WithRelated(relatedID id.ID) *Entry {
	e.RelatedID = &relatedID
	return e
}

// WithDescription sets the description.
func (e *Entry) WithDescription(description string) *Entry {
	e.Description = description
	return e
}
