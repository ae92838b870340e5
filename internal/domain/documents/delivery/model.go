// Package delivery provides the Delivery document: outgoing inventory movements.
package delivery

import (
	"context"
	"strings"

	"stockpile/internal/core/apperror"
	"stockpile/internal/core/entity"
	"stockpile/internal/core/types"
	"stockpile/internal/domain/documents"
)

// Delivery records goods leaving stock towards a customer or another site.
// Finalizing it (status done) decreases the stock ledger.
type Delivery struct {
	entity.Document

	// DeliveryAddress is the destination of the goods
	DeliveryAddress string `db:"delivery_address" json:"deliveryAddress"`

	// OperationType distinguishes delivery flavors (e.g. sale, transfer)
	OperationType string `db:"operation_type" json:"operationType,omitempty"`

	// FromLocation / ToLocation describe the physical movement
	FromLocation string `db:"from_location" json:"fromLocation,omitempty"`
	ToLocation   string `db:"to_location" json:"toLocation,omitempty"`

	// Contact for the receiving party
	Contact string `db:"contact" json:"contact,omitempty"`

	// Table part: shipped goods
	Lines []documents.Line `db:"-" json:"lines"`
}

// New creates a delivery in draft status.
func New() *Delivery {
	return &Delivery{
		Document: entity.NewDocument(entity.DeliveryWorkflow),
		Lines:    make([]documents.Line, 0),
	}
}

// Workflow returns the delivery status chain (draft → waiting → ready → done).
func (d *Delivery) Workflow() entity.Workflow {
	return entity.DeliveryWorkflow
}

// AddLine appends a product snapshot line.
func (d *Delivery) AddLine(name, code string, quantity int64, unitPrice types.Money) {
	d.Lines = append(d.Lines, documents.NewLine(len(d.Lines)+1, name, code, quantity, unitPrice))
}

// TotalQuantity sums line quantities.
func (d *Delivery) TotalQuantity() int64 {
	return documents.TotalQuantity(d.Lines)
}

// Validate implements entity.Validatable.
func (d *Delivery) Validate(ctx context.Context) error {
	if strings.TrimSpace(d.DeliveryAddress) == "" {
		return apperror.NewValidation("delivery address is required").
			WithDetail("field", "deliveryAddress")
	}

	return documents.ValidateLines(d.Lines)
}
