// Package receipt provides the Receipt document: incoming inventory movements.
package receipt

import (
	"context"
	"strings"

	"stockpile/internal/core/apperror"
	"stockpile/internal/core/entity"
	"stockpile/internal/core/types"
	"stockpile/internal/domain/documents"
)

// Receipt records goods arriving from a supplier or other source.
// Finalizing it (status done) increases the stock ledger.
type Receipt struct {
	entity.Document

	// ReceiveFrom is the supplier or source of the goods
	ReceiveFrom string `db:"receive_from" json:"receiveFrom"`

	// ToLocation is where the goods are stored
	ToLocation string `db:"to_location" json:"toLocation,omitempty"`

	// Contact for the source party
	Contact string `db:"contact" json:"contact,omitempty"`

	// Table part: received goods
	Lines []documents.Line `db:"-" json:"lines"`
}

// New creates a receipt in draft status.
func New() *Receipt {
	return &Receipt{
		Document: entity.NewDocument(entity.ReceiptWorkflow),
		Lines:    make([]documents.Line, 0),
	}
}

// Workflow returns the receipt status chain (draft → ready → done).
func (r *Receipt) Workflow() entity.Workflow {
	return entity.ReceiptWorkflow
}

// AddLine appends a product snapshot line.
func (r *Receipt) AddLine(name, code string, quantity int64, unitPrice types.Money) {
	r.Lines = append(r.Lines, documents.NewLine(len(r.Lines)+1, name, code, quantity, unitPrice))
}

// TotalQuantity sums line quantities.
func (r *Receipt) TotalQuantity() int64 {
	return documents.TotalQuantity(r.Lines)
}

// Validate implements entity.Validatable.
func (r *Receipt) Validate(ctx context.Context) error {
	if strings.TrimSpace(r.ReceiveFrom) == "" {
		return apperror.NewValidation("receive from is required").
			WithDetail("field", "receiveFrom")
	}

	return documents.ValidateLines(r.Lines)
}
