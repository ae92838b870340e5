package entity

import (
	"time"

	"stockpile/internal/core/apperror"
	"stockpile/internal/core/id"
)

// Document is the base type for inventory movements.
// Examples: Receipt (incoming), Delivery (outgoing).
type Document struct {
	BaseDocument

	// Reference is the human-readable identifier, unique within type
	// (e.g. "WH1/IN/0042")
	Reference string `db:"reference" json:"reference"`

	// Status is the workflow state (draft/waiting/ready/done)
	Status Status `db:"status" json:"status"`

	// Responsible is the person accountable for the movement
	Responsible string `db:"responsible" json:"responsible,omitempty"`

	// ScheduledDate is the planned date of the movement
	ScheduledDate *time.Time `db:"scheduled_date" json:"scheduledDate,omitempty"`

	// Notes is an optional user comment
	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewDocument creates a new Document in the workflow's initial status.
func NewDocument(w Workflow) Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Status:       w.Initial(),
	}
}

// IsDone reports whether the movement has been finalized.
func (d *Document) IsDone() bool {
	return d.Status == StatusDone
}

// CanModify checks if document can be modified.
// Finalized documents are immutable snapshots of the movement.
func (d *Document) CanModify() error {
	if d.IsDone() {
		return apperror.NewBusinessRule(
			apperror.CodeDocumentCompleted,
			"Cannot modify completed document",
		).WithDetail("document_id", d.ID.String())
	}
	return nil
}

// GetID returns the document ID.
func (d *Document) GetID() id.ID {
	return d.ID
}
