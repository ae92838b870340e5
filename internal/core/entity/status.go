package entity

import (
	"stockpile/internal/core/apperror"
)

// Status is the lifecycle state of a movement document.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusWaiting Status = "waiting"
	StatusReady   Status = "ready"
	StatusDone    Status = "done"
)

func (s Status) String() string { return string(s) }

// Workflow is an ordered chain of statuses. Documents advance exactly one
// step forward at a time; backward moves and skips are rejected.
type Workflow []Status

// ReceiptWorkflow is the lifecycle of incoming movements.
var ReceiptWorkflow = Workflow{StatusDraft, StatusReady, StatusDone}

// DeliveryWorkflow is the lifecycle of outgoing movements.
var DeliveryWorkflow = Workflow{StatusDraft, StatusWaiting, StatusReady, StatusDone}

// Initial returns the first status of the chain.
func (w Workflow) Initial() Status {
	return w[0]
}

// Contains reports whether s belongs to the workflow.
func (w Workflow) Contains(s Status) bool {
	return w.indexOf(s) >= 0
}

// CanTransition reports whether from → to is the allowed single forward step.
func (w Workflow) CanTransition(from, to Status) bool {
	fi := w.indexOf(from)
	ti := w.indexOf(to)
	if fi < 0 || ti < 0 {
		return false
	}
	return ti == fi+1
}

// ValidateTransition returns an AppError when from → to is not allowed.
func (w Workflow) ValidateTransition(from, to Status) error {
	if !w.Contains(to) {
		return apperror.NewValidation("unknown status").
			WithDetail("status", string(to))
	}
	if !w.CanTransition(from, to) {
		return apperror.NewInvalidTransition(string(from), string(to))
	}
	return nil
}

func (w Workflow) indexOf(s Status) int {
	for i, v := range w {
		if v == s {
			return i
		}
	}
	return -1
}
