package entity

import (
	"testing"

	"stockpile/internal/core/apperror"
)

func TestWorkflow_CanTransition(t *testing.T) {
	tests := []struct {
		name     string
		workflow Workflow
		from     Status
		to       Status
		want     bool
	}{
		{"receipt draft to ready", ReceiptWorkflow, StatusDraft, StatusReady, true},
		{"receipt ready to done", ReceiptWorkflow, StatusReady, StatusDone, true},
		{"receipt skips ready", ReceiptWorkflow, StatusDraft, StatusDone, false},
		{"receipt backward", ReceiptWorkflow, StatusReady, StatusDraft, false},
		{"receipt has no waiting", ReceiptWorkflow, StatusDraft, StatusWaiting, false},
		{"receipt done is terminal", ReceiptWorkflow, StatusDone, StatusDraft, false},
		{"delivery draft to waiting", DeliveryWorkflow, StatusDraft, StatusWaiting, true},
		{"delivery waiting to ready", DeliveryWorkflow, StatusWaiting, StatusReady, true},
		{"delivery ready to done", DeliveryWorkflow, StatusReady, StatusDone, true},
		{"delivery skips waiting", DeliveryWorkflow, StatusDraft, StatusReady, false},
		{"delivery backward", DeliveryWorkflow, StatusDone, StatusReady, false},
		{"same status", DeliveryWorkflow, StatusDraft, StatusDraft, false},
		{"unknown status", ReceiptWorkflow, StatusDraft, Status("archived"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.workflow.CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestWorkflow_Initial(t *testing.T) {
	if got := ReceiptWorkflow.Initial(); got != StatusDraft {
		t.Errorf("receipt initial = %s, want draft", got)
	}
	if got := DeliveryWorkflow.Initial(); got != StatusDraft {
		t.Errorf("delivery initial = %s, want draft", got)
	}
}

func TestWorkflow_ValidateTransition(t *testing.T) {
	err := DeliveryWorkflow.ValidateTransition(StatusDraft, StatusReady)
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperror.CodeInvalidTransition {
		t.Errorf("code = %s, want %s", appErr.Code, apperror.CodeInvalidTransition)
	}

	err = ReceiptWorkflow.ValidateTransition(StatusDraft, Status("archived"))
	appErr, ok = apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperror.CodeValidation {
		t.Errorf("code = %s, want %s", appErr.Code, apperror.CodeValidation)
	}

	if err := ReceiptWorkflow.ValidateTransition(StatusReady, StatusDone); err != nil {
		t.Errorf("valid transition rejected: %v", err)
	}
}

func TestDocument_CanModify(t *testing.T) {
	doc := NewDocument(ReceiptWorkflow)
	if err := doc.CanModify(); err != nil {
		t.Errorf("draft document should be modifiable: %v", err)
	}

	doc.Status = StatusDone
	err := doc.CanModify()
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperror.CodeDocumentCompleted {
		t.Errorf("code = %s, want %s", appErr.Code, apperror.CodeDocumentCompleted)
	}
}
