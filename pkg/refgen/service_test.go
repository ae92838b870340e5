package refgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"stockpile/internal/core/refgen"
)

// Mock objects
type mockRow struct {
	val string
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*string); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	last    string
	err     error
	lastSQL string
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.lastSQL = sql
	return &mockRow{val: m.last, err: m.err}
}

func TestNextReference_FirstDocument(t *testing.T) {
	q := &mockQuerier{err: pgx.ErrNoRows}
	svc := New(q)

	ref, err := svc.NextReference(context.Background(), refgen.KindReceipt, "WH1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "WH1/IN/0001" {
		t.Errorf("expected WH1/IN/0001, got %s", ref)
	}
}

func TestNextReference_ContinuesSequence(t *testing.T) {
	q := &mockQuerier{last: "WH1/IN/0042"}
	svc := New(q)

	ref, err := svc.NextReference(context.Background(), refgen.KindReceipt, "WH1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "WH1/IN/0043" {
		t.Errorf("expected WH1/IN/0043, got %s", ref)
	}
}

func TestNextReference_UppercasesWarehouseCode(t *testing.T) {
	q := &mockQuerier{err: pgx.ErrNoRows}
	svc := New(q)

	ref, err := svc.NextReference(context.Background(), refgen.KindDelivery, "main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "MAIN/OUT/0001" {
		t.Errorf("expected MAIN/OUT/0001, got %s", ref)
	}
}

func TestNextReference_KindSelectsTable(t *testing.T) {
	q := &mockQuerier{err: pgx.ErrNoRows}
	svc := New(q)

	_, _ = svc.NextReference(context.Background(), refgen.KindDelivery, "WH1")
	if !strings.Contains(q.lastSQL, "FROM deliveries") {
		t.Errorf("delivery reference should read deliveries table, got: %s", q.lastSQL)
	}

	_, _ = svc.NextReference(context.Background(), refgen.KindReceipt, "WH1")
	if !strings.Contains(q.lastSQL, "FROM receipts") {
		t.Errorf("receipt reference should read receipts table, got: %s", q.lastSQL)
	}
}

func TestNextReference_UnparsableSuffixRestartsSequence(t *testing.T) {
	q := &mockQuerier{last: "WH1/IN/draft-a"}
	svc := New(q)

	ref, err := svc.NextReference(context.Background(), refgen.KindReceipt, "WH1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "WH1/IN/0001" {
		t.Errorf("expected fallback to WH1/IN/0001, got %s", ref)
	}
}

func TestNextReference_ReadErrorFallsBack(t *testing.T) {
	q := &mockQuerier{err: errors.New("connection lost")}
	svc := New(q)

	// generation must not block document creation
	ref, err := svc.NextReference(context.Background(), refgen.KindReceipt, "WH1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "WH1/IN/0001" {
		t.Errorf("expected WH1/IN/0001, got %s", ref)
	}
}

func TestNextReference_GrowsPastPadding(t *testing.T) {
	q := &mockQuerier{last: "WH1/OUT/9999"}
	svc := New(q)

	ref, err := svc.NextReference(context.Background(), refgen.KindDelivery, "WH1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "WH1/OUT/10000" {
		t.Errorf("expected WH1/OUT/10000, got %s", ref)
	}
}

func TestNextReference_UnknownKind(t *testing.T) {
	svc := New(&mockQuerier{})

	if _, err := svc.NextReference(context.Background(), refgen.Kind("SIDEWAYS"), "WH1"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
