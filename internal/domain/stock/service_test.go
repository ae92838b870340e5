package stock

import (
	"context"
	"testing"

	"stockpile/internal/core/apperror"
	"stockpile/internal/core/id"
	"stockpile/internal/core/types"
	"stockpile/internal/domain"
	"stockpile/internal/domain/history"
)

// passthroughTx runs the function without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	items map[string]*Item // by product code
	byID  map[id.ID]*Item
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items: make(map[string]*Item),
		byID:  make(map[id.ID]*Item),
	}
}

func (r *fakeRepo) Create(ctx context.Context, item *Item) error {
	if item.ProductCode != "" {
		r.items[item.ProductCode] = item
	}
	r.byID[item.ID] = item
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, itemID id.ID) (*Item, error) {
	item, ok := r.byID[itemID]
	if !ok {
		return nil, apperror.NewNotFound("stock item", itemID)
	}
	return item, nil
}

func (r *fakeRepo) GetByCode(ctx context.Context, productCode string) (*Item, error) {
	item, ok := r.items[productCode]
	if !ok {
		return nil, apperror.NewNotFound("stock item", productCode)
	}
	return item, nil
}

func (r *fakeRepo) GetByCodeForUpdate(ctx context.Context, productCode string) (*Item, error) {
	return r.GetByCode(ctx, productCode)
}

func (r *fakeRepo) Update(ctx context.Context, item *Item) error {
	r.byID[item.ID] = item
	if item.ProductCode != "" {
		r.items[item.ProductCode] = item
	}
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, itemID id.ID) error {
	item, ok := r.byID[itemID]
	if !ok {
		return apperror.NewNotFound("stock item", itemID)
	}
	delete(r.byID, itemID)
	delete(r.items, item.ProductCode)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Item], error) {
	result := domain.ListResult[*Item]{}
	for _, item := range r.byID {
		result.Items = append(result.Items, item)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

type fakeHistoryRepo struct {
	entries []*history.Entry
}

func (r *fakeHistoryRepo) Append(ctx context.Context, entry *history.Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeHistoryRepo) List(ctx context.Context, filter history.ListFilter) (domain.ListResult[*history.Entry], error) {
	return domain.ListResult[*history.Entry]{}, nil
}

func (r *fakeHistoryRepo) GetByRelated(ctx context.Context, relatedID id.ID, limit int) ([]*history.Entry, error) {
	return nil, nil
}

func (r *fakeHistoryRepo) lastOperation() string {
	if len(r.entries) == 0 {
		return ""
	}
	return r.entries[len(r.entries)-1].Operation
}

func newTestService() (*Service, *fakeRepo, *fakeHistoryRepo) {
	repo := newFakeRepo()
	hist := &fakeHistoryRepo{}
	svc := NewService(repo, history.NewService(hist), passthroughTx{})
	return svc, repo, hist
}

func TestApply_CreatesNewItem(t *testing.T) {
	svc, _, hist := newTestService()

	quantity := int64(10)
	price := types.MustMoney("4.50")
	item, err := svc.Apply(context.Background(), Upsert{
		ProductName: "Widget",
		ProductCode: "W-1",
		Quantity:    &quantity,
		UnitPrice:   &price,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if item.Quantity != 10 {
		t.Errorf("quantity = %d, want 10", item.Quantity)
	}
	if !item.TotalValue.Equal(types.MustMoney("45")) {
		t.Errorf("total value = %s, want 45", item.TotalValue)
	}
	if hist.lastOperation() != history.OpItemAdded {
		t.Errorf("history operation = %q, want %q", hist.lastOperation(), history.OpItemAdded)
	}
}

func TestApply_RelativeChangeAdjustsExisting(t *testing.T) {
	svc, _, hist := newTestService()

	quantity := int64(10)
	if _, err := svc.Apply(context.Background(), Upsert{
		ProductName: "Widget",
		ProductCode: "W-1",
		Quantity:    &quantity,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	item, err := svc.Apply(context.Background(), Upsert{
		ProductCode:    "W-1",
		QuantityChange: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Quantity != 15 {
		t.Errorf("quantity = %d, want 15", item.Quantity)
	}
	if hist.lastOperation() != history.OpStockUpdated {
		t.Errorf("history operation = %q, want %q", hist.lastOperation(), history.OpStockUpdated)
	}

	last := hist.entries[len(hist.entries)-1]
	if last.PreviousQuantity == nil || *last.PreviousQuantity != 10 {
		t.Errorf("previous quantity not recorded, got %v", last.PreviousQuantity)
	}
	if last.NewQuantity == nil || *last.NewQuantity != 15 {
		t.Errorf("new quantity not recorded, got %v", last.NewQuantity)
	}
}

func TestApply_AbsoluteQuantityWins(t *testing.T) {
	svc, _, _ := newTestService()

	seed := int64(10)
	if _, err := svc.Apply(context.Background(), Upsert{
		ProductName: "Widget",
		ProductCode: "W-1",
		Quantity:    &seed,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	absolute := int64(3)
	item, err := svc.Apply(context.Background(), Upsert{
		ProductCode:    "W-1",
		Quantity:       &absolute,
		QuantityChange: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Quantity != 3 {
		t.Errorf("quantity = %d, want 3 (absolute should win)", item.Quantity)
	}
}

func TestApply_RejectsNegativeResult(t *testing.T) {
	svc, _, hist := newTestService()

	quantity := int64(5)
	if _, err := svc.Apply(context.Background(), Upsert{
		ProductName: "Widget",
		ProductCode: "W-1",
		Quantity:    &quantity,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	seeded := len(hist.entries)

	_, err := svc.Apply(context.Background(), Upsert{
		ProductCode:    "W-1",
		QuantityChange: -8,
	})
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperror.CodeInsufficientStock {
		t.Errorf("code = %s, want %s", appErr.Code, apperror.CodeInsufficientStock)
	}
	if len(hist.entries) != seeded {
		t.Error("rejected change must not append history")
	}
}

func TestApply_EmptyCodeAlwaysCreates(t *testing.T) {
	svc, repo, _ := newTestService()

	for range 2 {
		quantity := int64(1)
		if _, err := svc.Apply(context.Background(), Upsert{
			ProductName: "Unlabeled",
			Quantity:    &quantity,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(repo.byID) != 2 {
		t.Errorf("items = %d, want 2 separate rows for empty codes", len(repo.byID))
	}
}

func TestApply_KeepsDescriptiveFieldsWhenOmitted(t *testing.T) {
	svc, _, _ := newTestService()

	quantity := int64(10)
	if _, err := svc.Apply(context.Background(), Upsert{
		ProductName: "Widget",
		ProductCode: "W-1",
		Quantity:    &quantity,
		Category:    "hardware",
		Location:    "A-01",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	item, err := svc.Apply(context.Background(), Upsert{
		ProductCode:    "W-1",
		QuantityChange: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Category != "hardware" || item.Location != "A-01" {
		t.Errorf("descriptive fields lost: category=%q location=%q", item.Category, item.Location)
	}
}

func TestDelete_AppendsHistory(t *testing.T) {
	svc, repo, hist := newTestService()

	quantity := int64(10)
	item, err := svc.Apply(context.Background(), Upsert{
		ProductName: "Widget",
		ProductCode: "W-1",
		Quantity:    &quantity,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Delete(context.Background(), item.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.byID) != 0 {
		t.Error("item not deleted")
	}
	if hist.lastOperation() != history.OpItemDeleted {
		t.Errorf("history operation = %q, want %q", hist.lastOperation(), history.OpItemDeleted)
	}
}

func TestItem_Validate(t *testing.T) {
	item := NewItem("", "W-1")
	if err := item.Validate(context.Background()); err == nil {
		t.Error("expected error for empty product name")
	}

	item = NewItem("Widget", "W-1")
	item.Quantity = -1
	if err := item.Validate(context.Background()); err == nil {
		t.Error("expected error for negative quantity")
	}

	item = NewItem("Widget", "W-1")
	if err := item.Validate(context.Background()); err != nil {
		t.Errorf("valid item rejected: %v", err)
	}
}
