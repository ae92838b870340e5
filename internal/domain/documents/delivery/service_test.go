package delivery

import (
	"context"
	"testing"

	"stockpile/internal/core/apperror"
	"stockpile/internal/core/entity"
	"stockpile/internal/core/id"
	"stockpile/internal/core/refgen"
	"stockpile/internal/core/types"
	"stockpile/internal/domain"
	"stockpile/internal/domain/documents"
	"stockpile/internal/domain/history"
	"stockpile/internal/domain/stock"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	docs  map[id.ID]*Delivery
	lines map[id.ID][]documents.Line
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:  make(map[id.ID]*Delivery),
		lines: make(map[id.ID][]documents.Line),
	}
}

func (r *fakeRepo) Create(ctx context.Context, doc *Delivery) error {
	stored := *doc
	r.docs[doc.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*Delivery, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("delivery", docID)
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeRepo) GetByReference(ctx context.Context, reference string) (*Delivery, error) {
	for _, doc := range r.docs {
		if doc.Reference == reference {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("delivery", reference)
}

func (r *fakeRepo) Update(ctx context.Context, doc *Delivery) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return apperror.NewNotFound("delivery", doc.ID)
	}
	stored := *doc
	r.docs[doc.ID] = &stored
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(r.docs, docID)
	delete(r.lines, docID)
	return nil
}

func (r *fakeRepo) GetLines(ctx context.Context, docID id.ID) ([]documents.Line, error) {
	return r.lines[docID], nil
}

func (r *fakeRepo) SaveLines(ctx context.Context, docID id.ID, lines []documents.Line) error {
	r.lines[docID] = lines
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Delivery], error) {
	return domain.ListResult[*Delivery]{}, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, docID id.ID) (*Delivery, error) {
	return r.GetByID(ctx, docID)
}

type fakeStockRepo struct {
	items map[string]*stock.Item
	byID  map[id.ID]*stock.Item
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{
		items: make(map[string]*stock.Item),
		byID:  make(map[id.ID]*stock.Item),
	}
}

func (r *fakeStockRepo) Create(ctx context.Context, item *stock.Item) error {
	if item.ProductCode != "" {
		r.items[item.ProductCode] = item
	}
	r.byID[item.ID] = item
	return nil
}

func (r *fakeStockRepo) GetByID(ctx context.Context, itemID id.ID) (*stock.Item, error) {
	item, ok := r.byID[itemID]
	if !ok {
		return nil, apperror.NewNotFound("stock item", itemID)
	}
	return item, nil
}

func (r *fakeStockRepo) GetByCode(ctx context.Context, productCode string) (*stock.Item, error) {
	item, ok := r.items[productCode]
	if !ok {
		return nil, apperror.NewNotFound("stock item", productCode)
	}
	return item, nil
}

func (r *fakeStockRepo) GetByCodeForUpdate(ctx context.Context, productCode string) (*stock.Item, error) {
	return r.GetByCode(ctx, productCode)
}

func (r *fakeStockRepo) Update(ctx context.Context, item *stock.Item) error {
	r.byID[item.ID] = item
	if item.ProductCode != "" {
		r.items[item.ProductCode] = item
	}
	return nil
}

func (r *fakeStockRepo) Delete(ctx context.Context, itemID id.ID) error {
	item, ok := r.byID[itemID]
	if !ok {
		return apperror.NewNotFound("stock item", itemID)
	}
	delete(r.byID, itemID)
	delete(r.items, item.ProductCode)
	return nil
}

func (r *fakeStockRepo) List(ctx context.Context, filter stock.ListFilter) (domain.ListResult[*stock.Item], error) {
	return domain.ListResult[*stock.Item]{}, nil
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

type fakeWarehouseCodes struct {
	code string
}

func (f *fakeWarehouseCodes) DefaultShortCode(ctx context.Context) (string, error) {
	return f.code, nil
}

type fixture struct {
	svc       *Service
	repo      *fakeRepo
	stockRepo *fakeStockRepo
	hist      *fakeHistoryRepo
}

func newFixture() *fixture {
	repo := newFakeRepo()
	stockRepo := newFakeStockRepo()
	hist := &fakeHistoryRepo{}
	histSvc := history.NewService(hist)
	stockSvc := stock.NewService(stockRepo, histSvc, passthroughTx{})
	svc := NewService(repo, stockSvc, histSvc, &refgen.MockGenerator{}, &fakeWarehouseCodes{code: "WH1"}, passthroughTx{})
	return &fixture{svc: svc, repo: repo, stockRepo: stockRepo, hist: hist}
}

func (f *fixture) seedStock(t *testing.T, code string, quantity int64) *stock.Item {
	t.Helper()
	item := stock.NewItem("Widget", code)
	item.Quantity = quantity
	if err := f.stockRepo.Create(context.Background(), item); err != nil {
		t.Fatalf("seed stock: %v", err)
	}
	return item
}

func newDraftDelivery() *Delivery {
	doc := New()
	doc.DeliveryAddress = "12 Harbor Road"
	doc.AddLine("Widget", "W-1", 4, types.MustMoney("2.50"))
	return doc
}

func (f *fixture) advance(t *testing.T, docID id.ID, statuses ...entity.Status) {
	t.Helper()
	for _, status := range statuses {
		if err := f.svc.SetStatus(context.Background(), docID, status); err != nil {
			t.Fatalf("set status %s: %v", status, err)
		}
	}
}

func TestCreate_GeneratesOutgoingReference(t *testing.T) {
	f := newFixture()

	doc := newDraftDelivery()
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Reference != "WH1/OUT/0001" {
		t.Errorf("reference = %q, want WH1/OUT/0001", doc.Reference)
	}
	if doc.Status != entity.StatusDraft {
		t.Errorf("status = %s, want draft", doc.Status)
	}
}

func TestCreate_RequiresDeliveryAddress(t *testing.T) {
	f := newFixture()

	doc := New()
	doc.AddLine("Widget", "W-1", 4, types.Zero())
	err := f.svc.Create(context.Background(), doc)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSetStatus_FullWorkflowDeductsStock(t *testing.T) {
	f := newFixture()
	f.seedStock(t, "W-1", 10)

	doc := newDraftDelivery()
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	f.advance(t, doc.ID, entity.StatusWaiting, entity.StatusReady, entity.StatusDone)

	item, err := f.stockRepo.GetByCode(context.Background(), "W-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.Quantity != 6 {
		t.Errorf("quantity = %d, want 6 after deducting 4", item.Quantity)
	}
}

func TestSetStatus_CannotSkipWaiting(t *testing.T) {
	f := newFixture()

	doc := newDraftDelivery()
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := f.svc.SetStatus(context.Background(), doc.ID, entity.StatusReady)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInvalidTransition {
		t.Errorf("expected %s, got %v", apperror.CodeInvalidTransition, err)
	}
}

func TestSetStatus_InsufficientStockRejectsFinalization(t *testing.T) {
	f := newFixture()
	f.seedStock(t, "W-1", 3)

	doc := newDraftDelivery()
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	f.advance(t, doc.ID, entity.StatusWaiting, entity.StatusReady)
	histBefore := len(f.hist.entries)

	err := f.svc.SetStatus(context.Background(), doc.ID, entity.StatusDone)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInsufficientStock {
		t.Errorf("expected %s, got %v", apperror.CodeInsufficientStock, err)
	}

	item, err := f.stockRepo.GetByCode(context.Background(), "W-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.Quantity != 3 {
		t.Errorf("quantity = %d, want 3; rejected completion must not touch the ledger", item.Quantity)
	}

	stored, err := f.repo.GetByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("get doc: %v", err)
	}
	if stored.Status != entity.StatusReady {
		t.Errorf("status = %s, want ready after rejection", stored.Status)
	}
	if len(f.hist.entries) != histBefore {
		t.Errorf("history grew by %d entries, want 0 after rejection", len(f.hist.entries)-histBefore)
	}
}

// staleReadStockRepo serves GetByCode from a snapshot taken at wrap time
// while GetByCodeForUpdate keeps returning the live row, the situation a
// second concurrent completion sees under READ COMMITTED.
type staleReadStockRepo struct {
	*fakeStockRepo
	stale map[string]stock.Item
}

func (r *staleReadStockRepo) GetByCode(ctx context.Context, productCode string) (*stock.Item, error) {
	if snap, ok := r.stale[productCode]; ok {
		copied := snap
		return &copied, nil
	}
	return r.fakeStockRepo.GetByCode(ctx, productCode)
}

func TestSetStatus_DoneUsesLockedQuantityNotStaleRead(t *testing.T) {
	repo := newFakeRepo()
	stockRepo := newFakeStockRepo()
	hist := &fakeHistoryRepo{}
	histSvc := history.NewService(hist)

	// Live row has 4 on hand; the unlocked read still sees 10.
	live := stock.NewItem("Widget", "W-1")
	live.Quantity = 4
	if err := stockRepo.Create(context.Background(), live); err != nil {
		t.Fatalf("seed stock: %v", err)
	}
	staleItem := *live
	staleItem.Quantity = 10
	staleRepo := &staleReadStockRepo{
		fakeStockRepo: stockRepo,
		stale:         map[string]stock.Item{"W-1": staleItem},
	}

	stockSvc := stock.NewService(staleRepo, histSvc, passthroughTx{})
	svc := NewService(repo, stockSvc, histSvc, &refgen.MockGenerator{}, &fakeWarehouseCodes{code: "WH1"}, passthroughTx{})

	doc := New()
	doc.DeliveryAddress = "12 Harbor Road"
	doc.AddLine("Widget", "W-1", 6, types.MustMoney("2.50"))
	if err := svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, status := range []entity.Status{entity.StatusWaiting, entity.StatusReady} {
		if err := svc.SetStatus(context.Background(), doc.ID, status); err != nil {
			t.Fatalf("set status %s: %v", status, err)
		}
	}

	err := svc.SetStatus(context.Background(), doc.ID, entity.StatusDone)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInsufficientStock {
		t.Fatalf("expected %s from the row-locked check, got %v", apperror.CodeInsufficientStock, err)
	}

	item, err := stockRepo.GetByCode(context.Background(), "W-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.Quantity != 4 {
		t.Errorf("quantity = %d, want 4; the stale snapshot must never reach the ledger", item.Quantity)
	}
}

func TestSetStatus_DoneSkipsUnresolvableLines(t *testing.T) {
	f := newFixture()
	f.seedStock(t, "W-1", 10)

	doc := newDraftDelivery()
	doc.AddLine("Legacy Part", "", 2, types.Zero())
	doc.AddLine("Discontinued", "GONE-9", 1, types.Zero())
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	f.advance(t, doc.ID, entity.StatusWaiting, entity.StatusReady, entity.StatusDone)

	item, err := f.stockRepo.GetByCode(context.Background(), "W-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.Quantity != 6 {
		t.Errorf("quantity = %d, want 6; unresolvable lines must not touch the ledger", item.Quantity)
	}
	if len(f.stockRepo.byID) != 1 {
		t.Errorf("rows = %d, want 1; deliveries never create ledger rows", len(f.stockRepo.byID))
	}
}

func TestSetStatus_DoneRecordsSnapshot(t *testing.T) {
	f := newFixture()
	f.seedStock(t, "W-1", 10)

	doc := newDraftDelivery()
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	f.advance(t, doc.ID, entity.StatusWaiting, entity.StatusReady, entity.StatusDone)

	var finalized *history.Entry
	for _, entry := range f.hist.entries {
		if entry.Type == history.TypeDelivery && entry.Snapshot != nil {
			finalized = entry
		}
	}
	if finalized == nil {
		t.Fatal("finalization entry with snapshot not found")
	}
}
