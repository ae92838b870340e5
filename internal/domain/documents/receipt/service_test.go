package receipt

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
	docs  map[id.ID]*Receipt
	lines map[id.ID][]documents.Line
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:  make(map[id.ID]*Receipt),
		lines: make(map[id.ID][]documents.Line),
	}
}

func (r *fakeRepo) Create(ctx context.Context, doc *Receipt) error {
	stored := *doc
	r.docs[doc.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*Receipt, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("receipt", docID)
	}
	copied := *doc
	return &copied, nil
}

func (r *fakeRepo) GetByReference(ctx context.Context, reference string) (*Receipt, error) {
	for _, doc := range r.docs {
		if doc.Reference == reference {
			copied := *doc
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFound("receipt", reference)
}

func (r *fakeRepo) Update(ctx context.Context, doc *Receipt) error {
	if _, ok := r.docs[doc.ID]; !ok {
		return apperror.NewNotFound("receipt", doc.ID)
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

func (r *fakeRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Receipt], error) {
	return domain.ListResult[*Receipt]{}, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, docID id.ID) (*Receipt, error) {
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
	refs      *refgen.MockGenerator
}

func newFixture() *fixture {
	repo := newFakeRepo()
	stockRepo := newFakeStockRepo()
	hist := &fakeHistoryRepo{}
	histSvc := history.NewService(hist)
	stockSvc := stock.NewService(stockRepo, histSvc, passthroughTx{})
	refs := &refgen.MockGenerator{}
	svc := NewService(repo, stockSvc, histSvc, refs, &fakeWarehouseCodes{code: "WH1"}, passthroughTx{})
	return &fixture{svc: svc, repo: repo, stockRepo: stockRepo, hist: hist, refs: refs}
}

func newDraftReceipt() *Receipt {
	doc := New()
	doc.ReceiveFrom = "Acme Supplies"
	doc.ToLocation = "A-01"
	doc.AddLine("Widget", "W-1", 10, types.MustMoney("2.50"))
	return doc
}

func TestCreate_GeneratesReference(t *testing.T) {
	f := newFixture()

	doc := newDraftReceipt()
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Reference != "WH1/IN/0001" {
		t.Errorf("reference = %q, want WH1/IN/0001", doc.Reference)
	}
	if doc.Status != entity.StatusDraft {
		t.Errorf("status = %s, want draft", doc.Status)
	}
	if len(f.hist.entries) != 1 {
		t.Fatalf("history entries = %d, want 1", len(f.hist.entries))
	}
	if f.hist.entries[0].Snapshot == nil {
		t.Error("creation entry should carry a snapshot")
	}
}

func TestCreate_KeepsProvidedReference(t *testing.T) {
	f := newFixture()
	f.refs.NextReferenceFunc = func(ctx context.Context, kind refgen.Kind, code string) (string, error) {
		t.Error("generator must not run when a reference is provided")
		return "", nil
	}

	doc := newDraftReceipt()
	doc.Reference = "WH1/IN/0099"
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Reference != "WH1/IN/0099" {
		t.Errorf("reference = %q, want WH1/IN/0099", doc.Reference)
	}
}

func TestCreate_RejectsEmptyLines(t *testing.T) {
	f := newFixture()

	doc := New()
	doc.ReceiveFrom = "Acme Supplies"
	err := f.svc.Create(context.Background(), doc)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdate_PreservesStatusAndReference(t *testing.T) {
	f := newFixture()

	doc := newDraftReceipt()
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.svc.SetStatus(context.Background(), doc.ID, entity.StatusReady); err != nil {
		t.Fatalf("set status: %v", err)
	}

	updated := newDraftReceipt()
	updated.ID = doc.ID
	updated.Reference = "TAMPERED/IN/0001"
	updated.Status = entity.StatusDone
	updated.ReceiveFrom = "New Supplier"
	if err := f.svc.Update(context.Background(), updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, err := f.svc.GetByID(context.Background(), doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Reference != doc.Reference {
		t.Errorf("reference changed to %q", stored.Reference)
	}
	if stored.Status != entity.StatusReady {
		t.Errorf("status changed to %s via update", stored.Status)
	}
	if stored.ReceiveFrom != "New Supplier" {
		t.Errorf("header field not updated: %q", stored.ReceiveFrom)
	}
}

func TestUpdate_RejectsCompletedDocument(t *testing.T) {
	f := newFixture()

	doc := newDraftReceipt()
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, status := range []entity.Status{entity.StatusReady, entity.StatusDone} {
		if err := f.svc.SetStatus(context.Background(), doc.ID, status); err != nil {
			t.Fatalf("set status %s: %v", status, err)
		}
	}

	err := f.svc.Update(context.Background(), doc)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeDocumentCompleted {
		t.Errorf("expected %s, got %v", apperror.CodeDocumentCompleted, err)
	}
}

func TestSetStatus_RejectsSkippedStep(t *testing.T) {
	f := newFixture()

	doc := newDraftReceipt()
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := f.svc.SetStatus(context.Background(), doc.ID, entity.StatusDone)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInvalidTransition {
		t.Errorf("expected %s, got %v", apperror.CodeInvalidTransition, err)
	}
}

func TestSetStatus_DoneCreatesLedgerRow(t *testing.T) {
	f := newFixture()

	doc := newDraftReceipt()
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, status := range []entity.Status{entity.StatusReady, entity.StatusDone} {
		if err := f.svc.SetStatus(context.Background(), doc.ID, status); err != nil {
			t.Fatalf("set status %s: %v", status, err)
		}
	}

	item, err := f.stockRepo.GetByCode(context.Background(), "W-1")
	if err != nil {
		t.Fatalf("ledger row not created: %v", err)
	}
	if item.Quantity != 10 {
		t.Errorf("quantity = %d, want 10", item.Quantity)
	}
	if item.Location != "A-01" {
		t.Errorf("location = %q, want the receipt's storage location", item.Location)
	}
	if !item.UnitPrice.Equal(types.MustMoney("2.50")) {
		t.Errorf("unit price = %s, want 2.50", item.UnitPrice)
	}
}

func TestSetStatus_DoneBumpsExistingRow(t *testing.T) {
	f := newFixture()

	existing := stock.NewItem("Widget", "W-1")
	existing.Quantity = 7
	if err := f.stockRepo.Create(context.Background(), existing); err != nil {
		t.Fatalf("seed: %v", err)
	}

	doc := newDraftReceipt()
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, status := range []entity.Status{entity.StatusReady, entity.StatusDone} {
		if err := f.svc.SetStatus(context.Background(), doc.ID, status); err != nil {
			t.Fatalf("set status %s: %v", status, err)
		}
	}

	item, err := f.stockRepo.GetByCode(context.Background(), "W-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.Quantity != 17 {
		t.Errorf("quantity = %d, want 17", item.Quantity)
	}
	if len(f.stockRepo.byID) != 1 {
		t.Errorf("rows = %d, want the existing row reused", len(f.stockRepo.byID))
	}
}

func TestDelete_KeepsLedgerOfFinalizedReceipt(t *testing.T) {
	f := newFixture()

	doc := newDraftReceipt()
	if err := f.svc.Create(context.Background(), doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, status := range []entity.Status{entity.StatusReady, entity.StatusDone} {
		if err := f.svc.SetStatus(context.Background(), doc.ID, status); err != nil {
			t.Fatalf("set status %s: %v", status, err)
		}
	}

	if err := f.svc.Delete(context.Background(), doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.GetByID(context.Background(), doc.ID); !apperror.IsNotFound(err) {
		t.Errorf("document still retrievable: %v", err)
	}
	if _, err := f.stockRepo.GetByCode(context.Background(), "W-1"); err != nil {
		t.Errorf("ledger row must survive document deletion: %v", err)
	}
}
