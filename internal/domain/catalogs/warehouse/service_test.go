package warehouse

import (
	"context"
	"sort"
	"testing"

	"stockpile/internal/core/apperror"
	"stockpile/internal/core/id"
	"stockpile/internal/core/tenant"
	"stockpile/internal/domain"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	byID map[id.ID]*Warehouse
	seq  int // creation order, MostRecent returns the highest
	ord  map[id.ID]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID: make(map[id.ID]*Warehouse),
		ord:  make(map[id.ID]int),
	}
}

func (r *fakeRepo) Create(ctx context.Context, wh *Warehouse) error {
	r.seq++
	r.byID[wh.ID] = wh
	r.ord[wh.ID] = r.seq
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, whID id.ID) (*Warehouse, error) {
	wh, ok := r.byID[whID]
	if !ok {
		return nil, apperror.NewNotFound("warehouse", whID)
	}
	return wh, nil
}

func (r *fakeRepo) GetByShortCode(ctx context.Context, shortCode string) (*Warehouse, error) {
	for _, wh := range r.byID {
		if wh.ShortCode == shortCode {
			return wh, nil
		}
	}
	return nil, apperror.NewNotFound("warehouse", shortCode)
}

func (r *fakeRepo) Update(ctx context.Context, wh *Warehouse) error {
	if _, ok := r.byID[wh.ID]; !ok {
		return apperror.NewNotFound("warehouse", wh.ID)
	}
	r.byID[wh.ID] = wh
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, whID id.ID) error {
	delete(r.byID, whID)
	delete(r.ord, whID)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Warehouse], error) {
	return domain.ListResult[*Warehouse]{}, nil
}

func (r *fakeRepo) Exists(ctx context.Context, whID id.ID) (bool, error) {
	_, ok := r.byID[whID]
	return ok, nil
}

func (r *fakeRepo) ExistsByShortCode(ctx context.Context, shortCode string) (bool, error) {
	_, err := r.GetByShortCode(ctx, shortCode)
	if apperror.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

func (r *fakeRepo) MostRecent(ctx context.Context) (*Warehouse, error) {
	ids := make([]id.ID, 0, len(r.byID))
	for whID := range r.byID {
		ids = append(ids, whID)
	}
	if len(ids) == 0 {
		return nil, apperror.NewNotFound("warehouse", "most recent")
	}
	sort.Slice(ids, func(i, j int) bool { return r.ord[ids[i]] > r.ord[ids[j]] })
	return r.byID[ids[0]], nil
}

func (r *fakeRepo) GetByName(ctx context.Context, name string) (*Warehouse, error) {
	for _, wh := range r.byID {
		if wh.Name == name {
			return wh, nil
		}
	}
	return nil, apperror.NewNotFound("warehouse", name)
}

func testContext() context.Context {
	return tenant.WithTxManager(context.Background(), passthroughTx{})
}

func TestCreate_NormalizesShortCode(t *testing.T) {
	svc := NewService(newFakeRepo())

	wh := New("Main Warehouse", "  wh2 ")
	if err := svc.Create(testContext(), wh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wh.ShortCode != "WH2" {
		t.Errorf("short code = %q, want WH2", wh.ShortCode)
	}
}

func TestCreate_RejectsDuplicateShortCode(t *testing.T) {
	svc := NewService(newFakeRepo())

	if err := svc.Create(testContext(), New("First", "WH1")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := svc.Create(testContext(), New("Second", "wh1"))
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeDuplicate {
		t.Errorf("expected %s, got %v", apperror.CodeDuplicate, err)
	}
}

func TestCreate_RequiresShortCode(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.Create(testContext(), New("No Code", "  "))
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestDefaultShortCode(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	code, err := svc.DefaultShortCode(testContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != FallbackShortCode {
		t.Errorf("empty catalog code = %q, want %q", code, FallbackShortCode)
	}

	if err := svc.Create(testContext(), New("First", "WH1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Create(testContext(), New("Second", "WH2")); err != nil {
		t.Fatalf("create: %v", err)
	}

	code, err = svc.DefaultShortCode(testContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "WH2" {
		t.Errorf("code = %q, want the most recent warehouse's WH2", code)
	}
}

func TestResolveID(t *testing.T) {
	svc := NewService(newFakeRepo())

	wh := New("Main Warehouse", "WH1")
	if err := svc.Create(testContext(), wh); err != nil {
		t.Fatalf("create: %v", err)
	}

	resolved, err := svc.ResolveID(testContext(), "Main Warehouse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved == nil || *resolved != wh.ID {
		t.Errorf("resolved = %v, want %s", resolved, wh.ID)
	}

	resolved, err = svc.ResolveID(testContext(), "Nowhere")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved != nil {
		t.Errorf("resolved = %v, want nil for unknown name", resolved)
	}
}
