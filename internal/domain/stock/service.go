package stock

import (
	"context"
	"fmt"

	"stockpile/internal/core/apperror"
	"stockpile/internal/core/id"
	"stockpile/internal/core/tenant"
	"stockpile/internal/core/tx"
	"stockpile/internal/domain"
	"stockpile/internal/domain/history"
	"stockpile/pkg/logger"
)

// Service provides business operations for the stock ledger.
// Every mutation and its history entry commit in one transaction.
// In Database-per-Tenant architecture, TxManager is obtained from context.
type Service struct {
	repo      Repository
	history   *history.Service
	txManager tx.Manager // Optional. If nil, obtained from context (DB-per-tenant).
}

// NewService creates a new stock ledger service.
func NewService(repo Repository, historySvc *history.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		history:   historySvc,
		txManager: txManager,
	}
}

func (s *Service) getTxManager(ctx context.Context) (tx.Manager, error) {
	if s.txManager != nil {
		return s.txManager, nil
	}
	return tenant.GetTxManager(ctx)
}

// Apply is the single write path into the ledger: create-or-update keyed by
// product code, with the matching history entry in the same transaction.
//
// When called during movement finalization the surrounding transaction is
// reused, so a failed ledger write rolls back the whole status change.
func (s *Service) Apply(ctx context.Context, input Upsert) (*Item, error) {
	txm, err := s.getTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}

	var result *Item
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.lookupForUpdate(ctx, input.ProductCode)
		if err != nil {
			return err
		}

		if existing != nil {
			result, err = s.applyToExisting(ctx, existing, input)
		} else {
			result, err = s.createItem(ctx, input)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lookupForUpdate resolves the ledger row for a product code under row lock.
// An empty code never matches: such entries always create a new row.
func (s *Service) lookupForUpdate(ctx context.Context, productCode string) (*Item, error) {
	if productCode == "" {
		return nil, nil
	}
	item, err := s.repo.GetByCodeForUpdate(ctx, productCode)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup %s: %w", productCode, err)
	}
	return item, nil
}

func (s *Service) applyToExisting(ctx context.Context, item *Item, input Upsert) (*Item, error) {
	previous := item.Quantity

	newQuantity := previous + input.QuantityChange
	if input.Quantity != nil {
		newQuantity = *input.Quantity
	}

	if newQuantity < 0 {
		requested := previous - newQuantity
		if input.QuantityChange < 0 {
			requested = -input.QuantityChange
		}
		return nil, apperror.NewInsufficientStock(item.ProductCode, requested, previous)
	}

	// Overwrite descriptive fields only when provided
	if input.ProductName != "" {
		item.ProductName = input.ProductName
	}
	if input.Category != "" {
		item.Category = input.Category
	}
	if input.SupplierName != "" {
		item.SupplierName = input.SupplierName
	}
	if input.Location != "" {
		item.Location = input.Location
	}
	if input.Status != "" {
		item.Status = input.Status
	}
	if input.Notes != "" {
		item.Notes = input.Notes
	}
	if input.MinStockLevel != nil {
		item.MinStockLevel = *input.MinStockLevel
	}
	if input.MaxStockLevel != nil {
		item.MaxStockLevel = input.MaxStockLevel
	}
	if input.UnitPrice != nil {
		item.UnitPrice = *input.UnitPrice
	}

	item.Quantity = newQuantity
	item.Recalculate()
	item.Touch()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	entry := history.NewEntry(history.TypeInventory, history.OpStockUpdated).
		WithProduct(item.ProductName, item.ProductCode).
		WithQuantityChange(previous, newQuantity).
		WithRelated(item.ID).
		WithDescription(fmt.Sprintf("Stock updated for %s", item.ProductName))
	if err := s.history.Append(ctx, entry); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) createItem(ctx context.Context, input Upsert) (*Item, error) {
	item := NewItem(input.ProductName, input.ProductCode)
	item.Category = input.Category
	item.SupplierName = input.SupplierName
	item.Location = input.Location
	item.Notes = input.Notes

	if input.Quantity != nil {
		item.Quantity = *input.Quantity
		if item.Quantity < 0 {
			return nil, apperror.NewValidation("quantity cannot be negative").
				WithDetail("field", "quantity")
		}
	} else {
		// A relative change with no matching row lands here. Positive
		// changes seed the row; a deduction against a missing row has
		// nothing to deduct from and must not ship.
		item.Quantity = input.QuantityChange
		if item.Quantity < 0 {
			return nil, apperror.NewInsufficientStock(item.ProductCode, -input.QuantityChange, 0)
		}
	}
	if input.UnitPrice != nil {
		item.UnitPrice = *input.UnitPrice
	}
	if input.MinStockLevel != nil {
		item.MinStockLevel = *input.MinStockLevel
	}
	item.MaxStockLevel = input.MaxStockLevel
	if input.Status != "" {
		item.Status = input.Status
	}
	item.Recalculate()

	if err := item.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	entry := history.NewEntry(history.TypeInventory, history.OpItemAdded).
		WithProduct(item.ProductName, item.ProductCode).
		WithQuantity(item.Quantity).
		WithRelated(item.ID).
		WithDescription(fmt.Sprintf("New item added: %s", item.ProductName))
	if err := s.history.Append(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info(ctx, "stock item created",
		"id", item.ID,
		"product_code", item.ProductCode)

	return item, nil
}

// GetByID retrieves a ledger row.
func (s *Service) GetByID(ctx context.Context, itemID id.ID) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

// GetByCode retrieves a ledger row by product code.
func (s *Service) GetByCode(ctx context.Context, productCode string) (*Item, error) {
	return s.repo.GetByCode(ctx, productCode)
}

// List retrieves ledger rows with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Item], error) {
	return s.repo.List(ctx, filter)
}

// Delete removes a ledger row and records the removal.
// Past movements that touched the item keep their history entries.
func (s *Service) Delete(ctx context.Context, itemID id.ID) error {
	txm, err := s.getTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}

	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		item, err := s.repo.GetByID(ctx, itemID)
		if err != nil {
			return err
		}

		if err := s.repo.Delete(ctx, itemID); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}

		entry := history.NewEntry(history.TypeInventory, history.OpItemDeleted).
			WithProduct(item.ProductName, item.ProductCode).
			WithDescription(fmt.Sprintf("Item deleted: %s", item.ProductName))
		return s.history.Append(ctx, entry)
	})
}
