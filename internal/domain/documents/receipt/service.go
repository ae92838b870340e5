// Package receipt provides the Receipt document service.
package receipt

import (
	"context"
	"fmt"

	"stockpile/internal/core/apperror"
	"stockpile/internal/core/entity"
	"stockpile/internal/core/id"
	"stockpile/internal/core/refgen"
	"stockpile/internal/core/tenant"
	"stockpile/internal/core/tx"
	"stockpile/internal/domain"
	"stockpile/internal/domain/audit"
	"stockpile/internal/domain/documents"
	"stockpile/internal/domain/history"
	"stockpile/internal/domain/stock"
	"stockpile/pkg/logger"
)

// WarehouseCodes resolves the warehouse short code used in references.
type WarehouseCodes interface {
	DefaultShortCode(ctx context.Context) (string, error)
}

// Service provides business operations for receipt documents.
// In Database-per-Tenant architecture, TxManager is obtained from context.
type Service struct {
	repo       Repository
	stock      *stock.Service
	history    *history.Service
	refs       refgen.Generator
	warehouses WarehouseCodes
	txManager  tx.Manager // Optional. If nil, obtained from context (DB-per-tenant).
}

// NewService creates a new receipt service.
func NewService(
	repo Repository,
	stockSvc *stock.Service,
	historySvc *history.Service,
	refs refgen.Generator,
	warehouses WarehouseCodes,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:       repo,
		stock:      stockSvc,
		history:    historySvc,
		refs:       refs,
		warehouses: warehouses,
		txManager:  txManager,
	}
}

func (s *Service) getTxManager(ctx context.Context) (tx.Manager, error) {
	if s.txManager != nil {
		return s.txManager, nil
	}
	return tenant.GetTxManager(ctx)
}

// Create creates a new receipt document.
func (s *Service) Create(ctx context.Context, doc *Receipt) error {
	if err := doc.Validate(ctx); err != nil {
		return err
	}
	audit.EnrichCreatedBy(ctx, &doc.CreatedBy, &doc.UpdatedBy)

	// Generate reference if empty
	if doc.Reference == "" {
		code, err := s.warehouses.DefaultShortCode(ctx)
		if err != nil {
			return fmt.Errorf("resolve warehouse code: %w", err)
		}
		reference, err := s.refs.NextReference(ctx, refgen.KindReceipt, code)
		if err != nil {
			return fmt.Errorf("generate reference: %w", err)
		}
		doc.Reference = reference
	}

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		entry := history.NewEntry(history.TypeReceipt, "Receipt Created").
			WithProduct(documents.ProductLabel(doc.Lines), "").
			WithQuantity(doc.TotalQuantity()).
			WithRelated(doc.ID).
			WithDescription(fmt.Sprintf("Receipt %s created", doc.Reference))
		return s.history.AppendWithSnapshot(ctx, entry, doc)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "receipt created",
		"id", doc.ID,
		"reference", doc.Reference)

	return nil
}

// GetByID retrieves a receipt with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Receipt, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Update overwrites header fields and replaces lines.
// The status is never changed here; transitions go through SetStatus.
func (s *Service) Update(ctx context.Context, doc *Receipt) error {
	current, err := s.repo.GetByID(ctx, doc.ID)
	if err != nil {
		return err
	}
	if err := current.CanModify(); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}
	doc.Status = current.Status
	doc.Reference = current.Reference
	doc.CreatedAt = current.CreatedAt
	doc.CreatedBy = current.CreatedBy
	audit.EnrichUpdatedBy(ctx, &doc.UpdatedBy)

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		entry := history.NewEntry(history.TypeReceipt, "Receipt Updated").
			WithProduct(documents.ProductLabel(doc.Lines), "").
			WithQuantity(doc.TotalQuantity()).
			WithRelated(doc.ID).
			WithDescription(fmt.Sprintf("Receipt %s updated", doc.Reference))
		return s.history.AppendWithSnapshot(ctx, entry, doc)
	})
}

// Delete removes a receipt permanently. Ledger effects of an already
// finalized receipt are kept: the stock moved, only the paperwork goes.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, docID); err != nil {
			return fmt.Errorf("delete document: %w", err)
		}

		entry := history.NewEntry(history.TypeReceipt, "Receipt Deleted").
			WithProduct(documents.ProductLabel(doc.Lines), "").
			WithDescription(fmt.Sprintf("Receipt %s deleted", doc.Reference))
		return s.history.Append(ctx, entry)
	})
}

// SetStatus advances a receipt one step along its workflow.
// Moving into done applies all lines to the stock ledger; the status
// update, ledger writes and history entries commit together.
func (s *Service) SetStatus(ctx context.Context, docID id.ID, to entity.Status) error {
	txm, err := s.getTxManager(ctx)
	if err != nil {
		return apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}

	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.repo.GetForUpdate(ctx, docID)
		if err != nil {
			return err
		}
		lines, err := s.repo.GetLines(ctx, docID)
		if err != nil {
			return fmt.Errorf("get lines: %w", err)
		}
		doc.Lines = lines

		if err := doc.Workflow().ValidateTransition(doc.Status, to); err != nil {
			return err
		}

		from := doc.Status

		// Ledger first, status second: a failed ledger write leaves
		// the document on its previous status.
		if to == entity.StatusDone {
			if err := s.applyToLedger(ctx, doc); err != nil {
				return err
			}
		}

		doc.Status = to
		doc.Touch()
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		entry := history.NewEntry(history.TypeReceipt, fmt.Sprintf("Receipt Status: %s", to)).
			WithProduct(documents.ProductLabel(doc.Lines), "").
			WithRelated(doc.ID).
			WithDescription(fmt.Sprintf("Receipt status changed to %s", to))
		if to == entity.StatusDone {
			err = s.history.AppendWithSnapshot(ctx, entry, doc)
		} else {
			err = s.history.Append(ctx, entry)
		}
		if err != nil {
			return err
		}

		logger.Info(ctx, "receipt status changed",
			"id", doc.ID,
			"reference", doc.Reference,
			"from", from,
			"to", to)

		return nil
	})
}

// applyToLedger increases stock for every line. Known products (matched by
// code) get a quantity bump; unknown ones become new ledger rows seeded
// from the line and the receipt's storage location.
func (s *Service) applyToLedger(ctx context.Context, doc *Receipt) error {
	for _, line := range doc.Lines {
		existing := false
		if line.ProductCode != "" {
			if _, err := s.stock.GetByCode(ctx, line.ProductCode); err == nil {
				existing = true
			} else if !apperror.IsNotFound(err) {
				return fmt.Errorf("lookup %s: %w", line.ProductCode, err)
			}
		}

		var input stock.Upsert
		if existing {
			input = stock.Upsert{
				ProductCode:    line.ProductCode,
				QuantityChange: line.Quantity,
			}
		} else {
			quantity := line.Quantity
			unitPrice := line.UnitPrice
			input = stock.Upsert{
				ProductName: line.ProductName,
				ProductCode: line.ProductCode,
				Quantity:    &quantity,
				UnitPrice:   &unitPrice,
				Location:    doc.ToLocation,
			}
		}

		if _, err := s.stock.Apply(ctx, input); err != nil {
			return err
		}
	}
	return nil
}

// List retrieves receipts with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Receipt], error) {
	return s.repo.List(ctx, filter)
}
