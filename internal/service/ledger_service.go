package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService maintains the "major cash" ledger: two independent running
// balances (bank transfers, saved cash) derived from an append-only movement
// log. Money moves into these virtual accounts when it leaves the physical
// till — till-internal cash is reconciled by the closure engine instead.
type LedgerService interface {
	PostMovement(ctx context.Context, req dto.PostMovementRequest, actor string) (*dto.MovementResponse, error)
	ListMovements(ctx context.Context) ([]dto.MovementResponse, error)
	Summary(ctx context.Context) (*dto.LedgerSummaryResponse, error)
	DeleteMovement(ctx context.Context, id uuid.UUID) error

	// Posting helpers for the sale/expense/payment flows. They join the
	// caller's transaction via tx and silently skip non-positive amounts —
	// a zero-transfer sale must not produce a zero movement.
	RecordTransferIncome(ctx context.Context, tx *gorm.DB, amount decimal.Decimal, description, actor string) error
	RecordTransferExpense(ctx context.Context, tx *gorm.DB, amount decimal.Decimal, description, actor string) error
	RecordSavedCashIncome(ctx context.Context, tx *gorm.DB, amount decimal.Decimal, description, notes, actor string) error
	RecordSavedCashExpense(ctx context.Context, tx *gorm.DB, amount decimal.Decimal, description, notes, actor string) error
}

type ledgerService struct {
	repo repository.LedgerRepository
}

func NewLedgerService(repo repository.LedgerRepository) LedgerService {
	return &ledgerService{repo: repo}
}

// ── PostMovement ─────────────────────────────────────────────────────────────
// Manual movement entry. Amounts are validated > 0 at the DTO layer; the
// record is immutable once created.

func (s *ledgerService) PostMovement(ctx context.Context, req dto.PostMovementRequest, actor string) (*dto.MovementResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, errors.New("movement amount must be greater than zero")
	}
	m := &model.LedgerMovement{
		Account:     req.Account,
		Description: req.Description,
		Amount:      req.Amount,
		Direction:   req.Direction,
		Notes:       req.Notes,
		CreatedBy:   actor,
	}
	if err := s.repo.Create(ctx, nil, m); err != nil {
		return nil, fmt.Errorf("post ledger movement: %w", err)
	}
	return movementToResponse(m), nil
}

func (s *ledgerService) ListMovements(ctx context.Context) ([]dto.MovementResponse, error) {
	movements, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ledger movements: %w", err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, *movementToResponse(&movements[i]))
	}
	return out, nil
}

// ── Summary ──────────────────────────────────────────────────────────────────
// Balances are recomputed by folding over every movement: income adds,
// expense subtracts. O(n), acceptable at daily business volume.

func (s *ledgerService) Summary(ctx context.Context) (*dto.LedgerSummaryResponse, error) {
	movements, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger summary: %w", err)
	}

	transfers := decimal.Zero
	savedCash := decimal.Zero
	lastUpdate := time.Time{}
	for i := range movements {
		m := &movements[i]
		switch m.Account {
		case model.AccountTransfer:
			transfers = transfers.Add(m.Signed())
		case model.AccountSavedCash:
			savedCash = savedCash.Add(m.Signed())
		}
		if m.CreatedAt.After(lastUpdate) {
			lastUpdate = m.CreatedAt
		}
	}
	if lastUpdate.IsZero() {
		lastUpdate = time.Now()
	}

	return &dto.LedgerSummaryResponse{
		TotalTransfers: transfers,
		TotalSavedCash: savedCash,
		TotalMajorCash: transfers.Add(savedCash),
		LastUpdate:     lastUpdate.Format(time.RFC3339),
	}, nil
}

// DeleteMovement permanently removes a movement — manual correction only,
// independent of the closure lifecycle. The next Summary read reflects it.
func (s *ledgerService) DeleteMovement(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ── Posting helpers ──────────────────────────────────────────────────────────

func (s *ledgerService) RecordTransferIncome(ctx context.Context, tx *gorm.DB, amount decimal.Decimal, description, actor string) error {
	return s.record(ctx, tx, model.AccountTransfer, model.DirectionIncome, amount, description, "Sale transfer", actor)
}

func (s *ledgerService) RecordTransferExpense(ctx context.Context, tx *gorm.DB, amount decimal.Decimal, description, actor string) error {
	return s.record(ctx, tx, model.AccountTransfer, model.DirectionExpense, amount, description, description, actor)
}

func (s *ledgerService) RecordSavedCashIncome(ctx context.Context, tx *gorm.DB, amount decimal.Decimal, description, notes, actor string) error {
	return s.record(ctx, tx, model.AccountSavedCash, model.DirectionIncome, amount, description, notes, actor)
}

func (s *ledgerService) RecordSavedCashExpense(ctx context.Context, tx *gorm.DB, amount decimal.Decimal, description, notes, actor string) error {
	return s.record(ctx, tx, model.AccountSavedCash, model.DirectionExpense, amount, description, notes, actor)
}

func (s *ledgerService) record(ctx context.Context, tx *gorm.DB, account, direction string, amount decimal.Decimal, description, notes, actor string) error {
	if !amount.IsPositive() {
		return nil
	}
	return s.repo.Create(ctx, tx, &model.LedgerMovement{
		Account:     account,
		Description: description,
		Amount:      amount,
		Direction:   direction,
		Notes:       notes,
		CreatedBy:   actor,
	})
}

func movementToResponse(m *model.LedgerMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          m.ID.String(),
		Account:     m.Account,
		Description: m.Description,
		Amount:      m.Amount,
		Direction:   m.Direction,
		Notes:       m.Notes,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}
