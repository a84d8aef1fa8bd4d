package service

import (
	"context"
	"fmt"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseService records operating costs and posts them to the major-cash
// ledger according to how they were paid:
//
//	transfer                  → transfer expense (left the bank account)
//	cash, not from register   → saved-cash expense (left the stored cash)
//	cash, from the register   → no posting; the till reconciles it at closure
type ExpenseService interface {
	Create(ctx context.Context, req dto.CreateExpenseRequest, actor string) (*dto.ExpenseResponse, error)
	ListToday(ctx context.Context) ([]dto.ExpenseResponse, error)
	List(ctx context.Context) ([]dto.ExpenseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseService struct {
	expenses repository.ExpenseRepository
	closures ClosureService
	ledger   LedgerService
	loc      *time.Location
}

func NewExpenseService(
	expenses repository.ExpenseRepository,
	closures ClosureService,
	ledger LedgerService,
	loc *time.Location,
) ExpenseService {
	return &expenseService{expenses: expenses, closures: closures, ledger: ledger, loc: loc}
}

func (s *expenseService) Create(ctx context.Context, req dto.CreateExpenseRequest, actor string) (*dto.ExpenseResponse, error) {
	closed, err := s.closures.IsClosedToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	if closed {
		return nil, ErrRegisterClosed
	}

	expense := &model.Expense{
		Description:      req.Description,
		Amount:           req.Amount,
		Category:         req.Category,
		PaymentMethod:    req.PaymentMethod,
		FromCashRegister: req.PaymentMethod == model.PaymentCash && req.FromCashRegister,
	}

	err = runTx(ctx, s.expenses.DB(), func(tx *gorm.DB) error {
		if err := s.expenses.Create(ctx, tx, expense); err != nil {
			return err
		}
		switch {
		case expense.PaymentMethod == model.PaymentTransfer:
			return s.ledger.RecordTransferExpense(ctx, tx, expense.Amount,
				fmt.Sprintf("Expense: %s", expense.Description), actor)
		case expense.PaymentMethod == model.PaymentCash && !expense.FromCashRegister:
			return s.ledger.RecordSavedCashExpense(ctx, tx, expense.Amount,
				fmt.Sprintf("Expense: %s", expense.Description),
				"Paid from saved cash", actor)
		default:
			// Paid from the till; the closure formula accounts for it.
			return nil
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	return expenseToResponse(expense), nil
}

func (s *expenseService) ListToday(ctx context.Context) ([]dto.ExpenseResponse, error) {
	from, to, err := dayBounds(today(s.loc), s.loc)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list today's expenses: %w", err)
	}
	return expensesToResponses(expenses), nil
}

func (s *expenseService) List(ctx context.Context) ([]dto.ExpenseResponse, error) {
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expensesToResponses(expenses), nil
}

func (s *expenseService) Delete(ctx context.Context, id uuid.UUID) error {
	closed, err := s.closures.IsClosedToday(ctx)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if closed {
		return ErrRegisterClosed
	}
	return s.expenses.Delete(ctx, id)
}

func expensesToResponses(expenses []model.Expense) []dto.ExpenseResponse {
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, *expenseToResponse(&expenses[i]))
	}
	return out
}

func expenseToResponse(e *model.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:               e.ID.String(),
		Description:      e.Description,
		Amount:           e.Amount,
		Category:         e.Category,
		PaymentMethod:    e.PaymentMethod,
		FromCashRegister: e.FromCashRegister,
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
	}
}
