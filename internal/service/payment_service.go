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

// PaymentService pays employees for a shift. Ledger posting follows the same
// rules as expenses: transfers hit the transfer account, cash from saved cash
// hits saved cash, cash from the till is settled by the closure.
type PaymentService interface {
	Create(ctx context.Context, req dto.CreatePaymentRequest, actor string) (*dto.PaymentResponse, error)
	ListToday(ctx context.Context) ([]dto.PaymentResponse, error)
	List(ctx context.Context) ([]dto.PaymentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type paymentService struct {
	payments  repository.PaymentRepository
	employees repository.EmployeeRepository
	closures  ClosureService
	ledger    LedgerService
	loc       *time.Location
}

func NewPaymentService(
	payments repository.PaymentRepository,
	employees repository.EmployeeRepository,
	closures ClosureService,
	ledger LedgerService,
	loc *time.Location,
) PaymentService {
	return &paymentService{payments: payments, employees: employees, closures: closures, ledger: ledger, loc: loc}
}

func (s *paymentService) Create(ctx context.Context, req dto.CreatePaymentRequest, actor string) (*dto.PaymentResponse, error) {
	closed, err := s.closures.IsClosedToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	if closed {
		return nil, ErrRegisterClosed
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("create payment: invalid employee id %q", req.EmployeeID)
	}
	employee, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("create payment: employee: %w", err)
	}

	payment := &model.EmployeePayment{
		EmployeeID:       employee.ID,
		EmployeeName:     employee.Name,
		Position:         employee.Position,
		BaseAmount:       employee.DailyPayBase,
		FinalAmount:      req.FinalAmount,
		Notes:            req.Notes,
		PaymentMethod:    req.PaymentMethod,
		FromCashRegister: req.PaymentMethod == model.PaymentCash && req.FromCashRegister,
	}

	err = runTx(ctx, s.payments.DB(), func(tx *gorm.DB) error {
		if err := s.payments.Create(ctx, tx, payment); err != nil {
			return err
		}
		switch {
		case payment.PaymentMethod == model.PaymentTransfer:
			return s.ledger.RecordTransferExpense(ctx, tx, payment.FinalAmount,
				fmt.Sprintf("Payment to %s", payment.EmployeeName), actor)
		case payment.PaymentMethod == model.PaymentCash && !payment.FromCashRegister:
			return s.ledger.RecordSavedCashExpense(ctx, tx, payment.FinalAmount,
				fmt.Sprintf("Payment to %s", payment.EmployeeName),
				"Paid from saved cash", actor)
		default:
			return nil
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	return paymentToResponse(payment), nil
}

func (s *paymentService) ListToday(ctx context.Context) ([]dto.PaymentResponse, error) {
	from, to, err := dayBounds(today(s.loc), s.loc)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list today's payments: %w", err)
	}
	return paymentsToResponses(payments), nil
}

func (s *paymentService) List(ctx context.Context) ([]dto.PaymentResponse, error) {
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return paymentsToResponses(payments), nil
}

func (s *paymentService) Delete(ctx context.Context, id uuid.UUID) error {
	closed, err := s.closures.IsClosedToday(ctx)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if closed {
		return ErrRegisterClosed
	}
	return s.payments.Delete(ctx, id)
}

func paymentsToResponses(payments []model.EmployeePayment) []dto.PaymentResponse {
	out := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, *paymentToResponse(&payments[i]))
	}
	return out
}

func paymentToResponse(p *model.EmployeePayment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:               p.ID.String(),
		EmployeeID:       p.EmployeeID.String(),
		EmployeeName:     p.EmployeeName,
		Position:         p.Position,
		BaseAmount:       p.BaseAmount,
		FinalAmount:      p.FinalAmount,
		Notes:            p.Notes,
		PaymentMethod:    p.PaymentMethod,
		FromCashRegister: p.FromCashRegister,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
}
