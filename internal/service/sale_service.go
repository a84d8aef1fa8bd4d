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
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService registers and cancels orders. Every mutation checks the
// register gate first: once the day is closed no sale can be created or
// cancelled until the register is reopened.
type SaleService interface {
	Create(ctx context.Context, req dto.CreateSaleRequest, actor string) (*dto.SaleResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, actor string) (*dto.SaleResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListToday(ctx context.Context) ([]dto.SaleResponse, error)
	List(ctx context.Context) ([]dto.SaleResponse, error)
}

type saleService struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
	closures ClosureService
	ledger   LedgerService
	loc      *time.Location
}

func NewSaleService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	closures ClosureService,
	ledger LedgerService,
	loc *time.Location,
) SaleService {
	return &saleService{sales: sales, products: products, closures: closures, ledger: ledger, loc: loc}
}

func (s *saleService) Create(ctx context.Context, req dto.CreateSaleRequest, actor string) (*dto.SaleResponse, error) {
	closed, err := s.closures.IsClosedToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}
	if closed {
		return nil, ErrRegisterClosed
	}

	// Prices come from the catalog, never from the request.
	items := make(model.SaleItems, 0, len(req.Items))
	subtotal := decimal.Zero
	for _, it := range req.Items {
		pid, err := uuid.Parse(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("create sale: invalid product id %q", it.ProductID)
		}
		product, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("create sale: product %s: %w", it.ProductID, err)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("create sale: product %q is not available", product.Name)
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		items = append(items, model.SaleItem{
			ProductID:   product.ID.String(),
			ProductName: product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   product.Price,
			Total:       lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	total := subtotal
	if !req.CashAmount.Add(req.TransferAmount).Equal(total) {
		return nil, errors.New("create sale: cash and transfer amounts must add up to the total")
	}

	// Change handed back: only overpayment above the cash portion counts.
	returned := req.CashReceived.Sub(req.CashAmount)
	if returned.IsNegative() {
		returned = decimal.Zero
	}

	sale := &model.Sale{
		Items:          items,
		Subtotal:       subtotal,
		Total:          total,
		CashAmount:     req.CashAmount,
		TransferAmount: req.TransferAmount,
		CashReceived:   req.CashReceived,
		CashReturned:   returned,
		PaymentMethod:  req.PaymentMethod,
		Status:         model.SaleCompleted,
	}

	err = runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		if err := s.sales.Create(ctx, tx, sale); err != nil {
			return err
		}
		for _, it := range items {
			pid, _ := uuid.Parse(it.ProductID)
			if err := s.products.AdjustStock(ctx, tx, pid, it.Quantity); err != nil {
				return err
			}
		}
		// The transfer portion arrives in the bank account immediately;
		// the cash portion stays in the till for the closure sweep.
		return s.ledger.RecordTransferIncome(ctx, tx, sale.TransferAmount,
			fmt.Sprintf("Sale %s", sale.ID), actor)
	})
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	log.Info().
		Str("sale_id", sale.ID.String()).
		Str("total", sale.Total.String()).
		Str("payment_method", sale.PaymentMethod).
		Msg("sale registered")

	return saleToResponse(sale), nil
}

func (s *saleService) Cancel(ctx context.Context, id uuid.UUID, actor string) (*dto.SaleResponse, error) {
	closed, err := s.closures.IsClosedToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("cancel sale: %w", err)
	}
	if closed {
		return nil, ErrRegisterClosed
	}

	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cancel sale: %w", err)
	}
	if sale.Status == model.SaleCancelled {
		return nil, errors.New("cancel sale: sale is already cancelled")
	}

	err = runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		if err := s.sales.MarkCancelled(ctx, tx, id, actor); err != nil {
			return err
		}
		// Restore stock for tracked products.
		for _, it := range sale.Items {
			pid, perr := uuid.Parse(it.ProductID)
			if perr != nil {
				continue
			}
			if err := s.products.AdjustStock(ctx, tx, pid, -it.Quantity); err != nil {
				return err
			}
		}
		// Reverse the transfer income posted at sale time. The cash portion
		// never left the till, so it needs no ledger entry.
		return s.ledger.RecordTransferExpense(ctx, tx, sale.TransferAmount,
			fmt.Sprintf("Cancelled sale %s", sale.ID), actor)
	})
	if err != nil {
		return nil, fmt.Errorf("cancel sale: %w", err)
	}

	log.Info().
		Str("sale_id", sale.ID.String()).
		Str("cancelled_by", actor).
		Msg("sale cancelled")

	now := time.Now()
	sale.Status = model.SaleCancelled
	sale.CancelledAt = &now
	sale.CancelledBy = &actor
	return saleToResponse(sale), nil
}

func (s *saleService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *saleService) ListToday(ctx context.Context) ([]dto.SaleResponse, error) {
	from, to, err := dayBounds(today(s.loc), s.loc)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list today's sales: %w", err)
	}
	return salesToResponses(sales), nil
}

func (s *saleService) List(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return salesToResponses(sales), nil
}

func salesToResponses(sales []model.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, *saleToResponse(&sales[i]))
	}
	return out
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	resp := &dto.SaleResponse{
		ID:             s.ID.String(),
		Items:          items,
		Subtotal:       s.Subtotal,
		Total:          s.Total,
		CashAmount:     s.CashAmount,
		TransferAmount: s.TransferAmount,
		CashReceived:   s.CashReceived,
		CashReturned:   s.CashReturned,
		PaymentMethod:  s.PaymentMethod,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		CancelledBy:    s.CancelledBy,
	}
	if s.CancelledAt != nil {
		v := s.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &v
	}
	return resp
}
