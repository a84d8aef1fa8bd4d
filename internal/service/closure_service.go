package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LowStockNotifier enqueues a restock alert after a successful closure.
// Implemented by the worker dispatcher; a nil notifier disables alerts.
type LowStockNotifier interface {
	EnqueueLowStockAlert(ctx context.Context, date string, products []model.LowStockProduct) error
}

// ClosureService runs the daily register lifecycle: Close reconciles the till
// and freezes the day, Reopen reverses a closure made by mistake.
//
// Close is idempotent. Concurrent calls race on the unique date index and the
// loser returns the winner's row — exactly one sweep movement is ever posted
// per date.
type ClosureService interface {
	Close(ctx context.Context, actor string) (*dto.ClosureResponse, error)
	Reopen(ctx context.Context, password string) (*dto.ReopenResponse, error)
	Status(ctx context.Context) (*dto.RegisterStatusResponse, error)
	CurrentCash(ctx context.Context) (*dto.RegisterCashResponse, error)
	DailyCashSummary(ctx context.Context) (*dto.DailyCashSummaryResponse, error)
	GetByDate(ctx context.Context, date string) (*dto.ClosureResponse, error)
	List(ctx context.Context) ([]dto.ClosureResponse, error)

	// IsClosedToday is the register gate checked before any sale, expense or
	// payment is accepted.
	IsClosedToday(ctx context.Context) (bool, error)
}

type closureService struct {
	closures repository.ClosureRepository
	sales    repository.SaleRepository
	expenses repository.ExpenseRepository
	payments repository.PaymentRepository
	products repository.ProductRepository
	config   repository.ConfigRepository
	ledger   LedgerService
	notifier LowStockNotifier
	loc      *time.Location
}

func NewClosureService(
	closures repository.ClosureRepository,
	sales repository.SaleRepository,
	expenses repository.ExpenseRepository,
	payments repository.PaymentRepository,
	products repository.ProductRepository,
	config repository.ConfigRepository,
	ledger LedgerService,
	notifier LowStockNotifier,
	loc *time.Location,
) ClosureService {
	return &closureService{
		closures: closures,
		sales:    sales,
		expenses: expenses,
		payments: payments,
		products: products,
		config:   config,
		ledger:   ledger,
		notifier: notifier,
		loc:      loc,
	}
}

func (s *closureService) IsClosedToday(ctx context.Context) (bool, error) {
	return s.closures.ExistsForDate(ctx, today(s.loc))
}

// ── Close ────────────────────────────────────────────────────────────────────

func (s *closureService) Close(ctx context.Context, actor string) (*dto.ClosureResponse, error) {
	date := today(s.loc)

	// Fast path: already closed. The insert below still guards against a
	// concurrent close that lands between this check and the commit.
	if existing, err := s.closures.FindByDate(ctx, date); err == nil {
		return closureToResponse(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("close register: %w", err)
	}

	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("close register: load config: %w", err)
	}

	day, err := s.gatherDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("close register: %w", err)
	}

	lowStock, err := s.lowStockAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("close register: low stock: %w", err)
	}

	excess := excessCash(day.cashSales, day.cashOutflows)

	closure := &model.DailyClosure{
		Date:                  date,
		Sales:                 day.sales,
		Expenses:              day.expenses,
		EmployeePayments:      day.payments,
		LowStockProducts:      lowStock,
		TotalSales:            day.totalSales,
		TotalCash:             day.cashSales,
		TotalTransfer:         day.transferSales,
		TotalExpenses:         day.totalExpenses,
		TotalPayments:         day.totalPayments,
		DailyBase:             cfg.DailyBase,
		CashExcessTransferred: excess,
	}

	// Sweep and snapshot commit together: a closure either records the
	// transferred excess and posts it, or neither happened.
	err = runTx(ctx, s.closures.DB(), func(tx *gorm.DB) error {
		if err := s.closures.Create(ctx, tx, closure); err != nil {
			return err
		}
		return s.ledger.RecordSavedCashIncome(ctx, tx, excess,
			fmt.Sprintf("Daily closure %s cash excess", date),
			"Till surplus above the daily base swept into saved cash",
			actor)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race: another close committed first. Its row is the
		// closure of record.
		winner, ferr := s.closures.FindByDate(ctx, date)
		if ferr != nil {
			return nil, fmt.Errorf("close register: fetch concurrent closure: %w", ferr)
		}
		return closureToResponse(winner), nil
	}
	if err != nil {
		return nil, fmt.Errorf("close register: %w", err)
	}

	log.Info().
		Str("date", date).
		Str("excess_transferred", excess.String()).
		Str("closed_by", actor).
		Msg("cash register closed")

	if s.notifier != nil && len(lowStock) > 0 {
		if err := s.notifier.EnqueueLowStockAlert(ctx, date, lowStock); err != nil {
			// Alerting is best effort; the closure already committed.
			log.Warn().Err(err).Str("date", date).Msg("failed to enqueue low stock alert")
		}
	}

	return closureToResponse(closure), nil
}

// excessCash computes the till surplus above the daily base:
//
//	cashBeforeClosure = dailyBase + cashSales − cashOutflows
//	excess            = max(0, cashBeforeClosure − dailyBase)
//
// The base cancels out, so only the day's net cash flow matters. A till that
// ended below base transfers nothing.
func excessCash(cashSales, cashOutflows decimal.Decimal) decimal.Decimal {
	excess := cashSales.Sub(cashOutflows)
	if excess.IsNegative() {
		return decimal.Zero
	}
	return excess
}

// dayTotals aggregates one business date's records for the closure snapshot.
type dayTotals struct {
	sales    []model.Sale
	expenses []model.Expense
	payments []model.EmployeePayment

	totalSales    decimal.Decimal
	cashSales     decimal.Decimal
	transferSales decimal.Decimal
	totalExpenses decimal.Decimal
	totalPayments decimal.Decimal

	// cashOutflows is cash taken out of the physical till: expenses and
	// payments paid in cash from the register. Cash spent from saved cash
	// was already posted to the ledger and never touches the till.
	cashOutflows decimal.Decimal
}

func (s *closureService) gatherDay(ctx context.Context, date string) (*dayTotals, error) {
	from, to, err := dayBounds(date, s.loc)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	expenses, err := s.expenses.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	payments, err := s.payments.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	d := &dayTotals{sales: sales, expenses: expenses, payments: payments}
	for i := range sales {
		d.totalSales = d.totalSales.Add(sales[i].Total)
		d.cashSales = d.cashSales.Add(sales[i].CashAmount)
		d.transferSales = d.transferSales.Add(sales[i].TransferAmount)
	}
	for i := range expenses {
		d.totalExpenses = d.totalExpenses.Add(expenses[i].Amount)
		if expenses[i].PaymentMethod == model.PaymentCash && expenses[i].FromCashRegister {
			d.cashOutflows = d.cashOutflows.Add(expenses[i].Amount)
		}
	}
	for i := range payments {
		d.totalPayments = d.totalPayments.Add(payments[i].FinalAmount)
		if payments[i].PaymentMethod == model.PaymentCash && payments[i].FromCashRegister {
			d.cashOutflows = d.cashOutflows.Add(payments[i].FinalAmount)
		}
	}
	return d, nil
}

func (s *closureService) lowStockAlerts(ctx context.Context) ([]model.LowStockProduct, error) {
	products, err := s.products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]model.LowStockProduct, 0, len(products))
	for i := range products {
		p := &products[i]
		suggested := p.MinStock*2 - p.Stock
		if suggested < p.MinStock {
			suggested = p.MinStock
		}
		alerts = append(alerts, model.LowStockProduct{
			ProductID:      p.ID.String(),
			ProductName:    p.Name,
			CurrentStock:   p.Stock,
			MinStock:       p.MinStock,
			SuggestedOrder: suggested,
		})
	}
	return alerts, nil
}

// ── Reopen ───────────────────────────────────────────────────────────────────

func (s *closureService) Reopen(ctx context.Context, password string) (*dto.ReopenResponse, error) {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("reopen register: load config: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(cfg.ReopenPasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	date := today(s.loc)
	closure, err := s.closures.FindByDate(ctx, date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Nothing to undo. A double click on "reopen" must not fail the
		// second request.
		return &dto.ReopenResponse{
			Success:        true,
			Message:        "The register is already open",
			RevertedAmount: decimal.Zero,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reopen register: %w", err)
	}

	// The reversal uses the amount the closure actually transferred, not a
	// recomputation — config may have changed since the close.
	reverted := closure.CashExcessTransferred
	err = runTx(ctx, s.closures.DB(), func(tx *gorm.DB) error {
		if err := s.ledger.RecordSavedCashExpense(ctx, tx, reverted,
			"Daily closure reversal",
			fmt.Sprintf("Reopened register on %s, returning swept excess to the till", date),
			"system"); err != nil {
			return err
		}
		return s.closures.DeleteByDate(ctx, tx, date)
	})
	if err != nil {
		return nil, fmt.Errorf("reopen register: %w", err)
	}

	log.Info().
		Str("date", date).
		Str("reverted_amount", reverted.String()).
		Msg("cash register reopened")

	return &dto.ReopenResponse{
		Success:        true,
		Message:        "Register reopened, closure reverted",
		RevertedAmount: reverted,
	}, nil
}

// ── Read endpoints ───────────────────────────────────────────────────────────

func (s *closureService) Status(ctx context.Context) (*dto.RegisterStatusResponse, error) {
	date := today(s.loc)
	closed, err := s.closures.ExistsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("register status: %w", err)
	}
	status := "open"
	if closed {
		status = "closed"
	}
	return &dto.RegisterStatusResponse{Status: status, Date: date}, nil
}

func (s *closureService) CurrentCash(ctx context.Context) (*dto.RegisterCashResponse, error) {
	date := today(s.loc)

	// After closure the till holds exactly the base; the day's excess is
	// already in saved cash.
	if closure, err := s.closures.FindByDate(ctx, date); err == nil {
		return &dto.RegisterCashResponse{
			DailyBase:         closure.DailyBase,
			CurrentCash:       closure.DailyBase,
			IsClosed:          true,
			ExcessTransferred: closure.CashExcessTransferred,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("current cash: %w", err)
	}

	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("current cash: load config: %w", err)
	}
	day, err := s.gatherDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("current cash: %w", err)
	}

	cashExpenses, cashPayments := day.splitCashOutflows()
	return &dto.RegisterCashResponse{
		DailyBase:         cfg.DailyBase,
		CashSalesToday:    day.cashSales,
		CashExpensesToday: cashExpenses,
		CashPaymentsToday: cashPayments,
		CurrentCash:       cfg.DailyBase.Add(day.cashSales).Sub(cashExpenses).Sub(cashPayments),
		IsClosed:          false,
	}, nil
}

func (d *dayTotals) splitCashOutflows() (expenses, payments decimal.Decimal) {
	for i := range d.expenses {
		if d.expenses[i].PaymentMethod == model.PaymentCash && d.expenses[i].FromCashRegister {
			expenses = expenses.Add(d.expenses[i].Amount)
		}
	}
	for i := range d.payments {
		if d.payments[i].PaymentMethod == model.PaymentCash && d.payments[i].FromCashRegister {
			payments = payments.Add(d.payments[i].FinalAmount)
		}
	}
	return expenses, payments
}

func (s *closureService) DailyCashSummary(ctx context.Context) (*dto.DailyCashSummaryResponse, error) {
	date := today(s.loc)
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("daily cash summary: load config: %w", err)
	}
	day, err := s.gatherDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("daily cash summary: %w", err)
	}

	received := decimal.Zero
	returned := decimal.Zero
	for i := range day.sales {
		received = received.Add(day.sales[i].CashReceived)
		returned = returned.Add(day.sales[i].CashReturned)
	}

	cashExpenses, cashPayments := day.splitCashOutflows()
	return &dto.DailyCashSummaryResponse{
		DailyBase:        cfg.DailyBase,
		CashSales:        day.cashSales,
		CashExpenses:     cashExpenses,
		CashPayments:     cashPayments,
		ExpectedCash:     cfg.DailyBase.Add(day.cashSales).Sub(day.cashOutflows),
		ExcessToTransfer: excessCash(day.cashSales, day.cashOutflows),
		CashReceived:     received,
		CashReturned:     returned,
	}, nil
}

func (s *closureService) GetByDate(ctx context.Context, date string) (*dto.ClosureResponse, error) {
	closure, err := s.closures.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return closureToResponse(closure), nil
}

func (s *closureService) List(ctx context.Context) ([]dto.ClosureResponse, error) {
	closures, err := s.closures.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list closures: %w", err)
	}
	out := make([]dto.ClosureResponse, 0, len(closures))
	for i := range closures {
		out = append(out, *closureToResponse(&closures[i]))
	}
	return out, nil
}

func closureToResponse(c *model.DailyClosure) *dto.ClosureResponse {
	return &dto.ClosureResponse{
		ID:                    c.ID.String(),
		Date:                  c.Date,
		Sales:                 c.Sales,
		Expenses:              c.Expenses,
		EmployeePayments:      c.EmployeePayments,
		LowStockProducts:      c.LowStockProducts,
		TotalSales:            c.TotalSales,
		TotalCash:             c.TotalCash,
		TotalTransfer:         c.TotalTransfer,
		TotalExpenses:         c.TotalExpenses,
		TotalPayments:         c.TotalPayments,
		DailyBase:             c.DailyBase,
		CashExcessTransferred: c.CashExcessTransferred,
		CreatedAt:             c.CreatedAt.Format(time.RFC3339),
	}
}
