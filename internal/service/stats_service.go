package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/repository"

	"github.com/shopspring/decimal"
)

// StatsService aggregates sales, expenses and payments for the reporting
// screens. It returns plain numbers; any CSV or print formatting happens in
// the frontend.
type StatsService interface {
	Daily(ctx context.Context, date string) (*dto.DailyStatsResponse, error)
	Monthly(ctx context.Context, month string) (*dto.MonthlyStatsResponse, error)
	TopProducts(ctx context.Context, from, to time.Time) ([]dto.ProductStatsResponse, error)
	BottomProducts(ctx context.Context, from, to time.Time) ([]dto.ProductStatsResponse, error)
}

type statsService struct {
	sales    repository.SaleRepository
	expenses repository.ExpenseRepository
	payments repository.PaymentRepository
	config   repository.ConfigRepository
	loc      *time.Location
}

func NewStatsService(
	sales repository.SaleRepository,
	expenses repository.ExpenseRepository,
	payments repository.PaymentRepository,
	config repository.ConfigRepository,
	loc *time.Location,
) StatsService {
	return &statsService{sales: sales, expenses: expenses, payments: payments, config: config, loc: loc}
}

func (s *statsService) Daily(ctx context.Context, date string) (*dto.DailyStatsResponse, error) {
	from, to, err := dayBounds(date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}
	sales, err := s.sales.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}
	expenses, err := s.expenses.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}
	payments, err := s.payments.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}

	resp := &dto.DailyStatsResponse{Date: date}
	for i := range sales {
		resp.TotalSales = resp.TotalSales.Add(sales[i].Total)
	}
	for i := range expenses {
		resp.TotalExpenses = resp.TotalExpenses.Add(expenses[i].Amount)
	}
	for i := range payments {
		resp.TotalPayments = resp.TotalPayments.Add(payments[i].FinalAmount)
	}
	return resp, nil
}

func (s *statsService) Monthly(ctx context.Context, month string) (*dto.MonthlyStatsResponse, error) {
	from, err := time.ParseInLocation("2006-01", month, s.loc)
	if err != nil {
		return nil, fmt.Errorf("monthly stats: invalid month %q (want YYYY-MM)", month)
	}
	to := from.AddDate(0, 1, 0)

	sales, err := s.sales.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("monthly stats: %w", err)
	}
	expenses, err := s.expenses.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("monthly stats: %w", err)
	}
	payments, err := s.payments.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("monthly stats: %w", err)
	}

	resp := &dto.MonthlyStatsResponse{Month: month}
	for i := range sales {
		resp.TotalSales = resp.TotalSales.Add(sales[i].Total)
	}
	for i := range expenses {
		resp.TotalExpenses = resp.TotalExpenses.Add(expenses[i].Amount)
	}
	for i := range payments {
		resp.TotalPayments = resp.TotalPayments.Add(payments[i].FinalAmount)
	}
	return resp, nil
}

func (s *statsService) TopProducts(ctx context.Context, from, to time.Time) ([]dto.ProductStatsResponse, error) {
	return s.rankProducts(ctx, from, to, true)
}

func (s *statsService) BottomProducts(ctx context.Context, from, to time.Time) ([]dto.ProductStatsResponse, error) {
	return s.rankProducts(ctx, from, to, false)
}

func (s *statsService) rankProducts(ctx context.Context, from, to time.Time, top bool) ([]dto.ProductStatsResponse, error) {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("product stats: load config: %w", err)
	}
	sales, err := s.sales.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}

	type acc struct {
		name     string
		quantity int
		revenue  decimal.Decimal
	}
	byProduct := make(map[string]*acc)
	for i := range sales {
		for _, it := range sales[i].Items {
			a, ok := byProduct[it.ProductID]
			if !ok {
				a = &acc{name: it.ProductName}
				byProduct[it.ProductID] = a
			}
			a.quantity += it.Quantity
			a.revenue = a.revenue.Add(it.Total)
		}
	}

	ranked := make([]dto.ProductStatsResponse, 0, len(byProduct))
	for id, a := range byProduct {
		ranked = append(ranked, dto.ProductStatsResponse{
			ProductID:     id,
			ProductName:   a.name,
			TotalQuantity: a.quantity,
			TotalRevenue:  a.revenue,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if top {
			return ranked[i].TotalQuantity > ranked[j].TotalQuantity
		}
		return ranked[i].TotalQuantity < ranked[j].TotalQuantity
	})

	if len(ranked) > cfg.TopN {
		ranked = ranked[:cfg.TopN]
	}
	return ranked, nil
}
