package dto

import (
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ReopenRequest struct {
	Password string `json:"password" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClosureResponse struct {
	ID                    string                  `json:"id"`
	Date                  string                  `json:"date"`
	Sales                 []model.Sale            `json:"sales"`
	Expenses              []model.Expense         `json:"expenses"`
	EmployeePayments      []model.EmployeePayment `json:"employee_payments"`
	LowStockProducts      []model.LowStockProduct `json:"low_stock_products"`
	TotalSales            decimal.Decimal         `json:"total_sales"`
	TotalCash             decimal.Decimal         `json:"total_cash"`
	TotalTransfer         decimal.Decimal         `json:"total_transfer"`
	TotalExpenses         decimal.Decimal         `json:"total_expenses"`
	TotalPayments         decimal.Decimal         `json:"total_payments"`
	DailyBase             decimal.Decimal         `json:"daily_base"`
	CashExcessTransferred decimal.Decimal         `json:"cash_excess_transferred"`
	CreatedAt             string                  `json:"created_at"`
}

type ReopenResponse struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	RevertedAmount decimal.Decimal `json:"reverted_amount"`
}

type RegisterStatusResponse struct {
	Status string `json:"status"` // open | closed
	Date   string `json:"date"`
}

// RegisterCashResponse mirrors the live "cash in drawer" panel: what the till
// should contain right now given today's activity.
type RegisterCashResponse struct {
	DailyBase         decimal.Decimal `json:"daily_base"`
	CashSalesToday    decimal.Decimal `json:"cash_sales_today"`
	CashExpensesToday decimal.Decimal `json:"cash_expenses_today"`
	CashPaymentsToday decimal.Decimal `json:"cash_payments_today"`
	CurrentCash       decimal.Decimal `json:"current_cash"`
	IsClosed          bool            `json:"is_closed"`
	ExcessTransferred decimal.Decimal `json:"excess_transferred"`
}

// DailyCashSummaryResponse is the pre-closure preview. CashReceived and
// CashReturned are informational — change given back never alters the till's
// net position.
type DailyCashSummaryResponse struct {
	DailyBase        decimal.Decimal `json:"daily_base"`
	CashSales        decimal.Decimal `json:"cash_sales"`
	CashExpenses     decimal.Decimal `json:"cash_expenses"`
	CashPayments     decimal.Decimal `json:"cash_payments"`
	ExpectedCash     decimal.Decimal `json:"expected_cash"`
	ExcessToTransfer decimal.Decimal `json:"excess_to_transfer"`
	CashReceived     decimal.Decimal `json:"cash_received"`
	CashReturned     decimal.Decimal `json:"cash_returned"`
}
