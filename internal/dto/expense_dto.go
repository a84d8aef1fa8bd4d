package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateExpenseRequest struct {
	Description   string          `json:"description"    validate:"required,min=3"`
	Amount        decimal.Decimal `json:"amount"         validate:"required,gt=0"`
	Category      string          `json:"category"       validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash transfer"`
	// FromCashRegister: the cash came out of the physical till. Only
	// meaningful for cash expenses — transfer expenses ignore it.
	FromCashRegister bool `json:"from_cash_register"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ExpenseResponse struct {
	ID               string          `json:"id"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Category         string          `json:"category"`
	PaymentMethod    string          `json:"payment_method"`
	FromCashRegister bool            `json:"from_cash_register"`
	CreatedAt        string          `json:"created_at"`
}
