package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreatePaymentRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	// FinalAmount may differ from the employee's daily base (bonuses,
	// deductions); the base is captured alongside for the record.
	FinalAmount      decimal.Decimal `json:"final_amount"   validate:"required,gt=0"`
	Notes            string          `json:"notes"`
	PaymentMethod    string          `json:"payment_method" validate:"required,oneof=cash transfer"`
	FromCashRegister bool            `json:"from_cash_register"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PaymentResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	Position         string          `json:"position"`
	BaseAmount       decimal.Decimal `json:"base_amount"`
	FinalAmount      decimal.Decimal `json:"final_amount"`
	Notes            string          `json:"notes"`
	PaymentMethod    string          `json:"payment_method"`
	FromCashRegister bool            `json:"from_cash_register"`
	CreatedAt        string          `json:"created_at"`
}
