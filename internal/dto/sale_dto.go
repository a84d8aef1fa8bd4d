package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	// Split of the total by payment method. For pure cash sales
	// transfer_amount is 0 and vice versa; "mixed" uses both.
	CashAmount     decimal.Decimal `json:"cash_amount"     validate:"min=0"`
	TransferAmount decimal.Decimal `json:"transfer_amount" validate:"min=0"`
	// CashReceived is what the customer handed over; change is derived.
	CashReceived  decimal.Decimal `json:"cash_received"  validate:"min=0"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash transfer mixed"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

type SaleResponse struct {
	ID             string             `json:"id"`
	Items          []SaleItemResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Total          decimal.Decimal    `json:"total"`
	CashAmount     decimal.Decimal    `json:"cash_amount"`
	TransferAmount decimal.Decimal    `json:"transfer_amount"`
	CashReceived   decimal.Decimal    `json:"cash_received"`
	CashReturned   decimal.Decimal    `json:"cash_returned"`
	PaymentMethod  string             `json:"payment_method"`
	Status         string             `json:"status"`
	CreatedAt      string             `json:"created_at"`
	CancelledAt    *string            `json:"cancelled_at,omitempty"`
	CancelledBy    *string            `json:"cancelled_by,omitempty"`
}
