package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PostMovementRequest struct {
	Account     string          `json:"account"     validate:"required,oneof=transfer saved_cash"`
	Description string          `json:"description" validate:"required,min=3"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Direction   string          `json:"direction"   validate:"required,oneof=income expense"`
	Notes       string          `json:"notes"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovementResponse struct {
	ID          string          `json:"id"`
	Account     string          `json:"account"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	Notes       string          `json:"notes"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   string          `json:"created_at"`
}

// LedgerSummaryResponse carries the derived balances: the signed fold of all
// movements per account.
type LedgerSummaryResponse struct {
	TotalTransfers decimal.Decimal `json:"total_transfers"`
	TotalSavedCash decimal.Decimal `json:"total_saved_cash"`
	TotalMajorCash decimal.Decimal `json:"total_major_cash"`
	LastUpdate     string          `json:"last_update"`
}
