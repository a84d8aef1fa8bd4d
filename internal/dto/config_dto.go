package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// UpdateConfigRequest uses pointers so a PUT can change any subset of fields.
// ReopenPassword, when present, is hashed before storage — it is never
// persisted or echoed back in cleartext.
type UpdateConfigRequest struct {
	BusinessName    *string          `json:"business_name"    validate:"omitempty,min=1,max=100"`
	BusinessAddress *string          `json:"business_address" validate:"omitempty,max=200"`
	BusinessPhone   *string          `json:"business_phone"   validate:"omitempty,max=30"`
	BusinessNIT     *string          `json:"business_nit"     validate:"omitempty,max=30"`
	TopN            *int             `json:"top_n"            validate:"omitempty,min=1,max=100"`
	AlertEmail      *string          `json:"alert_email"      validate:"omitempty,email"`
	DailyBase       *decimal.Decimal `json:"daily_base"`
	ReopenPassword  *string          `json:"reopen_password"  validate:"omitempty,min=4"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ConfigResponse struct {
	BusinessName    string          `json:"business_name"`
	BusinessAddress string          `json:"business_address"`
	BusinessPhone   string          `json:"business_phone"`
	BusinessNIT     string          `json:"business_nit"`
	TopN            int             `json:"top_n"`
	AlertEmail      string          `json:"alert_email"`
	DailyBase       decimal.Decimal `json:"daily_base"`
}
