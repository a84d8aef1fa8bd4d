package dto

import "github.com/shopspring/decimal"

// ─── Category DTOs ───────────────────────────────────────────────────────────

type CategoryRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=100"`
	Color string `json:"color" validate:"required"`
	Order int    `json:"order" validate:"min=0"`
}

type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// ─── Product DTOs ────────────────────────────────────────────────────────────

type ProductRequest struct {
	Name                string          `json:"name"        validate:"required,min=1,max=100"`
	Price               decimal.Decimal `json:"price"       validate:"required,gt=0"`
	CategoryID          string          `json:"category_id" validate:"required,uuid"`
	Stock               int             `json:"stock"       validate:"min=0"`
	MinStock            int             `json:"min_stock"   validate:"min=0"`
	HasInventoryControl bool            `json:"has_inventory_control"`
}

type ProductResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	CategoryID          string          `json:"category_id"`
	Stock               int             `json:"stock"`
	MinStock            int             `json:"min_stock"`
	HasInventoryControl bool            `json:"has_inventory_control"`
	IsActive            bool            `json:"is_active"`
}

type LowStockResponse struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	CurrentStock   int    `json:"current_stock"`
	MinStock       int    `json:"min_stock"`
	SuggestedOrder int    `json:"suggested_order"`
}

// ─── Employee DTOs ───────────────────────────────────────────────────────────

type EmployeeRequest struct {
	Name         string          `json:"name"           validate:"required,min=2,max=100"`
	Position     string          `json:"position"       validate:"required,min=2,max=50"`
	DailyPayBase decimal.Decimal `json:"daily_pay_base" validate:"required,gt=0"`
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Position     string          `json:"position"`
	DailyPayBase decimal.Decimal `json:"daily_pay_base"`
	IsActive     bool            `json:"is_active"`
}
