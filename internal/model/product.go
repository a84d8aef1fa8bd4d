package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category groups menu products for the POS grid.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Color     string    `gorm:"type:varchar(20);not null" json:"color"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Product is a menu item. Stock tracking is opt-in via HasInventoryControl;
// products without it never appear in low-stock alerts.
// Deletion is a soft delete (IsActive=false) so historical sales keep resolving.
type Product struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name                string          `gorm:"type:varchar(100);not null" json:"name"`
	Price               decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CategoryID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"categoryId"`
	Stock               int             `gorm:"not null;default:0" json:"stock"`
	MinStock            int             `gorm:"not null;default:0" json:"minStock"`
	HasInventoryControl bool            `gorm:"not null;default:false" json:"hasInventoryControl"`
	IsActive            bool            `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// Employee is a staff member eligible for shift payments.
type Employee struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string          `gorm:"type:varchar(100);not null" json:"name"`
	Position     string          `gorm:"type:varchar(50);not null" json:"position"`
	DailyPayBase decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"dailyPayBase"`
	IsActive     bool            `gorm:"not null;default:true;index" json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
}
