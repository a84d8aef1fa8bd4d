package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses.
const (
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
)

// Payment methods shared by sales, expenses and employee payments.
const (
	PaymentCash     = "cash"
	PaymentTransfer = "transfer"
	PaymentMixed    = "mixed"
)

// SaleItem is a line item embedded in a sale. Stored as JSONB — items are
// frozen at sale time and never referenced individually.
type SaleItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
}

// SaleItems implements JSONB persistence for the embedded item list.
type SaleItems []SaleItem

func (s SaleItems) Value() (driver.Value, error) { return json.Marshal(s) }

func (s *SaleItems) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("sale items: expected []byte from database")
	}
	return json.Unmarshal(b, s)
}

// Sale is a completed (or later cancelled) order.
// CashAmount/TransferAmount split the total by payment method; CashReceived
// and CashReturned record the customer-facing change handling and are
// informational only — they never enter the closure cash formula.
type Sale struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Items          SaleItems       `gorm:"type:jsonb;not null" json:"items"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CashAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cashAmount"`
	TransferAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"transferAmount"`
	CashReceived   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cashReceived"`
	CashReturned   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cashReturned"`
	PaymentMethod  string          `gorm:"type:varchar(10);not null" json:"paymentMethod"` // cash | transfer | mixed
	Status         string          `gorm:"type:varchar(10);not null;default:'completed';index" json:"status"`
	CreatedAt      time.Time       `gorm:"index" json:"createdAt"`
	CancelledAt    *time.Time      `json:"cancelledAt,omitempty"`
	CancelledBy    *string         `json:"cancelledBy,omitempty"`
}
