package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is an operating cost recorded during the day.
// FromCashRegister marks cash expenses paid out of the physical till; those
// reduce the expected till balance at closure instead of posting to the
// major-cash ledger.
type Expense struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Description      string          `gorm:"not null" json:"description"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category         string          `gorm:"type:varchar(50);not null" json:"category"`
	PaymentMethod    string          `gorm:"type:varchar(10);not null" json:"paymentMethod"` // cash | transfer
	FromCashRegister bool            `gorm:"not null;default:false" json:"fromCashRegister"`
	CreatedAt        time.Time       `gorm:"index" json:"createdAt"`
}
