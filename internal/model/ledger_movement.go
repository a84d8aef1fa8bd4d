package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger account types ("caja mayor"). The ledger tracks money that has left
// or entered the physical till into virtual accounts: bank transfers and cash
// stored outside the register.
const (
	AccountTransfer  = "transfer"
	AccountSavedCash = "saved_cash"
)

// Movement directions.
const (
	DirectionIncome  = "income"
	DirectionExpense = "expense"
)

// LedgerMovement is an immutable entry in the major-cash ledger.
// Movements are never updated — corrections happen through compensating
// entries or an explicit admin delete.
type LedgerMovement struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Account     string          `gorm:"type:varchar(20);not null;index" json:"account"` // transfer | saved_cash
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"` // always > 0
	Direction   string          `gorm:"type:varchar(10);not null" json:"direction"` // income | expense
	Notes       string          `json:"notes"`
	CreatedBy   string          `gorm:"type:varchar(100);not null" json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Signed returns the movement's contribution to its account balance:
// +Amount for income, -Amount for expense.
func (m *LedgerMovement) Signed() decimal.Decimal {
	if m.Direction == DirectionExpense {
		return m.Amount.Neg()
	}
	return m.Amount
}
