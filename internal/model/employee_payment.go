package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeePayment records a shift payment to an employee. Employee name and
// position are denormalized so closure snapshots stay meaningful after
// employee records change.
type EmployeePayment struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EmployeeID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"employeeId"`
	EmployeeName     string          `gorm:"type:varchar(100);not null" json:"employeeName"`
	Position         string          `gorm:"type:varchar(50);not null" json:"position"`
	BaseAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"baseAmount"`
	FinalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"finalAmount"`
	Notes            string          `json:"notes"`
	PaymentMethod    string          `gorm:"type:varchar(10);not null" json:"paymentMethod"` // cash | transfer
	FromCashRegister bool            `gorm:"not null;default:false" json:"fromCashRegister"`
	CreatedAt        time.Time       `gorm:"index" json:"createdAt"`
}
