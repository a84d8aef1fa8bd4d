package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockProduct is the restock alert shape embedded in closures.
type LowStockProduct struct {
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	CurrentStock   int    `json:"currentStock"`
	MinStock       int    `json:"minStock"`
	SuggestedOrder int    `json:"suggestedOrder"`
}

// JSONB snapshot columns. Closures embed full copies of the day's records, not
// references — the snapshot must survive later edits or deletions.

type SaleSnapshot []Sale

func (s SaleSnapshot) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *SaleSnapshot) Scan(value interface{}) error { return scanJSONB(value, s) }

type ExpenseSnapshot []Expense

func (s ExpenseSnapshot) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *ExpenseSnapshot) Scan(value interface{}) error { return scanJSONB(value, s) }

type PaymentSnapshot []EmployeePayment

func (s PaymentSnapshot) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *PaymentSnapshot) Scan(value interface{}) error { return scanJSONB(value, s) }

type LowStockSnapshot []LowStockProduct

func (s LowStockSnapshot) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *LowStockSnapshot) Scan(value interface{}) error { return scanJSONB(value, s) }

func scanJSONB(value, dest interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("jsonb snapshot: expected []byte from database")
	}
	return json.Unmarshal(b, dest)
}

// DailyClosure is the immutable end-of-day snapshot. At most one row exists
// per calendar date (unique index on Date); its existence is the sole gate
// that blocks new sales, expenses and payments for that date.
//
// Rows are inserted by Close and hard-deleted by Reopen — never updated.
type DailyClosure struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Date string    `gorm:"type:date;not null;uniqueIndex" json:"date"` // YYYY-MM-DD

	Sales            SaleSnapshot     `gorm:"type:jsonb;not null" json:"sales"`
	Expenses         ExpenseSnapshot  `gorm:"type:jsonb;not null" json:"expenses"`
	EmployeePayments PaymentSnapshot  `gorm:"type:jsonb;not null" json:"employeePayments"`
	LowStockProducts LowStockSnapshot `gorm:"type:jsonb;not null" json:"lowStockProducts"`

	TotalSales    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalSales"`
	TotalCash     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalCash"`
	TotalTransfer decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalTransfer"`
	TotalExpenses decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalExpenses"`
	TotalPayments decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalPayments"`

	// DailyBase is the configured till float captured at close time. Reopen
	// reverses against the captured values, never a re-read config.
	DailyBase             decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"dailyBase"`
	CashExcessTransferred decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cashExcessTransferred"`

	CreatedAt time.Time `json:"createdAt"`
}
