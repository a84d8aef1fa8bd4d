package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SystemConfig is the single-row business configuration table.
// DailyBase is the till float the register starts each day with.
// ReopenPasswordHash gates the destructive reopen operation — stored as a
// bcrypt hash, never in cleartext.
type SystemConfig struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BusinessName       string          `gorm:"type:varchar(100);not null" json:"businessName"`
	BusinessAddress    string          `gorm:"type:varchar(200)" json:"businessAddress"`
	BusinessPhone      string          `gorm:"type:varchar(30)" json:"businessPhone"`
	BusinessNIT        string          `gorm:"column:business_nit;type:varchar(30)" json:"businessNIT"`
	TopN               int             `gorm:"column:top_n;not null;default:10" json:"topN"`
	AlertEmail         string          `gorm:"type:varchar(100)" json:"alertEmail"`
	DailyBase          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"dailyBase"`
	ReopenPasswordHash string          `gorm:"type:varchar(100);not null" json:"-"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

func (SystemConfig) TableName() string { return "system_config" }
