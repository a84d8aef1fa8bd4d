package infra

import (
	"fmt"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate.
// TranslateError is enabled so a unique-constraint violation surfaces as
// gorm.ErrDuplicatedKey — the closure engine depends on this to resolve the
// close-register race (two concurrent closes, one insert wins, the loser
// re-reads the winner's row).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Employee{},
		&model.Sale{},
		&model.Expense{},
		&model.EmployeePayment{},
		&model.LedgerMovement{},
		&model.DailyClosure{},
		&model.SystemConfig{},
		&model.User{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}
