package repository

import (
	"context"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerRepository persists major-cash movements. Append and delete only —
// there is deliberately no Update.
type LedgerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, m *model.LedgerMovement) error
	List(ctx context.Context) ([]model.LedgerMovement, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ledgerRepo struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) LedgerRepository { return &ledgerRepo{db: db} }

func (r *ledgerRepo) DB() *gorm.DB { return r.db }

// Create appends a movement. When tx is non-nil the insert joins the caller's
// transaction (closure sweep + snapshot must commit atomically).
func (r *ledgerRepo) Create(ctx context.Context, tx *gorm.DB, m *model.LedgerMovement) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(m).Error
}

func (r *ledgerRepo) List(ctx context.Context) ([]model.LedgerMovement, error) {
	var movements []model.LedgerMovement
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&movements).Error
	return movements, err
}

func (r *ledgerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.LedgerMovement{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
