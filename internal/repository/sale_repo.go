package repository

import (
	"context"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	MarkCancelled(ctx context.Context, tx *gorm.DB, id uuid.UUID, by string) error
	// ListRange returns completed sales with created_at in [from, to). Callers
	// compute the bounds in the business timezone; comparing instants keeps the
	// database's session timezone out of day bucketing.
	ListRange(ctx context.Context, from, to time.Time) ([]model.Sale, error)
	List(ctx context.Context) ([]model.Sale, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *saleRepo) MarkCancelled(ctx context.Context, tx *gorm.DB, id uuid.UUID, by string) error {
	if tx == nil {
		tx = r.db
	}
	now := time.Now()
	return tx.WithContext(ctx).Model(&model.Sale{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       model.SaleCancelled,
		"cancelled_at": now,
		"cancelled_by": by,
	}).Error
}

func (r *saleRepo) ListRange(ctx context.Context, from, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ? AND status = ?", from, to, model.SaleCompleted).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&sales).Error
	return sales, err
}
