package repository

import (
	"context"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.EmployeePayment) error
	// ListRange returns payments with created_at in [from, to); bounds are
	// computed by callers in the business timezone.
	ListRange(ctx context.Context, from, to time.Time) ([]model.EmployeePayment, error)
	List(ctx context.Context) ([]model.EmployeePayment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) DB() *gorm.DB { return r.db }

func (r *paymentRepo) Create(ctx context.Context, tx *gorm.DB, p *model.EmployeePayment) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) ListRange(ctx context.Context, from, to time.Time) ([]model.EmployeePayment, error) {
	var payments []model.EmployeePayment
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) List(ctx context.Context) ([]model.EmployeePayment, error) {
	var payments []model.EmployeePayment
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.EmployeePayment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
