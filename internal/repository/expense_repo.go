package repository

import (
	"context"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, e *model.Expense) error
	// ListRange returns expenses with created_at in [from, to); bounds are
	// computed by callers in the business timezone.
	ListRange(ctx context.Context, from, to time.Time) ([]model.Expense, error)
	List(ctx context.Context) ([]model.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB
}

type expenseRepo struct{ db *gorm.DB }

func NewExpenseRepository(db *gorm.DB) ExpenseRepository { return &expenseRepo{db: db} }

func (r *expenseRepo) DB() *gorm.DB { return r.db }

func (r *expenseRepo) Create(ctx context.Context, tx *gorm.DB, e *model.Expense) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(e).Error
}

func (r *expenseRepo) ListRange(ctx context.Context, from, to time.Time) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) List(ctx context.Context) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Expense{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
