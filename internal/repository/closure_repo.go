package repository

import (
	"context"
	"errors"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"

	"gorm.io/gorm"
)

// ClosureRepository persists daily closures. Insert and delete only — a
// closure row is never updated. The table carries a unique index on date;
// Create returns gorm.ErrDuplicatedKey when a closure for that date already
// exists, which the service treats as "someone else closed first".
type ClosureRepository interface {
	Create(ctx context.Context, tx *gorm.DB, c *model.DailyClosure) error
	FindByDate(ctx context.Context, date string) (*model.DailyClosure, error)
	ExistsForDate(ctx context.Context, date string) (bool, error)
	DeleteByDate(ctx context.Context, tx *gorm.DB, date string) error
	List(ctx context.Context) ([]model.DailyClosure, error)
	DB() *gorm.DB
}

type closureRepo struct{ db *gorm.DB }

func NewClosureRepository(db *gorm.DB) ClosureRepository { return &closureRepo{db: db} }

func (r *closureRepo) DB() *gorm.DB { return r.db }

func (r *closureRepo) Create(ctx context.Context, tx *gorm.DB, c *model.DailyClosure) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(c).Error
}

func (r *closureRepo) FindByDate(ctx context.Context, date string) (*model.DailyClosure, error) {
	var c model.DailyClosure
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *closureRepo) ExistsForDate(ctx context.Context, date string) (bool, error) {
	_, err := r.FindByDate(ctx, date)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (r *closureRepo) DeleteByDate(ctx context.Context, tx *gorm.DB, date string) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Where("date = ?", date).Delete(&model.DailyClosure{}).Error
}

func (r *closureRepo) List(ctx context.Context) ([]model.DailyClosure, error) {
	var closures []model.DailyClosure
	err := r.db.WithContext(ctx).Order("date DESC").Find(&closures).Error
	return closures, err
}
