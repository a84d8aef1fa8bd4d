package repository

import (
	"context"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	ListActive(ctx context.Context) ([]model.Product, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	// AdjustStock decrements stock by quantity (negative quantity restores).
	// Products without inventory control are left untouched; stock never
	// drops below zero.
	AdjustStock(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error
	ListLowStock(ctx context.Context) ([]model.Product, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) ListActive(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Where("is_active = true").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND is_active = true", categoryID).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) AdjustStock(ctx context.Context, tx *gorm.DB, id uuid.UUID, quantity int) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND has_inventory_control = true", id).
		Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", quantity)).Error
}

func (r *productRepo) ListLowStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("is_active = true AND has_inventory_control = true AND stock <= min_stock").
		Find(&products).Error
	return products, err
}
