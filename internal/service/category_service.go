package service

import (
	"context"
	"fmt"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/repository"

	"github.com/google/uuid"
)

type CategoryService interface {
	Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.CategoryRequest) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository) CategoryService {
	return &categoryService{categories: categories, products: products}
}

func (s *categoryService) Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category := &model.Category{
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.Order,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return categoryToResponse(category), nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	category.Name = req.Name
	category.Color = req.Color
	category.SortOrder = req.Order
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return categoryToResponse(category), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, *categoryToResponse(&categories[i]))
	}
	return out, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	// A category with active products cannot be removed; the POS grid would
	// lose those products.
	products, err := s.products.ListByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if len(products) > 0 {
		return fmt.Errorf("delete category: %d active products still assigned", len(products))
	}
	return s.categories.Delete(ctx, id)
}

func categoryToResponse(c *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:    c.ID.String(),
		Name:  c.Name,
		Color: c.Color,
		Order: c.SortOrder,
	}
}
