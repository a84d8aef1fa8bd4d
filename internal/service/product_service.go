package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/dto"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/model"
	"github.com/IngMapache-Coder/Sistema-POS-Mar-de-Sabores/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	menuCacheKey = "menu:active"
	menuCacheTTL = 5 * time.Minute
)

// ProductService manages the menu catalog. The active menu is cached in Redis
// because the POS grid polls it constantly; any catalog mutation invalidates
// the cache.
type ProductService interface {
	Create(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	Menu(ctx context.Context) ([]dto.ProductResponse, error)
	List(ctx context.Context) ([]dto.ProductResponse, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	LowStock(ctx context.Context) ([]dto.LowStockResponse, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      *redis.Client
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, cache *redis.Client) ProductService {
	return &productService{products: products, categories: categories, cache: cache}
}

func (s *productService) Create(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("create product: invalid category id %q", req.CategoryID)
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("create product: category: %w", err)
	}

	product := &model.Product{
		Name:                req.Name,
		Price:               req.Price,
		CategoryID:          categoryID,
		Stock:               req.Stock,
		MinStock:            req.MinStock,
		HasInventoryControl: req.HasInventoryControl,
		IsActive:            true,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.invalidateMenu(ctx)
	return productToResponse(product), nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("update product: invalid category id %q", req.CategoryID)
	}

	product.Name = req.Name
	product.Price = req.Price
	product.CategoryID = categoryID
	product.Stock = req.Stock
	product.MinStock = req.MinStock
	product.HasInventoryControl = req.HasInventoryControl
	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.invalidateMenu(ctx)
	return productToResponse(product), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productToResponse(product), nil
}

func (s *productService) Menu(ctx context.Context) ([]dto.ProductResponse, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, menuCacheKey).Bytes(); err == nil {
			var cached []dto.ProductResponse
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("menu: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}

	if s.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, menuCacheKey, raw, menuCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("failed to cache menu")
			}
		}
	}
	return out, nil
}

// List returns the whole catalog, deactivated products included.
func (s *productService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]dto.ProductResponse, error) {
	products, err := s.products.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Deactivate(ctx, id); err != nil {
		return err
	}
	s.invalidateMenu(ctx)
	return nil
}

func (s *productService) LowStock(ctx context.Context) ([]dto.LowStockResponse, error) {
	products, err := s.products.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	out := make([]dto.LowStockResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		suggested := p.MinStock*2 - p.Stock
		if suggested < p.MinStock {
			suggested = p.MinStock
		}
		out = append(out, dto.LowStockResponse{
			ProductID:      p.ID.String(),
			ProductName:    p.Name,
			CurrentStock:   p.Stock,
			MinStock:       p.MinStock,
			SuggestedOrder: suggested,
		})
	}
	return out, nil
}

func (s *productService) invalidateMenu(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, menuCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate menu cache")
	}
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                  p.ID.String(),
		Name:                p.Name,
		Price:               p.Price,
		CategoryID:          p.CategoryID.String(),
		Stock:               p.Stock,
		MinStock:            p.MinStock,
		HasInventoryControl: p.HasInventoryControl,
		IsActive:            p.IsActive,
	}
}
