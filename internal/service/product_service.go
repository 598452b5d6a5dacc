package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/catcommerce/catcommerce-golang/internal/models"
	"github.com/catcommerce/catcommerce-golang/internal/repository"
)

const (
	maxProductNameLen = 200
	maxSKULen         = 100
)

// SearchResult is a page of products with the pagination math done.
type SearchResult struct {
	Products   []models.Product `json:"products"`
	TotalCount int64            `json:"totalCount"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int64            `json:"totalPages"`
}

// ProductService owns catalog validation and search orchestration.
type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	log        *zap.Logger
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, log *zap.Logger) *ProductService {
	return &ProductService{products: products, categories: categories, log: log}
}

// validate enforces the catalog field rules. The first violated rule is the
// one reported.
func (s *ProductService) validate(ctx context.Context, p *models.Product) error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return fmt.Errorf("product name is required: %w", ErrInvalidInput)
	}
	if len(name) > maxProductNameLen {
		return fmt.Errorf("product name exceeds %d characters: %w", maxProductNameLen, ErrInvalidInput)
	}
	sku := strings.TrimSpace(p.SKU)
	if sku == "" {
		return fmt.Errorf("sku is required: %w", ErrInvalidInput)
	}
	if len(sku) > maxSKULen {
		return fmt.Errorf("sku exceeds %d characters: %w", maxSKULen, ErrInvalidInput)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative: %w", ErrInvalidInput)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("stock quantity cannot be negative: %w", ErrInvalidInput)
	}
	if p.MinStockLevel < 0 {
		return fmt.Errorf("minimum stock level cannot be negative: %w", ErrInvalidInput)
	}

	if p.CategoryID != nil {
		category, err := s.categories.FindByID(ctx, *p.CategoryID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("category does not exist: %w", ErrInvalidInput)
			}
			s.log.Error("category lookup failed", zap.Int64("categoryId", *p.CategoryID), zap.Error(err))
			return ErrStorage
		}
		if !category.IsActive {
			return fmt.Errorf("category is not active: %w", ErrInvalidInput)
		}
	}

	p.Name = name
	p.SKU = sku
	return nil
}

// skuTaken checks SKU uniqueness across all products, active or not. Creates
// need only existence; updates load the holder to allow self-collision.
func (s *ProductService) skuTaken(ctx context.Context, sku string, excludeID int64) (bool, error) {
	if excludeID == 0 {
		taken, err := s.products.ExistsBySKU(ctx, sku)
		if err != nil {
			s.log.Error("sku lookup failed", zap.String("sku", sku), zap.Error(err))
			return false, ErrStorage
		}
		return taken, nil
	}

	existing, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		s.log.Error("sku lookup failed", zap.String("sku", sku), zap.Error(err))
		return false, ErrStorage
	}
	return existing.ID != excludeID, nil
}

func (s *ProductService) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}

	taken, err := s.skuTaken(ctx, p.SKU, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("sku %q already exists: %w", p.SKU, ErrConflict)
	}

	p.IsActive = true
	id, err := s.products.Create(ctx, p)
	if err != nil {
		s.log.Error("product create failed", zap.String("sku", p.SKU), zap.Error(err))
		return nil, ErrStorage
	}

	s.log.Info("product created", zap.Int64("id", id), zap.String("sku", p.SKU))
	return s.GetByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	if p.ID <= 0 {
		return nil, fmt.Errorf("product id is required: %w", ErrInvalidInput)
	}
	if _, err := s.GetByID(ctx, p.ID); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}

	taken, err := s.skuTaken(ctx, p.SKU, p.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("sku %q already exists: %w", p.SKU, ErrConflict)
	}

	if err := s.products.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		s.log.Error("product update failed", zap.Int64("id", p.ID), zap.Error(err))
		return nil, ErrStorage
	}
	return s.GetByID(ctx, p.ID)
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("product id is required: %w", ErrInvalidInput)
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		s.log.Error("product lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, ErrStorage
	}
	return p, nil
}

func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, fmt.Errorf("sku is required: %w", ErrInvalidInput)
	}
	p, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		s.log.Error("sku lookup failed", zap.String("sku", sku), zap.Error(err))
		return nil, ErrStorage
	}
	return p, nil
}

// Delete marks the product inactive. Existing cart lines keep pointing at it
// and drop out of cart views lazily.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("product id is required: %w", ErrInvalidInput)
	}
	if err := s.products.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("product not found: %w", ErrNotFound)
		}
		s.log.Error("product delete failed", zap.Int64("id", id), zap.Error(err))
		return ErrStorage
	}
	s.log.Info("product deactivated", zap.Int64("id", id))
	return nil
}

// UpdateStock sets the absolute stock level, independent of a full update.
func (s *ProductService) UpdateStock(ctx context.Context, id int64, quantity int) error {
	if id <= 0 {
		return fmt.Errorf("product id is required: %w", ErrInvalidInput)
	}
	if quantity < 0 {
		return fmt.Errorf("stock quantity cannot be negative: %w", ErrInvalidInput)
	}
	if err := s.products.UpdateStock(ctx, id, quantity); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("product not found: %w", ErrNotFound)
		}
		s.log.Error("stock update failed", zap.Int64("id", id), zap.Error(err))
		return ErrStorage
	}
	s.log.Info("stock updated", zap.Int64("id", id), zap.Int("quantity", quantity))
	return nil
}

// List returns a page of active products plus the active total.
func (s *ProductService) List(ctx context.Context, page, pageSize int) (*SearchResult, error) {
	page, pageSize = clampPage(page, pageSize)

	items, err := s.products.ListActive(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		s.log.Error("product list failed", zap.Error(err))
		return nil, ErrStorage
	}
	total, err := s.products.CountActive(ctx)
	if err != nil {
		s.log.Error("product count failed", zap.Error(err))
		return nil, ErrStorage
	}
	return newSearchResult(items, total, page, pageSize), nil
}

func (s *ProductService) ListByCategory(ctx context.Context, categoryID int64, page, pageSize int) (*SearchResult, error) {
	if categoryID <= 0 {
		return nil, fmt.Errorf("category id is required: %w", ErrInvalidInput)
	}
	page, pageSize = clampPage(page, pageSize)

	items, err := s.products.ListByCategory(ctx, categoryID, pageSize, (page-1)*pageSize)
	if err != nil {
		s.log.Error("product list failed", zap.Int64("categoryId", categoryID), zap.Error(err))
		return nil, ErrStorage
	}
	total, err := s.products.CountActiveByCategory(ctx, categoryID)
	if err != nil {
		s.log.Error("product count failed", zap.Int64("categoryId", categoryID), zap.Error(err))
		return nil, ErrStorage
	}
	return newSearchResult(items, total, page, pageSize), nil
}

func (s *ProductService) Featured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit < 1 || limit > repository.MaxPageSize {
		limit = repository.DefaultPageSize
	}
	items, err := s.products.ListFeatured(ctx, limit)
	if err != nil {
		s.log.Error("featured list failed", zap.Error(err))
		return nil, ErrStorage
	}
	return items, nil
}

// Search runs the dynamic filter query and its matching count with one shared
// predicate set.
func (s *ProductService) Search(ctx context.Context, search repository.ProductSearch) (*SearchResult, error) {
	search.Normalize()

	items, err := s.products.Search(ctx, search)
	if err != nil {
		s.log.Error("product search failed", zap.Error(err))
		return nil, ErrStorage
	}
	total, err := s.products.CountSearch(ctx, search)
	if err != nil {
		s.log.Error("search count failed", zap.Error(err))
		return nil, ErrStorage
	}
	return newSearchResult(items, total, search.Page, search.PageSize), nil
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = repository.DefaultPage
	}
	if pageSize < 1 || pageSize > repository.MaxPageSize {
		pageSize = repository.DefaultPageSize
	}
	return page, pageSize
}

func newSearchResult(items []models.Product, total int64, page, pageSize int) *SearchResult {
	if items == nil {
		items = []models.Product{}
	}
	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}
	return &SearchResult{
		Products:   items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
