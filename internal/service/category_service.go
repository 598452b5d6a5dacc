package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/catcommerce/catcommerce-golang/internal/models"
	"github.com/catcommerce/catcommerce-golang/internal/repository"
)

const maxCategoryNameLen = 100

// CategoryService owns the category tree: creation, updates, tree reads, and
// the delete constraints that keep the tree referentially sound.
type CategoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	log        *zap.Logger
}

func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository, log *zap.Logger) *CategoryService {
	return &CategoryService{categories: categories, products: products, log: log}
}

func (s *CategoryService) validate(ctx context.Context, c *models.Category) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("category name is required: %w", ErrInvalidInput)
	}
	if len(name) > maxCategoryNameLen {
		return fmt.Errorf("category name exceeds %d characters: %w", maxCategoryNameLen, ErrInvalidInput)
	}

	if c.ParentID != nil {
		if c.ID > 0 && *c.ParentID == c.ID {
			return fmt.Errorf("category cannot be its own parent: %w", ErrInvalidInput)
		}
		parent, err := s.categories.FindByID(ctx, *c.ParentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("parent category does not exist: %w", ErrInvalidInput)
			}
			s.log.Error("category lookup failed", zap.Int64("categoryId", *c.ParentID), zap.Error(err))
			return ErrStorage
		}
		if !parent.IsActive {
			return fmt.Errorf("parent category is not active: %w", ErrInvalidInput)
		}
	}

	c.Name = name
	return nil
}

func (s *CategoryService) nameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	taken, err := s.categories.ExistsByName(ctx, name, excludeID)
	if err != nil {
		s.log.Error("category name check failed", zap.String("name", name), zap.Error(err))
		return false, ErrStorage
	}
	return taken, nil
}

func (s *CategoryService) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	if err := s.validate(ctx, c); err != nil {
		return nil, err
	}

	taken, err := s.nameTaken(ctx, c.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("category %q already exists: %w", c.Name, ErrConflict)
	}

	c.Slug = slug.Make(c.Name)
	c.IsActive = true
	id, err := s.categories.Create(ctx, c)
	if err != nil {
		s.log.Error("category create failed", zap.String("name", c.Name), zap.Error(err))
		return nil, ErrStorage
	}

	s.log.Info("category created", zap.Int64("id", id), zap.String("name", c.Name))
	return s.GetByID(ctx, id)
}

func (s *CategoryService) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	if c.ID <= 0 {
		return nil, fmt.Errorf("category id is required: %w", ErrInvalidInput)
	}
	current, err := s.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, c); err != nil {
		return nil, err
	}
	// The active flag only moves through Delete; an update must not
	// resurrect a soft-deleted category.
	c.IsActive = current.IsActive

	taken, err := s.nameTaken(ctx, c.Name, c.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("category %q already exists: %w", c.Name, ErrConflict)
	}

	c.Slug = slug.Make(c.Name)
	if err := s.categories.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("category not found: %w", ErrNotFound)
		}
		s.log.Error("category update failed", zap.Int64("id", c.ID), zap.Error(err))
		return nil, ErrStorage
	}
	return s.GetByID(ctx, c.ID)
}

// Delete soft-deletes a category. A category still carrying active children
// or active products cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("category id is required: %w", ErrInvalidInput)
	}
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	children, err := s.categories.CountActiveChildren(ctx, id)
	if err != nil {
		s.log.Error("child count failed", zap.Int64("id", id), zap.Error(err))
		return ErrStorage
	}
	if children > 0 {
		return fmt.Errorf("category has active subcategories: %w", ErrConflict)
	}

	productCount, err := s.products.CountActiveByCategory(ctx, id)
	if err != nil {
		s.log.Error("product count failed", zap.Int64("id", id), zap.Error(err))
		return ErrStorage
	}
	if productCount > 0 {
		return fmt.Errorf("category has active products: %w", ErrConflict)
	}

	if err := s.categories.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("category not found: %w", ErrNotFound)
		}
		s.log.Error("category delete failed", zap.Int64("id", id), zap.Error(err))
		return ErrStorage
	}
	s.log.Info("category deactivated", zap.Int64("id", id))
	return nil
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	if id <= 0 {
		return nil, fmt.Errorf("category id is required: %w", ErrInvalidInput)
	}
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("category not found: %w", ErrNotFound)
		}
		s.log.Error("category lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, ErrStorage
	}
	return c, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	categorySlug = strings.TrimSpace(categorySlug)
	if categorySlug == "" {
		return nil, fmt.Errorf("category slug is required: %w", ErrInvalidInput)
	}
	c, err := s.categories.FindBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("category not found: %w", ErrNotFound)
		}
		s.log.Error("category lookup failed", zap.String("slug", categorySlug), zap.Error(err))
		return nil, ErrStorage
	}
	return c, nil
}

// Tree builds the full active category tree from a single flat read.
func (s *CategoryService) Tree(ctx context.Context) ([]models.Category, error) {
	all, err := s.categories.AllActive(ctx)
	if err != nil {
		s.log.Error("category list failed", zap.Error(err))
		return nil, ErrStorage
	}

	byParent := make(map[int64][]models.Category)
	var roots []models.Category
	for _, c := range all {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}

	var attach func(c *models.Category)
	attach = func(c *models.Category) {
		c.Children = byParent[c.ID]
		for i := range c.Children {
			attach(&c.Children[i])
		}
	}
	for i := range roots {
		attach(&roots[i])
	}
	if roots == nil {
		roots = []models.Category{}
	}
	return roots, nil
}

func (s *CategoryService) Roots(ctx context.Context) ([]models.Category, error) {
	roots, err := s.categories.Roots(ctx)
	if err != nil {
		s.log.Error("category list failed", zap.Error(err))
		return nil, ErrStorage
	}
	return roots, nil
}

// Path walks parent links from the category up to its root and returns the
// chain root-first, for breadcrumb rendering.
func (s *CategoryService) Path(ctx context.Context, id int64) ([]models.Category, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	path := []models.Category{*current}
	// Parent chains are short; a corrupted cycle still terminates.
	for depth := 0; current.ParentID != nil && depth < 32; depth++ {
		current, err = s.GetByID(ctx, *current.ParentID)
		if err != nil {
			return nil, err
		}
		path = append([]models.Category{*current}, path...)
	}
	return path, nil
}

func (s *CategoryService) Children(ctx context.Context, parentID int64) ([]models.Category, error) {
	if parentID <= 0 {
		return nil, fmt.Errorf("category id is required: %w", ErrInvalidInput)
	}
	if _, err := s.GetByID(ctx, parentID); err != nil {
		return nil, err
	}
	children, err := s.categories.ChildrenOf(ctx, parentID)
	if err != nil {
		s.log.Error("category list failed", zap.Int64("parentId", parentID), zap.Error(err))
		return nil, ErrStorage
	}
	return children, nil
}
