package repository

import (
	"context"
	"database/sql"

	"github.com/catcommerce/catcommerce-golang/internal/database"
	"github.com/catcommerce/catcommerce-golang/internal/models"
)

const categoryColumns = "id, name, slug, description, parent_id, image_url, sort_order, " +
	"is_active, created_at, updated_at"

// CategoryRepository is the category tree's storage contract.
type CategoryRepository interface {
	Create(ctx context.Context, c *models.Category) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, c *models.Category) error
	SoftDelete(ctx context.Context, id int64) error
	Roots(ctx context.Context) ([]models.Category, error)
	ChildrenOf(ctx context.Context, parentID int64) ([]models.Category, error)
	AllActive(ctx context.Context) ([]models.Category, error)
	CountActiveChildren(ctx context.Context, parentID int64) (int64, error)
}

type categoryRepo struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func scanCategory(row interface{ Scan(dest ...any) error }) (models.Category, error) {
	var c models.Category
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Description, &c.ParentID,
		&c.ImageURL, &c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) (int64, error) {
	query := `
		INSERT INTO categories
		(name, slug, description, parent_id, image_url, sort_order, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	return database.ExecuteInsert(ctx, r.db, query,
		c.Name, c.Slug, c.Description, c.ParentID, c.ImageURL, c.SortOrder, c.IsActive)
}

func (r *categoryRepo) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories WHERE id = ?"

	c, found, err := database.QuerySingle(ctx, r.db, scanCategory, query, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *categoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories WHERE slug = ? AND is_active = TRUE"

	c, found, err := database.QuerySingle(ctx, r.db, scanCategory, query, slug)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *categoryRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	return database.Exists(ctx, r.db,
		"SELECT 1 FROM categories WHERE name = ? AND id != ?", name, excludeID)
}

func (r *categoryRepo) Update(ctx context.Context, c *models.Category) error {
	query := `
		UPDATE categories SET name = ?, slug = ?, description = ?, parent_id = ?,
		image_url = ?, sort_order = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	rows, err := database.ExecuteUpdate(ctx, r.db, query,
		c.Name, c.Slug, c.Description, c.ParentID, c.ImageURL, c.SortOrder, c.IsActive, c.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryRepo) SoftDelete(ctx context.Context, id int64) error {
	rows, err := database.ExecuteUpdate(ctx, r.db,
		"UPDATE categories SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryRepo) Roots(ctx context.Context) ([]models.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories " +
		"WHERE is_active = TRUE AND parent_id IS NULL ORDER BY sort_order, name"
	return database.QueryList(ctx, r.db, scanCategory, query)
}

func (r *categoryRepo) ChildrenOf(ctx context.Context, parentID int64) ([]models.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories " +
		"WHERE is_active = TRUE AND parent_id = ? ORDER BY sort_order, name"
	return database.QueryList(ctx, r.db, scanCategory, query, parentID)
}

func (r *categoryRepo) AllActive(ctx context.Context) ([]models.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories " +
		"WHERE is_active = TRUE ORDER BY sort_order, name"
	return database.QueryList(ctx, r.db, scanCategory, query)
}

func (r *categoryRepo) CountActiveChildren(ctx context.Context, parentID int64) (int64, error) {
	return database.Count(ctx, r.db,
		"SELECT COUNT(*) FROM categories WHERE is_active = TRUE AND parent_id = ?", parentID)
}
