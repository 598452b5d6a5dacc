package repository

import (
	"context"
	"database/sql"

	"github.com/catcommerce/catcommerce-golang/internal/database"
	"github.com/catcommerce/catcommerce-golang/internal/models"
)

const productColumns = "id, name, description, short_description, sku, price, cost_price, " +
	"stock_quantity, min_stock_level, category_id, image_url, images, weight, dimensions, " +
	"is_active, is_featured, created_at, updated_at"

// ProductRepository is the catalog's product storage contract.
type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	FindBySKU(ctx context.Context, sku string) (*models.Product, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	Update(ctx context.Context, p *models.Product) error
	SoftDelete(ctx context.Context, id int64) error
	UpdateStock(ctx context.Context, id int64, quantity int) error
	ListActive(ctx context.Context, limit, offset int) ([]models.Product, error)
	ListByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]models.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Product, error)
	CountActive(ctx context.Context) (int64, error)
	CountActiveByCategory(ctx context.Context, categoryID int64) (int64, error)
	Search(ctx context.Context, s ProductSearch) ([]models.Product, error)
	CountSearch(ctx context.Context, s ProductSearch) (int64, error)
}

type productRepo struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepo{db: db}
}

func scanProduct(row interface{ Scan(dest ...any) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.ShortDescription, &p.SKU,
		&p.Price, &p.CostPrice, &p.StockQuantity, &p.MinStockLevel,
		&p.CategoryID, &p.ImageURL, &p.Images, &p.Weight, &p.Dimensions,
		&p.IsActive, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) (int64, error) {
	query := `
		INSERT INTO products
		(name, description, short_description, sku, price, cost_price,
		stock_quantity, min_stock_level, category_id, image_url, images,
		weight, dimensions, is_active, is_featured)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return database.ExecuteInsert(ctx, r.db, query,
		p.Name, p.Description, p.ShortDescription, p.SKU, p.Price, p.CostPrice,
		p.StockQuantity, p.MinStockLevel, p.CategoryID, p.ImageURL, p.Images,
		p.Weight, p.Dimensions, p.IsActive, p.IsFeatured)
}

func (r *productRepo) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = ?"

	p, found, err := database.QuerySingle(ctx, r.db, scanProduct, query, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE sku = ?"

	p, found, err := database.QuerySingle(ctx, r.db, scanProduct, query, sku)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *productRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	return database.Exists(ctx, r.db, "SELECT 1 FROM products WHERE sku = ?", sku)
}

func (r *productRepo) Update(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products SET name = ?, description = ?, short_description = ?, sku = ?,
		price = ?, cost_price = ?, stock_quantity = ?, min_stock_level = ?, category_id = ?,
		image_url = ?, images = ?, weight = ?, dimensions = ?, is_active = ?, is_featured = ?,
		updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	rows, err := database.ExecuteUpdate(ctx, r.db, query,
		p.Name, p.Description, p.ShortDescription, p.SKU, p.Price, p.CostPrice,
		p.StockQuantity, p.MinStockLevel, p.CategoryID, p.ImageURL, p.Images,
		p.Weight, p.Dimensions, p.IsActive, p.IsFeatured, p.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) SoftDelete(ctx context.Context, id int64) error {
	rows, err := database.ExecuteUpdate(ctx, r.db,
		"UPDATE products SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) UpdateStock(ctx context.Context, id int64, quantity int) error {
	rows, err := database.ExecuteUpdate(ctx, r.db,
		"UPDATE products SET stock_quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		quantity, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) ListActive(ctx context.Context, limit, offset int) ([]models.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE is_active = TRUE " +
		"ORDER BY created_at DESC LIMIT ? OFFSET ?"
	return database.QueryList(ctx, r.db, scanProduct, query, limit, offset)
}

func (r *productRepo) ListByCategory(ctx context.Context, categoryID int64, limit, offset int) ([]models.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE is_active = TRUE AND category_id = ? " +
		"ORDER BY created_at DESC LIMIT ? OFFSET ?"
	return database.QueryList(ctx, r.db, scanProduct, query, categoryID, limit, offset)
}

func (r *productRepo) ListFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE is_active = TRUE AND is_featured = TRUE " +
		"ORDER BY created_at DESC LIMIT ?"
	return database.QueryList(ctx, r.db, scanProduct, query, limit)
}

func (r *productRepo) CountActive(ctx context.Context) (int64, error) {
	return database.Count(ctx, r.db, "SELECT COUNT(*) FROM products WHERE is_active = TRUE")
}

func (r *productRepo) CountActiveByCategory(ctx context.Context, categoryID int64) (int64, error) {
	return database.Count(ctx, r.db,
		"SELECT COUNT(*) FROM products WHERE is_active = TRUE AND category_id = ?", categoryID)
}

func (r *productRepo) Search(ctx context.Context, s ProductSearch) ([]models.Product, error) {
	query, args := s.SelectQuery()
	return database.QueryList(ctx, r.db, scanProduct, query, args...)
}

func (r *productRepo) CountSearch(ctx context.Context, s ProductSearch) (int64, error) {
	query, args := s.CountQuery()
	return database.Count(ctx, r.db, query, args...)
}
