package repository

import (
	"context"
	"database/sql"

	"github.com/catcommerce/catcommerce-golang/internal/database"
	"github.com/catcommerce/catcommerce-golang/internal/models"
)

const cartColumns = "id, customer_id, product_id, quantity, created_at, updated_at"

// CartRepository is the shopping cart storage contract. Rows are keyed by
// (customer_id, product_id); concurrent writes to the same pair collapse onto
// one row through the upsert.
type CartRepository interface {
	FindByCustomerAndProduct(ctx context.Context, customerID, productID int64) (*models.CartItem, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.CartItem, error)
	Upsert(ctx context.Context, customerID, productID int64, quantity int) error
	UpdateQuantity(ctx context.Context, customerID, productID int64, quantity int) error
	Remove(ctx context.Context, customerID, productID int64) error
	Clear(ctx context.Context, customerID int64) (int64, error)
	TotalQuantity(ctx context.Context, customerID int64) (int64, error)
}

type cartRepo struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) CartRepository {
	return &cartRepo{db: db}
}

func scanCartItem(row interface{ Scan(dest ...any) error }) (models.CartItem, error) {
	var item models.CartItem
	err := row.Scan(
		&item.ID, &item.CustomerID, &item.ProductID, &item.Quantity,
		&item.CreatedAt, &item.UpdatedAt,
	)
	return item, err
}

func (r *cartRepo) FindByCustomerAndProduct(ctx context.Context, customerID, productID int64) (*models.CartItem, error) {
	query := "SELECT " + cartColumns + " FROM shopping_cart WHERE customer_id = ? AND product_id = ?"

	item, found, err := database.QuerySingle(ctx, r.db, scanCartItem, query, customerID, productID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (r *cartRepo) ListByCustomer(ctx context.Context, customerID int64) ([]models.CartItem, error) {
	query := "SELECT " + cartColumns + " FROM shopping_cart WHERE customer_id = ? ORDER BY created_at"
	return database.QueryList(ctx, r.db, scanCartItem, query, customerID)
}

// Upsert writes the absolute quantity for the pair, inserting the row if it
// does not exist. The unique key makes racing inserts converge on one row.
func (r *cartRepo) Upsert(ctx context.Context, customerID, productID int64, quantity int) error {
	query := `
		INSERT INTO shopping_cart (customer_id, product_id, quantity)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = VALUES(quantity), updated_at = CURRENT_TIMESTAMP`

	_, err := database.ExecuteUpdate(ctx, r.db, query, customerID, productID, quantity)
	return err
}

func (r *cartRepo) UpdateQuantity(ctx context.Context, customerID, productID int64, quantity int) error {
	query := `
		UPDATE shopping_cart SET quantity = ?, updated_at = CURRENT_TIMESTAMP
		WHERE customer_id = ? AND product_id = ?`

	rows, err := database.ExecuteUpdate(ctx, r.db, query, quantity, customerID, productID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *cartRepo) Remove(ctx context.Context, customerID, productID int64) error {
	rows, err := database.ExecuteUpdate(ctx, r.db,
		"DELETE FROM shopping_cart WHERE customer_id = ? AND product_id = ?", customerID, productID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear deletes all of the customer's rows and reports how many went away.
func (r *cartRepo) Clear(ctx context.Context, customerID int64) (int64, error) {
	return database.ExecuteUpdate(ctx, r.db,
		"DELETE FROM shopping_cart WHERE customer_id = ?", customerID)
}

func (r *cartRepo) TotalQuantity(ctx context.Context, customerID int64) (int64, error) {
	return database.Count(ctx, r.db,
		"SELECT COALESCE(SUM(quantity), 0) FROM shopping_cart WHERE customer_id = ?", customerID)
}
