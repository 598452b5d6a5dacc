package repository

import (
	"context"
	"database/sql"

	"github.com/catcommerce/catcommerce-golang/internal/database"
	"github.com/catcommerce/catcommerce-golang/internal/models"
)

const customerColumns = "id, username, email, password_hash, first_name, last_name, phone, " +
	"role, is_active, created_at, updated_at"

// CustomerRepository is the customer account storage contract.
type CustomerRepository interface {
	Create(ctx context.Context, c *models.Customer) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
	FindByUsername(ctx context.Context, username string) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, c *models.Customer) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Deactivate(ctx context.Context, id int64) error
	ListActive(ctx context.Context, limit, offset int) ([]models.Customer, error)
	Search(ctx context.Context, keyword string, limit, offset int) ([]models.Customer, error)
	CountActive(ctx context.Context) (int64, error)
}

type customerRepo struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepo{db: db}
}

func scanCustomer(row interface{ Scan(dest ...any) error }) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.ID, &c.Username, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName,
		&c.Phone, &c.Role, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *customerRepo) Create(ctx context.Context, c *models.Customer) (int64, error) {
	query := `
		INSERT INTO customers
		(username, email, password_hash, first_name, last_name, phone, role, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	return database.ExecuteInsert(ctx, r.db, query,
		c.Username, c.Email, c.PasswordHash, c.FirstName, c.LastName, c.Phone, c.Role, c.IsActive)
}

func (r *customerRepo) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	query := "SELECT " + customerColumns + " FROM customers WHERE id = ?"

	c, found, err := database.QuerySingle(ctx, r.db, scanCustomer, query, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *customerRepo) FindByUsername(ctx context.Context, username string) (*models.Customer, error) {
	query := "SELECT " + customerColumns + " FROM customers WHERE username = ?"

	c, found, err := database.QuerySingle(ctx, r.db, scanCustomer, query, username)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *customerRepo) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	query := "SELECT " + customerColumns + " FROM customers WHERE email = ?"

	c, found, err := database.QuerySingle(ctx, r.db, scanCustomer, query, email)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *customerRepo) ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	return database.Exists(ctx, r.db,
		"SELECT 1 FROM customers WHERE username = ? AND id != ?", username, excludeID)
}

func (r *customerRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	return database.Exists(ctx, r.db,
		"SELECT 1 FROM customers WHERE email = ? AND id != ?", email, excludeID)
}

func (r *customerRepo) Update(ctx context.Context, c *models.Customer) error {
	query := `
		UPDATE customers SET username = ?, email = ?, first_name = ?, last_name = ?,
		phone = ?, role = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	rows, err := database.ExecuteUpdate(ctx, r.db, query,
		c.Username, c.Email, c.FirstName, c.LastName, c.Phone, c.Role, c.IsActive, c.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	rows, err := database.ExecuteUpdate(ctx, r.db,
		"UPDATE customers SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		passwordHash, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepo) Deactivate(ctx context.Context, id int64) error {
	rows, err := database.ExecuteUpdate(ctx, r.db,
		"UPDATE customers SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepo) ListActive(ctx context.Context, limit, offset int) ([]models.Customer, error) {
	query := "SELECT " + customerColumns + " FROM customers WHERE is_active = TRUE " +
		"ORDER BY created_at DESC LIMIT ? OFFSET ?"
	return database.QueryList(ctx, r.db, scanCustomer, query, limit, offset)
}

func (r *customerRepo) Search(ctx context.Context, keyword string, limit, offset int) ([]models.Customer, error) {
	query := "SELECT " + customerColumns + " FROM customers " +
		"WHERE is_active = TRUE AND (username LIKE ? OR email LIKE ? OR first_name LIKE ? OR last_name LIKE ?) " +
		"ORDER BY created_at DESC LIMIT ? OFFSET ?"
	pattern := "%" + keyword + "%"
	return database.QueryList(ctx, r.db, scanCustomer, query,
		pattern, pattern, pattern, pattern, limit, offset)
}

func (r *customerRepo) CountActive(ctx context.Context) (int64, error) {
	return database.Count(ctx, r.db, "SELECT COUNT(*) FROM customers WHERE is_active = TRUE")
}
