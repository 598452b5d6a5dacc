package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/catcommerce/catcommerce-golang/internal/models"
	"github.com/catcommerce/catcommerce-golang/internal/repository"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	alnumPattern    = regexp.MustCompile(`[a-zA-Z0-9]`)
)

const minPasswordLen = 6

// genericLoginMessage is returned for every credential failure, whether the
// account exists or not.
const genericLoginMessage = "invalid username or password"

// CustomerService owns account registration, authentication, and profile
// maintenance.
type CustomerService struct {
	customers repository.CustomerRepository
	log       *zap.Logger
}

func NewCustomerService(customers repository.CustomerRepository, log *zap.Logger) *CustomerService {
	return &CustomerService{customers: customers, log: log}
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, ErrInvalidInput)
	}
	if !alnumPattern.MatchString(password) {
		return fmt.Errorf("password must contain a letter or digit: %w", ErrInvalidInput)
	}
	return nil
}

// Register creates a customer account. The plaintext password is hashed
// before the model ever reaches the repository.
func (s *CustomerService) Register(ctx context.Context, c *models.Customer, password string) (*models.Customer, error) {
	c.Username = strings.TrimSpace(c.Username)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)

	if !usernamePattern.MatchString(c.Username) {
		return nil, fmt.Errorf("username must be 3-50 letters, digits or underscores: %w", ErrInvalidInput)
	}
	if !emailPattern.MatchString(c.Email) {
		return nil, fmt.Errorf("email address is invalid: %w", ErrInvalidInput)
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if c.FirstName == "" {
		return nil, fmt.Errorf("first name is required: %w", ErrInvalidInput)
	}
	if c.LastName == "" {
		return nil, fmt.Errorf("last name is required: %w", ErrInvalidInput)
	}

	taken, err := s.customers.ExistsByUsername(ctx, c.Username, 0)
	if err != nil {
		s.log.Error("username check failed", zap.String("username", c.Username), zap.Error(err))
		return nil, ErrStorage
	}
	if taken {
		return nil, fmt.Errorf("username %q already exists: %w", c.Username, ErrConflict)
	}

	taken, err = s.customers.ExistsByEmail(ctx, c.Email, 0)
	if err != nil {
		s.log.Error("email check failed", zap.String("email", c.Email), zap.Error(err))
		return nil, ErrStorage
	}
	if taken {
		return nil, fmt.Errorf("email %q already exists: %w", c.Email, ErrConflict)
	}

	var pw models.Password
	if err := pw.Set(password); err != nil {
		s.log.Error("password hashing failed", zap.Error(err))
		return nil, ErrStorage
	}
	c.PasswordHash = pw.Hash
	if c.Role == "" {
		c.Role = models.RoleCustomer
	}
	c.IsActive = true

	id, err := s.customers.Create(ctx, c)
	if err != nil {
		s.log.Error("customer create failed", zap.String("username", c.Username), zap.Error(err))
		return nil, ErrStorage
	}

	s.log.Info("customer registered", zap.Int64("id", id), zap.String("username", c.Username))
	return s.GetByID(ctx, id)
}

// Login resolves the identifier as a username first, then as an email, and
// verifies the password. All credential failures share one message so callers
// cannot probe which accounts exist.
func (s *CustomerService) Login(ctx context.Context, identifier, password string) (*models.Customer, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", ErrInvalidInput)
	}

	customer, err := s.customers.FindByUsername(ctx, identifier)
	if errors.Is(err, repository.ErrNotFound) {
		customer, err = s.customers.FindByEmail(ctx, strings.ToLower(identifier))
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", genericLoginMessage, ErrUnauthorized)
		}
		s.log.Error("customer lookup failed", zap.Error(err))
		return nil, ErrStorage
	}

	pw := models.Password{Hash: customer.PasswordHash}
	match, err := pw.Matches(password)
	if err != nil {
		s.log.Error("password verification failed", zap.Int64("customerId", customer.ID), zap.Error(err))
		return nil, ErrStorage
	}
	if !match {
		return nil, fmt.Errorf("%s: %w", genericLoginMessage, ErrUnauthorized)
	}
	if !customer.IsActive {
		return nil, fmt.Errorf("account is disabled: %w", ErrAccountDisabled)
	}

	s.log.Info("customer logged in", zap.Int64("id", customer.ID))
	return customer, nil
}

// ChangePassword re-verifies the current password before accepting a new one.
func (s *CustomerService) ChangePassword(ctx context.Context, customerID int64, currentPassword, newPassword string) error {
	if customerID <= 0 {
		return fmt.Errorf("customer id is required: %w", ErrInvalidInput)
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	customer, err := s.GetByID(ctx, customerID)
	if err != nil {
		return err
	}

	pw := models.Password{Hash: customer.PasswordHash}
	match, err := pw.Matches(currentPassword)
	if err != nil {
		s.log.Error("password verification failed", zap.Int64("customerId", customerID), zap.Error(err))
		return ErrStorage
	}
	if !match {
		return fmt.Errorf("current password is incorrect: %w", ErrUnauthorized)
	}

	var next models.Password
	if err := next.Set(newPassword); err != nil {
		s.log.Error("password hashing failed", zap.Error(err))
		return ErrStorage
	}
	if err := s.customers.UpdatePassword(ctx, customerID, next.Hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("customer not found: %w", ErrNotFound)
		}
		s.log.Error("password update failed", zap.Int64("customerId", customerID), zap.Error(err))
		return ErrStorage
	}
	s.log.Info("password changed", zap.Int64("customerId", customerID))
	return nil
}

// UpdateProfile changes name, phone, and email. Username and role are not
// editable through this path.
func (s *CustomerService) UpdateProfile(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	if c.ID <= 0 {
		return nil, fmt.Errorf("customer id is required: %w", ErrInvalidInput)
	}

	current, err := s.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)

	if !emailPattern.MatchString(c.Email) {
		return nil, fmt.Errorf("email address is invalid: %w", ErrInvalidInput)
	}
	if c.FirstName == "" {
		return nil, fmt.Errorf("first name is required: %w", ErrInvalidInput)
	}
	if c.LastName == "" {
		return nil, fmt.Errorf("last name is required: %w", ErrInvalidInput)
	}

	if c.Email != current.Email {
		taken, err := s.customers.ExistsByEmail(ctx, c.Email, c.ID)
		if err != nil {
			s.log.Error("email check failed", zap.String("email", c.Email), zap.Error(err))
			return nil, ErrStorage
		}
		if taken {
			return nil, fmt.Errorf("email %q already exists: %w", c.Email, ErrConflict)
		}
	}

	current.Email = c.Email
	current.FirstName = c.FirstName
	current.LastName = c.LastName
	current.Phone = c.Phone

	if err := s.customers.Update(ctx, current); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("customer not found: %w", ErrNotFound)
		}
		s.log.Error("customer update failed", zap.Int64("id", c.ID), zap.Error(err))
		return nil, ErrStorage
	}
	return s.GetByID(ctx, c.ID)
}

func (s *CustomerService) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	if id <= 0 {
		return nil, fmt.Errorf("customer id is required: %w", ErrInvalidInput)
	}
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("customer not found: %w", ErrNotFound)
		}
		s.log.Error("customer lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, ErrStorage
	}
	return c, nil
}

func (s *CustomerService) Deactivate(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("customer id is required: %w", ErrInvalidInput)
	}
	if err := s.customers.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("customer not found: %w", ErrNotFound)
		}
		s.log.Error("customer deactivate failed", zap.Int64("id", id), zap.Error(err))
		return ErrStorage
	}
	s.log.Info("customer deactivated", zap.Int64("id", id))
	return nil
}

func (s *CustomerService) List(ctx context.Context, page, pageSize int) ([]models.Customer, int64, error) {
	page, pageSize = clampPage(page, pageSize)

	items, err := s.customers.ListActive(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		s.log.Error("customer list failed", zap.Error(err))
		return nil, 0, ErrStorage
	}
	total, err := s.customers.CountActive(ctx)
	if err != nil {
		s.log.Error("customer count failed", zap.Error(err))
		return nil, 0, ErrStorage
	}
	if items == nil {
		items = []models.Customer{}
	}
	return items, total, nil
}

func (s *CustomerService) Search(ctx context.Context, keyword string, page, pageSize int) ([]models.Customer, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("search keyword is required: %w", ErrInvalidInput)
	}
	page, pageSize = clampPage(page, pageSize)

	items, err := s.customers.Search(ctx, keyword, pageSize, (page-1)*pageSize)
	if err != nil {
		s.log.Error("customer search failed", zap.Error(err))
		return nil, ErrStorage
	}
	if items == nil {
		items = []models.Customer{}
	}
	return items, nil
}
