package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/catcommerce/catcommerce-golang/internal/models"
	"github.com/catcommerce/catcommerce-golang/internal/repository"
)

// CartService owns shopping cart state transitions: merge-on-add, stock
// validation, quantity mutation, and cart-wide checks.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	log      *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, log *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, log: log}
}

// availableProduct loads a product and rejects missing or inactive ones.
func (s *CartService) availableProduct(ctx context.Context, productID int64) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("product not found: %w", ErrNotFound)
		}
		s.log.Error("product lookup failed", zap.Int64("productId", productID), zap.Error(err))
		return nil, ErrStorage
	}
	if !p.IsActive {
		return nil, fmt.Errorf("product is not available: %w", ErrNotFound)
	}
	return p, nil
}

// AddToCart adds quantity of a product, merging onto an existing line if one
// exists. The stock check applies to the merged quantity; on failure the
// existing line is left untouched.
func (s *CartService) AddToCart(ctx context.Context, customerID, productID int64, quantity int) error {
	if customerID <= 0 || productID <= 0 {
		return fmt.Errorf("customer and product are required: %w", ErrInvalidInput)
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be greater than zero: %w", ErrInvalidInput)
	}

	product, err := s.availableProduct(ctx, productID)
	if err != nil {
		return err
	}
	if product.StockQuantity == 0 {
		return fmt.Errorf("product is out of stock: %w", ErrOutOfStock)
	}

	newQuantity := quantity
	existing, err := s.carts.FindByCustomerAndProduct(ctx, customerID, productID)
	switch {
	case err == nil:
		newQuantity = existing.Quantity + quantity
	case errors.Is(err, repository.ErrNotFound):
		// first add for this pair
	default:
		s.log.Error("cart lookup failed",
			zap.Int64("customerId", customerID), zap.Int64("productId", productID), zap.Error(err))
		return ErrStorage
	}

	if newQuantity > product.StockQuantity {
		return fmt.Errorf("only %d in stock: %w", product.StockQuantity, ErrInsufficientStock)
	}

	if err := s.carts.Upsert(ctx, customerID, productID, newQuantity); err != nil {
		s.log.Error("cart upsert failed",
			zap.Int64("customerId", customerID), zap.Int64("productId", productID), zap.Error(err))
		return ErrStorage
	}

	s.log.Info("cart item added",
		zap.Int64("customerId", customerID),
		zap.Int64("productId", productID),
		zap.Int("quantity", newQuantity))
	return nil
}

// UpdateQuantity overwrites a line's quantity. Zero removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, customerID, productID int64, quantity int) error {
	if customerID <= 0 || productID <= 0 {
		return fmt.Errorf("customer and product are required: %w", ErrInvalidInput)
	}
	if quantity < 0 {
		return fmt.Errorf("quantity cannot be negative: %w", ErrInvalidInput)
	}
	if quantity == 0 {
		return s.RemoveFromCart(ctx, customerID, productID)
	}

	if _, err := s.carts.FindByCustomerAndProduct(ctx, customerID, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("item not in cart: %w", ErrNotFound)
		}
		s.log.Error("cart lookup failed",
			zap.Int64("customerId", customerID), zap.Int64("productId", productID), zap.Error(err))
		return ErrStorage
	}

	product, err := s.availableProduct(ctx, productID)
	if err != nil {
		return err
	}
	if product.StockQuantity == 0 {
		return fmt.Errorf("product is out of stock: %w", ErrOutOfStock)
	}
	if quantity > product.StockQuantity {
		return fmt.Errorf("only %d in stock: %w", product.StockQuantity, ErrInsufficientStock)
	}

	if err := s.carts.UpdateQuantity(ctx, customerID, productID, quantity); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("item not in cart: %w", ErrNotFound)
		}
		s.log.Error("cart update failed",
			zap.Int64("customerId", customerID), zap.Int64("productId", productID), zap.Error(err))
		return ErrStorage
	}
	return nil
}

// RemoveFromCart deletes a line. Removing an absent line reports not found
// rather than failing hard, so repeated calls are safe.
func (s *CartService) RemoveFromCart(ctx context.Context, customerID, productID int64) error {
	if customerID <= 0 || productID <= 0 {
		return fmt.Errorf("customer and product are required: %w", ErrInvalidInput)
	}
	if err := s.carts.Remove(ctx, customerID, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("item not in cart: %w", ErrNotFound)
		}
		s.log.Error("cart remove failed",
			zap.Int64("customerId", customerID), zap.Int64("productId", productID), zap.Error(err))
		return ErrStorage
	}
	return nil
}

// ClearCart deletes every line for the customer. Clearing an empty cart
// reports not found so the caller can tell the two states apart.
func (s *CartService) ClearCart(ctx context.Context, customerID int64) error {
	if customerID <= 0 {
		return fmt.Errorf("customer is required: %w", ErrInvalidInput)
	}
	deleted, err := s.carts.Clear(ctx, customerID)
	if err != nil {
		s.log.Error("cart clear failed", zap.Int64("customerId", customerID), zap.Error(err))
		return ErrStorage
	}
	if deleted == 0 {
		return fmt.Errorf("cart is already empty: %w", ErrNotFound)
	}
	s.log.Info("cart cleared", zap.Int64("customerId", customerID), zap.Int64("items", deleted))
	return nil
}

// GetCart loads the cart with each line joined to its current product.
// Lines whose product has vanished or gone inactive are excluded from the
// view and its totals but stay in storage.
func (s *CartService) GetCart(ctx context.Context, customerID int64) (*models.Cart, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("customer is required: %w", ErrInvalidInput)
	}

	rows, err := s.carts.ListByCustomer(ctx, customerID)
	if err != nil {
		s.log.Error("cart list failed", zap.Int64("customerId", customerID), zap.Error(err))
		return nil, ErrStorage
	}

	cart := &models.Cart{Items: []models.CartItem{}}
	for _, item := range rows {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.log.Warn("cart line references missing product",
					zap.Int64("customerId", customerID), zap.Int64("productId", item.ProductID))
				continue
			}
			s.log.Error("product lookup failed", zap.Int64("productId", item.ProductID), zap.Error(err))
			return nil, ErrStorage
		}
		if !product.IsActive {
			s.log.Warn("cart line references inactive product",
				zap.Int64("customerId", customerID), zap.Int64("productId", item.ProductID))
			continue
		}

		item.Product = product
		cart.Items = append(cart.Items, item)
		cart.TotalQuantity += item.Quantity
		cart.TotalAmount = cart.TotalAmount.Add(item.Subtotal())
	}
	return cart, nil
}

// ItemCount is the sum of quantities across the customer's lines, stale rows
// included. Used for badge counts, not for checkout.
func (s *CartService) ItemCount(ctx context.Context, customerID int64) (int64, error) {
	if customerID <= 0 {
		return 0, fmt.Errorf("customer is required: %w", ErrInvalidInput)
	}
	count, err := s.carts.TotalQuantity(ctx, customerID)
	if err != nil {
		s.log.Error("cart count failed", zap.Int64("customerId", customerID), zap.Error(err))
		return 0, ErrStorage
	}
	return count, nil
}

// CheckStock scans the cart and fails on the first line whose product is
// missing, inactive, out of stock, or under-stocked for the line quantity.
// The error names the offending product.
func (s *CartService) CheckStock(ctx context.Context, customerID int64) error {
	return s.scanCart(ctx, customerID, true)
}

// ValidateCart is the pre-checkout gate. Same scan as CheckStock but the
// failure messages stay generic.
func (s *CartService) ValidateCart(ctx context.Context, customerID int64) error {
	return s.scanCart(ctx, customerID, false)
}

func (s *CartService) scanCart(ctx context.Context, customerID int64, nameProduct bool) error {
	if customerID <= 0 {
		return fmt.Errorf("customer is required: %w", ErrInvalidInput)
	}

	rows, err := s.carts.ListByCustomer(ctx, customerID)
	if err != nil {
		s.log.Error("cart list failed", zap.Int64("customerId", customerID), zap.Error(err))
		return ErrStorage
	}

	for _, item := range rows {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				if nameProduct {
					return fmt.Errorf("product %d is no longer available: %w", item.ProductID, ErrNotFound)
				}
				return fmt.Errorf("an item in the cart is no longer available: %w", ErrNotFound)
			}
			s.log.Error("product lookup failed", zap.Int64("productId", item.ProductID), zap.Error(err))
			return ErrStorage
		}
		if !product.IsActive {
			if nameProduct {
				return fmt.Errorf("product %q is no longer available: %w", product.Name, ErrNotFound)
			}
			return fmt.Errorf("an item in the cart is no longer available: %w", ErrNotFound)
		}
		if product.StockQuantity == 0 {
			if nameProduct {
				return fmt.Errorf("product %q is out of stock: %w", product.Name, ErrOutOfStock)
			}
			return fmt.Errorf("an item in the cart is out of stock: %w", ErrOutOfStock)
		}
		if item.Quantity > product.StockQuantity {
			if nameProduct {
				return fmt.Errorf("product %q has only %d in stock: %w",
					product.Name, product.StockQuantity, ErrInsufficientStock)
			}
			return fmt.Errorf("an item in the cart exceeds available stock: %w", ErrInsufficientStock)
		}
	}
	return nil
}
