package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of a customer's cart. (customer_id, product_id) is
// unique at the storage level; quantity is always > 0 for a persisted row.
type CartItem struct {
	ID         int64     `json:"id" db:"id"`
	CustomerID int64     `json:"customerId" db:"customer_id"`
	ProductID  int64     `json:"productId" db:"product_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	// Joined product, populated by the cart service. Nil for a stale row.
	Product *Product `json:"product,omitempty" db:"-"`
}

// Subtotal is quantity times the current product price. Zero when the product could
// not be joined.
func (i *CartItem) Subtotal() decimal.Decimal {
	if i.Product == nil {
		return decimal.Zero
	}
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the computed view of a customer's cart. Totals only cover lines
// whose product is still active and findable.
type Cart struct {
	Items         []CartItem      `json:"items"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}
