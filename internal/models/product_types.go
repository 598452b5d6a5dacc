package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the model for the 'products' table. Nullable columns use
// pointers so absent values serialize cleanly.
type Product struct {
	ID               int64           `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Description      string          `json:"description" db:"description"`
	ShortDescription string          `json:"shortDescription" db:"short_description"`
	SKU              string          `json:"sku" db:"sku"`
	Price            decimal.Decimal `json:"price" db:"price"`
	CostPrice        decimal.Decimal `json:"costPrice" db:"cost_price"`
	StockQuantity    int             `json:"stockQuantity" db:"stock_quantity"`
	MinStockLevel    int             `json:"minStockLevel" db:"min_stock_level"`
	CategoryID       *int64          `json:"categoryId,omitempty" db:"category_id"`
	ImageURL         *string         `json:"imageUrl,omitempty" db:"image_url"`
	Images           ImageList       `json:"images" db:"images"`
	Weight           *decimal.Decimal `json:"weight,omitempty" db:"weight"`
	Dimensions       *string         `json:"dimensions,omitempty" db:"dimensions"`
	IsActive         bool            `json:"isActive" db:"is_active"`
	IsFeatured       bool            `json:"isFeatured" db:"is_featured"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time       `json:"updatedAt" db:"updated_at"`

	// Joined, not a column.
	Category *Category `json:"category,omitempty" db:"-"`
}

// InStock reports whether any units are available.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// LowStock reports whether stock has fallen to the reorder threshold.
func (p *Product) LowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}

// ImageList is a []string stored as a JSON column. It replaces ad-hoc string
// parsing of the image array with a real codec.
type ImageList []string

func (l *ImageList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("images: cannot scan %T", src)
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(raw, l)
}

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
