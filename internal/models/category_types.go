package models

import "time"

// Category is the model for the 'categories' table. Categories form a tree:
// ParentID nil means root.
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	ParentID    *int64    `json:"parentId,omitempty" db:"parent_id"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	SortOrder   int       `json:"sortOrder" db:"sort_order"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Populated only by the tree view.
	Children []Category `json:"children,omitempty" db:"-"`
}

// IsRoot reports whether the category sits at the top of the tree.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
