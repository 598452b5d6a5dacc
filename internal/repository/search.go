package repository

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Search defaults and bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// sortColumns is the allow-list for ORDER BY. Anything else falls back to
// created_at. User input never reaches the SQL text directly.
var sortColumns = map[string]string{
	"price":      "price",
	"created_at": "created_at",
	"name":       "name",
}

// ProductSearch describes one catalog search. Nil/empty optional fields
// impose no constraint; present ones AND together.
type ProductSearch struct {
	Keyword     string
	CategoryID  *int64
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStockOnly bool

	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// Normalize clamps paging and pins sorting to the allow-list. Invalid page
// sizes fall back to the default, not the nearest bound.
func (s *ProductSearch) Normalize() {
	if s.Page < 1 {
		s.Page = DefaultPage
	}
	if s.PageSize < 1 || s.PageSize > MaxPageSize {
		s.PageSize = DefaultPageSize
	}
	if _, ok := sortColumns[s.SortBy]; !ok {
		s.SortBy = "created_at"
	}
	if !strings.EqualFold(s.SortOrder, "ASC") {
		s.SortOrder = "DESC"
	} else {
		s.SortOrder = "ASC"
	}
}

// Offset is the row offset for the normalized page.
func (s *ProductSearch) Offset() int {
	return (s.Page - 1) * s.PageSize
}

// whereClause renders the predicate set shared by the select and count
// queries. Both must see identical predicates and parameters.
func (s *ProductSearch) whereClause() (string, []any) {
	var sb strings.Builder
	var args []any

	sb.WriteString(" WHERE is_active = TRUE")

	if kw := strings.TrimSpace(s.Keyword); kw != "" {
		sb.WriteString(" AND (name LIKE ? OR description LIKE ? OR short_description LIKE ?)")
		pattern := "%" + kw + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if s.CategoryID != nil {
		sb.WriteString(" AND category_id = ?")
		args = append(args, *s.CategoryID)
	}
	if s.MinPrice != nil {
		sb.WriteString(" AND price >= ?")
		args = append(args, *s.MinPrice)
	}
	if s.MaxPrice != nil {
		sb.WriteString(" AND price <= ?")
		args = append(args, *s.MaxPrice)
	}
	if s.InStockOnly {
		sb.WriteString(" AND stock_quantity > 0")
	}

	return sb.String(), args
}

// SelectQuery renders the paged select for this search. Call Normalize first.
func (s *ProductSearch) SelectQuery() (string, []any) {
	where, args := s.whereClause()

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(productColumns)
	sb.WriteString(" FROM products")
	sb.WriteString(where)
	sb.WriteString(" ORDER BY ")
	sb.WriteString(sortColumns[s.SortBy])
	sb.WriteString(" ")
	sb.WriteString(s.SortOrder)
	sb.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, s.PageSize, s.Offset())

	return sb.String(), args
}

// CountQuery renders the matching-row count with the identical predicate set.
func (s *ProductSearch) CountQuery() (string, []any) {
	where, args := s.whereClause()
	return "SELECT COUNT(*) FROM products" + where, args
}
