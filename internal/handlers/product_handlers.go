package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/catcommerce/catcommerce-golang/internal/models"
	"github.com/catcommerce/catcommerce-golang/internal/repository"
)

// ProductInput is the JSON body for create and update.
type ProductInput struct {
	Name             string           `json:"name" binding:"required"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"shortDescription"`
	SKU              string           `json:"sku" binding:"required"`
	Price            decimal.Decimal  `json:"price"`
	CostPrice        decimal.Decimal  `json:"costPrice"`
	StockQuantity    int              `json:"stockQuantity"`
	MinStockLevel    int              `json:"minStockLevel"`
	CategoryID       *int64           `json:"categoryId"`
	ImageURL         *string          `json:"imageUrl"`
	Images           models.ImageList `json:"images"`
	Weight           *decimal.Decimal `json:"weight"`
	Dimensions       *string          `json:"dimensions"`
	IsFeatured       bool             `json:"isFeatured"`
}

func (in *ProductInput) toModel() *models.Product {
	return &models.Product{
		Name:             in.Name,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		SKU:              in.SKU,
		Price:            in.Price,
		CostPrice:        in.CostPrice,
		StockQuantity:    in.StockQuantity,
		MinStockLevel:    in.MinStockLevel,
		CategoryID:       in.CategoryID,
		ImageURL:         in.ImageURL,
		Images:           in.Images,
		Weight:           in.Weight,
		Dimensions:       in.Dimensions,
		IsFeatured:       in.IsFeatured,
		IsActive:         true,
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

func (h *Handlers) ListProducts(c *gin.Context) {
	page := queryInt(c, "page", repository.DefaultPage)
	pageSize := queryInt(c, "pageSize", repository.DefaultPageSize)

	result, err := h.Products.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("products retrieved", result))
}

// SearchProducts builds a ProductSearch from query parameters. Unknown sort
// fields and out-of-range paging are normalized, not rejected.
func (h *Handlers) SearchProducts(c *gin.Context) {
	search := repository.ProductSearch{
		Keyword:     c.Query("keyword"),
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
		Page:        queryInt(c, "page", repository.DefaultPage),
		PageSize:    queryInt(c, "pageSize", repository.DefaultPageSize),
		InStockOnly: c.Query("inStock") == "true",
	}
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(c, "invalid categoryId")
			return
		}
		search.CategoryID = &id
	}
	if raw := c.Query("minPrice"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			badRequest(c, "invalid minPrice")
			return
		}
		search.MinPrice = &min
	}
	if raw := c.Query("maxPrice"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			badRequest(c, "invalid maxPrice")
			return
		}
		search.MaxPrice = &max
	}

	result, err := h.Products.Search(c.Request.Context(), search)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("search completed", result))
}

func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.Products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("product retrieved", product))
}

func (h *Handlers) GetProductBySKU(c *gin.Context) {
	product, err := h.Products.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("product retrieved", product))
}

func (h *Handlers) FeaturedProducts(c *gin.Context) {
	limit := queryInt(c, "limit", repository.DefaultPageSize)
	products, err := h.Products.Featured(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("featured products retrieved", products))
}

func (h *Handlers) ProductsByCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page := queryInt(c, "page", repository.DefaultPage)
	pageSize := queryInt(c, "pageSize", repository.DefaultPageSize)

	result, err := h.Products.ListByCategory(c.Request.Context(), id, page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("products retrieved", result))
}

func (h *Handlers) CreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	product, err := h.Products.Create(c.Request.Context(), input.toModel())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.OK("product created", product))
}

func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	product := input.toModel()
	product.ID = id
	updated, err := h.Products.Update(c.Request.Context(), product)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("product updated", updated))
}

func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Products.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("product deleted", nil))
}

type stockInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handlers) UpdateProductStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input stockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "quantity is required")
		return
	}
	if err := h.Products.UpdateStock(c.Request.Context(), id, *input.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("stock updated", nil))
}
