package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catcommerce/catcommerce-golang/internal/models"
)

// CategoryInput is the JSON body for create and update.
type CategoryInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ParentID    *int64  `json:"parentId"`
	ImageURL    *string `json:"imageUrl"`
	SortOrder   int     `json:"sortOrder"`
}

func (in *CategoryInput) toModel() *models.Category {
	return &models.Category{
		Name:        in.Name,
		Description: in.Description,
		ParentID:    in.ParentID,
		ImageURL:    in.ImageURL,
		SortOrder:   in.SortOrder,
		IsActive:    true,
	}
}

// CategoryTree returns the full active tree, roots first.
func (h *Handlers) CategoryTree(c *gin.Context) {
	tree, err := h.Categories.Tree(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("categories retrieved", tree))
}

func (h *Handlers) RootCategories(c *gin.Context) {
	roots, err := h.Categories.Roots(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("categories retrieved", roots))
}

func (h *Handlers) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category, err := h.Categories.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("category retrieved", category))
}

func (h *Handlers) GetCategoryBySlug(c *gin.Context) {
	category, err := h.Categories.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("category retrieved", category))
}

func (h *Handlers) CategoryChildren(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	children, err := h.Categories.Children(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("subcategories retrieved", children))
}

// CategoryPath returns the breadcrumb chain from root to the category.
func (h *Handlers) CategoryPath(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	path, err := h.Categories.Path(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("category path retrieved", path))
}

func (h *Handlers) CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	category, err := h.Categories.Create(c.Request.Context(), input.toModel())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.OK("category created", category))
}

func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	category := input.toModel()
	category.ID = id
	updated, err := h.Categories.Update(c.Request.Context(), category)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("category updated", updated))
}

func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Categories.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("category deleted", nil))
}
