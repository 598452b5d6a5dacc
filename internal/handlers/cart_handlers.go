package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catcommerce/catcommerce-golang/internal/middleware"
	"github.com/catcommerce/catcommerce-golang/internal/models"
)

type addToCartInput struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type updateQuantityInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handlers) GetCart(c *gin.Context) {
	cart, err := h.Carts.GetCart(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("cart retrieved", cart))
}

func (h *Handlers) AddToCart(c *gin.Context) {
	var input addToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "productId and quantity are required")
		return
	}

	customerID := middleware.CustomerID(c)
	if err := h.Carts.AddToCart(c.Request.Context(), customerID, input.ProductID, input.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.OK("item added to cart", nil))
}

func (h *Handlers) UpdateCartItem(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	var input updateQuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "quantity is required")
		return
	}

	customerID := middleware.CustomerID(c)
	if err := h.Carts.UpdateQuantity(c.Request.Context(), customerID, productID, *input.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("cart updated", nil))
}

func (h *Handlers) RemoveCartItem(c *gin.Context) {
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	customerID := middleware.CustomerID(c)
	if err := h.Carts.RemoveFromCart(c.Request.Context(), customerID, productID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("item removed from cart", nil))
}

func (h *Handlers) ClearCart(c *gin.Context) {
	if err := h.Carts.ClearCart(c.Request.Context(), middleware.CustomerID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("cart cleared", nil))
}

func (h *Handlers) CartItemCount(c *gin.Context) {
	count, err := h.Carts.ItemCount(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("item count retrieved", gin.H{"count": count}))
}

func (h *Handlers) CheckCartStock(c *gin.Context) {
	if err := h.Carts.CheckStock(c.Request.Context(), middleware.CustomerID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("all items in stock", nil))
}

func (h *Handlers) ValidateCart(c *gin.Context) {
	if err := h.Carts.ValidateCart(c.Request.Context(), middleware.CustomerID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("cart is valid", nil))
}
