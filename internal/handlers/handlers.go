package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/catcommerce/catcommerce-golang/internal/auth"
	"github.com/catcommerce/catcommerce-golang/internal/models"
	"github.com/catcommerce/catcommerce-golang/internal/service"
)

// Handlers bundles every HTTP handler's dependencies so routing wires up
// from one place.
type Handlers struct {
	Products   *service.ProductService
	Categories *service.CategoryService
	Customers  *service.CustomerService
	Carts      *service.CartService
	Tokens     *auth.TokenManager
	Log        *zap.Logger
}

func New(
	products *service.ProductService,
	categories *service.CategoryService,
	customers *service.CustomerService,
	carts *service.CartService,
	tokens *auth.TokenManager,
	log *zap.Logger,
) *Handlers {
	return &Handlers{
		Products:   products,
		Categories: categories,
		Customers:  customers,
		Carts:      carts,
		Tokens:     tokens,
		Log:        log,
	}
}

// respondError maps a service error onto an HTTP status and error code. The
// error's own message is the caller-facing one; storage errors stay generic.
func (h *Handlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.Fail(err.Error(), "VALIDATION_ERROR"))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, models.Fail(err.Error(), "NOT_FOUND"))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, models.Fail(err.Error(), "CONFLICT"))
	case errors.Is(err, service.ErrOutOfStock):
		c.JSON(http.StatusConflict, models.Fail(err.Error(), "OUT_OF_STOCK"))
	case errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusConflict, models.Fail(err.Error(), "INSUFFICIENT_STOCK"))
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.Fail(err.Error(), "UNAUTHORIZED"))
	case errors.Is(err, service.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, models.Fail(err.Error(), "ACCOUNT_DISABLED"))
	default:
		h.Log.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail("an unexpected error occurred", "INTERNAL_ERROR"))
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.Fail(message, "VALIDATION_ERROR"))
}
