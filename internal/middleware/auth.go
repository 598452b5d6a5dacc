package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/catcommerce/catcommerce-golang/internal/auth"
	"github.com/catcommerce/catcommerce-golang/internal/models"
	"github.com/catcommerce/catcommerce-golang/internal/service"
)

// Context keys set by AuthMiddleware.
const (
	CtxCustomerID = "customerID"
	CtxRole       = "role"
)

// AuthMiddleware validates the Bearer token and stashes the customer id and
// role on the request context.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, models.Fail("authorization header required", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, models.Fail("authorization header must be a Bearer token", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.Fail("invalid or expired token", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		c.Set(CtxCustomerID, claims.CustomerID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// AdminMiddleware gates admin routes. The role is re-read from storage, so a
// demoted admin's outstanding tokens stop working immediately.
func AdminMiddleware(customers *service.CustomerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := CustomerID(c)
		if customerID == 0 {
			c.JSON(http.StatusUnauthorized, models.Fail("authentication required", "UNAUTHORIZED"))
			c.Abort()
			return
		}

		customer, err := customers.GetByID(c.Request.Context(), customerID)
		if err != nil {
			c.JSON(http.StatusForbidden, models.Fail("admin access required", "FORBIDDEN"))
			c.Abort()
			return
		}
		if customer.Role != models.RoleAdmin || !customer.IsActive {
			c.JSON(http.StatusForbidden, models.Fail("admin access required", "FORBIDDEN"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CustomerID reads the authenticated customer id from the context. Zero means
// the request never passed AuthMiddleware.
func CustomerID(c *gin.Context) int64 {
	v, ok := c.Get(CtxCustomerID)
	if !ok {
		return 0
	}
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}
