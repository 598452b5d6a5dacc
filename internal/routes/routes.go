package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catcommerce/catcommerce-golang/internal/auth"
	"github.com/catcommerce/catcommerce-golang/internal/handlers"
	"github.com/catcommerce/catcommerce-golang/internal/middleware"
	"github.com/catcommerce/catcommerce-golang/internal/service"
)

// CORSMiddleware allows browser frontends to call the API with the
// Authorization header.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, tokens *auth.TokenManager, customers *service.CustomerService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(h.Log))
	router.Use(CORSMiddleware())

	v1 := router.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		// Public auth routes
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// Public catalog routes
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/search", h.SearchProducts)
		v1.GET("/products/featured", h.FeaturedProducts)
		v1.GET("/products/sku/:sku", h.GetProductBySKU)
		v1.GET("/products/:id", h.GetProduct)

		v1.GET("/categories", h.CategoryTree)
		v1.GET("/categories/roots", h.RootCategories)
		v1.GET("/categories/slug/:slug", h.GetCategoryBySlug)
		v1.GET("/categories/:id", h.GetCategory)
		v1.GET("/categories/:id/children", h.CategoryChildren)
		v1.GET("/categories/:id/path", h.CategoryPath)
		v1.GET("/categories/:id/products", h.ProductsByCategory)

		// Customer routes (login required)
		authed := v1.Group("/")
		authed.Use(middleware.AuthMiddleware(tokens))
		{
			authed.GET("/profile", h.GetProfile)
			authed.PUT("/profile", h.UpdateProfile)
			authed.POST("/profile/change-password", h.ChangePassword)

			authed.GET("/cart", h.GetCart)
			authed.POST("/cart/items", h.AddToCart)
			authed.PUT("/cart/items/:productId", h.UpdateCartItem)
			authed.DELETE("/cart/items/:productId", h.RemoveCartItem)
			authed.DELETE("/cart", h.ClearCart)
			authed.GET("/cart/count", h.CartItemCount)
			authed.GET("/cart/check-stock", h.CheckCartStock)
			authed.POST("/cart/validate", h.ValidateCart)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(tokens))
		admin.Use(middleware.AdminMiddleware(customers))
		{
			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)
			admin.PATCH("/products/:id/stock", h.UpdateProductStock)

			admin.POST("/categories", h.CreateCategory)
			admin.PUT("/categories/:id", h.UpdateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)

			admin.GET("/customers", h.ListCustomers)
			admin.GET("/customers/search", h.SearchCustomers)
			admin.GET("/customers/:id", h.GetCustomer)
			admin.DELETE("/customers/:id", h.DeactivateCustomer)
		}
	}

	return router
}
