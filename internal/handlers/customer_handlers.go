package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/catcommerce/catcommerce-golang/internal/middleware"
	"github.com/catcommerce/catcommerce-golang/internal/models"
	"github.com/catcommerce/catcommerce-golang/internal/repository"
)

type registerInput struct {
	Username  string  `json:"username" binding:"required"`
	Email     string  `json:"email" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     *string `json:"phone"`
}

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type profileInput struct {
	Email     string  `json:"email" binding:"required"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Phone     *string `json:"phone"`
}

func (h *Handlers) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	customer := &models.Customer{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      models.RoleCustomer,
	}
	created, err := h.Customers.Register(c.Request.Context(), customer, input.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.OK("registration successful", created))
}

// Login accepts a username or email plus password. On success the response
// carries a signed token and the customer profile.
func (h *Handlers) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "username and password are required")
		return
	}

	customer, err := h.Customers.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.Tokens.Generate(customer.ID, customer.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("login successful", gin.H{
		"token":    token,
		"customer": customer,
	}))
}

func (h *Handlers) GetProfile(c *gin.Context) {
	customer, err := h.Customers.GetByID(c.Request.Context(), middleware.CustomerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("profile retrieved", customer))
}

func (h *Handlers) UpdateProfile(c *gin.Context) {
	var input profileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	customer := &models.Customer{
		ID:        middleware.CustomerID(c),
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	}
	updated, err := h.Customers.UpdateProfile(c.Request.Context(), customer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("profile updated", updated))
}

func (h *Handlers) ChangePassword(c *gin.Context) {
	var input changePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "currentPassword and newPassword are required")
		return
	}

	customerID := middleware.CustomerID(c)
	if err := h.Customers.ChangePassword(c.Request.Context(), customerID, input.CurrentPassword, input.NewPassword); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("password changed", nil))
}

// ListCustomers is admin-only: a page of active accounts plus the total.
func (h *Handlers) ListCustomers(c *gin.Context) {
	page := queryInt(c, "page", repository.DefaultPage)
	pageSize := queryInt(c, "pageSize", repository.DefaultPageSize)

	customers, total, err := h.Customers.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("customers retrieved", gin.H{
		"customers":  customers,
		"totalCount": total,
	}))
}

func (h *Handlers) SearchCustomers(c *gin.Context) {
	page := queryInt(c, "page", repository.DefaultPage)
	pageSize := queryInt(c, "pageSize", repository.DefaultPageSize)

	customers, err := h.Customers.Search(c.Request.Context(), c.Query("keyword"), page, pageSize)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("customers retrieved", customers))
}

func (h *Handlers) GetCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	customer, err := h.Customers.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("customer retrieved", customer))
}

func (h *Handlers) DeactivateCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Customers.Deactivate(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.OK("customer deactivated", nil))
}
