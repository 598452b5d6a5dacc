package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/catcommerce/catcommerce-golang/internal/models"
	"github.com/catcommerce/catcommerce-golang/internal/service"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handlers{Log: zap.NewNop()}

	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{fmt.Errorf("name is required: %w", service.ErrInvalidInput), http.StatusBadRequest, "VALIDATION_ERROR"},
		{fmt.Errorf("product not found: %w", service.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("sku exists: %w", service.ErrConflict), http.StatusConflict, "CONFLICT"},
		{fmt.Errorf("out: %w", service.ErrOutOfStock), http.StatusConflict, "OUT_OF_STOCK"},
		{fmt.Errorf("only 5 in stock: %w", service.ErrInsufficientStock), http.StatusConflict, "INSUFFICIENT_STOCK"},
		{fmt.Errorf("bad creds: %w", service.ErrUnauthorized), http.StatusUnauthorized, "UNAUTHORIZED"},
		{fmt.Errorf("disabled: %w", service.ErrAccountDisabled), http.StatusForbidden, "ACCOUNT_DISABLED"},
		{service.ErrStorage, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.wantCode, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h.respondError(c, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var body models.APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.wantCode, body.ErrorCode)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestStorageErrorStaysGeneric(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handlers{Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.respondError(c, fmt.Errorf("dial tcp 10.0.0.5:3306: connection refused"))

	var body models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "an unexpected error occurred", body.Message)
	assert.NotContains(t, body.Message, "3306")
}
