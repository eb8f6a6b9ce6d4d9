package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// newInvoiceTestRouter wires the handler without a backing service. The routes
// under test fail before any service call is reached.
func newInvoiceTestRouter(userID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if userID != nil {
		router.Use(func(c *gin.Context) {
			c.Set("user_id", *userID)
			c.Next()
		})
	}
	h := NewInvoiceHandler(nil)
	router.GET("/invoices/:id", h.Get)
	router.POST("/invoices", h.Create)
	return router
}

func TestInvoiceHandler_Get_RequiresAuthentication(t *testing.T) {
	router := newInvoiceTestRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not authenticated")
}

func TestInvoiceHandler_Get_RejectsMalformedID(t *testing.T) {
	userID := uuid.New()
	router := newInvoiceTestRouter(&userID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid invoice ID")
}

func TestInvoiceHandler_Create_RejectsInvalidBody(t *testing.T) {
	userID := uuid.New()
	router := newInvoiceTestRouter(&userID)

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing business_id",
			body: `{"items":[{"name":"Audit","unit_price":100,"quantity":1}]}`,
			want: "Invalid request body",
		},
		{
			name: "empty items",
			body: `{"business_id":"` + uuid.NewString() + `","items":[]}`,
			want: "Invalid request body",
		},
		{
			name: "zero quantity line",
			body: `{"business_id":"` + uuid.NewString() + `","items":[{"name":"Audit","unit_price":100,"quantity":0}]}`,
			want: "Invalid request body",
		},
		{
			name: "unknown discount type",
			body: `{"business_id":"` + uuid.NewString() + `","discount_type":"rebate","items":[{"name":"Audit","unit_price":100,"quantity":1}]}`,
			want: "Invalid request body",
		},
		{
			name: "bad issue date",
			body: `{"business_id":"` + uuid.NewString() + `","issue_date":"15/03/2026","items":[{"name":"Audit","unit_price":100,"quantity":1}]}`,
			want: "Invalid issue date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}
