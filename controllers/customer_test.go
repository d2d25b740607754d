package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func lookupRequest(t *testing.T, phone string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/customers/lookup?phone="+phone, nil)

	LookupCustomers(c)
	return w
}

func TestLookupCustomersShortInputReturnsEmptyList(t *testing.T) {
	// Below three characters the lookup must not hit the database at all
	// and must answer with an empty list, not an error.
	w := lookupRequest(t, "98")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestLookupCustomersEmptyInputReturnsEmptyList(t *testing.T) {
	w := lookupRequest(t, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}
