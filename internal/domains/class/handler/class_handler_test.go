package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian-backend/internal/domains/class/service"
	"librarian-backend/internal/infrastructure/memstore"
)

func TestRegisterClass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(service.NewService(memstore.New().Classes()))
	r := gin.New()
	r.POST("/api/classes", h.RegisterClass)
	r.GET("/api/classes/registered", h.ListRegistered)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/classes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"name":"7A"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Class 7A is ready to accept students","class_name":"7A"}`, w.Body.String())

	w = post(`{"name":"7A"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Class 7A already exists","class_name":"7A"}`, w.Body.String())

	w = post(`{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/classes/registered", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"7A"`)
	assert.Contains(t, w.Body.String(), `"students":[]`)
}
