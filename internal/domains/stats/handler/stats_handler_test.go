package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "librarian-backend/internal/domains/book/model"
	"librarian-backend/internal/domains/stats/service"
	studentModel "librarian-backend/internal/domains/student/model"
	"librarian-backend/internal/infrastructure/memstore"
)

func getStats(t *testing.T, store *memstore.Store) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/api/stats", NewHandler(service.NewService(store.Stats())).GetStats)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	return w
}

func TestGetStats_Empty(t *testing.T) {
	w := getStats(t, memstore.New())

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"total_students": 0,
		"total_books": 0,
		"total_copies": 0,
		"borrowed_copies": 0,
		"available_copies": 0,
		"available_books": 0,
		"total_classes": 0,
		"class_counts": {},
		"utilization_percent": "0"
	}`, w.Body.String())
}

func TestGetStats_Counts(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := memstore.New()
	require.NoError(t, store.Books().Create(ctx, bookModel.NewBook("Dune", "Herbert", 4, now)))
	require.NoError(t, store.Students().Create(ctx, studentModel.NewStudent("Jane", "Doe", "7B", now)))
	require.NoError(t, store.Students().Create(ctx, studentModel.NewStudent("Ann", "Lee", "7A", now)))

	w := getStats(t, store)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"class_counts":{"7A":1,"7B":1}`)
	assert.Contains(t, w.Body.String(), `"total_copies":4`)
	assert.Contains(t, w.Body.String(), `"total_classes":2`)
}
