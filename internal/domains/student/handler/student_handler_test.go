package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian-backend/internal/domains/student/model"
	"librarian-backend/internal/domains/student/service"
	"librarian-backend/internal/infrastructure/memstore"
	"librarian-backend/internal/shared/response"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewHandler(service.NewService(memstore.New().Students()))

	r := gin.New()
	api := r.Group("/api")
	api.POST("/students", h.CreateStudent)
	api.GET("/students", h.ListStudents)
	api.GET("/students/:id", h.GetStudent)
	api.PUT("/students/:id", h.UpdateStudent)
	api.DELETE("/students/:id", h.DeleteStudent)
	api.GET("/students/class/:class_name", h.ListByClass)
	api.GET("/classes", h.ListClasses)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createStudent(t *testing.T, r *gin.Engine) model.Student {
	t.Helper()
	w := do(r, http.MethodPost, "/api/students", `{"first_name":"Jane","last_name":"Doe","class_name":"7A"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var s model.Student
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	return s
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateAndList(t *testing.T) {
	r := setupRouter()
	created := createStudent(t, r)

	assert.Equal(t, "Jane", created.FirstName)
	assert.Empty(t, created.BorrowedBooks)

	w := do(r, http.MethodGet, "/api/students", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []model.Student
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	w = do(r, http.MethodGet, "/api/classes", "")
	assert.JSONEq(t, `{"classes":["7A"]}`, w.Body.String())
}

func TestCreate_InvalidBody(t *testing.T) {
	r := setupRouter()

	w := do(r, http.MethodPost, "/api/students", `{"first_name":"Jane"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "INVALID_STUDENT", body.Error.Code)
	assert.Equal(t, body.Error.Message, body.Detail)

	details, ok := body.Error.Details.(map[string]interface{})
	require.True(t, ok, "details: %#v", body.Error.Details)
	assert.Equal(t, "last_name is required", details["last_name"])
	assert.Contains(t, details, "class_name")
	assert.NotContains(t, details, "first_name")
}

func TestUpdate(t *testing.T) {
	r := setupRouter()
	created := createStudent(t, r)
	path := "/api/students/" + created.ID.String()

	w := do(r, http.MethodPut, path, `{"class_name":"8B","last_name":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Student
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "8B", updated.ClassName)
	assert.Equal(t, "Doe", updated.LastName)

	w = do(r, http.MethodPut, path, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No valid fields provided for update", decodeError(t, w).Detail)

	w = do(r, http.MethodPut, "/api/students/"+uuid.NewString(), `{"first_name":"X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Student not found", decodeError(t, w).Detail)
}

func TestDelete(t *testing.T) {
	r := setupRouter()
	created := createStudent(t, r)
	path := "/api/students/" + created.ID.String()

	w := do(r, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Student deleted successfully"}`, w.Body.String())

	w = do(r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/students/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListByClass_RouteNotShadowed(t *testing.T) {
	r := setupRouter()
	createStudent(t, r)

	w := do(r, http.MethodGet, "/api/students/class/7A", "")

	require.Equal(t, http.StatusOK, w.Code)
	var list []model.Student
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}
