package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarian-backend/internal/shared/apperror"
)

var errShelfNotFound = apperror.New(apperror.NotFound, "SHELF_NOT_FOUND", "Shelf not found")

func handle(t *testing.T, err error) (int, ErrorBody) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	HandleError(c, err)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleError_AppError(t *testing.T) {
	code, body := handle(t, errShelfNotFound)

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "SHELF_NOT_FOUND", body.Error.Code)
	assert.Equal(t, "Shelf not found", body.Detail)
	assert.Nil(t, body.Error.Details)
}

func TestHandleError_ValidationDetails(t *testing.T) {
	fields := validation.Errors{"name": errors.New("cannot be blank")}
	err := apperror.New(apperror.InvalidArgument, "INVALID_SHELF", "name: cannot be blank.").Wrap(fields)

	code, body := handle(t, err)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]interface{}{"name": "cannot be blank"}, body.Error.Details)
}

func TestHandleError_ForeignErrorIsHidden(t *testing.T) {
	code, body := handle(t, errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
	assert.NotContains(t, body.Detail, "connection reset")
}
