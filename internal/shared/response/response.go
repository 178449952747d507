package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"librarian-backend/internal/shared/apperror"
)

// ErrorBody is the envelope written for every failed request.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   *Error `json:"error"`
	// Detail repeats the message for clients written against the original
	// API, which only read "detail".
	Detail string `json:"detail"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// JSON writes a bare success payload.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Message writes {"message": msg}.
func Message(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, gin.H{"message": msg})
}

// ErrorResponse writes the error envelope.
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorBody{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
		Detail: message,
	})
}

// ErrorWithDetails writes the error envelope with per-field details.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, ErrorBody{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
		Detail: message,
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.NotFound:
		return http.StatusNotFound
	case apperror.InvalidArgument, apperror.InvalidState:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes err using its AppError classification. Validation
// failures carry their per-field messages as details. Foreign errors are
// logged and hidden behind a generic 500.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	kind := apperror.KindOf(err)
	if kind == apperror.Internal {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		InternalServerError(c, "Internal server error")
		return
	}

	appErr, _ := apperror.As(err)

	var fields validation.Errors
	if errors.As(err, &fields) {
		ErrorWithDetails(c, StatusFor(kind), appErr.Code, appErr.Message, fields)
		return
	}

	ErrorResponse(c, StatusFor(kind), appErr.Code, appErr.Message)
}
