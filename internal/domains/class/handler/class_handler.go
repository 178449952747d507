package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"librarian-backend/internal/domains/class/model"
	"librarian-backend/internal/domains/class/service"
	"librarian-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterClass godoc
// POST /api/classes
func (h *Handler) RegisterClass(c *gin.Context) {
	var req model.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.RegisterClass(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

// ListRegistered godoc
// GET /api/classes/registered
func (h *Handler) ListRegistered(c *gin.Context) {
	classes, err := h.service.ListRegistered(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, classes)
}
