package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"librarian-backend/internal/domains/lending/model"
	"librarian-backend/internal/domains/lending/service"
	"librarian-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Borrow godoc
// POST /api/borrow
func (h *Handler) Borrow(c *gin.Context) {
	var req model.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Borrow(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

// Return godoc
// POST /api/return
func (h *Handler) Return(c *gin.Context) {
	var req model.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Return(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

// ListOverdue godoc
// GET /api/lending/overdue
func (h *Handler) ListOverdue(c *gin.Context) {
	holds, err := h.service.ListOverdue(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, holds)
}
