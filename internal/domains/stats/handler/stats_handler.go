package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"librarian-backend/internal/domains/stats/service"
	"librarian-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetStats godoc
// GET /api/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, stats)
}
