package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"librarian-backend/internal/domains/book/model"
	"librarian-backend/internal/domains/book/service"
	"librarian-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateBook godoc
// POST /api/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, book)
}

// ListBooks godoc
// GET /api/books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.ListBooks(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, books)
}

// GetBook godoc
// GET /api/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	book, err := h.service.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, book)
}

// UpdateBook godoc
// PUT /api/books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	var p model.BookPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, book)
}

// DeleteBook godoc
// DELETE /api/books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	resp, err := h.service.DeleteBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}
