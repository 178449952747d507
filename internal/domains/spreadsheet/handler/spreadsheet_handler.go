package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"librarian-backend/internal/domains/spreadsheet/model"
	"librarian-backend/internal/domains/spreadsheet/service"
	"librarian-backend/internal/domains/spreadsheet/workbook"
	"librarian-backend/internal/shared/response"
)

// maxUploadSize caps an import workbook at 10MB
const maxUploadSize = 10 << 20

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ImportStudents godoc
// POST /api/students/import_excel (multipart field "file")
func (h *Handler) ImportStudents(c *gin.Context) {
	filename, data, err := readUpload(c)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	result, err := h.service.ImportStudents(c.Request.Context(), filename, data)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// ImportBooks godoc
// POST /api/books/import_excel (multipart field "file")
func (h *Handler) ImportBooks(c *gin.Context) {
	filename, data, err := readUpload(c)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	result, err := h.service.ImportBooks(c.Request.Context(), filename, data)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// ExportStudents godoc
// GET /api/export_students
func (h *Handler) ExportStudents(c *gin.Context) {
	file, err := h.service.ExportStudents(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	writeExport(c, file)
}

// ExportBooks godoc
// GET /api/export_books
func (h *Handler) ExportBooks(c *gin.Context) {
	file, err := h.service.ExportBooks(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}
	writeExport(c, file)
}

func writeExport(c *gin.Context, file *model.ExportFile) {
	if file.Empty != "" {
		response.Message(c, http.StatusOK, file.Empty)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Filename))
	c.Data(http.StatusOK, workbook.ContentType, file.Data)
}

func readUpload(c *gin.Context) (string, []byte, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", nil, model.ErrMissingFile.Wrap(err)
	}

	if fileHeader.Size > maxUploadSize {
		return "", nil, model.ErrUnsupportedFile.WithMessage("File exceeds 10MB limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}

	return fileHeader.Filename, data, nil
}
