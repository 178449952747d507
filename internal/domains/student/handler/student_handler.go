package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"librarian-backend/internal/domains/student/model"
	"librarian-backend/internal/domains/student/service"
	"librarian-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateStudent godoc
// POST /api/students
func (h *Handler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	student, err := h.service.CreateStudent(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, student)
}

// ListStudents godoc
// GET /api/students
func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.service.ListStudents(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, students)
}

// GetStudent godoc
// GET /api/students/:id
func (h *Handler) GetStudent(c *gin.Context) {
	student, err := h.service.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, student)
}

// ListByClass godoc
// GET /api/students/class/:class_name
func (h *Handler) ListByClass(c *gin.Context) {
	students, err := h.service.ListByClass(c.Request.Context(), c.Param("class_name"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, students)
}

// ListClasses godoc
// GET /api/classes
func (h *Handler) ListClasses(c *gin.Context) {
	classes, err := h.service.ListClasses(c.Request.Context())
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, classes)
}

// UpdateStudent godoc
// PUT /api/students/:id
func (h *Handler) UpdateStudent(c *gin.Context) {
	var p model.StudentPatch
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	student, err := h.service.UpdateStudent(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, student)
}

// DeleteStudent godoc
// DELETE /api/students/:id
func (h *Handler) DeleteStudent(c *gin.Context) {
	resp, err := h.service.DeleteStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}
