package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"librarian-backend/internal/shared/middleware"
	"librarian-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.GET("/health", healthCheckHandler(c))

	api := router.Group("/api")
	{
		api.GET("/", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"message": "Librarian Assistant API"})
		})

		setupStudentRoutes(api, c)
		setupClassRoutes(api, c)
		setupBookRoutes(api, c)
		setupLendingRoutes(api, c)
		setupSpreadsheetRoutes(api, c)
		api.GET("/stats", c.StatsHandler.GetStats)
	}

	return router
}

// ========================================
// STUDENT ROUTES
// ========================================
func setupStudentRoutes(api *gin.RouterGroup, c *container.Container) {
	students := api.Group("/students")
	{
		students.POST("", c.StudentHandler.CreateStudent)
		students.GET("", c.StudentHandler.ListStudents)
		students.GET("/class/:class_name", c.StudentHandler.ListByClass)
		students.POST("/import_excel", c.SpreadsheetHandler.ImportStudents)
		students.GET("/:id", c.StudentHandler.GetStudent)
		students.PUT("/:id", c.StudentHandler.UpdateStudent)
		students.DELETE("/:id", c.StudentHandler.DeleteStudent)
	}
}

// ========================================
// CLASS ROUTES
// ========================================
func setupClassRoutes(api *gin.RouterGroup, c *container.Container) {
	classes := api.Group("/classes")
	{
		classes.GET("", c.StudentHandler.ListClasses)
		classes.POST("", c.ClassHandler.RegisterClass)
		classes.GET("/registered", c.ClassHandler.ListRegistered)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	books := api.Group("/books")
	{
		books.POST("", c.BookHandler.CreateBook)
		books.GET("", c.BookHandler.ListBooks)
		books.POST("/import_excel", c.SpreadsheetHandler.ImportBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
	}
}

// ========================================
// LENDING ROUTES
// ========================================
func setupLendingRoutes(api *gin.RouterGroup, c *container.Container) {
	api.POST("/borrow", c.LendingHandler.Borrow)
	api.POST("/return", c.LendingHandler.Return)
	api.GET("/lending/overdue", c.LendingHandler.ListOverdue)
}

// ========================================
// SPREADSHEET ROUTES
// ========================================
func setupSpreadsheetRoutes(api *gin.RouterGroup, c *container.Container) {
	api.GET("/export_students", c.SpreadsheetHandler.ExportStudents)
	api.GET("/export_books", c.SpreadsheetHandler.ExportBooks)
}

// healthCheckHandler answers 503 only when the store is unreachable.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		health := c.HealthCheck(checkCtx)

		status := http.StatusOK
		if !health.StoreHealthy() {
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, health)
	}
}
