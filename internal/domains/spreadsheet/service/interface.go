package service

import (
	"context"

	"librarian-backend/internal/domains/spreadsheet/model"
)

// ServiceInterface - workbook import and export
type ServiceInterface interface {
	ImportStudents(ctx context.Context, filename string, data []byte) (*model.ImportStudentsResult, error)
	ImportBooks(ctx context.Context, filename string, data []byte) (*model.ImportBooksResult, error)
	ExportStudents(ctx context.Context) (*model.ExportFile, error)
	ExportBooks(ctx context.Context) (*model.ExportFile, error)
}

// ClassEnsurer registers the class of every imported student.
type ClassEnsurer interface {
	EnsureClass(ctx context.Context, name string) error
}

// Archiver keeps a copy of every accepted upload.
type Archiver interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}
