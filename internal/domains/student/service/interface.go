package service

import (
	"context"

	"librarian-backend/internal/domains/student/model"
)

// ServiceInterface - student catalog operations
type ServiceInterface interface {
	CreateStudent(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error)
	ListStudents(ctx context.Context) ([]*model.Student, error)
	GetStudent(ctx context.Context, id string) (*model.Student, error)
	ListByClass(ctx context.Context, className string) ([]*model.Student, error)
	ListClasses(ctx context.Context) (*model.ClassesResponse, error)
	UpdateStudent(ctx context.Context, id string, p model.StudentPatch) (*model.Student, error)
	DeleteStudent(ctx context.Context, id string) (*model.DeleteResponse, error)
}
