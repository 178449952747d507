package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"librarian-backend/internal/domains/student/model"
	"librarian-backend/internal/domains/student/repository"
	types "librarian-backend/internal/shared"
)

// StudentService - Implements ServiceInterface
type StudentService struct {
	repo repository.RepositoryInterface
	now  func() time.Time
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &StudentService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *StudentService) CreateStudent(ctx context.Context, req model.CreateStudentRequest) (*model.Student, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	student := model.NewStudent(req.FirstName, req.LastName, req.ClassName, s.now())
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}

	log.Info().
		Str("student_id", student.ID.String()).
		Str("class_name", student.ClassName).
		Msg("student created")

	return student, nil
}

func (s *StudentService) ListStudents(ctx context.Context) ([]*model.Student, error) {
	students, err := s.repo.List(ctx, types.MaxFetch)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (s *StudentService) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	studentID, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrStudentNotFound
	}

	student, err := s.repo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, model.ErrStudentNotFound
	}

	return student, nil
}

func (s *StudentService) ListByClass(ctx context.Context, className string) ([]*model.Student, error) {
	students, err := s.repo.ListByClass(ctx, className, types.MaxFetch)
	if err != nil {
		return nil, fmt.Errorf("list students by class: %w", err)
	}
	return students, nil
}

func (s *StudentService) ListClasses(ctx context.Context) (*model.ClassesResponse, error) {
	classes, err := s.repo.DistinctClasses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return &model.ClassesResponse{Classes: classes}, nil
}

// UpdateStudent applies a sparse patch. The empty-patch check runs before the
// lookup, so an empty body against an unknown id reports the empty patch.
func (s *StudentService) UpdateStudent(ctx context.Context, id string, p model.StudentPatch) (*model.Student, error) {
	if p.IsEmpty() {
		return nil, model.ErrEmptyUpdate
	}

	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	studentID, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrStudentNotFound
	}

	updated, err := s.repo.Update(ctx, studentID, p)
	if err != nil {
		return nil, fmt.Errorf("update student: %w", err)
	}
	if updated == nil {
		return nil, model.ErrStudentNotFound
	}

	return updated, nil
}

func (s *StudentService) DeleteStudent(ctx context.Context, id string) (*model.DeleteResponse, error) {
	studentID, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrStudentNotFound
	}

	deleted, err := s.repo.Delete(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("delete student: %w", err)
	}
	if !deleted {
		return nil, model.ErrStudentNotFound
	}

	log.Info().Str("student_id", id).Msg("student deleted")

	return &model.DeleteResponse{Message: "Student deleted successfully"}, nil
}
