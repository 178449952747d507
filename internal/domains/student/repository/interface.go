package repository

import (
	"context"

	"github.com/google/uuid"

	"librarian-backend/internal/domains/student/model"
)

// RepositoryInterface defines data access for students. Getters return
// (nil, nil) when no record matches.
type RepositoryInterface interface {
	// Create inserts a new student. BorrowedBooks is ignored.
	Create(ctx context.Context, student *model.Student) error

	// GetByID returns the student with its holds in borrow order.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error)

	// List returns up to limit students ordered by creation time.
	List(ctx context.Context, limit int) ([]*model.Student, error)

	// ListByClass returns students whose class_name equals className exactly.
	ListByClass(ctx context.Context, className string, limit int) ([]*model.Student, error)

	// DistinctClasses returns the sorted distinct class_name values.
	DistinctClasses(ctx context.Context) ([]string, error)

	// Update merges the set fields of p and returns the updated student.
	Update(ctx context.Context, id uuid.UUID, p model.StudentPatch) (*model.Student, error)

	// Delete removes the student and its holds. Returns false when no
	// record matched.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByIdentity reports whether a student with the exact triple exists.
	ExistsByIdentity(ctx context.Context, identity model.Identity) (bool, error)
}
