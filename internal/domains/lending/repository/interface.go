package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"librarian-backend/internal/domains/lending/model"
)

// RepositoryInterface - lending persistence. Borrow and Return apply the
// model decision functions and persist both records as one unit.
type RepositoryInterface interface {
	Borrow(ctx context.Context, studentID, bookID uuid.UUID, now time.Time, dueDays int) (*model.BorrowOutcome, error)
	Return(ctx context.Context, studentID, bookID uuid.UUID) (*model.ReturnOutcome, error)

	// ListOverdue returns holds with due_date before asOf, oldest due first.
	ListOverdue(ctx context.Context, asOf time.Time, limit int) ([]model.OverdueHold, error)

	// FindCountDrift lists books whose borrowed_count differs from the number
	// of holds referencing them.
	FindCountDrift(ctx context.Context) ([]model.CountDrift, error)

	// RecountBorrowed rewrites one book's borrowed_count from its holds while
	// the book is locked, and reports the counts before and after. Returns
	// nil when the book no longer exists.
	RecountBorrowed(ctx context.Context, bookID uuid.UUID) (*model.CountDrift, error)
}
