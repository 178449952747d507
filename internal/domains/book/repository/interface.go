package repository

import (
	"context"

	"github.com/google/uuid"

	"librarian-backend/internal/domains/book/model"
)

// RepositoryInterface - data access for books. Getters return (nil, nil) when
// nothing matches.
type RepositoryInterface interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	List(ctx context.Context, limit int) ([]*model.Book, error)
	Update(ctx context.Context, id uuid.UUID, p model.BookPatch) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// MergeCopies adds book.Quantity to the oldest book with the exact same
	// title and author, or stores book when there is none. The lookup and
	// the write are atomic with respect to other MergeCopies calls. created
	// reports which branch ran.
	MergeCopies(ctx context.Context, book *model.Book) (merged *model.Book, created bool, err error)
}
