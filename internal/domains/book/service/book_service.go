package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"librarian-backend/internal/domains/book/model"
	"librarian-backend/internal/domains/book/repository"
	types "librarian-backend/internal/shared"
)

// BookService - Implements ServiceInterface
type BookService struct {
	repo repository.RepositoryInterface
	now  func() time.Time
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &BookService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	book := model.NewBook(req.Title, req.Author, *req.Quantity, s.now())
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	log.Info().
		Str("book_id", book.ID.String()).
		Int("quantity", book.Quantity).
		Msg("book created")

	return book, nil
}

func (s *BookService) ListBooks(ctx context.Context) ([]*model.Book, error) {
	books, err := s.repo.List(ctx, types.MaxFetch)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *BookService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	bookID, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrBookNotFound
	}

	book, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book == nil {
		return nil, model.ErrBookNotFound
	}

	return book, nil
}

// UpdateBook applies a sparse patch. Lowering quantity below borrowed_count
// is allowed; later borrows fail until copies come back.
func (s *BookService) UpdateBook(ctx context.Context, id string, p model.BookPatch) (*model.Book, error) {
	if p.IsEmpty() {
		return nil, model.ErrEmptyUpdate
	}

	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	bookID, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrBookNotFound
	}

	updated, err := s.repo.Update(ctx, bookID, p)
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	if updated == nil {
		return nil, model.ErrBookNotFound
	}

	if updated.CopiesLeft() < 0 {
		log.Warn().
			Str("book_id", id).
			Int("quantity", updated.Quantity).
			Int("borrowed_count", updated.BorrowedCount).
			Int("copies_left", updated.CopiesLeft()).
			Msg("book quantity is below borrowed count")
	}

	return updated, nil
}

func (s *BookService) DeleteBook(ctx context.Context, id string) (*model.DeleteResponse, error) {
	bookID, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrBookNotFound
	}

	deleted, err := s.repo.Delete(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("delete book: %w", err)
	}
	if !deleted {
		return nil, model.ErrBookNotFound
	}

	log.Info().Str("book_id", id).Msg("book deleted")

	return &model.DeleteResponse{Message: "Book deleted successfully"}, nil
}
