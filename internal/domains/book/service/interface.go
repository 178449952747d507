package service

import (
	"context"

	"librarian-backend/internal/domains/book/model"
)

// ServiceInterface - book catalog operations
type ServiceInterface interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	ListBooks(ctx context.Context) ([]*model.Book, error)
	GetBook(ctx context.Context, id string) (*model.Book, error)
	UpdateBook(ctx context.Context, id string, p model.BookPatch) (*model.Book, error)
	DeleteBook(ctx context.Context, id string) (*model.DeleteResponse, error)
}
