package model

import (
	"librarian-backend/internal/shared/apperror"
)

var (
	ErrBookNotFound = apperror.New(apperror.NotFound, "BOOK_NOT_FOUND", "Book not found")
	ErrEmptyUpdate  = apperror.New(apperror.InvalidArgument, "NO_UPDATE_FIELDS", "No valid fields provided for update")
	ErrInvalidBook  = apperror.New(apperror.InvalidArgument, "INVALID_BOOK", "Invalid book data")
)

// NewValidationError wraps an ozzo validation error.
func NewValidationError(err error) error {
	return ErrInvalidBook.WithMessage(err.Error()).Wrap(err)
}
