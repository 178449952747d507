package model

import (
	"librarian-backend/internal/shared/apperror"
)

var (
	ErrNoCopiesAvailable = apperror.New(apperror.InvalidState, "NO_COPIES_AVAILABLE", "No copies available")
	ErrAlreadyBorrowed   = apperror.New(apperror.InvalidState, "ALREADY_BORROWED", "Student already has this book")
	ErrNotBorrowed       = apperror.New(apperror.InvalidState, "NOT_BORROWED", "Student doesn't have this book")
	ErrInvalidRequest    = apperror.New(apperror.InvalidArgument, "INVALID_LENDING_REQUEST", "student_id and book_id are required")
	ErrLockBusy          = apperror.New(apperror.InvalidState, "BOOK_BUSY", "Book is being processed, try again")
)
