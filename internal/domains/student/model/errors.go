package model

import (
	"librarian-backend/internal/shared/apperror"
)

var (
	ErrStudentNotFound = apperror.New(apperror.NotFound, "STUDENT_NOT_FOUND", "Student not found")
	ErrEmptyUpdate     = apperror.New(apperror.InvalidArgument, "NO_UPDATE_FIELDS", "No valid fields provided for update")
	ErrInvalidStudent  = apperror.New(apperror.InvalidArgument, "INVALID_STUDENT", "Invalid student data")
)

// NewValidationError wraps an ozzo validation error.
func NewValidationError(err error) error {
	return ErrInvalidStudent.WithMessage(err.Error()).Wrap(err)
}
