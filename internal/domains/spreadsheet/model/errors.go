package model

import (
	"librarian-backend/internal/shared/apperror"
)

var (
	ErrUnsupportedFile    = apperror.New(apperror.InvalidArgument, "UNSUPPORTED_FILE", "Please upload an Excel file (.xlsx or .xlsm)")
	ErrMissingFile        = apperror.New(apperror.InvalidArgument, "MISSING_FILE", "No file uploaded")
	ErrUnreadableWorkbook = apperror.New(apperror.InvalidArgument, "UNREADABLE_WORKBOOK", "Error processing file")
)

// NewUnreadableError carries the parser's message to the client.
func NewUnreadableError(err error) error {
	return ErrUnreadableWorkbook.WithMessage("Error processing file: " + err.Error()).Wrap(err)
}
