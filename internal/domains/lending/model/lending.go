package model

import (
	"time"

	"github.com/google/uuid"

	bookModel "librarian-backend/internal/domains/book/model"
	studentModel "librarian-backend/internal/domains/student/model"
)

// MaxDueDays bounds |due_days| so due dates stay inside JSON's year range.
const MaxDueDays = 36500

// BorrowRequest is the body of POST /borrow. DueDays falls back to the
// configured default when omitted.
type BorrowRequest struct {
	StudentID string `json:"student_id"`
	BookID    string `json:"book_id"`
	DueDays   *int   `json:"due_days"`
}

// ReturnRequest is the body of POST /return.
type ReturnRequest struct {
	StudentID string `json:"student_id"`
	BookID    string `json:"book_id"`
}

type BorrowResponse struct {
	Message string    `json:"message"`
	DueDate time.Time `json:"due_date"`
}

type ReturnResponse struct {
	Message string `json:"message"`
}

// BorrowOutcome is what a store reports after a committed borrow.
type BorrowOutcome struct {
	BookTitle string
	Hold      studentModel.BorrowedBook
}

// ReturnOutcome is what a store reports after a committed return. BookTitle
// comes from the removed hold, so it is available even when the book record
// no longer exists.
type ReturnOutcome struct {
	BookTitle   string
	BookUpdated bool
}

// OverdueHold is one late hold with its holder.
type OverdueHold struct {
	StudentID    uuid.UUID `json:"student_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	ClassName    string    `json:"class_name"`
	BookID       uuid.UUID `json:"book_id"`
	BookTitle    string    `json:"book_title"`
	BorrowedDate time.Time `json:"borrowed_date"`
	DueDate      time.Time `json:"due_date"`
	DaysOverdue  int       `json:"days_overdue"`
}

// CountDrift is a book whose borrowed_count disagrees with its hold count.
type CountDrift struct {
	BookID   uuid.UUID `json:"book_id"`
	Title    string    `json:"title"`
	Recorded int       `json:"recorded"`
	Actual   int       `json:"actual"`
}

// DecideBorrow checks a borrow against the current records. Checks run in a
// fixed order: book existence, free copy, student existence, duplicate hold.
func DecideBorrow(book *bookModel.Book, student *studentModel.Student) error {
	if book == nil {
		return bookModel.ErrBookNotFound
	}
	if !book.HasFreeCopy() {
		return ErrNoCopiesAvailable
	}
	if student == nil {
		return studentModel.ErrStudentNotFound
	}
	if student.HasBook(book.ID) {
		return ErrAlreadyBorrowed
	}
	return nil
}

// DecideReturn checks a return and yields the hold being closed.
func DecideReturn(student *studentModel.Student, bookID uuid.UUID) (*studentModel.BorrowedBook, error) {
	if student == nil {
		return nil, studentModel.ErrStudentNotFound
	}
	hold, ok := student.HoldOf(bookID)
	if !ok {
		return nil, ErrNotBorrowed
	}
	return hold, nil
}

// NewHold builds the hold appended on borrow. dueDays is counted in whole
// days and may be zero or negative.
func NewHold(book *bookModel.Book, now time.Time, dueDays int) studentModel.BorrowedBook {
	now = now.UTC()
	due := now.AddDate(0, 0, dueDays)
	return studentModel.BorrowedBook{
		BookID:       book.ID,
		BookTitle:    book.Title,
		BorrowedDate: now,
		DueDate:      &due,
	}
}

// DaysOverdue counts whole days between due and asOf.
func DaysOverdue(due, asOf time.Time) int {
	if !due.Before(asOf) {
		return 0
	}
	return int(asOf.Sub(due).Hours() / 24)
}
