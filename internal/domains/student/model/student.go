package model

import (
	"time"

	"github.com/google/uuid"
)

// BorrowedBook is a hold embedded in a Student. BookTitle is a snapshot
// taken at borrow time and does not follow later title edits.
type BorrowedBook struct {
	BookID       uuid.UUID  `json:"book_id" db:"book_id"`
	BookTitle    string     `json:"book_title" db:"book_title"`
	BorrowedDate time.Time  `json:"borrowed_date" db:"borrowed_date"`
	DueDate      *time.Time `json:"due_date" db:"due_date"`
}

// IsOverdue reports whether the hold's due date is before asOf.
func (b BorrowedBook) IsOverdue(asOf time.Time) bool {
	return b.DueDate != nil && b.DueDate.Before(asOf)
}

type Student struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	FirstName     string         `json:"first_name" db:"first_name"`
	LastName      string         `json:"last_name" db:"last_name"`
	ClassName     string         `json:"class_name" db:"class_name"`
	BorrowedBooks []BorrowedBook `json:"borrowed_books" db:"-"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

// NewStudent builds a student with a fresh id and no holds.
func NewStudent(firstName, lastName, className string, now time.Time) *Student {
	return &Student{
		ID:            uuid.New(),
		FirstName:     firstName,
		LastName:      lastName,
		ClassName:     className,
		BorrowedBooks: []BorrowedBook{},
		CreatedAt:     now.UTC(),
	}
}

// HoldOf returns the student's hold on bookID, if any.
func (s *Student) HoldOf(bookID uuid.UUID) (*BorrowedBook, bool) {
	for i := range s.BorrowedBooks {
		if s.BorrowedBooks[i].BookID == bookID {
			return &s.BorrowedBooks[i], true
		}
	}
	return nil, false
}

// HasBook reports whether the student currently holds bookID.
func (s *Student) HasBook(bookID uuid.UUID) bool {
	_, ok := s.HoldOf(bookID)
	return ok
}

// Clone returns a deep copy.
func (s *Student) Clone() *Student {
	cp := *s
	cp.BorrowedBooks = make([]BorrowedBook, len(s.BorrowedBooks))
	for i, b := range s.BorrowedBooks {
		cp.BorrowedBooks[i] = b
		if b.DueDate != nil {
			due := *b.DueDate
			cp.BorrowedBooks[i].DueDate = &due
		}
	}
	return &cp
}

// Identity is the (first, last, class) triple used to detect duplicates on
// import.
type Identity struct {
	FirstName string
	LastName  string
	ClassName string
}

func (s *Student) Identity() Identity {
	return Identity{FirstName: s.FirstName, LastName: s.LastName, ClassName: s.ClassName}
}
