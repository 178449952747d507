package model

import (
	"time"

	"github.com/google/uuid"
)

// Book is a title with a number of physical copies.
type Book struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Author        string    `json:"author" db:"author"`
	Quantity      int       `json:"quantity" db:"quantity"`
	BorrowedCount int       `json:"borrowed_count" db:"borrowed_count"`
	Available     bool      `json:"available" db:"available"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// NewBook builds a book with no copies out.
func NewBook(title, author string, quantity int, now time.Time) *Book {
	return &Book{
		ID:        uuid.New(),
		Title:     title,
		Author:    author,
		Quantity:  quantity,
		Available: true,
		CreatedAt: now.UTC(),
	}
}

// CopiesLeft is quantity minus borrowed_count. It can go negative when
// quantity is lowered below the borrowed count.
func (b *Book) CopiesLeft() int {
	return b.Quantity - b.BorrowedCount
}

// HasFreeCopy reports whether one more copy can be lent.
func (b *Book) HasFreeCopy() bool {
	return b.CopiesLeft() > 0
}

func (b *Book) Clone() *Book {
	cp := *b
	return &cp
}
