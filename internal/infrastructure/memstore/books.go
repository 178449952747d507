package memstore

import (
	"context"

	"github.com/google/uuid"

	"librarian-backend/internal/domains/book/model"
	"librarian-backend/internal/domains/book/repository"
)

type bookRepository struct {
	*Store
}

// Books returns the book collection view.
func (s *Store) Books() repository.RepositoryInterface {
	return bookRepository{s}
}

func (r bookRepository) Create(_ context.Context, book *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.books[book.ID] = book.Clone()
	r.bookSeq[book.ID] = r.nextSeq()
	return nil
}

func (r bookRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, nil
	}
	return b.Clone(), nil
}

func (r bookRepository) List(_ context.Context, limit int) ([]*model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := capped(r.sortedBooks(), limit)
	out := make([]*model.Book, len(books))
	for i, b := range books {
		out[i] = b.Clone()
	}
	return out, nil
}

func (r bookRepository) Update(_ context.Context, id uuid.UUID, p model.BookPatch) (*model.Book, error) {
	if p.IsEmpty() {
		return nil, model.ErrEmptyUpdate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return nil, nil
	}
	p.Apply(b)
	return b.Clone(), nil
}

func (r bookRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return false, nil
	}
	delete(r.books, id)
	delete(r.bookSeq, id)
	return true, nil
}

func (r bookRepository) MergeCopies(_ context.Context, book *model.Book) (*model.Book, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.sortedBooks() {
		if b.Title == book.Title && b.Author == book.Author {
			b.Quantity += book.Quantity
			return b.Clone(), false, nil
		}
	}

	r.books[book.ID] = book.Clone()
	r.bookSeq[book.ID] = r.nextSeq()
	return book.Clone(), true, nil
}
