// Package memstore is an in-process document store implementing every
// repository interface. One mutex guards all collections, so each call is
// atomic across students and books.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	bookModel "librarian-backend/internal/domains/book/model"
	classModel "librarian-backend/internal/domains/class/model"
	studentModel "librarian-backend/internal/domains/student/model"
)

type Store struct {
	mu sync.RWMutex

	students map[uuid.UUID]*studentModel.Student
	books    map[uuid.UUID]*bookModel.Book
	classes  map[string]*classModel.Class

	// insertion order, used to break created_at ties
	studentSeq map[uuid.UUID]int64
	bookSeq    map[uuid.UUID]int64
	seq        int64
}

func New() *Store {
	return &Store{
		students:   make(map[uuid.UUID]*studentModel.Student),
		books:      make(map[uuid.UUID]*bookModel.Book),
		classes:    make(map[string]*classModel.Class),
		studentSeq: make(map[uuid.UUID]int64),
		bookSeq:    make(map[uuid.UUID]int64),
	}
}

// Ping never fails; it exists so the store can sit behind the same health
// check as postgres.
func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// sortedStudents returns students ordered by created_at, then insertion.
// Caller holds the lock.
func (s *Store) sortedStudents(keep func(*studentModel.Student) bool) []*studentModel.Student {
	out := make([]*studentModel.Student, 0, len(s.students))
	for _, st := range s.students {
		if keep == nil || keep(st) {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return s.studentSeq[out[i].ID] < s.studentSeq[out[j].ID]
	})
	return out
}

func (s *Store) sortedBooks() []*bookModel.Book {
	out := make([]*bookModel.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return s.bookSeq[out[i].ID] < s.bookSeq[out[j].ID]
	})
	return out
}

func capped[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
