package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"librarian-backend/internal/domains/lending/model"
	"librarian-backend/internal/domains/lending/repository"
	studentModel "librarian-backend/internal/domains/student/model"
)

type lendingRepository struct {
	*Store
}

// Lending returns the borrow/return view spanning students and books.
func (s *Store) Lending() repository.RepositoryInterface {
	return lendingRepository{s}
}

func (r lendingRepository) Borrow(_ context.Context, studentID, bookID uuid.UUID, now time.Time, dueDays int) (*model.BorrowOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book := r.books[bookID]
	student := r.students[studentID]

	if err := model.DecideBorrow(book, student); err != nil {
		return nil, err
	}

	hold := model.NewHold(book, now, dueDays)
	student.BorrowedBooks = append(student.BorrowedBooks, hold)
	book.BorrowedCount++

	return &model.BorrowOutcome{BookTitle: book.Title, Hold: hold}, nil
}

func (r lendingRepository) Return(_ context.Context, studentID, bookID uuid.UUID) (*model.ReturnOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student := r.students[studentID]
	hold, err := model.DecideReturn(student, bookID)
	if err != nil {
		return nil, err
	}
	title := hold.BookTitle

	kept := make([]studentModel.BorrowedBook, 0, len(student.BorrowedBooks))
	for _, h := range student.BorrowedBooks {
		if h.BookID != bookID {
			kept = append(kept, h)
		}
	}
	student.BorrowedBooks = kept

	book, ok := r.books[bookID]
	if ok {
		book.BorrowedCount--
	}

	return &model.ReturnOutcome{BookTitle: title, BookUpdated: ok}, nil
}

func (r lendingRepository) ListOverdue(_ context.Context, asOf time.Time, limit int) ([]model.OverdueHold, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	holds := make([]model.OverdueHold, 0)
	for _, st := range r.sortedStudents(nil) {
		for _, h := range st.BorrowedBooks {
			if !h.IsOverdue(asOf) {
				continue
			}
			holds = append(holds, model.OverdueHold{
				StudentID:    st.ID,
				FirstName:    st.FirstName,
				LastName:     st.LastName,
				ClassName:    st.ClassName,
				BookID:       h.BookID,
				BookTitle:    h.BookTitle,
				BorrowedDate: h.BorrowedDate,
				DueDate:      *h.DueDate,
				DaysOverdue:  model.DaysOverdue(*h.DueDate, asOf),
			})
		}
	}

	sort.SliceStable(holds, func(i, j int) bool {
		return holds[i].DueDate.Before(holds[j].DueDate)
	})
	return capped(holds, limit), nil
}

func (r lendingRepository) FindCountDrift(_ context.Context) ([]model.CountDrift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actual := make(map[uuid.UUID]int)
	for _, st := range r.students {
		for _, h := range st.BorrowedBooks {
			actual[h.BookID]++
		}
	}

	drifts := make([]model.CountDrift, 0)
	for _, b := range r.books {
		if b.BorrowedCount != actual[b.ID] {
			drifts = append(drifts, model.CountDrift{
				BookID:   b.ID,
				Title:    b.Title,
				Recorded: b.BorrowedCount,
				Actual:   actual[b.ID],
			})
		}
	}

	sort.Slice(drifts, func(i, j int) bool { return drifts[i].Title < drifts[j].Title })
	return drifts, nil
}

func (r lendingRepository) RecountBorrowed(_ context.Context, bookID uuid.UUID) (*model.CountDrift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[bookID]
	if !ok {
		return nil, nil
	}

	actual := 0
	for _, st := range r.students {
		if st.HasBook(bookID) {
			actual++
		}
	}

	drift := &model.CountDrift{
		BookID:   book.ID,
		Title:    book.Title,
		Recorded: book.BorrowedCount,
		Actual:   actual,
	}
	book.BorrowedCount = actual
	return drift, nil
}
