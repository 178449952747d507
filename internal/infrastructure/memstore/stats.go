package memstore

import (
	"context"
	"sort"

	"librarian-backend/internal/domains/stats/model"
	"librarian-backend/internal/domains/stats/repository"
)

type statsRepository struct {
	*Store
}

// Stats returns the aggregate view.
func (s *Store) Stats() repository.RepositoryInterface {
	return statsRepository{s}
}

func (r statsRepository) Totals(_ context.Context) (*model.Totals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t := model.Totals{
		Students: len(r.students),
		Books:    len(r.books),
	}

	for _, b := range r.books {
		t.Copies += b.Quantity
		t.BorrowedCopies += b.BorrowedCount
		if b.Available {
			t.AvailableBooks++
		}
	}

	perClass := make(map[string]int)
	for _, st := range r.students {
		perClass[st.ClassName]++
	}

	t.ClassCounts = make([]model.ClassCount, 0, len(perClass))
	for name, count := range perClass {
		t.ClassCounts = append(t.ClassCounts, model.ClassCount{ClassName: name, Count: count})
	}
	sort.Slice(t.ClassCounts, func(i, j int) bool {
		return t.ClassCounts[i].ClassName < t.ClassCounts[j].ClassName
	})

	return &t, nil
}
