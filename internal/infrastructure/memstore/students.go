package memstore

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"librarian-backend/internal/domains/student/model"
	"librarian-backend/internal/domains/student/repository"
)

type studentRepository struct {
	*Store
}

// Students returns the student collection view.
func (s *Store) Students() repository.RepositoryInterface {
	return studentRepository{s}
}

func (r studentRepository) Create(_ context.Context, student *model.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := student.Clone()
	stored.BorrowedBooks = []model.BorrowedBook{}
	r.students[stored.ID] = stored
	r.studentSeq[stored.ID] = r.nextSeq()
	return nil
}

func (r studentRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.students[id]
	if !ok {
		return nil, nil
	}
	return st.Clone(), nil
}

func (r studentRepository) List(_ context.Context, limit int) ([]*model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneStudents(capped(r.sortedStudents(nil), limit)), nil
}

func (r studentRepository) ListByClass(_ context.Context, className string, limit int) ([]*model.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.sortedStudents(func(st *model.Student) bool {
		return st.ClassName == className
	})
	return cloneStudents(capped(matches, limit)), nil
}

func (r studentRepository) DistinctClasses(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	classes := make([]string, 0)
	for _, st := range r.students {
		if _, ok := seen[st.ClassName]; ok {
			continue
		}
		seen[st.ClassName] = struct{}{}
		classes = append(classes, st.ClassName)
	}
	sort.Strings(classes)
	return classes, nil
}

func (r studentRepository) Update(_ context.Context, id uuid.UUID, p model.StudentPatch) (*model.Student, error) {
	if p.IsEmpty() {
		return nil, model.ErrEmptyUpdate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.students[id]
	if !ok {
		return nil, nil
	}
	p.Apply(st)
	return st.Clone(), nil
}

func (r studentRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.students[id]; !ok {
		return false, nil
	}
	delete(r.students, id)
	delete(r.studentSeq, id)
	return true, nil
}

func (r studentRepository) ExistsByIdentity(_ context.Context, identity model.Identity) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, st := range r.students {
		if st.Identity() == identity {
			return true, nil
		}
	}
	return false, nil
}

func cloneStudents(in []*model.Student) []*model.Student {
	out := make([]*model.Student, len(in))
	for i, st := range in {
		out[i] = st.Clone()
	}
	return out
}
