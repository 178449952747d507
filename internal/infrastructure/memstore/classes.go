package memstore

import (
	"context"
	"sort"
	"time"

	"librarian-backend/internal/domains/class/model"
	"librarian-backend/internal/domains/class/repository"
)

type classRepository struct {
	*Store
}

// Classes returns the class collection view.
func (s *Store) Classes() repository.RepositoryInterface {
	return classRepository{s}
}

func (r classRepository) EnsureExists(_ context.Context, name string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.classes[name]; ok {
		return false, nil
	}
	r.classes[name] = model.NewClass(name, now)
	return true, nil
}

func (r classRepository) GetByName(_ context.Context, name string) (*model.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.classes[name]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Students = []string{}
	return &cp, nil
}

func (r classRepository) List(_ context.Context, limit int) ([]*model.Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Class, 0, len(r.classes))
	for _, c := range r.classes {
		cp := *c
		cp.Students = []string{}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return capped(out, limit), nil
}
