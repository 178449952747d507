package repository

import (
	"context"
	"time"

	"librarian-backend/internal/domains/class/model"
)

type RepositoryInterface interface {
	// EnsureExists creates the class when missing. created reports whether a
	// new record was written.
	EnsureExists(ctx context.Context, name string, now time.Time) (created bool, err error)
	GetByName(ctx context.Context, name string) (*model.Class, error)
	List(ctx context.Context, limit int) ([]*model.Class, error)
}
