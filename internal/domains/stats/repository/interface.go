package repository

import (
	"context"

	"librarian-backend/internal/domains/stats/model"
)

type RepositoryInterface interface {
	// Totals reads every aggregate. ClassCounts is sorted by class name.
	Totals(ctx context.Context) (*model.Totals, error)
}
