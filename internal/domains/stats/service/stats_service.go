package service

import (
	"context"
	"fmt"

	"librarian-backend/internal/domains/stats/model"
	"librarian-backend/internal/domains/stats/repository"
)

type ServiceInterface interface {
	GetStats(ctx context.Context) (*model.Stats, error)
}

type StatsService struct {
	repo repository.RepositoryInterface
}

func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &StatsService{repo: repo}
}

func (s *StatsService) GetStats(ctx context.Context) (*model.Stats, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	stats := model.FromTotals(*totals)
	return &stats, nil
}
