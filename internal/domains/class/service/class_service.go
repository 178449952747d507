package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"librarian-backend/internal/domains/class/model"
	"librarian-backend/internal/domains/class/repository"
	types "librarian-backend/internal/shared"
)

type ServiceInterface interface {
	RegisterClass(ctx context.Context, req model.CreateClassRequest) (*model.CreateClassResponse, error)
	ListRegistered(ctx context.Context) ([]*model.Class, error)
	// EnsureClass registers name if missing. Student import calls it per row.
	EnsureClass(ctx context.Context, name string) error
}

type ClassService struct {
	repo repository.RepositoryInterface
	now  func() time.Time
}

func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &ClassService{repo: repo, now: time.Now}
}

func (s *ClassService) RegisterClass(ctx context.Context, req model.CreateClassRequest) (*model.CreateClassResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.ErrInvalidClass.WithMessage(err.Error()).Wrap(err)
	}

	created, err := s.repo.EnsureExists(ctx, req.Name, s.now())
	if err != nil {
		return nil, fmt.Errorf("register class: %w", err)
	}

	if !created {
		return &model.CreateClassResponse{
			Message:   fmt.Sprintf("Class %s already exists", req.Name),
			ClassName: req.Name,
		}, nil
	}

	log.Info().Str("class_name", req.Name).Msg("class registered")

	return &model.CreateClassResponse{
		Message:   fmt.Sprintf("Class %s is ready to accept students", req.Name),
		ClassName: req.Name,
	}, nil
}

func (s *ClassService) ListRegistered(ctx context.Context) ([]*model.Class, error) {
	classes, err := s.repo.List(ctx, types.MaxFetch)
	if err != nil {
		return nil, fmt.Errorf("list registered classes: %w", err)
	}
	return classes, nil
}

func (s *ClassService) EnsureClass(ctx context.Context, name string) error {
	created, err := s.repo.EnsureExists(ctx, name, s.now())
	if err != nil {
		return fmt.Errorf("ensure class %q: %w", name, err)
	}
	if created {
		log.Debug().Str("class_name", name).Msg("class created on import")
	}
	return nil
}
