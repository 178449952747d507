package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"librarian-backend/internal/domains/lending/model"
	"librarian-backend/internal/domains/lending/repository"
	types "librarian-backend/internal/shared"
	"librarian-backend/internal/shared/utils"
	"librarian-backend/pkg/lock"
)

// Config holds the lending knobs read from configuration.
type Config struct {
	DefaultDueDays int
	LockTTL        time.Duration
}

type LendingService struct {
	repo   repository.RepositoryInterface
	locker lock.Locker
	cfg    Config
	now    func() time.Time
}

func NewService(repo repository.RepositoryInterface, locker lock.Locker, cfg Config) ServiceInterface {
	if locker == nil {
		locker = lock.NoopLocker{}
	}
	return &LendingService{
		repo:   repo,
		locker: locker,
		cfg:    cfg,
		now:    time.Now,
	}
}

func (s *LendingService) Borrow(ctx context.Context, req model.BorrowRequest) (*model.BorrowResponse, error) {
	if err := validateIDs(req.StudentID, req.BookID); err != nil {
		return nil, err
	}

	dueDays := s.cfg.DefaultDueDays
	if req.DueDays != nil {
		dueDays = *req.DueDays
	}
	if dueDays > model.MaxDueDays || dueDays < -model.MaxDueDays {
		return nil, model.ErrInvalidRequest.WithMessage(
			fmt.Sprintf("due_days must be between %d and %d", -model.MaxDueDays, model.MaxDueDays))
	}
	if dueDays <= 0 {
		log.Warn().
			Str("student_id", req.StudentID).
			Str("book_id", req.BookID).
			Int("due_days", dueDays).
			Msg("borrow with non-positive due_days, due date is not after borrow date")
	}

	// malformed ids map to uuid.Nil, which matches no record
	studentID := utils.ParseStringToUUID(req.StudentID)
	bookID := utils.ParseStringToUUID(req.BookID)

	unlock, err := s.lockBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	defer s.release(unlock, bookID)

	outcome, err := s.repo.Borrow(ctx, studentID, bookID, s.now(), dueDays)
	if err != nil {
		return nil, fmt.Errorf("borrow book: %w", err)
	}

	log.Info().
		Str("student_id", studentID.String()).
		Str("book_id", bookID.String()).
		Time("due_date", *outcome.Hold.DueDate).
		Msg("book borrowed")

	return &model.BorrowResponse{
		Message: fmt.Sprintf("Book '%s' borrowed successfully", outcome.BookTitle),
		DueDate: *outcome.Hold.DueDate,
	}, nil
}

func (s *LendingService) Return(ctx context.Context, req model.ReturnRequest) (*model.ReturnResponse, error) {
	if err := validateIDs(req.StudentID, req.BookID); err != nil {
		return nil, err
	}

	studentID := utils.ParseStringToUUID(req.StudentID)
	bookID := utils.ParseStringToUUID(req.BookID)

	unlock, err := s.lockBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	defer s.release(unlock, bookID)

	outcome, err := s.repo.Return(ctx, studentID, bookID)
	if err != nil {
		return nil, fmt.Errorf("return book: %w", err)
	}

	event := log.Info()
	if !outcome.BookUpdated {
		event = log.Warn()
	}
	event.
		Str("student_id", studentID.String()).
		Str("book_id", bookID.String()).
		Bool("book_updated", outcome.BookUpdated).
		Msg("book returned")

	return &model.ReturnResponse{
		Message: fmt.Sprintf("Book '%s' returned successfully", outcome.BookTitle),
	}, nil
}

func (s *LendingService) ListOverdue(ctx context.Context) ([]model.OverdueHold, error) {
	return s.ScanOverdue(ctx, s.now(), types.MaxFetch)
}

func (s *LendingService) ScanOverdue(ctx context.Context, asOf time.Time, limit int) ([]model.OverdueHold, error) {
	if limit <= 0 || limit > types.MaxFetch {
		limit = types.MaxFetch
	}

	holds, err := s.repo.ListOverdue(ctx, asOf.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("list overdue holds: %w", err)
	}
	return holds, nil
}

// Reconcile reports books whose borrowed_count disagrees with their holds and,
// unless dryRun, recounts each one under the book lock. The result lists the
// counts as found by the recount, so drift that a concurrent borrow or return
// already settled is dropped.
func (s *LendingService) Reconcile(ctx context.Context, dryRun bool) ([]model.CountDrift, error) {
	drifts, err := s.repo.FindCountDrift(ctx)
	if err != nil {
		return nil, fmt.Errorf("find borrowed count drift: %w", err)
	}

	if dryRun {
		for _, d := range drifts {
			logDrift(d, true)
		}
		return drifts, nil
	}

	repaired := make([]model.CountDrift, 0, len(drifts))
	for _, d := range drifts {
		fixed, err := s.recount(ctx, d.BookID)
		if errors.Is(err, model.ErrLockBusy) {
			log.Warn().Str("book_id", d.BookID.String()).Msg("book busy, recount deferred to next run")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("repair book %s: %w", d.BookID, err)
		}
		if fixed == nil || fixed.Recorded == fixed.Actual {
			continue
		}

		logDrift(*fixed, false)
		repaired = append(repaired, *fixed)
	}

	return repaired, nil
}

func (s *LendingService) recount(ctx context.Context, bookID uuid.UUID) (*model.CountDrift, error) {
	unlock, err := s.lockBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	defer s.release(unlock, bookID)

	return s.repo.RecountBorrowed(ctx, bookID)
}

func logDrift(d model.CountDrift, dryRun bool) {
	log.Warn().
		Str("book_id", d.BookID.String()).
		Str("title", d.Title).
		Int("recorded", d.Recorded).
		Int("actual", d.Actual).
		Bool("dry_run", dryRun).
		Msg("borrowed_count drift")
}

func (s *LendingService) lockBook(ctx context.Context, bookID uuid.UUID) (lock.Unlock, error) {
	unlock, err := s.locker.Lock(ctx, "book:"+bookID.String(), s.cfg.LockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			return nil, model.ErrLockBusy
		}
		return nil, fmt.Errorf("lock book %s: %w", bookID, err)
	}
	return unlock, nil
}

func (s *LendingService) release(unlock lock.Unlock, bookID uuid.UUID) {
	// request context may already be cancelled
	if err := unlock(context.Background()); err != nil {
		log.Error().Err(err).Str("book_id", bookID.String()).Msg("failed to release book lock")
	}
}

func validateIDs(studentID, bookID string) error {
	err := validation.Errors{
		"student_id": validation.Validate(studentID, validation.Required),
		"book_id":    validation.Validate(bookID, validation.Required),
	}.Filter()
	if err != nil {
		return model.ErrInvalidRequest.WithMessage(err.Error()).Wrap(err)
	}
	return nil
}
