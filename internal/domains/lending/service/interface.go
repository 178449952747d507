package service

import (
	"context"
	"time"

	"librarian-backend/internal/domains/lending/model"
)

// ServiceInterface - borrow/return workflow and lending maintenance
type ServiceInterface interface {
	Borrow(ctx context.Context, req model.BorrowRequest) (*model.BorrowResponse, error)
	Return(ctx context.Context, req model.ReturnRequest) (*model.ReturnResponse, error)
	ListOverdue(ctx context.Context) ([]model.OverdueHold, error)

	// ScanOverdue lists holds overdue at asOf, up to limit.
	ScanOverdue(ctx context.Context, asOf time.Time, limit int) ([]model.OverdueHold, error)

	// Reconcile resets drifted borrowed_count values to the hold count.
	// With dryRun set nothing is written.
	Reconcile(ctx context.Context, dryRun bool) ([]model.CountDrift, error)
}
