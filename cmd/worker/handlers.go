package main

import (
	"github.com/hibiken/asynq"

	lendingJob "librarian-backend/internal/domains/lending/job"
	"librarian-backend/internal/shared"
	"librarian-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	scanOverdue *lendingJob.ScanOverdueHandler
	reconcile   *lendingJob.ReconcileHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		scanOverdue: lendingJob.NewScanOverdueHandler(c.LendingService),
		reconcile:   lendingJob.NewReconcileHandler(c.LendingService),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeScanOverdueHolds, h.scanOverdue.ProcessTask)
	mux.HandleFunc(shared.TypeReconcileBorrowedCount, h.reconcile.ProcessTask)
}
