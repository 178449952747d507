package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"librarian-backend/internal/domains/lending/service"
	"librarian-backend/internal/shared"
	"librarian-backend/internal/shared/utils"
)

// ReconcileHandler repairs borrowed_count values that no longer match the
// holds, e.g. after a student holding books was deleted.
type ReconcileHandler struct {
	service service.ServiceInterface
}

func NewReconcileHandler(svc service.ServiceInterface) *ReconcileHandler {
	return &ReconcileHandler{service: svc}
}

func (h *ReconcileHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.ReconcilePayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	drifts, err := h.service.Reconcile(ctx, payload.DryRun)
	if err != nil {
		return fmt.Errorf("reconcile borrowed count: %w", err)
	}

	log.Info().
		Int("drifted_books", len(drifts)).
		Bool("dry_run", payload.DryRun).
		Str("source", payload.Source).
		Msg("borrowed count reconciliation completed")

	return nil
}
