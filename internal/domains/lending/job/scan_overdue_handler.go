package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"librarian-backend/internal/domains/lending/service"
	"librarian-backend/internal/shared"
	"librarian-backend/internal/shared/utils"
)

// ScanOverdueHandler logs every overdue hold so late books show up in the
// worker logs each morning.
type ScanOverdueHandler struct {
	service service.ServiceInterface
	now     func() time.Time
}

func NewScanOverdueHandler(svc service.ServiceInterface) *ScanOverdueHandler {
	return &ScanOverdueHandler{service: svc, now: time.Now}
}

func (h *ScanOverdueHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.ScanOverduePayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	asOf := payload.AsOf
	if asOf.IsZero() {
		asOf = h.now()
	}

	holds, err := h.service.ScanOverdue(ctx, asOf, payload.Limit)
	if err != nil {
		return fmt.Errorf("scan overdue: %w", err)
	}

	for _, hold := range holds {
		log.Warn().
			Str("student_id", hold.StudentID.String()).
			Str("student", hold.FirstName+" "+hold.LastName).
			Str("class_name", hold.ClassName).
			Str("book_title", hold.BookTitle).
			Time("due_date", hold.DueDate).
			Int("days_overdue", hold.DaysOverdue).
			Msg("overdue hold")
	}

	log.Info().
		Int("overdue", len(holds)).
		Time("as_of", asOf).
		Msg("overdue scan completed")

	return nil
}
