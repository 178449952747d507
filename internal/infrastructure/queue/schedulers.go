package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"librarian-backend/internal/config"
	"librarian-backend/internal/shared"
	"librarian-backend/internal/shared/utils"
	"librarian-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterLendingJobs registers the periodic lending maintenance tasks.
// An empty cron spec disables the job.
func (s *Scheduler) RegisterLendingJobs() error {
	if err := s.registerScanOverdueJob(); err != nil {
		return err
	}

	if err := s.registerReconcileJob(); err != nil {
		return err
	}

	return nil
}

// ================================================
// JOB 1: Scan overdue holds (daily, JOB_OVERDUE_SCAN_CRON)
// ================================================
func (s *Scheduler) registerScanOverdueJob() error {
	spec := s.jobConfig.OverdueScanCron
	if spec == "" {
		logger.Warn("ScanOverdueHolds disabled", map[string]interface{}{})
		return nil
	}

	task, err := ScanOverdueTask(s.jobConfig.OverdueScanLimit)
	if err != nil {
		return err
	}

	if _, err := s.scheduler.Register(spec, task); err != nil {
		logger.Error("Failed to register ScanOverdueHolds job", err)
		return fmt.Errorf("register %s: %w", shared.TypeScanOverdueHolds, err)
	}

	logger.Info("✓ Registered ScanOverdueHolds", map[string]interface{}{"cron": spec})
	return nil
}

// ================================================
// JOB 2: Reconcile borrowed_count (nightly, JOB_RECONCILE_CRON)
// ================================================
func (s *Scheduler) registerReconcileJob() error {
	spec := s.jobConfig.ReconcileCron
	if spec == "" {
		logger.Warn("ReconcileBorrowedCount disabled", map[string]interface{}{})
		return nil
	}

	task, err := ReconcileTask(s.jobConfig.ReconcileDryRun, "scheduler")
	if err != nil {
		return err
	}

	if _, err := s.scheduler.Register(spec, task); err != nil {
		logger.Error("Failed to register ReconcileBorrowedCount job", err)
		return fmt.Errorf("register %s: %w", shared.TypeReconcileBorrowedCount, err)
	}

	logger.Info("✓ Registered ReconcileBorrowedCount", map[string]interface{}{
		"cron":    spec,
		"dry_run": s.jobConfig.ReconcileDryRun,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

// ScanOverdueTask builds a TypeScanOverdueHolds task evaluated at run time.
func ScanOverdueTask(limit int) (*asynq.Task, error) {
	return utils.NewTask(
		shared.TypeScanOverdueHolds,
		shared.ScanOverduePayload{Limit: limit},
		asynq.Queue(shared.QueueLending),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
}

// ReconcileTask builds a TypeReconcileBorrowedCount task.
func ReconcileTask(dryRun bool, source string) (*asynq.Task, error) {
	return utils.NewTask(
		shared.TypeReconcileBorrowedCount,
		shared.ReconcilePayload{DryRun: dryRun, Source: source},
		asynq.Queue(shared.QueueLending),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
}
