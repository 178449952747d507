package main

import (
	"log"

	"github.com/hibiken/asynq"

	"librarian-backend/internal/config"
	"librarian-backend/internal/infrastructure/queue"
)

type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(redisOpt asynq.RedisClientOpt, jobConfig config.JobConfig) *asynqScheduler {
	scheduler := queue.NewScheduler(redisOpt, jobConfig)

	if err := scheduler.RegisterLendingJobs(); err != nil {
		log.Fatalf("[Scheduler] Failed to register: %v", err)
	}

	go func() {
		log.Println("[Scheduler] Starting...")
		if err := scheduler.Start(); err != nil {
			log.Fatalf("[Scheduler] Failed: %v", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Println("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Println("[Scheduler] ✓ Stopped")
}
