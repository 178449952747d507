package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"
	zlog "github.com/rs/zerolog/log"

	"librarian-backend/internal/shared"
)

type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(redisOpt asynq.RedisClientOpt, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				shared.QueueLending: 10,
				shared.QueueDefault: 5,
			},
			// Reconcile rewrites counts in bulk; keep maintenance jobs serial.
			Concurrency: 1,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				zlog.Error().Err(err).Str("task_type", task.Type()).Msg("task failed")
			}),
		},
	)

	go func() {
		log.Println("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks up to asynq's ShutdownTimeout.
func (s *asynqServer) Shutdown() {
	log.Println("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Println("[Worker] ✓ Gracefully stopped")
}
