package main

import (
	"log"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"librarian-backend/internal/config"
	"librarian-backend/internal/infrastructure/cache"
	"librarian-backend/pkg/logger"
)

// loadConfig reads .env and the environment. The worker always needs Redis,
// whatever REDIS_ENABLED says for the API.
func loadConfig() (*config.Config, asynq.RedisClientOpt) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Config] %v", err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	log.Printf("[Config] Redis: %s, Store: %s, Overdue scan: %q, Reconcile: %q",
		cfg.Redis.Host, cfg.Store.Driver, cfg.Jobs.OverdueScanCron, cfg.Jobs.ReconcileCron)

	return cfg, cache.AsynqRedisOpt(cfg.Redis)
}
