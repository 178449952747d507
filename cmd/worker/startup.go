package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"

	"librarian-backend/internal/shared/utils"
	"librarian-backend/pkg/container"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	container   *container.Container
	redisClient *redis.Client
}

func startServices(c *container.Container, redisOpt asynq.RedisClientOpt) error {
	log.Println("============================================")
	log.Println("🚀 Librarian Worker Starting...")
	log.Println("============================================")

	checker := &HealthChecker{
		container: c,
		redisClient: redis.NewClient(&redis.Options{
			Addr:     redisOpt.Addr,
			Password: redisOpt.Password,
			DB:       redisOpt.DB,
			MaintNotificationsConfig: &maintnotifications.Config{
				Mode: maintnotifications.ModeDisabled,
			},
		}),
	}

	if err := checker.checkAll(); err != nil {
		_ = checker.redisClient.Close()
		return err
	}

	go checker.serve(utils.GetEnvVariable("WORKER_HEALTH_ADDR", ":9999"))

	return nil
}

func (h *HealthChecker) checkAll() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"Redis Connection", h.checkRedis},
		{"Store", h.checkStore},
	}

	for _, check := range checks {
		log.Printf("⏳ Checking %s...\n", check.name)
		if err := check.fn(); err != nil {
			log.Printf("❌ %s: %v\n", check.name, err)
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Printf("✓ %s: OK\n", check.name)
	}

	return nil
}

func (h *HealthChecker) checkRedis() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return h.redisClient.Ping(ctx).Err()
}

func (h *HealthChecker) checkStore() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	health := h.container.HealthCheck(ctx)
	if !health.StoreHealthy() {
		return fmt.Errorf("store: %s", health.Store)
	}
	return nil
}

// serve exposes /health and /ready for the container orchestrator.
func (h *HealthChecker) serve(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]string{"status": "UP", "service": "librarian-worker"}
		if err := h.checkRedis(); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "DOWN"
			body["redis"] = err.Error()
		}
		writeJSON(w, status, body)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := h.checkStore(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "NOT_READY", "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "READY"})
	})

	log.Printf("[Health] Starting health check server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("[Health] Failed to start: %v\n", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
