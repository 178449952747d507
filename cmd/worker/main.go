package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"librarian-backend/pkg/container"
)

func main() {
	cfg, redisOpt := loadConfig()

	c, err := container.NewContainerWithConfig(cfg)
	if err != nil {
		log.Fatalf("[Container] Failed to initialize: %v", err)
	}
	defer c.Cleanup()

	handlers := initializeHandlers(c)

	srv := setupAsynqServer(redisOpt, handlers)

	scheduler := setupScheduler(redisOpt, cfg.Jobs)

	if err := startServices(c, redisOpt); err != nil {
		scheduler.Shutdown()
		srv.Shutdown()
		log.Fatalf("[Startup] Health check failed: %v", err)
	}

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("[Shutdown] Gracefully stopping...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Println("[Shutdown] ✓ Stopped")
}
