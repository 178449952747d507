package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App     AppConfig
	Store   StoreConfig
	Redis   RedisConfig
	MinIO   MinIOConfig
	Lending LendingConfig
	Jobs    JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type StoreConfig struct {
	Driver string // postgres, memory
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Enabled   bool
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type LendingConfig struct {
	DefaultDueDays int           // due_days applied when a borrow request omits it
	LockTTL        time.Duration // lifetime of the per-book borrow lock
}

// JobConfig drives the worker scheduler.
type JobConfig struct {
	OverdueScanCron  string
	OverdueScanLimit int
	ReconcileCron    string
	ReconcileDryRun  bool
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Librarian API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Enabled:   getEnvBool("MINIO_ENABLED", false),
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "librarian"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Lending: LendingConfig{
			DefaultDueDays: getEnvInt("LENDING_DEFAULT_DUE_DAYS", 14),
			LockTTL:        getEnvDuration("LENDING_LOCK_TTL", 5*time.Second),
		},
		Jobs: JobConfig{
			OverdueScanCron:  getEnv("JOB_OVERDUE_SCAN_CRON", "0 6 * * *"),
			OverdueScanLimit: getEnvInt("JOB_OVERDUE_SCAN_LIMIT", 1000),
			ReconcileCron:    getEnv("JOB_RECONCILE_CRON", "30 2 * * *"),
			ReconcileDryRun:  getEnvBool("JOB_RECONCILE_DRY_RUN", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (want %s or %s)",
			c.Store.Driver, StoreDriverPostgres, StoreDriverMemory)
	}

	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}

	if c.Lending.LockTTL <= 0 {
		return fmt.Errorf("LENDING_LOCK_TTL must be positive")
	}

	if c.Jobs.OverdueScanLimit <= 0 {
		return fmt.Errorf("JOB_OVERDUE_SCAN_LIMIT must be positive")
	}

	if c.App.Environment == "production" && c.Store.Driver == StoreDriverMemory {
		return fmt.Errorf("STORE_DRIVER=memory is not allowed in production")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
