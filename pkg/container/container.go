package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"librarian-backend/internal/config"
	"librarian-backend/internal/infrastructure/cache"
	"librarian-backend/internal/infrastructure/database"
	"librarian-backend/internal/infrastructure/memstore"
	"librarian-backend/internal/infrastructure/storage"
	"librarian-backend/pkg/lock"

	bookHandler "librarian-backend/internal/domains/book/handler"
	bookRepo "librarian-backend/internal/domains/book/repository"
	bookService "librarian-backend/internal/domains/book/service"
	classHandler "librarian-backend/internal/domains/class/handler"
	classRepo "librarian-backend/internal/domains/class/repository"
	classService "librarian-backend/internal/domains/class/service"
	lendingHandler "librarian-backend/internal/domains/lending/handler"
	lendingRepo "librarian-backend/internal/domains/lending/repository"
	lendingService "librarian-backend/internal/domains/lending/service"
	spreadsheetHandler "librarian-backend/internal/domains/spreadsheet/handler"
	spreadsheetService "librarian-backend/internal/domains/spreadsheet/service"
	statsHandler "librarian-backend/internal/domains/stats/handler"
	statsRepo "librarian-backend/internal/domains/stats/repository"
	statsService "librarian-backend/internal/domains/stats/service"
	studentHandler "librarian-backend/internal/domains/student/handler"
	studentRepo "librarian-backend/internal/domains/student/repository"
	studentService "librarian-backend/internal/domains/student/service"
)

// lockWait bounds how long a borrow waits for the per-book lock.
const lockWait = 2 * time.Second

// ========================================
// CONTAINER STRUCT
// ========================================

// Container owns every long-lived dependency of the application.
// Order of construction: config, store, redis, object storage,
// repositories, services, handlers.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config  *config.Config
	DB      *database.PostgresDB  // nil with the memory driver
	Memory  *memstore.Store       // nil with the postgres driver
	Redis   *cache.RedisClient    // nil when REDIS_ENABLED=false
	Storage *storage.MinIOStorage // nil when MINIO_ENABLED=false
	Locker  lock.Locker

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	StudentRepo studentRepo.RepositoryInterface
	BookRepo    bookRepo.RepositoryInterface
	ClassRepo   classRepo.RepositoryInterface
	LendingRepo lendingRepo.RepositoryInterface
	StatsRepo   statsRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================
	StudentService     studentService.ServiceInterface
	BookService        bookService.ServiceInterface
	ClassService       classService.ServiceInterface
	LendingService     lendingService.ServiceInterface
	StatsService       statsService.ServiceInterface
	SpreadsheetService spreadsheetService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	StudentHandler     *studentHandler.Handler
	BookHandler        *bookHandler.Handler
	ClassHandler       *classHandler.Handler
	LendingHandler     *lendingHandler.Handler
	StatsHandler       *statsHandler.Handler
	SpreadsheetHandler *spreadsheetHandler.Handler
}

// NewContainer loads config and builds the whole dependency graph.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewContainerWithConfig(cfg)
}

// NewContainerWithConfig builds the dependency graph from an already loaded config.
func NewContainerWithConfig(cfg *config.Config) (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{Config: cfg}
	log.Printf("✅ Config loaded (Environment: %s, Store: %s)", cfg.App.Environment, cfg.Store.Driver)

	// ========================================
	// STEP 1: INITIALIZE STORE
	// ========================================
	if err := c.initStore(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 2: INITIALIZE REDIS LOCK
	// ========================================
	c.initLocker()

	// ========================================
	// STEP 3: INITIALIZE OBJECT STORAGE
	// ========================================
	c.initStorage()

	// ========================================
	// STEP 4: INITIALIZE REPOSITORIES
	// ========================================
	log.Println("📦 Initializing repositories...")
	c.initRepositories()
	log.Println("✅ Repositories initialized")

	// ========================================
	// STEP 5: INITIALIZE SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")
	c.initServices()
	log.Println("✅ Services initialized")

	// ========================================
	// STEP 6: INITIALIZE HANDLERS
	// ========================================
	log.Println("🎯 Initializing handlers...")
	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initStore() error {
	if c.Config.Store.Driver == config.StoreDriverMemory {
		log.Println("🧠 Using in-memory store")
		c.Memory = memstore.New()
		return nil
	}

	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	log.Println("✅ Database connected")
	return nil
}

// initLocker falls back to a no-op locker when Redis is disabled or unreachable.
func (c *Container) initLocker() {
	c.Locker = lock.NoopLocker{}

	if !c.Config.Redis.Enabled {
		return
	}

	log.Println("🔴 Connecting to Redis...")

	client := cache.NewRedisClient(c.Config.Redis)
	if err := client.Connect(context.Background()); err != nil {
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		_ = client.Close()
		return
	}

	c.Redis = client
	c.Locker = cache.NewRedisLocker(client, lockWait)
	log.Println("✅ Redis connected")
}

// initStorage leaves Storage nil when MinIO is disabled or unreachable; imports
// then skip archiving.
func (c *Container) initStorage() {
	if !c.Config.MinIO.Enabled {
		return
	}

	log.Println("🪣 Connecting to MinIO...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
	if err != nil {
		log.Printf("⚠️  MinIO unavailable (non-critical): %v", err)
		return
	}

	c.Storage = store
	log.Println("✅ MinIO connected")
}

func (c *Container) initRepositories() {
	if c.Memory != nil {
		c.StudentRepo = c.Memory.Students()
		c.BookRepo = c.Memory.Books()
		c.ClassRepo = c.Memory.Classes()
		c.LendingRepo = c.Memory.Lending()
		c.StatsRepo = c.Memory.Stats()
		return
	}

	pool := c.DB.Pool
	c.StudentRepo = studentRepo.NewPostgresRepository(pool)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.ClassRepo = classRepo.NewPostgresRepository(pool)
	c.LendingRepo = lendingRepo.NewPostgresRepository(pool)
	c.StatsRepo = statsRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.StudentService = studentService.NewService(c.StudentRepo)
	c.BookService = bookService.NewService(c.BookRepo)
	c.ClassService = classService.NewService(c.ClassRepo)
	c.LendingService = lendingService.NewService(c.LendingRepo, c.Locker, lendingService.Config{
		DefaultDueDays: c.Config.Lending.DefaultDueDays,
		LockTTL:        c.Config.Lending.LockTTL,
	})
	c.StatsService = statsService.NewService(c.StatsRepo)

	// A nil *MinIOStorage must not become a non-nil Archiver.
	var archiver spreadsheetService.Archiver
	if c.Storage != nil {
		archiver = c.Storage
	}
	c.SpreadsheetService = spreadsheetService.NewService(c.StudentRepo, c.BookRepo, c.ClassService, archiver)
}

func (c *Container) initHandlers() {
	c.StudentHandler = studentHandler.NewHandler(c.StudentService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.ClassHandler = classHandler.NewHandler(c.ClassService)
	c.LendingHandler = lendingHandler.NewHandler(c.LendingService)
	c.StatsHandler = statsHandler.NewHandler(c.StatsService)
	c.SpreadsheetHandler = spreadsheetHandler.NewHandler(c.SpreadsheetService)
}

// ========================================
// HEALTH
// ========================================

// Health reports the state of each backing service.
type Health struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Redis  string `json:"redis"`
	// Storage is omitted when object storage is disabled.
	Storage string `json:"storage,omitempty"`
}

// StoreHealthy reports whether Health found the store reachable.
func (h Health) StoreHealthy() bool {
	return h.Store == "ok"
}

// HealthCheck pings the store plus Redis and MinIO when configured. Only the
// store makes the status "unavailable"; the others degrade it.
func (c *Container) HealthCheck(ctx context.Context) Health {
	h := Health{Status: "ok", Store: "ok", Redis: "disabled"}

	var storeErr error
	switch {
	case c.Memory != nil:
		storeErr = c.Memory.Ping(ctx)
	case c.DB != nil:
		storeErr = c.DB.Ping(ctx)
	default:
		storeErr = fmt.Errorf("store not initialized")
	}
	if storeErr != nil {
		h.Status = "unavailable"
		h.Store = storeErr.Error()
	}

	if c.Redis != nil {
		if err := c.Redis.HealthCheck(ctx); err != nil {
			h.Redis = err.Error()
			if h.Status == "ok" {
				h.Status = "degraded"
			}
		} else {
			h.Redis = "ok"
		}
	}

	if c.Storage != nil {
		h.Storage = "ok"
		if err := c.Storage.HealthCheck(ctx); err != nil {
			h.Storage = err.Error()
			if h.Status == "ok" {
				h.Status = "degraded"
			}
		}
	}

	return h
}

// Cleanup releases connections. Safe to call on a partially built container.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.DB != nil {
		_ = c.DB.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	log.Println("✅ Container cleanup completed")
}
