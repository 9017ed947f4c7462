package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/cache"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/config"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/database"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/handlers"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/middleware"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/monitoring"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/repositories"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/services"
	"github.com/Rajveerchoubisa/Zidio-TaskManager/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Application holds all application dependencies and state
type Application struct {
	Config *config.Config
	Pool   *database.Pool
	Cache  cache.Cache
	Redis  *redis.Client
	Worker *worker.Worker
	Router *gin.Engine
	Server *http.Server

	// Services
	TaskService     services.TaskService
	CachedTasks     *services.CachedTaskService
	CommentService  services.CommentService
	AuthService     services.AuthService
	UserService     services.UserService
	RegisterService services.RegisterService
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize application: %v", err)
	}

	app.setupRoutes()
	app.startServer()
}

func initializeApplication(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	log.Println("🚀 Initializing Zidio Task Board Backend...")
	log.Printf("📋 Environment: %s", cfg.Server.Environment)

	pool, err := database.NewPool(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	app.Pool = pool
	log.Println("✅ Database connected and configured")

	migrationConfig := &repositories.MigrationConfig{
		MigrationsPath: "file://migrations",
		DBName:         cfg.Database.Name,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
	}
	if err := repositories.RunMigrations(pool.DB, migrationConfig); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis unavailable: %v (continuing with memory cache only)", err)
		redisClient = nil
	} else {
		app.Redis = redisClient
		log.Println("✅ Redis connected")
	}

	if redisClient != nil {
		redisCache := cache.NewRedisCacheWithClient(redisClient)
		app.Cache = cache.NewMultiLevelCache(redisCache)
		log.Println("✅ Multi-level cache initialized (Memory L1 + Redis L2)")
	} else {
		// Redis-only cache (will use default config with localhost)
		app.Cache = cache.NewRedisCache(cache.DefaultCacheConfig())
		log.Println("✅ Redis cache initialized (fallback mode)")
	}

	// Repositories
	taskRepo := repositories.NewTaskRepository(pool.DB)
	userRepo := repositories.NewUserRepository(pool.DB)
	tokenRepo := repositories.NewTokenRepository(pool.DB)

	// Notification pipeline. Without Redis, events are logged and dropped.
	var notifier services.Notifier = logNotifier{}
	if redisClient != nil {
		queue := worker.NewJobQueue(redisClient)
		notifier = worker.NewQueueNotifier(queue)

		app.Worker = worker.NewWorker(worker.WorkerConfig{
			RedisClient:  redisClient,
			Concurrency:  2,
			PollInterval: time.Second,
			Queues:       []string{worker.NotificationQueue, "retry_queue"},
		})
		app.Worker.RegisterHandler(worker.JobTypeEmailNotification, handleNotificationJob)
		app.Worker.Start(2)
		log.Println("✅ Notification worker started")
	}

	// Services
	app.AuthService = services.NewAuthService(userRepo, tokenRepo, cfg.JWT)
	app.RegisterService = services.NewRegisterService(userRepo)
	app.UserService = services.NewUserService(userRepo)
	app.CommentService = services.NewCommentService(taskRepo, userRepo, notifier)

	taskService := services.NewTaskService(taskRepo, userRepo, notifier)
	app.CachedTasks = services.NewCachedTaskService(taskService, app.Cache)
	app.TaskService = app.CachedTasks
	log.Println("✅ All services initialized")

	monitoring.RegisterHealthCheck("database", func(ctx context.Context) error {
		return pool.Health()
	})
	if app.Redis != nil {
		monitoring.RegisterHealthCheck("redis", func(ctx context.Context) error {
			return app.Redis.Ping(ctx).Err()
		})
	}

	return app, nil
}

func (app *Application) setupRoutes() {
	r := gin.New()

	// Global middleware stack (order matters!)
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryWithLog())
	r.Use(middleware.SecureHeader())
	r.Use(monitoring.MetricsMiddleware())

	rateLimit := rate.Limit(float64(app.Config.RateLimit.RequestsPerMin) / 60.0)
	r.Use(middleware.RateLimiter(rateLimit, app.Config.RateLimit.BurstSize))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health and monitoring endpoints (no auth required)
	r.GET("/health", monitoring.HealthHandler())
	r.GET("/ready", monitoring.ReadinessHandler())
	r.GET("/live", monitoring.LivenessHandler())
	r.GET("/metrics", monitoring.MetricsHandler())

	v1 := r.Group("/api/v1")

	// Public authentication routes
	authHandler := handlers.NewAuthHandler(app.AuthService, app.RegisterService)
	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Registration)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh", authHandler.Refresh)
		authRoutes.POST("/logout", authHandler.Logout)
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.Authenticate(app.AuthService))
	{
		taskHandler := handlers.NewTaskHandler(app.TaskService)
		taskRoutes := protected.Group("/tasks")
		{
			taskRoutes.POST("", taskHandler.CreateTask)
			taskRoutes.GET("", taskHandler.GetTasks)
			taskRoutes.PUT("/:id", taskHandler.UpdateTask)
			taskRoutes.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
			taskRoutes.DELETE("/:id", taskHandler.DeleteTask)
		}

		commentHandler := handlers.NewCommentHandler(app.CommentService, app.CachedTasks.Invalidate)
		protected.POST("/tasks/:id/comments", commentHandler.AddComment)

		userHandler := handlers.NewUserHandler(app.UserService)
		protected.GET("/users", userHandler.GetUsers)

		statsHandler := handlers.NewStatsHandler(app.TaskService)
		protected.GET("/stats/summary", statsHandler.GetSummary)

		cacheHandler := handlers.NewCacheHandler(app.Cache)
		cacheRoutes := protected.Group("/cache")
		{
			cacheRoutes.GET("/stats", cacheHandler.GetCacheStats)
			cacheRoutes.GET("/health", cacheHandler.GetCacheHealth)
			cacheRoutes.POST("/flush", cacheHandler.FlushCache)
		}
	}

	app.Router = r
}

func (app *Application) startServer() {
	addr := app.Config.GetServerAddr()

	app.Server = &http.Server{
		Addr:         addr,
		Handler:      app.Router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("🛑 Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.Server.Shutdown(ctx); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}

		app.cleanup()
		log.Println("✅ Server stopped gracefully")
	}()

	log.Printf("🚀 Server starting on %s", addr)
	log.Printf("📊 Metrics available at http://%s/metrics", addr)
	log.Printf("💚 Health check at http://%s/health", addr)

	if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}

func (app *Application) cleanup() {
	log.Println("🧹 Cleaning up resources...")

	if app.Worker != nil {
		app.Worker.Stop()
	}

	if app.Cache != nil {
		if err := app.Cache.Close(); err != nil {
			log.Printf("⚠️  Error closing cache: %v", err)
		}
	}

	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			log.Printf("⚠️  Error closing Redis: %v", err)
		}
	}

	if app.Pool != nil {
		if err := app.Pool.Close(); err != nil {
			log.Printf("⚠️  Error closing database: %v", err)
		}
	}

	log.Println("✅ Cleanup complete")
}

// handleNotificationJob delivers queued task events. Delivery here is a log
// line; an SMTP or webhook sender would slot in without touching the queue.
func handleNotificationJob(ctx context.Context, job *worker.Job) error {
	event, _ := job.Payload["event"].(string)
	taskID, _ := job.Payload["task_id"].(string)
	log.Printf("🔔 Notification %s for task %s (job %s)", event, taskID, job.ID)
	return nil
}

// logNotifier stands in when Redis is down so writes still succeed.
type logNotifier struct{}

func (logNotifier) TaskAssigned(ctx context.Context, taskID, assigneeID uuid.UUID, title string) {
	log.Printf("🔔 Task %s assigned to %s: %s", taskID, assigneeID, title)
}

func (logNotifier) CommentAdded(ctx context.Context, taskID, authorID uuid.UUID, text string) {
	log.Printf("🔔 Comment on task %s by %s", taskID, authorID)
}
