package main

import (
	"context"
	"log"

	"filesmanager-backend/config"
	"filesmanager-backend/handlers"
	"filesmanager-backend/logger"
	"filesmanager-backend/queue"
	"filesmanager-backend/repository"
	"filesmanager-backend/service"
	"filesmanager-backend/session"
	"filesmanager-backend/storage"
	"filesmanager-backend/worker"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file from project root (relative to cmd/server/)
	// Try current directory first, then project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Connect to all stores up front so a broken dependency fails the boot
	// instead of the first request.
	db, err := initPostgres(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatalw("Failed to initialize Postgres", "error", err)
	}
	defer db.Close()

	sessions := session.NewRedisStore(session.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := sessions.Ping(context.Background()); err != nil {
		zlog.Fatalw("Failed to reach Redis", "error", err)
	}
	zlog.Info("Redis connection established")

	fileStorage, err := storage.NewFromEnv()
	if err != nil {
		zlog.Fatalw("Failed to initialize storage", "error", err)
	}
	zlog.Info("Storage initialized")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	fileRepo := repository.NewFileRepository(db)

	// Initialize job queue and worker
	wmLogger := queue.NewLoggerAdapter(zlog.Named("queue"))
	pubSub := queue.NewGoChannel(wmLogger)
	jobs := queue.NewPublisher(pubSub)

	wrk, err := worker.New(pubSub, fileRepo, userRepo, fileStorage, zlog.Named("worker"), wmLogger)
	if err != nil {
		zlog.Fatalw("Failed to initialize worker", "error", err)
	}
	go func() {
		if err := wrk.Run(context.Background()); err != nil {
			zlog.Fatalw("Worker stopped", "error", err)
		}
	}()
	defer wrk.Close()

	// Initialize services
	authService := service.NewAuthService(
		service.WithUserRepository(userRepo),
		service.WithSessionStore(sessions),
		service.WithJobPublisher(jobs),
		service.WithSessionTTL(cfg.SessionTTL),
		service.WithAuthLogger(zlog.Named("auth")),
	)

	fileService := service.NewFileService(
		service.WithFileRepository(fileRepo),
		service.WithStorage(fileStorage),
		service.WithFileJobPublisher(jobs),
		service.WithFileLogger(zlog.Named("files")),
	)

	appService := service.NewAppService(db, sessions, userRepo, fileRepo)

	// Initialize handlers
	appHandler := handlers.NewAppHandler(appService)
	userHandler := handlers.NewUserHandler(authService)
	authHandler := handlers.NewAuthHandler(authService)
	fileHandler := handlers.NewFileHandler(fileService, authService)

	// Setup Gin router
	r := gin.Default()

	r.GET("/health", appHandler.Health)
	r.GET("/status", appHandler.GetStatus)
	r.GET("/stats", appHandler.GetStats)

	r.POST("/users", userHandler.PostNew)
	r.GET("/users/me", userHandler.GetMe)

	r.GET("/connect", authHandler.GetConnect)
	r.GET("/disconnect", authHandler.GetDisconnect)

	r.POST("/files", fileHandler.PostUpload)
	r.GET("/files/:id", fileHandler.GetShow)
	r.GET("/files", fileHandler.GetIndex)
	r.PUT("/files/:id/publish", fileHandler.PutPublish)
	r.PUT("/files/:id/unpublish", fileHandler.PutUnpublish)
	r.GET("/files/:id/data", fileHandler.GetFile)

	zlog.Infof("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatalw("Failed to start server", "error", err)
	}
}

func initPostgres(connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Postgres connection established")
	return pool, nil
}
