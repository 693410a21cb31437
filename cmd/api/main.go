// @title           TaskBoard API
// @version         1.0
// @description     Multi-tenant project and task management API

// @host      localhost:8000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the API token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "taskboard-api/docs" // Swagger docs import

	"taskboard-api/internal/auth"
	"taskboard-api/internal/client"
	"taskboard-api/internal/config"
	"taskboard-api/internal/database"
	"taskboard-api/internal/job"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/router"
	"taskboard-api/internal/service"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting TaskBoard API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
	)

	m := metrics.NewWithLogger(logger)

	// Database. Startup survives a connection failure so the pod stays
	// alive while the database comes up.
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background", zap.Error(err))
		database.NewAsync(dbConfig, 5*time.Second, logger)
	} else {
		logger.Info("Database connected")

		if err := database.SafeAutoMigrateWithRetry(db, logger, 3); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		}

		database.RegisterMetricsCallbacks(db, m)
		statsStop := database.StartDBStatsCollector(db, m)
		defer close(statsStop)
	}

	// Optional statistics cache
	cache, err := database.NewRedis(cfg.Redis, logger)
	if err != nil {
		logger.Warn("Failed to connect to redis, statistics caching disabled", zap.Error(err))
		cache = nil
	}

	// Attachment storage
	var storage client.StorageClient
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		s3Client, err := client.NewS3Client(&cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, attachments disabled", zap.Error(err))
		} else {
			storage = s3Client
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, attachments disabled")
	}

	sessions := auth.NewSessionCodec(
		cfg.Session.HashKey,
		cfg.Session.BlockKey,
		cfg.Session.MaxAge,
		cfg.Server.Mode == "release",
	)

	// Bootstrap the admin account when the database is reachable
	if db != nil {
		userRepo := repository.NewUserRepository(db)
		authService := service.NewAuthService(userRepo, cfg.Admin, m, logger)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authService.EnsureAdminUser(ctx); err != nil {
			logger.Warn("Failed to ensure admin account", zap.Error(err))
		}
		cancel()
	}

	// Background jobs
	scheduler := job.NewScheduler(logger)
	if db != nil {
		attachmentRepo := repository.NewAttachmentRepository(db)
		taskRepo := repository.NewTaskRepository(db)
		projectRepo := repository.NewProjectRepository(db)
		attachmentService := service.NewAttachmentService(attachmentRepo, taskRepo, projectRepo, storage, m, logger)

		if err := scheduler.Register("@hourly", job.NewCleanupJob(attachmentService, logger)); err != nil {
			logger.Warn("Failed to schedule cleanup job", zap.Error(err))
		}
		if err := scheduler.Register("@every 1m", job.NewGaugeJob(db, m, logger)); err != nil {
			logger.Warn("Failed to schedule gauge job", zap.Error(err))
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	r := router.Setup(router.Config{
		DB:             db,
		Logger:         logger,
		Metrics:        m,
		Sessions:       sessions,
		JWTSecret:      cfg.Session.JWTSecret,
		TokenTTL:       cfg.Session.MaxAge,
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Storage:        storage,
		Cache:          cache,
		Admin:          cfg.Admin,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("TaskBoard API started",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
