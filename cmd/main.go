package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"formforge-api/internal/config"
	"formforge-api/internal/controller"
	"formforge-api/internal/db"
	httpserver "formforge-api/internal/http"
	"formforge-api/internal/repository"
	"formforge-api/internal/routes"
	"formforge-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := newLogger(cfg.AppMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pg.Close()

	ch, err := db.NewClickHouse(ctx, cfg)
	if err != nil {
		logger.Fatal("connect clickhouse", zap.Error(err))
	}
	defer ch.Close()

	if err := db.RunPostgresMigrations(ctx, pg); err != nil {
		logger.Fatal("migrate postgres", zap.Error(err))
	}
	if err := db.RunEventLogMigrations(ctx, ch); err != nil {
		logger.Fatal("migrate event log", zap.Error(err))
	}

	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		logger.Fatal("connect minio", zap.Error(err))
	}

	eventRepo := repository.NewEventRepository(ch)
	sessionRepo := repository.NewSessionRepository(pg)
	formRepo := repository.NewFormRepository(pg)
	submissionRepo := repository.NewSubmissionRepository(pg)
	userRepo := repository.NewUserRepository(pg)

	worker := service.NewBatchEventWorker(eventRepo, logger, cfg.WorkerBufferSize, cfg.WorkerBatchSize, cfg.WorkerFlushEvery)

	trackingService := service.NewTrackingService(sessionRepo, worker, logger)
	analyticsService := service.NewAnalyticsService(formRepo, eventRepo, sessionRepo, submissionRepo)
	formService := service.NewFormService(formRepo, submissionRepo)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	uploadService := service.NewUploadService(minioClient, cfg.MinioBucket)

	controllers := routes.Controllers{
		Auth:      controller.NewAuthController(authService, cfg.JWTTTL),
		Forms:     controller.NewFormController(formService),
		Track:     controller.NewTrackController(trackingService),
		Analytics: controller.NewAnalyticsController(analyticsService),
		Uploads:   controller.NewUploadController(uploadService),
	}

	server := httpserver.NewServer(cfg, authService, controllers)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Error("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("addr", cfg.HTTPPort))
	if err := server.Listen(cfg.HTTPPort); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}

	// Flush any events still buffered before the process exits.
	worker.Shutdown()
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
