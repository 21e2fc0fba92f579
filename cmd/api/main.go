package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hr-portal/internal/api/http"
	"github.com/spec-kit/hr-portal/internal/api/http/handlers"
	"github.com/spec-kit/hr-portal/internal/auth"
	"github.com/spec-kit/hr-portal/internal/config"
	"github.com/spec-kit/hr-portal/internal/events"
	"github.com/spec-kit/hr-portal/internal/observability"
	"github.com/spec-kit/hr-portal/internal/persistence"
	"github.com/spec-kit/hr-portal/internal/repository"
	"github.com/spec-kit/hr-portal/internal/service"
	"github.com/spec-kit/hr-portal/internal/storage"
	"github.com/spec-kit/hr-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	store, err := storage.NewOSSClient(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to init object storage", zap.Error(err))
	}

	pool := pg.PoolHandle()
	recordRepo := repository.NewStaffRecordRepository(pool)
	userRepo := repository.NewHRUserRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	staffService := service.NewStaffService(service.StaffDependencies{
		RecordRepo:    recordRepo,
		Store:         store,
		Dispatcher:    dispatcher,
		Logger:        logger,
		MaxPhotoBytes: cfg.Upload.MaxBytes,
		TempDir:       cfg.Upload.TempDir,
	})
	exportService := service.NewExportService()
	authService := service.NewAuthService(cfg.Auth, userRepo, logger)

	if err := authService.EnsureBootstrapUser(ctx, cfg.Auth.BootstrapEmail, cfg.Auth.BootstrapPassword); err != nil {
		logger.Fatal("failed to ensure bootstrap user", zap.Error(err))
	}

	notifier := service.NewChangeNotifier(dispatcher, redis, cfg.Redis.Channel, logger)
	worker.StartChangeNotifier(notifier)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Upload.MaxBytes) + 1024*1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Staff:          handlers.NewStaffHandler(staffService, cfg.Upload.MaxBytes),
		Export:         handlers.NewExportHandler(staffService, exportService),
		Config:         handlers.NewConfigHandler(cfg.Client),
		Auth:           handlers.NewAuthHandler(authService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
