package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/hostel-cms/complaint-service/internal/api/http"
	"github.com/hostel-cms/complaint-service/internal/api/http/handlers"
	"github.com/hostel-cms/complaint-service/internal/auth"
	"github.com/hostel-cms/complaint-service/internal/config"
	"github.com/hostel-cms/complaint-service/internal/domain"
	"github.com/hostel-cms/complaint-service/internal/events"
	"github.com/hostel-cms/complaint-service/internal/notify"
	"github.com/hostel-cms/complaint-service/internal/observability"
	"github.com/hostel-cms/complaint-service/internal/persistence"
	"github.com/hostel-cms/complaint-service/internal/repository"
	"github.com/hostel-cms/complaint-service/internal/repository/memory"
	sqliterepo "github.com/hostel-cms/complaint-service/internal/repository/sqlite"
	"github.com/hostel-cms/complaint-service/internal/seed"
	"github.com/hostel-cms/complaint-service/internal/service"
	"github.com/hostel-cms/complaint-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

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

	dependencies := map[string]handlers.Pinger{}
	store, closeStorage := openStore(ctx, cfg, logger, dependencies)
	defer closeStorage()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()
	if redis != nil {
		dependencies["redis"] = redis
	}

	sinks := []notify.Sink{notify.NewLogSink(logger)}
	if redis != nil {
		sinks = append(sinks, notify.NewRedisSink(redis.Client, cfg.Notification.RedisChannel))
	}
	if cfg.Notification.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhookSink(cfg.Notification.WebhookURL))
	}

	dispatcher := events.NewAsyncDispatcher(
		events.NewInMemoryDispatcher(logger),
		logger,
		cfg.Notification.QueueSize,
		cfg.Notification.Workers,
		events.WithHandlerTimeout(cfg.Notification.Timeout),
	)
	notificationService := service.NewNotificationService(dispatcher, logger, sinks...)
	notificationWorker := worker.StartNotificationWorker(dispatcher, notificationService, logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: store.Users,
		Tokens:   tokens,
	})

	policy := domain.PermissiveTransitions
	if cfg.Complaints.StrictTransitions {
		policy = domain.StrictTransitions
	}
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: store.Complaints,
		UserRepo:      store.Users,
		Dispatcher:    dispatcher,
		Policy:        policy,
		Logger:        logger,
	})
	announcementService := service.NewAnnouncementService(store.Announcements, nil)

	if cfg.Seed.DemoData {
		if err := seed.NewSeeder(store, authService, logger, nil).Run(ctx); err != nil {
			logger.Error("demo data seeding failed", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()
	app := httptransport.NewApp(cfg.App.Name, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(authService),
		Complaints:     handlers.NewComplaintsHandler(complaintService),
		Announcements:  handlers.NewAnnouncementsHandler(announcementService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})

	go func() {
		logger.Info("http server listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("storage", cfg.Storage.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	_ = notificationWorker.Stop(shutdownCtx)
}

// openStore builds the repositories for the configured driver and registers
// its readiness check. The returned func releases the backend.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger, dependencies map[string]handlers.Pinger) (*repository.Store, func()) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		dependencies["postgres"] = pg
		return repository.NewPostgresStore(pg.Pool), pg.Close
	case config.StorageSQLite:
		sq, err := persistence.NewSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			logger.Fatal("failed to open sqlite", zap.Error(err))
		}
		dependencies["sqlite"] = sq
		store := sqliterepo.NewStore(sq.DB)
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("sqlite close", zap.Error(err))
			}
		}
	default:
		logger.Info("using in-memory storage; data is lost on restart")
		return memory.NewStore(), func() {}
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
