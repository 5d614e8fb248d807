package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/adapters/analytics"
	"github.com/SscSPs/investment_ledger_app/internal/adapters/payment"
	"github.com/SscSPs/investment_ledger_app/internal/adapters/runlock"
	"github.com/SscSPs/investment_ledger_app/internal/adapters/storage"
	"github.com/SscSPs/investment_ledger_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/investment_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/investment_ledger_app/internal/core/services"
	"github.com/SscSPs/investment_ledger_app/internal/handlers"
	"github.com/SscSPs/investment_ledger_app/internal/middleware"
	"github.com/SscSPs/investment_ledger_app/internal/platform/config"
	"github.com/SscSPs/investment_ledger_app/internal/repositories/database/memory"
	"github.com/SscSPs/investment_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/investment_ledger_app/internal/scheduler"
	"github.com/SscSPs/investment_ledger_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Investment Ledger API
// @version 1.0
// @description Investment submissions, daily profit accrual, referrals and withdrawals.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore := setupRepositories(ctx, cfg, logger)
	defer closeStore()

	events := analytics.NewPublisher(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer func() {
		if err := events.Close(); err != nil {
			logger.Warn("Failed to flush analytics events", slog.String("error", err.Error()))
		}
	}()

	docStorage, err := setupDocumentStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize document storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, services.Collaborators{
		PaymentGateway: payment.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL, nil),
		Events:         events,
	})

	if err := serviceContainer.Plan.InitializeStaticData(ctx); err != nil {
		logger.Error("Failed to seed plan catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	publicLimiter, err := middleware.NewLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.Dependencies{
		Storage:       docStorage,
		Events:        events,
		PublicLimiter: publicLimiter,
	})

	var sched *scheduler.Scheduler
	if cfg.AccrualEnabled {
		locker, closeLocker := setupRunLocker(ctx, cfg, logger)
		defer closeLocker()
		sched = scheduler.New(serviceContainer.Accrual, locker, cfg.RunLockTTL, cfg.AccrualLocation, logger)
		if err := sched.Start(cfg.AccrualSchedule); err != nil {
			logger.Error("Failed to start accrual scheduler", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	if sched != nil {
		select {
		case <-sched.Stop().Done():
		case <-shutdownCtx.Done():
			logger.Warn("Accrual job still running at shutdown")
		}
	}
	logger.Info("Server stopped")
}

// setupRepositories connects to Postgres and applies migrations when PGSQL_URL is
// set, otherwise it falls back to the in-memory store.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func()) {
	if cfg.DatabaseURL == "" {
		logger.Warn("PGSQL_URL is not set, using the in-memory store. Data is lost on restart.")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		database.ClosePgxPool(dbPool)
		os.Exit(1)
	}

	return pgsql.NewRepositoryProvider(dbPool, cfg.DBOperationTimeout), func() { database.ClosePgxPool(dbPool) }
}

func setupDocumentStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (gateways.DocumentStorage, error) {
	if cfg.GCSBucket != "" {
		logger.Info("Storing documents in GCS", slog.String("bucket", cfg.GCSBucket))
		return storage.NewGCSStorage(ctx, cfg.GCSBucket, cfg.GCSCredentialsJSON)
	}
	logger.Info("Storing documents on local disk", slog.String("dir", cfg.UploadDir))
	return storage.NewLocalStorage(cfg.UploadDir, cfg.PublicBaseURL)
}

// setupRunLocker uses Redis when REDIS_URL is set and reachable, otherwise an
// in-process lock. The returned func closes the Redis client.
func setupRunLocker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (gateways.RunLocker, func()) {
	if cfg.RedisURL == "" {
		return runlock.NewLocalLocker(), func() {}
	}
	client, err := runlock.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("Redis unavailable, accrual lock is process local", slog.String("error", err.Error()))
		return runlock.NewLocalLocker(), func() {}
	}
	logger.Info("Accrual run lock backed by Redis")
	locker := runlock.NewRedisLocker(client, "ledger:lock")
	return locker, func() {
		if err := locker.Close(); err != nil {
			logger.Warn("Failed to close redis client", slog.String("error", err.Error()))
		}
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-Request-ID")
	c.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	return c
}
