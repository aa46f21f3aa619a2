package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lagoon-stays/lagoon/internal/app"
	"github.com/lagoon-stays/lagoon/internal/auth"
	"github.com/lagoon-stays/lagoon/internal/bookings"
	"github.com/lagoon-stays/lagoon/internal/observability"
	"github.com/lagoon-stays/lagoon/internal/platform/cache"
	"github.com/lagoon-stays/lagoon/internal/platform/db"
	"github.com/lagoon-stays/lagoon/internal/rbac"
	"github.com/lagoon-stays/lagoon/internal/resorts"
	"github.com/lagoon-stays/lagoon/internal/users"
	"github.com/lagoon-stays/lagoon/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, resort cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	tokens, err := auth.NewTokenService([]byte(cfg.AuthSecret), cfg.AuthIssuer, cfg.TokenTTL)
	if err != nil {
		logger.Error("token service", slog.Any("error", err))
		os.Exit(1)
	}
	authMW := auth.Middleware{Tokens: tokens}
	guard := rbac.Middleware{Logger: logger}

	userRepo := users.NewRepository(pool)
	authService := auth.NewService(userRepo, tokens)
	authHandler := auth.NewHandler(logger, authService)

	resortRepo := resorts.NewRepository(pool)
	resortCache := resorts.NewCache(redisClient, cfg.ResortCacheTTL)
	resortService := resorts.NewService(resortRepo, resortCache, logger)
	resortHandler := resorts.NewHandler(logger, resortService)

	var notifier bookings.Notifier
	if redisClient != nil {
		jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer func() {
			if err := jobClient.Close(); err != nil {
				logger.Warn("job client close", slog.Any("error", err))
			}
		}()
		notifier = jobClient
	}

	bookingRepo := bookings.NewRepository(pool)
	bookingService := bookings.NewService(bookingRepo, resortRepo, userRepo, notifier, logger)
	bookingHandler := bookings.NewHandler(logger, bookingService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AuthMiddleware:  authMW,
		Guard:           guard,
		AuthHandler:     authHandler,
		ResortsHandler:  resortHandler,
		BookingsHandler: bookingHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
}
