// Package app wires configuration, storage, services and transport into a
// running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/plantracker/plantracker-backend/internal/adapter/emailverify"
	"github.com/plantracker/plantracker-backend/internal/adapter/postgres"
	activityrepo "github.com/plantracker/plantracker-backend/internal/adapter/postgres/activity"
	tagrepo "github.com/plantracker/plantracker-backend/internal/adapter/postgres/tag"
	userrepo "github.com/plantracker/plantracker-backend/internal/adapter/postgres/user"
	"github.com/plantracker/plantracker-backend/internal/adapter/telegram"
	"github.com/plantracker/plantracker-backend/internal/auth"
	"github.com/plantracker/plantracker-backend/internal/config"
	activitysvc "github.com/plantracker/plantracker-backend/internal/service/activity"
	tagsvc "github.com/plantracker/plantracker-backend/internal/service/tag"
	usersvc "github.com/plantracker/plantracker-backend/internal/service/user"
	"github.com/plantracker/plantracker-backend/internal/transport/middleware"
	"github.com/plantracker/plantracker-backend/internal/transport/rest"
)

// Run is the application entry point: it loads configuration, connects to
// PostgreSQL (applying migrations when enabled), wires services and handlers,
// and serves HTTP until SIGINT/SIGTERM.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting plantracker",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("notifications_enabled", cfg.Telegram.NotificationsEnabled()),
	)

	if cfg.Database.MigrateOnStart {
		if err := migrate(ctx, cfg.Database.DSN); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	userRepo := userrepo.New(pool)
	activityRepo := activityrepo.New(pool)
	tagRepo := tagrepo.New(pool)

	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	verifier := emailverify.New(cfg.Auth.CheckEmailMX)
	notifier := telegram.NewNotifierWithURL(
		cfg.Telegram.APIBaseURL, cfg.Telegram.BotToken, cfg.Telegram.RequestTimeout, logger)

	userService := usersvc.NewService(logger, userRepo, jwtMgr, verifier, cfg.Auth)
	activityService := activitysvc.NewService(logger, activityRepo, tagRepo, userRepo, notifier, txm)
	tagService := tagsvc.NewService(logger, tagRepo)

	userHandler := rest.NewUserHandler(userService, logger)
	activityHandler := rest.NewActivityHandler(activityService, logger)
	tagHandler := rest.NewTagHandler(tagService, logger)
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())

	mux := rest.NewRouter(userHandler, activityHandler, tagHandler, healthHandler)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(userService),
		limiter.Limit(cfg.Server.RateLimitPerMin),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("stopped")
	return nil
}
