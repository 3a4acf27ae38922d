package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/tubehub/tubehub-api/docs"
	"github.com/tubehub/tubehub-api/internal/bootstrap"
	"github.com/tubehub/tubehub-api/internal/config"
	"github.com/tubehub/tubehub-api/internal/database"
	"github.com/tubehub/tubehub-api/internal/server"
)

// @title TubeHub API
// @version 1.0
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name accessToken
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	bootstrap.LogStartup(cfg, initLogger(cfg))

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		slog.Warn("Environment validation skipped", "error", err)
	} else {
		bootstrap.LogWarnings(warnings)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMinConns, database.DefaultMaxConnIdleTime, cfg.DBMaxConnLife)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.MigrateOnStart {
		if err := database.Migrate(ctx, dbPool); err != nil {
			slog.Error("Failed to apply migrations", "error", err)
			dbPool.Close()
			os.Exit(1)
		}
	}

	store, err := bootstrap.InitializeMediaStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize media store", "error", err)
		dbPool.Close()
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	services, err := bootstrap.InitializeServices(cfg, repos, store)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		dbPool.Close()
		os.Exit(1)
	}

	handlers, err := bootstrap.InitializeHandlers(cfg, services)
	if err != nil {
		slog.Error("Failed to initialize handlers", "error", err)
		dbPool.Close()
		os.Exit(1)
	}

	srv := server.NewServer(bootstrap.ServerConfig(cfg), dbPool, services.Auth, handlers)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server: srv,
		DB:     dbPool,
	})
}
