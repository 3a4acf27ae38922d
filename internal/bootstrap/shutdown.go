package bootstrap

import (
	"context"
	"log/slog"

	"github.com/tubehub/tubehub-api/internal/database"
	"github.com/tubehub/tubehub-api/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server *server.Server
	DB     database.Pool
}

// GracefulShutdown stops the HTTP server first so in-flight requests can
// finish against a live pool, then closes the pool.
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.DB != nil {
		slog.Info(LogMsgClosingDatabase)
		components.DB.Close()
	}

	slog.Info(LogMsgServerStopped)
}
