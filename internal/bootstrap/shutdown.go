package bootstrap

import (
	"context"
	"log/slog"

	"github.com/casedrop/engine/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server *server.Server
}

// GracefulShutdown stops accepting new requests and lets in-flight wagers
// finish within the context deadline. Errors during shutdown are logged but
// do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
