package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/StardustBot_Go/internal/scheduler"
	"github.com/osse101/StardustBot_Go/internal/server"
	"github.com/osse101/StardustBot_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server     *server.Server
	Scheduler  *scheduler.Scheduler
	WorkerPool *worker.Pool
	CloseFuncs []func() error
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in the correct order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler (stop enqueueing new jobs)
// 3. Worker pool (drain queued jobs)
// 4. Remaining resources (Discord session, database pool)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	for _, closeFn := range components.CloseFuncs {
		if err := closeFn(); err != nil {
			slog.Error("Resource close failed", "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
