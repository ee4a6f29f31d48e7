package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const defaultShutdownTimeout = 10 * time.Second

// Start serves HTTP until SIGINT, SIGTERM or SIGHUP arrives, or until the
// listener fails. The returned channel closes when it is time to call Stop.
func (a *App) Start() <-chan struct{} {
	done := make(chan struct{})
	sigCtx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	slog.Info("mailanes starting",
		"address", a.httpServer.Addr,
		"version", a.config.GetString("app.version"),
		"api_only", a.config.GetBool("app.api_only"),
	)

	listenErr := make(chan error, 1)
	go func() {
		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	go func() {
		defer close(done)
		defer stop()

		select {
		case <-sigCtx.Done():
			slog.Info("shutdown signal received")
		case err, ok := <-listenErr:
			if ok {
				slog.Error("http server stopped unexpectedly", "error", err)
			}
		}
	}()

	return done
}

// Serve runs the HTTP server on l. Used by tests that bind an ephemeral port.
func (a *App) Serve(l net.Listener) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		errChan <- a.httpServer.Serve(l)
		close(errChan)
	}()

	return errChan
}

// ShutdownTimeout bounds Stop. Read from app.server.shutdown_timeout_seconds.
func (a *App) ShutdownTimeout() time.Duration {
	if d := a.config.GetSecond("app.server.shutdown_timeout_seconds"); d > 0 {
		return d
	}
	return defaultShutdownTimeout
}

// Stop drains HTTP first so no request hits a closed pool, then cancels the
// delivery worker and broker consumers and waits for them before releasing
// the underlying connections.
func (a *App) Stop(ctx context.Context) {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown http server", "error", err)
	}

	a.cancel()

	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "background tasks finished with errors", "error", err)
	}

	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resource", "name", closer.name, "error", err)
		}
	}

	slog.InfoContext(ctx, "mailanes stopped")
}
