// cmd/api/server.go
// This file contains the serve() method which starts the HTTP server and
// handles graceful shutdown when an OS signal is received.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 20 * time.Second

// serve runs the HTTP server until SIGINT or SIGTERM arrives, then drains
// in-flight requests and closes the document store. The store is also closed
// when the listener fails to start, so serve owns the store from here on.
func (app *applicationDependencies) serve() error {
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server",
			"address", apiServer.Addr,
			"environment", app.config.environment,
			"version", appVersion,
			"rate_limit", app.config.limiter.enabled,
		)
		listenErr <- apiServer.ListenAndServe()
	}()

	select {
	case err := <-listenErr:
		// ListenAndServe only returns early when the listener could not be set up.
		closeErr := app.store.Close(context.Background())
		return errors.Join(err, closeErr)
	case <-ctx.Done():
		app.logger.Info("shutting down server", "address", apiServer.Addr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.shutdown(shutdownCtx, apiServer); err != nil {
		return err
	}

	app.logger.Info("server stopped", "address", apiServer.Addr)
	return nil
}

// shutdown stops srv from accepting requests, waits for the active ones to
// finish, and then closes the document store. The store is closed even if
// draining runs past the deadline; both failures are reported.
func (app *applicationDependencies) shutdown(ctx context.Context, srv *http.Server) error {
	var errs []error
	if err := srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("drain requests: %w", err))
	}
	if err := app.store.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close document store: %w", err))
	} else {
		app.logger.Info("document store closed")
	}
	return errors.Join(errs...)
}
