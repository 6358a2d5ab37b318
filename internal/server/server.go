// Package server boots the application: config, logging, stores, queue
// workers, and the HTTP listener with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/bazaar/config"
	"github.com/shashiranjanraj/bazaar/internal/kernel"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
	"github.com/shashiranjanraj/bazaar/pkg/database"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/queue"
	"github.com/shashiranjanraj/bazaar/pkg/storage"
)

// Start boots every subsystem and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	if err := database.Connect(); err != nil {
		return fmt.Errorf("server: connect mongo: %w", err)
	}

	// The Mongo log sink is optional; enable it only when configured.
	var logHandler *logger.MongoHandler
	if sink := config.MongoLogSink(); sink != "" {
		logHandler = logger.NewMongoHandler(database.Collection(sink))
		logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), logHandler))
	}

	// Redis is optional: without it the product cache is a no-op and the
	// queue falls back to the in-process driver.
	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, continuing without cache", "error", err)
	}

	storage.Connect()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	queue.StartWorkers(ctx, 4)

	httpKernel := kernel.NewHTTPKernel()

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           httpKernel.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server: http shutdown", "error", err)
	}
	if logHandler != nil {
		logHandler.Close()
	}
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Error("server: mongo disconnect", "error", err)
	}

	fmt.Fprintln(os.Stdout, "bye")
	return nil
}
