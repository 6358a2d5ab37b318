// Package logger wraps log/slog. WithCtx returns the request-scoped logger
// the Logger middleware injected, so handlers and services log with the
// request id attached without threading a logger through every call:
//
//	logger.WithCtx(ctx).Info("product added to cart", "product_id", id)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/bazaar/config"
)

// L is the process-wide logger. Text in development, JSON in production.
var L = slog.New(newHandler())

func init() {
	slog.SetDefault(L)
}

func newHandler() slog.Handler {
	if env := config.AppEnv(); env == "production" || env == "prod" {
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// SetHandler swaps the process-wide handler. The server uses it at boot to
// fan logs out to the Mongo sink when MONGO_LOG_SINK is set.
func SetHandler(h slog.Handler) {
	L = slog.New(h)
	slog.SetDefault(L)
}

type ctxKey struct{}

// InjectLogger stores a request-scoped logger in ctx. Only the Logger
// middleware should need this.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// WithCtx returns the logger stored in ctx, falling back to L.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
