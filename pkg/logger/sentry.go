package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
// Nested under Config its variables are SENTRY_DSN, SENTRY_ENVIRONMENT
// and SENTRY_MIN_LEVEL.
type SentryConfig struct {
	DSN         string `envconfig:"DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"production"`
	// MinLevel determines which log levels are sent to Sentry.
	MinLevel slog.Level `envconfig:"MIN_LEVEL" default:"WARN"`
}

// newSentryHandler initializes the Sentry SDK and returns its slog handler.
// Returns false when no DSN is configured or initialization fails; the
// failure is reported through fallback.
func newSentryHandler(cfg SentryConfig, fallback slog.Handler) (slog.Handler, bool) {
	if cfg.DSN == "" {
		return nil, false
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(fallback).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return nil, false
	}

	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   sentryLogLevels(cfg.MinLevel),
	}.NewSentryHandler(context.Background()), true
}

// sentryLogLevels returns the standard levels at or above minLevel.
// Error is always included.
func sentryLogLevels(minLevel slog.Level) []slog.Level {
	levels := make([]slog.Level, 0, 4)
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l >= minLevel {
			levels = append(levels, l)
		}
	}
	if len(levels) == 0 {
		levels = append(levels, slog.LevelError)
	}
	return levels
}

// Flush waits up to timeout for buffered Sentry events to be sent.
// It does nothing when Sentry was never initialized. Short-lived
// processes should call it before exiting.
func Flush(timeout time.Duration) {
	if sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.Flush(timeout)
}
