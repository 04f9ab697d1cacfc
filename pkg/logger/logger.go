package logger

import (
	"io"
	"log/slog"
	"os"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config holds logger configuration.
type Config struct {
	Writer io.Writer    `ignored:"true"` // defaults to os.Stdout
	Format string       `envconfig:"LOG_FORMAT" default:"json"`
	Sentry SentryConfig `envconfig:"SENTRY"`
	Level  slog.Level   `envconfig:"LOG_LEVEL" default:"INFO"`
}

// New creates a logger from cfg with optional context extractors.
// Sentry is enabled when cfg.Sentry.DSN is set.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	local := localHandler(cfg)

	handler := local
	if sentryHandler, ok := newSentryHandler(cfg.Sentry, local); ok {
		handler = multiHandler{local, sentryHandler}
	}

	return slog.New(NewContextHandler(handler, extractors...))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func localHandler(cfg Config) slog.Handler {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == FormatText {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
