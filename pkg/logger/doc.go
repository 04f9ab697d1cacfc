// Package logger builds slog loggers with context extraction and optional
// Sentry reporting.
//
// # Usage
//
//	log := logger.New(logger.Config{
//		Level:  slog.LevelInfo,
//		Format: logger.FormatJSON,
//	}, mailer.SendIDExtractor)
//
//	log.InfoContext(ctx, "email delivered", slog.String("message_id", id))
//	// {"level":"INFO","msg":"email delivered","message_id":"...","send_id":"..."}
//
// # Context Extractors
//
// A ContextExtractor pulls one attribute out of a context. Extractors run on
// every record, so values scoped to a single send (like the mailer's send ID)
// show up on every line logged while that send is in flight.
//
// # Sentry
//
// When Config.Sentry.DSN is set, records at or above Config.Sentry.MinLevel
// are also forwarded to Sentry and errors become Sentry issues. With no DSN,
// or if the SDK fails to initialize, only the local handler is used.
// Sentry sends asynchronously, so short-lived programs call Flush before
// exiting.
//
// Environment variables (via the config package): LOG_LEVEL, LOG_FORMAT,
// SENTRY_DSN, SENTRY_ENVIRONMENT, SENTRY_MIN_LEVEL.
//
// Libraries default to NewNope, which discards everything.
package logger
