package mailer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type sendIDKey struct{}

// withSendID returns ctx carrying a fresh send ID, keeping an existing one.
func withSendID(ctx context.Context) context.Context {
	if _, ok := SendIDFromContext(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, sendIDKey{}, uuid.NewString())
}

// SendIDFromContext returns the send ID attached by the mailer, if any.
func SendIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sendIDKey{}).(string)
	return id, ok && id != ""
}

// SendIDExtractor is a logger context extractor that adds the send ID
// to every log record emitted during a send.
func SendIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := SendIDFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("send_id", id), true
}
