// Package nope provides a mailer.Sender that delivers nothing.
// It logs each message and returns a generated id, which makes it
// suitable for dry runs and local development.
package nope

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sesmailer/pkg/mailer"
)

var _ mailer.Sender = (*Sender)(nil)

type Sender struct {
	logger *slog.Logger
}

// New returns a sender that logs to l. A nil logger discards output.
func New(l *slog.Logger) *Sender {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Sender{logger: l}
}

// Send logs the message and returns a random id.
func (s *Sender) Send(ctx context.Context, msg *mailer.Message) (string, error) {
	id := uuid.NewString()
	s.logger.InfoContext(ctx, "email not sent",
		slog.String("message_id", id),
		slog.String("from", msg.From),
		slog.Any("to", msg.To),
		slog.Any("reply_to", msg.ReplyTo),
		slog.String("subject", msg.Subject),
		slog.Int("body_size", len(msg.HTML)),
	)
	return id, nil
}
