// Package resend implements mailer.Sender using the Resend API.
package resend

import (
	"context"
	"errors"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/sesmailer/pkg/mailer"
)

// ProviderName identifies Resend in mailer.ProviderError.
const ProviderName = "resend"

// ErrNoAPIKey indicates the configuration has no API key.
var ErrNoAPIKey = errors.New("resend: api key is required")

var _ mailer.Sender = (*Sender)(nil)

// Emails is the subset of the Resend emails service used by Sender.
type Emails interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	emails Emails
}

// New creates a new Resend sender.
func New(cfg Config) (*Sender, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	return NewWithClient(resend.NewClient(cfg.APIKey).Emails), nil
}

// NewWithClient creates a sender around an existing emails service.
func NewWithClient(emails Emails) *Sender {
	return &Sender{emails: emails}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, msg *mailer.Message) (string, error) {
	resp, err := s.emails.SendWithContext(ctx, buildRequest(msg))
	if err != nil {
		return "", &mailer.ProviderError{Provider: ProviderName, Err: err}
	}
	return resp.Id, nil
}

// Resend takes a single reply-to header value, so the list is joined.
func buildRequest(msg *mailer.Message) *resend.SendEmailRequest {
	return &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: strings.Join(msg.ReplyTo, ", "),
	}
}
