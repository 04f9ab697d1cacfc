package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/sesmailer/pkg/logger"
	"github.com/dmitrymomot/sesmailer/pkg/sanitizer"
	"github.com/dmitrymomot/sesmailer/pkg/template"
)

// Mailer validates addresses, assembles messages from rendered templates and
// hands them to a Sender.
//
// Prepare stores rendered content on the instance and Send consumes it, so a
// Prepare/Send pair must not interleave with another one on the same Mailer.
// Use Render with SendContent when sending from several goroutines.
type Mailer struct {
	sender Sender
	source template.Source
	logger *slog.Logger
	config Config

	mu      sync.Mutex
	content Content
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSource sets where Prepare and Render load templates from.
// Defaults to the local filesystem.
func WithSource(src template.Source) Option {
	return func(m *Mailer) {
		if src != nil {
			m.source = src
		}
	}
}

// WithConfig sets the mailer configuration.
func WithConfig(cfg Config) Option {
	return func(m *Mailer) {
		m.config = cfg
	}
}

// New creates a Mailer delivering through sender.
// No connection to the provider is made.
func New(sender Sender, opts ...Option) *Mailer {
	m := &Mailer{
		sender: sender,
		source: template.Dir(""),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Prepare loads and renders the named template and stores the result as the
// pending content for the next Send, replacing any previous content.
// Missing variables are logged as warnings and left in place.
func (m *Mailer) Prepare(ctx context.Context, name string, vars template.Vars) error {
	content, err := m.Render(ctx, name, vars)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.content = content
	m.mu.Unlock()

	return nil
}

// Render loads and renders the named template without storing it.
func (m *Mailer) Render(ctx context.Context, name string, vars template.Vars) (Content, error) {
	tmpl, err := template.LoadFrom(ctx, m.source, name)
	if err != nil {
		m.logger.ErrorContext(ctx, "failed to load template",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	for _, v := range tmpl.Missing(vars) {
		m.logger.WarnContext(ctx, "template variable is missing",
			slog.String("template", name),
			slog.String("variable", v),
		)
	}

	return Content(tmpl.Render(vars)), nil
}

// Content returns the pending content set by the last Prepare.
func (m *Mailer) Content() Content {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// ValidateRecipients reports whether every recipient is a valid address.
// It stops and logs at the first invalid one.
func (m *Mailer) ValidateRecipients(recipients ...string) bool {
	return m.validateRecipients(context.Background(), recipients) == nil
}

// ValidateSender reports whether sender is a valid address.
func (m *Mailer) ValidateSender(sender string) bool {
	return m.validateSender(context.Background(), sender) == nil
}

// Send delivers the pending content and returns the provider message ID.
func (m *Mailer) Send(ctx context.Context, params SendParams) (string, error) {
	return m.SendContent(ctx, m.Content(), params)
}

// SendContent delivers content and returns the provider message ID.
// Validation failures are logged and returned without contacting the provider.
// Provider errors are logged and returned unchanged.
func (m *Mailer) SendContent(ctx context.Context, content Content, params SendParams) (string, error) {
	ctx = withSendID(ctx)

	msg, err := m.buildMessage(ctx, content, params)
	if err != nil {
		return "", err
	}

	return m.deliver(ctx, msg)
}

// SendAsync validates synchronously and delivers the pending content in the
// background. Validation failures resolve the result immediately.
func (m *Mailer) SendAsync(ctx context.Context, params SendParams) *Pending {
	ctx = withSendID(ctx)
	p := newPending()

	msg, err := m.buildMessage(ctx, m.Content(), params)
	if err != nil {
		p.resolve("", err)
		return p
	}

	go func() {
		p.resolve(m.deliver(ctx, msg))
	}()

	return p
}

func (m *Mailer) deliver(ctx context.Context, msg *Message) (string, error) {
	id, err := m.sender.Send(ctx, msg)
	if err != nil {
		m.logger.ErrorContext(ctx, "email delivery failed",
			slog.Any("recipients", msg.To),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	m.logger.InfoContext(ctx, "email delivered",
		slog.String("message_id", id),
		slog.Any("recipients", msg.To),
	)
	return id, nil
}

// buildMessage validates params and assembles the outbound message.
func (m *Mailer) buildMessage(ctx context.Context, content Content, params SendParams) (*Message, error) {
	if content == "" {
		m.logger.ErrorContext(ctx, "no content prepared for email to send")
		return nil, ErrNoContent
	}

	from := params.From
	if from == "" {
		from = m.config.DefaultSender
	}

	if err := m.validateRecipients(ctx, params.To); err != nil {
		return nil, err
	}
	if err := m.validateSender(ctx, from); err != nil {
		return nil, err
	}

	replyTo, err := m.resolveReplyTo(ctx, from, params)
	if err != nil {
		return nil, err
	}

	to := make([]string, len(params.To))
	copy(to, params.To)

	text := string(content)
	if m.config.PlainTextBody {
		text = sanitizer.PlainText(text)
	}

	return &Message{
		To:      to,
		From:    from,
		ReplyTo: replyTo,
		Subject: params.Subject,
		HTML:    string(content),
		Text:    text,
		Charset: Charset,
	}, nil
}

// resolveReplyTo applies the reply-to policy: a list must be fully valid,
// a single invalid address falls back to the sender.
func (m *Mailer) resolveReplyTo(ctx context.Context, from string, params SendParams) ([]string, error) {
	if len(params.ReplyToList) > 0 {
		if i := firstInvalid(params.ReplyToList); i >= 0 {
			m.logger.ErrorContext(ctx, "invalid reply-to in list",
				slog.String("reply_to", params.ReplyToList[i]),
				slog.Int("index", i),
			)
			return nil, fmt.Errorf("%w: %s", ErrInvalidReplyTo, params.ReplyToList[i])
		}
		out := make([]string, len(params.ReplyToList))
		copy(out, params.ReplyToList)
		return out, nil
	}

	if params.ReplyTo != "" {
		if ValidateAddress(params.ReplyTo) {
			return []string{params.ReplyTo}, nil
		}
		if m.config.StrictReplyTo {
			m.logger.ErrorContext(ctx, "invalid reply-to", slog.String("reply_to", params.ReplyTo))
			return nil, fmt.Errorf("%w: %s", ErrInvalidReplyTo, params.ReplyTo)
		}
		m.logger.DebugContext(ctx, "ignoring invalid reply-to, using sender",
			slog.String("reply_to", params.ReplyTo),
		)
	}

	return []string{from}, nil
}

func (m *Mailer) validateRecipients(ctx context.Context, recipients []string) error {
	if len(recipients) == 0 {
		m.logger.ErrorContext(ctx, "no recipients")
		return ErrNoRecipient
	}

	if i := firstInvalid(recipients); i >= 0 {
		if len(recipients) > 1 {
			m.logger.ErrorContext(ctx, "invalid recipient in list",
				slog.String("recipient", recipients[i]),
				slog.Int("index", i),
			)
		} else {
			m.logger.ErrorContext(ctx, "invalid recipient", slog.String("recipient", recipients[i]))
		}
		return fmt.Errorf("%w: %s", ErrInvalidRecipient, recipients[i])
	}

	return nil
}

func (m *Mailer) validateSender(ctx context.Context, sender string) error {
	if !ValidateAddress(sender) {
		m.logger.ErrorContext(ctx, "invalid sender", slog.String("sender", sender))
		return fmt.Errorf("%w: %s", ErrInvalidSender, sender)
	}
	return nil
}
