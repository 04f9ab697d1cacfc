package mailer

// Config holds mailer configuration.
// Embed this in your app config for env parsing with envconfig.
type Config struct {
	// DefaultSender is used when SendParams.From is empty.
	DefaultSender string `envconfig:"MAILER_DEFAULT_SENDER"`

	// StrictReplyTo makes an invalid scalar reply-to address fail the send
	// instead of falling back to the sender.
	StrictReplyTo bool `envconfig:"MAILER_STRICT_REPLY_TO" default:"false"`

	// PlainTextBody derives the text body by stripping markup from the
	// content. By default both bodies carry the content unchanged.
	PlainTextBody bool `envconfig:"MAILER_PLAIN_TEXT_BODY" default:"false"`
}
