package mailer

import "fmt"

// Charset is the character set declared for subject and bodies.
const Charset = "UTF-8"

// Content is rendered template output ready to be sent.
type Content string

// Recipient formats a name and email into "Name <email>" form.
// Returns just email if name is empty.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Message is a fully validated email ready for a provider.
type Message struct {
	Subject string
	HTML    string   // HTML body
	Text    string   // plain text body
	Charset string   // charset of subject and bodies
	From    string   // sender address spec
	To      []string // recipients (at least one)
	ReplyTo []string // reply-to addresses, defaults to [From]
}

// SendParams contains parameters for sending prepared content.
type SendParams struct {
	Subject string
	From    string   // falls back to Config.DefaultSender
	To      []string // a single recipient is a one-element slice

	// ReplyTo is a single reply-to address. An invalid value is ignored
	// and the sender is used instead, unless Config.StrictReplyTo is set.
	ReplyTo string

	// ReplyToList is a list of reply-to addresses. Every element must be
	// valid or the send fails. Takes precedence over ReplyTo.
	ReplyToList []string
}
