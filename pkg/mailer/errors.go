package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrInvalidRecipient indicates a recipient address failed validation.
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrInvalidSender indicates the sender address failed validation.
	ErrInvalidSender = errors.New("invalid sender")

	// ErrInvalidReplyTo indicates a reply-to address failed validation.
	ErrInvalidReplyTo = errors.New("invalid reply-to")

	// ErrNoContent indicates send was called before any content was prepared.
	ErrNoContent = errors.New("no content prepared for email to send")

	// ErrSendFailed indicates the provider failed to deliver the email.
	ErrSendFailed = errors.New("failed to send email")
)
