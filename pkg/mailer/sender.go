package mailer

import (
	"context"
	"fmt"
)

// Sender defines the minimal interface that email providers must implement.
// It accepts a fully-prepared Message and handles the actual delivery.
type Sender interface {
	// Send delivers a message and returns the provider's message ID.
	// The Message has To, From, ReplyTo, Subject and bodies already set
	// and validated.
	Send(ctx context.Context, msg *Message) (string, error)
}

// ProviderError is returned by provider adapters when transmission fails.
type ProviderError struct {
	Err      error
	Provider string // "ses", "resend", ...
	Code     string // provider error code, if any
}

func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is reports ErrSendFailed as a match so callers can test any provider failure.
func (e *ProviderError) Is(target error) bool {
	return target == ErrSendFailed
}
