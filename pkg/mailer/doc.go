// Package mailer sends transactional email built from flat {{KEY}} templates.
//
// The package separates message assembly and validation from transmission:
// a Mailer renders templates, validates recipient, sender and reply-to
// addresses and builds a Message, then hands it to a Sender implemented by a
// provider adapter (see the ses, resend and nope subpackages).
//
// # Usage
//
//	sender, err := ses.New(ctx, ses.Config{
//		Region:  "us-east-1",
//		Profile: "mailer",
//	})
//	if err != nil {
//		return err
//	}
//
//	m := mailer.New(sender, mailer.WithLogger(log))
//
//	if err := m.Prepare(ctx, "templates/welcome.html", template.Vars{
//		"NAME": "World",
//	}); err != nil {
//		return err
//	}
//
//	id, err := m.Send(ctx, mailer.SendParams{
//		To:      []string{"user@example.com"},
//		From:    "Team<team@example.com>",
//		Subject: "Welcome",
//	})
//
// Prepare keeps the rendered content on the Mailer until the next Prepare.
// For concurrent use render explicitly and pass the content along:
//
//	content, err := m.Render(ctx, "templates/welcome.html", vars)
//	id, err := m.SendContent(ctx, content, params)
//
// SendAsync returns a Pending that resolves once the provider answers:
//
//	p := m.SendAsync(ctx, params)
//	id, err := p.Wait(ctx)
//
// # Addresses
//
// Address specs are either bare ("user@example.com") or carry a display name
// ("Name<user@example.com>"). Only the part inside the brackets is checked.
//
// Recipients and the sender must all be valid. Reply-to follows two rules:
// every address in SendParams.ReplyToList must be valid, while an invalid
// SendParams.ReplyTo is dropped in favour of the sender unless
// Config.StrictReplyTo is set.
//
// # Errors
//
//   - ErrNoContent: Send called before Prepare, or the template was empty
//   - ErrNoRecipient: no recipient specified
//   - ErrInvalidRecipient, ErrInvalidSender, ErrInvalidReplyTo: validation failed
//   - ErrSendFailed: matched by every *ProviderError
//
// Template load errors from Prepare wrap template.ErrLoad. Provider errors are
// returned exactly as the Sender produced them.
package mailer
