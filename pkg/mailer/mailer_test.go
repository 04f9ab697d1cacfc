package mailer

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sesmailer/pkg/template"
)

// MockSender is a mock implementation of Sender interface.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg *Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func newTestMailer(t *testing.T, files fstest.MapFS, opts ...Option) (*Mailer, *MockSender, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sender := &MockSender{}
	opts = append([]Option{WithLogger(log), WithSource(template.FS(files))}, opts...)
	return New(sender, opts...), sender, buf
}

func helloFS() fstest.MapFS {
	return fstest.MapFS{
		"hello.html": &fstest.MapFile{Data: []byte("Hello {{NAME}}")},
	}
}

func TestMailer_EndToEnd(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS())

	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		return msg.HTML == "Hello World" &&
			msg.Text == "Hello World" &&
			msg.Subject == "s" &&
			msg.Charset == "UTF-8" &&
			msg.From == "b@x.com" &&
			len(msg.To) == 1 && msg.To[0] == "a@x.com" &&
			len(msg.ReplyTo) == 1 && msg.ReplyTo[0] == "b@x.com"
	})).Return("0100018c-abc", nil)

	require.NoError(t, m.Prepare(context.Background(), "hello.html", template.Vars{"NAME": "World"}))

	id, err := m.Send(context.Background(), SendParams{
		To:      []string{"a@x.com"},
		From:    "b@x.com",
		Subject: "s",
	})

	require.NoError(t, err)
	require.Equal(t, "0100018c-abc", id)
	sender.AssertExpectations(t)
}

func TestMailer_Send_LogsDelivery(t *testing.T) {
	t.Parallel()

	m, sender, buf := newTestMailer(t, helloFS())
	sender.On("Send", mock.Anything, mock.Anything).Return("msg-42", nil)

	require.NoError(t, m.Prepare(context.Background(), "hello.html", template.Vars{"NAME": "World"}))
	_, err := m.Send(context.Background(), SendParams{To: []string{"a@x.com", "c@x.com"}, From: "b@x.com"})

	require.NoError(t, err)
	require.Contains(t, buf.String(), `"msg":"email delivered"`)
	require.Contains(t, buf.String(), `"message_id":"msg-42"`)
	require.Contains(t, buf.String(), `"recipients":["a@x.com","c@x.com"]`)
}

func TestMailer_Send_WithoutPrepare(t *testing.T) {
	t.Parallel()

	m, sender, buf := newTestMailer(t, helloFS())

	id, err := m.Send(context.Background(), SendParams{
		To:   []string{"a@x.com"},
		From: "b@x.com",
	})

	require.ErrorIs(t, err, ErrNoContent)
	require.Empty(t, id)
	require.Contains(t, buf.String(), "no content prepared")
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_EmptyTemplate(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, fstest.MapFS{
		"empty.html": &fstest.MapFile{Data: []byte("")},
	})

	require.NoError(t, m.Prepare(context.Background(), "empty.html", nil))
	_, err := m.Send(context.Background(), SendParams{To: []string{"a@x.com"}, From: "b@x.com"})

	require.ErrorIs(t, err, ErrNoContent)
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_InvalidRecipient(t *testing.T) {
	t.Parallel()

	m, sender, buf := newTestMailer(t, helloFS())
	require.NoError(t, m.Prepare(context.Background(), "hello.html", template.Vars{"NAME": "World"}))

	_, err := m.Send(context.Background(), SendParams{
		To:      []string{"bad"},
		From:    "good@x.com",
		Subject: "s",
	})

	require.ErrorIs(t, err, ErrInvalidRecipient)
	require.Contains(t, buf.String(), `"recipient":"bad"`)
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_NoRecipient(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS())
	require.NoError(t, m.Prepare(context.Background(), "hello.html", nil))

	_, err := m.Send(context.Background(), SendParams{From: "good@x.com"})

	require.ErrorIs(t, err, ErrNoRecipient)
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_InvalidSender(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS())
	require.NoError(t, m.Prepare(context.Background(), "hello.html", nil))

	_, err := m.Send(context.Background(), SendParams{To: []string{"a@x.com"}, From: "Team<nope>"})

	require.ErrorIs(t, err, ErrInvalidSender)
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_DefaultSender(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS(), WithConfig(Config{DefaultSender: "Team<team@x.com>"}))
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		return msg.From == "Team<team@x.com>" && msg.ReplyTo[0] == "Team<team@x.com>"
	})).Return("id", nil)

	require.NoError(t, m.Prepare(context.Background(), "hello.html", nil))
	_, err := m.Send(context.Background(), SendParams{To: []string{"a@x.com"}})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_Send_PlainTextBody(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, nil, WithConfig(Config{PlainTextBody: true}))
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		return msg.HTML == "<p>Hello <b>World</b></p>" && msg.Text == "Hello World"
	})).Return("id", nil)

	_, err := m.SendContent(context.Background(), "<p>Hello <b>World</b></p>", SendParams{
		To:   []string{"a@x.com"},
		From: "b@x.com",
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_Send_ScalarInvalidReplyToFallsBack(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS())
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		return len(msg.ReplyTo) == 1 && msg.ReplyTo[0] == "b@x.com"
	})).Return("id", nil)

	require.NoError(t, m.Prepare(context.Background(), "hello.html", nil))
	_, err := m.Send(context.Background(), SendParams{
		To:      []string{"a@x.com"},
		From:    "b@x.com",
		Subject: "s",
		ReplyTo: "bad",
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_Send_ScalarValidReplyTo(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS())
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		return len(msg.ReplyTo) == 1 && msg.ReplyTo[0] == "Support<help@x.com>"
	})).Return("id", nil)

	require.NoError(t, m.Prepare(context.Background(), "hello.html", nil))
	_, err := m.Send(context.Background(), SendParams{
		To:      []string{"a@x.com"},
		From:    "b@x.com",
		ReplyTo: "Support<help@x.com>",
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_Send_StrictReplyTo(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS(), WithConfig(Config{StrictReplyTo: true}))
	require.NoError(t, m.Prepare(context.Background(), "hello.html", nil))

	_, err := m.Send(context.Background(), SendParams{
		To:      []string{"a@x.com"},
		From:    "b@x.com",
		ReplyTo: "bad",
	})

	require.ErrorIs(t, err, ErrInvalidReplyTo)
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_ReplyToListWithInvalidFails(t *testing.T) {
	t.Parallel()

	m, sender, buf := newTestMailer(t, helloFS())
	require.NoError(t, m.Prepare(context.Background(), "hello.html", nil))

	_, err := m.Send(context.Background(), SendParams{
		To:          []string{"a@x.com"},
		From:        "b@x.com",
		Subject:     "s",
		ReplyToList: []string{"bad"},
	})

	require.ErrorIs(t, err, ErrInvalidReplyTo)
	require.Contains(t, buf.String(), `"reply_to":"bad"`)
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_ReplyToListPrecedence(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS())
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		return len(msg.ReplyTo) == 2 && msg.ReplyTo[0] == "r1@x.com" && msg.ReplyTo[1] == "r2@x.com"
	})).Return("id", nil)

	require.NoError(t, m.Prepare(context.Background(), "hello.html", nil))
	_, err := m.Send(context.Background(), SendParams{
		To:          []string{"a@x.com"},
		From:        "b@x.com",
		ReplyTo:     "ignored@x.com",
		ReplyToList: []string{"r1@x.com", "r2@x.com"},
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_Send_ProviderErrorUnchanged(t *testing.T) {
	t.Parallel()

	m, sender, buf := newTestMailer(t, helloFS())
	providerErr := &ProviderError{Provider: "ses", Code: "Throttling", Err: errors.New("rate exceeded")}
	sender.On("Send", mock.Anything, mock.Anything).Return("", providerErr)

	require.NoError(t, m.Prepare(context.Background(), "hello.html", nil))
	_, err := m.Send(context.Background(), SendParams{To: []string{"a@x.com"}, From: "b@x.com"})

	require.Same(t, providerErr, err)
	require.ErrorIs(t, err, ErrSendFailed)
	require.Contains(t, buf.String(), "email delivery failed")
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestMailer_Send_CopiesAddressSlices(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS())
	var got *Message
	sender.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		got = args.Get(1).(*Message)
	}).Return("id", nil)

	to := []string{"a@x.com"}
	require.NoError(t, m.Prepare(context.Background(), "hello.html", nil))
	_, err := m.Send(context.Background(), SendParams{To: to, From: "b@x.com"})
	require.NoError(t, err)

	to[0] = "changed@x.com"
	require.Equal(t, []string{"a@x.com"}, got.To)
}

func TestMailer_Send_AttachesSendID(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS())
	sender.On("Send", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := SendIDFromContext(ctx)
		return ok
	}), mock.Anything).Return("id", nil)

	require.NoError(t, m.Prepare(context.Background(), "hello.html", nil))
	_, err := m.Send(context.Background(), SendParams{To: []string{"a@x.com"}, From: "b@x.com"})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_Prepare_LogsMissingVariables(t *testing.T) {
	t.Parallel()

	m, _, buf := newTestMailer(t, fstest.MapFS{
		"t.html": &fstest.MapFile{Data: []byte("{{EMAIL_TITLE}} {{SITE_URL}}")},
	})

	require.NoError(t, m.Prepare(context.Background(), "t.html", template.Vars{"EMAIL_TITLE": "Title"}))

	require.Equal(t, Content("Title {{SITE_URL}}"), m.Content())
	require.Contains(t, buf.String(), "template variable is missing")
	require.Contains(t, buf.String(), `"variable":"SITE_URL"`)
	require.NotContains(t, buf.String(), `"variable":"EMAIL_TITLE"`)
}

func TestMailer_Prepare_Overwrites(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestMailer(t, helloFS())

	require.NoError(t, m.Prepare(context.Background(), "hello.html", template.Vars{"NAME": "One"}))
	require.NoError(t, m.Prepare(context.Background(), "hello.html", template.Vars{"NAME": "Two"}))

	require.Equal(t, Content("Hello Two"), m.Content())
}

func TestMailer_Prepare_LoadError(t *testing.T) {
	t.Parallel()

	m, _, buf := newTestMailer(t, helloFS())

	err := m.Prepare(context.Background(), "missing.html", nil)

	require.ErrorIs(t, err, template.ErrLoad)
	require.Empty(t, m.Content())
	require.Contains(t, buf.String(), "failed to load template")
}

func TestMailer_Prepare_EmptyName(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestMailer(t, helloFS())

	err := m.Prepare(context.Background(), "", nil)

	require.ErrorIs(t, err, template.ErrNoSource)
}

func TestMailer_Prepare_DefaultsToLocalFiles(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hello.html")
	require.NoError(t, os.WriteFile(path, []byte("Hi {{NAME}}"), 0o600))

	m := New(&MockSender{})

	require.NoError(t, m.Prepare(context.Background(), path, template.Vars{"NAME": "Ann"}))
	require.Equal(t, Content("Hi Ann"), m.Content())
}

func TestMailer_SendContent_DoesNotTouchPending(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS())
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg *Message) bool {
		return msg.HTML == "explicit"
	})).Return("id", nil)

	content, err := m.Render(context.Background(), "hello.html", template.Vars{"NAME": "World"})
	require.NoError(t, err)
	require.Equal(t, Content("Hello World"), content)
	require.Empty(t, m.Content())

	_, err = m.SendContent(context.Background(), "explicit", SendParams{To: []string{"a@x.com"}, From: "b@x.com"})
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_ValidateRecipients(t *testing.T) {
	t.Parallel()

	m, _, buf := newTestMailer(t, helloFS())

	require.True(t, m.ValidateRecipients("a@x.com"))
	require.True(t, m.ValidateRecipients("a@x.com", "Name<b@x.com>"))
	require.False(t, m.ValidateRecipients())

	buf.Reset()
	require.False(t, m.ValidateRecipients("a@x.com", "first-bad", "second-bad"))
	require.Contains(t, buf.String(), "first-bad")
	require.NotContains(t, buf.String(), "second-bad")
	require.Equal(t, 1, strings.Count(buf.String(), "invalid recipient"))
}

func TestMailer_ValidateSender(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestMailer(t, helloFS())

	require.True(t, m.ValidateSender("Team<team@x.com>"))
	require.False(t, m.ValidateSender("team"))
	require.False(t, m.ValidateSender(""))
}

func TestMailer_SendAsync_Resolves(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS())
	sender.On("Send", mock.Anything, mock.Anything).Return("async-id", nil)

	require.NoError(t, m.Prepare(context.Background(), "hello.html", nil))
	p := m.SendAsync(context.Background(), SendParams{To: []string{"a@x.com"}, From: "b@x.com"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	id, err := p.Wait(ctx)
	require.NoError(t, err)
	require.Equal(t, "async-id", id)

	id, ok, err := p.Result()
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, "async-id", id)
}

func TestMailer_SendAsync_ValidationResolvesImmediately(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS())

	p := m.SendAsync(context.Background(), SendParams{To: []string{"a@x.com"}, From: "b@x.com"})

	select {
	case <-p.Done():
	default:
		t.Fatal("pending should be resolved")
	}

	_, ok, err := p.Result()
	require.True(t, ok)
	require.ErrorIs(t, err, ErrNoContent)
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_SendAsync_ProviderFailure(t *testing.T) {
	t.Parallel()

	m, sender, _ := newTestMailer(t, helloFS())
	providerErr := errors.New("boom")
	sender.On("Send", mock.Anything, mock.Anything).Return("", providerErr)

	require.NoError(t, m.Prepare(context.Background(), "hello.html", nil))
	p := m.SendAsync(context.Background(), SendParams{To: []string{"a@x.com"}, From: "b@x.com"})

	_, err := p.Wait(context.Background())
	require.ErrorIs(t, err, providerErr)
}

func TestPending_WaitHonoursContext(t *testing.T) {
	t.Parallel()

	p := newPending()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)

	_, ok, _ := p.Result()
	require.False(t, ok)
}

func TestProviderError(t *testing.T) {
	t.Parallel()

	cause := errors.New("message rejected")
	err := &ProviderError{Provider: "ses", Code: "MessageRejected", Err: cause}

	require.Equal(t, "ses: MessageRejected: message rejected", err.Error())
	require.ErrorIs(t, err, cause)
	require.ErrorIs(t, err, ErrSendFailed)
	require.NotErrorIs(t, err, ErrNoContent)

	noCode := &ProviderError{Provider: "resend", Err: cause}
	require.Equal(t, "resend: message rejected", noCode.Error())
}

func TestSendIDExtractor(t *testing.T) {
	t.Parallel()

	_, ok := SendIDExtractor(context.Background())
	require.False(t, ok)

	ctx := withSendID(context.Background())
	attr, ok := SendIDExtractor(ctx)
	require.True(t, ok)
	require.Equal(t, "send_id", attr.Key)

	id, _ := SendIDFromContext(ctx)
	require.Equal(t, ctx, withSendID(ctx))
	require.Equal(t, id, attr.Value.String())
}
