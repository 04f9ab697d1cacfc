// Package ses implements mailer.Sender using the Amazon SES SendEmail API.
package ses

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/sesmailer/pkg/mailer"
)

// ProviderName identifies SES in mailer.ProviderError.
const ProviderName = "ses"

// ErrNoRegion indicates the configuration has no region.
var ErrNoRegion = errors.New("ses: region is required")

var _ mailer.Sender = (*Sender)(nil)

// API is the subset of the SES client used by Sender.
type API interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Sender implements mailer.Sender using Amazon SES.
type Sender struct {
	client API
	config Config
}

// New creates an SES sender. Credentials come from static keys, the
// configured shared profile and credentials file, or the default chain,
// in that order. No request is made to SES.
func New(ctx context.Context, cfg Config) (*Sender, error) {
	if cfg.Region == "" {
		return nil, ErrNoRegion
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("ses: failed to load aws config: %w", err)
	}

	client := ses.NewFromConfig(awsCfg, func(o *ses.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a sender around an existing SES client.
func NewWithClient(client API, cfg Config) *Sender {
	return &Sender{client: client, config: cfg}
}

func loadOptions(cfg Config) []func(*config.LoadOptions) error {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}

	if cfg.AccessKeyID != "" {
		return append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.CredentialsFile != "" {
		opts = append(opts, config.WithSharedCredentialsFiles([]string{cfg.CredentialsFile}))
	}
	return opts
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, msg *mailer.Message) (string, error) {
	out, err := s.client.SendEmail(ctx, s.buildInput(msg))
	if err != nil {
		return "", wrapError(err)
	}
	return aws.ToString(out.MessageId), nil
}

func (s *Sender) buildInput(msg *mailer.Message) *ses.SendEmailInput {
	charset := msg.Charset
	if charset == "" {
		charset = mailer.Charset
	}

	content := func(data string) *types.Content {
		return &types.Content{Charset: aws.String(charset), Data: aws.String(data)}
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: msg.To,
		},
		Source: aws.String(msg.From),
		Message: &types.Message{
			Body: &types.Body{
				Html: content(msg.HTML),
				Text: content(msg.Text),
			},
			Subject: content(msg.Subject),
		},
		ReplyToAddresses: msg.ReplyTo,
	}

	if s.config.ConfigurationSet != "" {
		input.ConfigurationSetName = aws.String(s.config.ConfigurationSet)
	}
	if s.config.SourceArn != "" {
		input.SourceArn = aws.String(s.config.SourceArn)
	}

	return input
}

// wrapError converts an SES failure into a mailer.ProviderError, keeping
// the API error code when there is one.
func wrapError(err error) error {
	pe := &mailer.ProviderError{Provider: ProviderName, Err: err}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		pe.Code = apiErr.ErrorCode()
	}

	return pe
}
