package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sesmailer/pkg/config"
	"github.com/dmitrymomot/sesmailer/pkg/logger"
	"github.com/dmitrymomot/sesmailer/pkg/mailer"
	"github.com/dmitrymomot/sesmailer/pkg/mailer/nope"
	"github.com/dmitrymomot/sesmailer/pkg/mailer/resend"
	"github.com/dmitrymomot/sesmailer/pkg/mailer/ses"
)

const (
	providerSES    = "ses"
	providerResend = "resend"

	sentryFlushTimeout = 2 * time.Second
)

type sendOptions struct {
	*rootOptions

	template    string
	varsFile    string
	to          []string
	from        string
	subject     string
	replyTo     string
	replyToList []string
	provider    string
	dryRun      bool
}

func newSendCmd(root *rootOptions) *cobra.Command {
	opts := &sendOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Render a template and send it",
		Long: `Render a template with variables from a YAML file and send it.
The provider message id is printed on success. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSend(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.template, "template", "t", "", "template path or s3://bucket/key")
	f.StringVar(&opts.varsFile, "vars", "", "YAML file with template variables")
	f.StringArrayVar(&opts.to, "to", nil, "recipient address, one per flag (repeatable)")
	f.StringVar(&opts.from, "from", "", "sender address (default: MAILER_DEFAULT_SENDER)")
	f.StringVarP(&opts.subject, "subject", "s", "", "email subject")
	f.StringVar(&opts.replyTo, "reply-to", "", "reply-to address, ignored when invalid")
	f.StringSliceVar(&opts.replyToList, "reply-to-list", nil, "comma-separated reply-to addresses, all must be valid")
	f.StringVar(&opts.provider, "provider", providerSES, "email provider (ses, resend)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "log the message instead of sending it")

	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("subject")
	cmd.MarkFlagsMutuallyExclusive("reply-to", "reply-to-list")

	return cmd
}

func runSend(cmd *cobra.Command, opts *sendOptions) error {
	ctx := cmd.Context()

	var (
		logCfg  logger.Config
		mailCfg mailer.Config
	)
	if err := config.LoadFiles(opts.envFiles, &logCfg, &mailCfg); err != nil {
		return err
	}
	logCfg.Writer = cmd.ErrOrStderr()
	log := logger.New(logCfg, mailer.SendIDExtractor)
	defer logger.Flush(sentryFlushTimeout)

	vars, err := loadVars(opts.varsFile)
	if err != nil {
		return err
	}

	src, name, err := templateSource(ctx, opts.template, opts.envFiles)
	if err != nil {
		return err
	}

	sender, err := newSender(ctx, opts, log)
	if err != nil {
		return err
	}

	m := mailer.New(sender,
		mailer.WithLogger(log),
		mailer.WithSource(src),
		mailer.WithConfig(mailCfg),
	)

	if err := m.Prepare(ctx, name, vars); err != nil {
		return err
	}

	id, err := m.Send(ctx, mailer.SendParams{
		Subject:     opts.subject,
		From:        opts.from,
		To:          opts.to,
		ReplyTo:     opts.replyTo,
		ReplyToList: opts.replyToList,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
	return err
}

func newSender(ctx context.Context, opts *sendOptions, log *slog.Logger) (mailer.Sender, error) {
	if opts.dryRun {
		return nope.New(log), nil
	}

	switch opts.provider {
	case providerSES:
		var cfg ses.Config
		if err := config.LoadFiles(opts.envFiles, &cfg); err != nil {
			return nil, err
		}
		s, err := ses.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case providerResend:
		var cfg resend.Config
		if err := config.LoadFiles(opts.envFiles, &cfg); err != nil {
			return nil, err
		}
		s, err := resend.New(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", opts.provider)
	}
}
