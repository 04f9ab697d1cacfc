package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sesmailer/pkg/config"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	envFiles []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "sesmail",
		Short:        "Send templated transactional email",
		Long:         "Render {{KEY}} templates from local files or S3 and send them through Amazon SES or Resend.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{config.DefaultEnvFile}, "env file to load before reading configuration (repeatable)")

	cmd.AddCommand(newSendCmd(opts))
	cmd.AddCommand(newVarsCmd(opts))

	return cmd
}
