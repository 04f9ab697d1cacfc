package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sesmailer/pkg/template"
)

type varsOptions struct {
	*rootOptions

	template string
	varsFile string
}

func newVarsCmd(root *rootOptions) *cobra.Command {
	opts := &varsOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "vars",
		Short: "List the variables a template uses",
		Long: `Print every {{KEY}} variable in the template, one per line, in order of
first appearance. With --vars, variables missing from the file are marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVars(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template path or s3://bucket/key")
	cmd.Flags().StringVar(&opts.varsFile, "vars", "", "YAML file to check against")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func runVars(cmd *cobra.Command, opts *varsOptions) error {
	ctx := cmd.Context()

	src, name, err := templateSource(ctx, opts.template, opts.envFiles)
	if err != nil {
		return err
	}

	tmpl, err := template.LoadFrom(ctx, src, name)
	if err != nil {
		return err
	}

	var missing []string
	if opts.varsFile != "" {
		vars, err := loadVars(opts.varsFile)
		if err != nil {
			return err
		}
		missing = tmpl.Missing(vars)
	}

	out := cmd.OutOrStdout()
	for _, v := range tmpl.Variables() {
		line := v
		if slices.Contains(missing, v) {
			line += " (missing)"
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
