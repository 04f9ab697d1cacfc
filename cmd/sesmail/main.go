// Command sesmail renders a template file and sends it as a transactional email.
//
//	sesmail send --template welcome.html --vars vars.yaml \
//		--to user@example.com --from "Team<team@example.com>" --subject Welcome
//	sesmail vars --template s3://bucket/welcome.html
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
