// Command formcheck validates, scores and repairs form-definition documents.
//
// Usage:
//
//	# Validate documents (files, directories, URLs or - for stdin)
//	formcheck validate forms/
//
//	# Repair a document, reviewing the fixes interactively
//	formcheck fix forms/adjustments.json
//
//	# Re-validate on every save
//	formcheck watch forms/
//
//	# Serve POST /api/validate and /metrics
//	formcheck serve --addr :8080
//
//	# Print the canonical JSON Schema
//	formcheck schema
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(newApp(os.Stdin, os.Stdout, os.Stderr))
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
