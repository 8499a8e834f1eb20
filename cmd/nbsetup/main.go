package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const defaultVersion = "dev"

// Version information (set by GoReleaser)
var (
	version = defaultVersion
	_       = "none"    // commit - set by GoReleaser but not used
	_       = "unknown" // date - set by GoReleaser but not used
)

func main() {
	initVersion()

	// Signals cancel the context instead of killing nbsetup, so a running
	// notebook server is stopped cleanly and reported as such
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
