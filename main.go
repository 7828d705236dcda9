// Command filecrypt encrypts and decrypts files with a passphrase.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/idelchi/filecrypt/internal/commands"
	"github.com/idelchi/filecrypt/internal/config"
)

// Global variable for CI stamping.
var version = "unknown - unofficial & generated by unknown"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	root := commands.NewRootCommand(&config.Config{}, version, nil)

	err := root.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
