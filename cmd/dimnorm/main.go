// File: cmd/dimnorm/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/xkilldash9x/dimnorm/cmd"
	"github.com/xkilldash9x/dimnorm/internal/observability"
)

func main() {
	os.Exit(run(context.Background()))
}

// run executes the CLI and maps the outcome to a process exit code.
func run(parent context.Context) int {
	// SIGINT/SIGTERM cancel in-flight work.
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer observability.Sync()

	if err := cmd.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		return 1
	}
	return 0
}
