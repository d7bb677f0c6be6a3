// cmd/casebook/main.go
//
// This is the entry point for the casebook CLI.
// Running `casebook` with no arguments opens the board for the current
// directory; see `casebook --help` for the other commands.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kingrea/casebook/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "casebook: %v\n", err)
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
