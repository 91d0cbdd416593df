// Package main is the entry point for the blueprintctl CLI.
//
// blueprintctl is an operator console for Ambari. It stages a blueprint,
// assigns hosts to its host groups and creates the cluster, rolling back
// a failed create so the operator can retry. It also deletes clusters and
// starts or stops their services.
//
// For detailed usage information, run:
//
//	blueprintctl --help
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/blueprintctl/cmd/blueprintctl/commands"
	"github.com/imamik/blueprintctl/internal/shell"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Execute(ctx, os.Args[1:])
	stop()

	if err != nil {
		// Failed outcomes were already printed by the command.
		if !errors.Is(err, shell.ErrReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
