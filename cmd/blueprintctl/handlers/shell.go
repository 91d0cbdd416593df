package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/imamik/blueprintctl/internal/shell"
)

// Shell runs the interactive console on in. Every line is handed to exec,
// which must run it against the same context so the session is shared.
func Shell(ctx context.Context, in io.Reader, exec shell.Executor) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}

	app.inShell = true
	defer func() { app.inShell = false }()

	_, _ = fmt.Fprintf(app.Out, "Connected to %s. Type 'hint' for help, 'exit' to leave.\n", app.Client.URL())
	return shell.New(in, app.Out, app.Session.Prompt, exec).Run(ctx)
}
