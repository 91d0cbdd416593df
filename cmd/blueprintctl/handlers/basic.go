package handlers

import (
	"context"
	"fmt"
)

// Hint prints what to do next in the current session state.
func Hint(ctx context.Context) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(app.Out, app.Session.Hint())
	return nil
}

// Debug toggles logging of the Ambari API calls.
func Debug(ctx context.Context, enabled bool) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}
	app.Client.SetDebug(enabled)
	if enabled {
		_, _ = fmt.Fprintln(app.Out, "Debug enabled")
	} else {
		_, _ = fmt.Fprintln(app.Out, "Debug disabled")
	}
	return nil
}
