package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/blueprintctl/internal/platform/ambari"
	"github.com/imamik/blueprintctl/internal/ui/table"
)

// Tasks prints the tasks of an Ambari request of the connected cluster.
func Tasks(ctx context.Context, requestID int) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}
	tasks, err := app.Client.Tasks(ctx, app.Session.Cluster(), requestID)
	if err != nil {
		if ambari.IsNotFound(err) {
			tasks = map[string]string{}
		} else {
			return fmt.Errorf("failed to list tasks of request %d: %w", requestID, err)
		}
	}
	_, _ = fmt.Fprintln(app.Out, table.RenderSingleMap(tasks, "TASK", "STATUS"))
	return nil
}
