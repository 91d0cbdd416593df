package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/blueprintctl/internal/ui/table"
)

// HostsList prints the assignable hosts with their status.
func HostsList(ctx context.Context) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}
	hosts, err := app.Inventory.Hosts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list hosts: %w", err)
	}
	_, _ = fmt.Fprintln(app.Out, table.RenderSingleMap(hosts, "HOSTNAME", "STATUS"))
	return nil
}
