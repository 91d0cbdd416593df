package handlers

import (
	"context"
	"fmt"

	"sigs.k8s.io/yaml"

	"github.com/imamik/blueprintctl/internal/platform/ambari"
	"github.com/imamik/blueprintctl/internal/shell"
	"github.com/imamik/blueprintctl/internal/ui/table"
)

// Output formats of "blueprint show".
const (
	OutputTable = "table"
	OutputYAML  = "yaml"
)

// BlueprintList prints the registered blueprints with their stack.
func BlueprintList(ctx context.Context) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}

	blueprints, err := app.Client.Blueprints(ctx)
	if err != nil {
		return fmt.Errorf("failed to list blueprints: %w", err)
	}

	rows := make(map[string]string, len(blueprints))
	for _, bp := range blueprints {
		rows[bp.Name] = bp.Stack()
	}
	_, _ = fmt.Fprintln(app.Out, table.RenderSingleMap(rows, "BLUEPRINT", "STACK"))
	return nil
}

// BlueprintShow prints the host groups of a blueprint as a table or YAML.
func BlueprintShow(ctx context.Context, id, output string) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}

	bp, err := app.Client.Blueprint(ctx, id)
	if err != nil {
		if ambari.IsNotFound(err) {
			_, _ = fmt.Fprintln(app.Out, "Not a valid blueprint id")
			return shell.ErrReported
		}
		return fmt.Errorf("failed to fetch blueprint %s: %w", id, err)
	}

	switch output {
	case "", OutputTable:
		groups := make(map[string][]string, len(bp.HostGroups))
		for _, hg := range bp.HostGroups {
			groups[hg.Name] = hg.Components
		}
		_, _ = fmt.Fprintln(app.Out, table.RenderMultiValueMap(groups, "HOSTGROUP", "COMPONENT"))
	case OutputYAML:
		data, err := yaml.Marshal(bp)
		if err != nil {
			return fmt.Errorf("failed to render blueprint: %w", err)
		}
		_, _ = app.Out.Write(data)
	default:
		return fmt.Errorf("unsupported output format %q (use %s or %s)", output, OutputTable, OutputYAML)
	}
	return nil
}
