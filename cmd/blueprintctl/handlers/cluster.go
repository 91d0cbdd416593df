package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/imamik/blueprintctl/internal/shell"
	"github.com/imamik/blueprintctl/internal/ui/prompt"
	"github.com/imamik/blueprintctl/internal/ui/table"
)

var askAssignment = prompt.AskAssignment

// ClusterBuild stages a blueprint for host assignment.
func ClusterBuild(ctx context.Context, blueprint string) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}
	return app.report(app.Orchestrator.SelectBlueprint(ctx, blueprint))
}

// ClusterAssign adds a host to a host group of the staged blueprint. Missing
// arguments are asked for interactively on a terminal.
func ClusterAssign(ctx context.Context, host, group string) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}

	if host == "" || group == "" {
		if !isInteractiveTTY() {
			return fmt.Errorf("both --host and --hostGroup are required")
		}
		a := prompt.Assignment{Host: host, Group: group}
		if err := askAssignment(ctx, &a, app.Orchestrator.HostNames(), app.Orchestrator.Groups()); err != nil {
			return err
		}
		host, group = a.Host, a.Group
	}

	return app.report(app.Orchestrator.Assign(host, group))
}

// ClusterPreview prints the staged assignment.
func ClusterPreview(ctx context.Context) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(app.Out, table.RenderMultiValueMap(app.Orchestrator.HostGroups(), "HOSTGROUP", "HOST"))
	return nil
}

// ClusterReset drops the staged blueprint and assignment.
func ClusterReset(ctx context.Context) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}
	app.Orchestrator.Reset()
	_, _ = fmt.Fprintln(app.Out, "Cluster build has been reset")
	return nil
}

// ClusterCreate creates the cluster from the staged blueprint.
func ClusterCreate(ctx context.Context) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}
	return app.report(app.Orchestrator.CreateCluster(ctx))
}

// ClusterDelete deletes the connected cluster. With archive set, the
// cluster's blueprint is exported and uploaded first; a failed upload
// leaves the cluster untouched.
func ClusterDelete(ctx context.Context, archive bool) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}

	if archive {
		if err := app.archiveBlueprint(ctx); err != nil {
			_, _ = fmt.Fprintf(app.Out, "Could not delete the cluster: %v\n", err)
			return shell.ErrReported
		}
	}
	return app.report(app.Orchestrator.DeleteCluster(ctx))
}

func (a *App) archiveBlueprint(ctx context.Context) error {
	if !a.Config.Archive.Configured() {
		return fmt.Errorf("archive is not configured (set archive.endpoint, archive.bucket and credentials)")
	}
	archiver, err := newArchiver(a.Config.Archive)
	if err != nil {
		return fmt.Errorf("failed to create archiver: %w", err)
	}

	cluster := a.Session.Cluster()
	data, err := a.Client.ExportBlueprint(ctx, cluster)
	if err != nil {
		return fmt.Errorf("failed to export blueprint of %s: %w", cluster, err)
	}
	key, err := archiver.Archive(ctx, cluster, data)
	if err != nil {
		return fmt.Errorf("failed to archive blueprint: %w", err)
	}
	_, _ = fmt.Fprintf(a.Out, "Blueprint of %s archived to %s/%s\n", cluster, a.Config.Archive.Bucket, key)
	return nil
}

// ClusterProvision selects a blueprint, applies every host=group
// assignment and creates the cluster, stopping at the first failure.
func ClusterProvision(ctx context.Context, blueprint string, assignments []string) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}

	pairs := make([][2]string, 0, len(assignments))
	for _, a := range assignments {
		host, group, ok := strings.Cut(a, "=")
		if !ok || host == "" || group == "" {
			return fmt.Errorf("invalid assignment %q, expected host=group", a)
		}
		pairs = append(pairs, [2]string{host, group})
	}

	if err := app.report(app.Orchestrator.SelectBlueprint(ctx, blueprint)); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := app.report(app.Orchestrator.Assign(p[0], p[1])); err != nil {
			app.Orchestrator.Reset()
			return err
		}
	}
	return app.report(app.Orchestrator.CreateCluster(ctx))
}

// HostCompletions returns the host pool for shell completion of --host.
// Outside a session the Ambari server (or hcloud) is queried directly.
func HostCompletions(ctx context.Context, opts Options) []string {
	if app, err := appFrom(ctx); err == nil {
		if names := app.Orchestrator.HostNames(); len(names) > 0 {
			return names
		}
		names, _ := app.Inventory.HostNames(ctx)
		return names
	}

	ctx, release := NewRuntime(ctx)
	defer release()
	opts.Command = ""
	if _, err := Bootstrap(ctx, opts); err != nil {
		return nil
	}
	app, err := appFrom(ctx)
	if err != nil {
		return nil
	}
	names, _ := app.Inventory.HostNames(ctx)
	return names
}
