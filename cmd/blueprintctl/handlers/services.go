package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/imamik/blueprintctl/internal/platform/ambari"
	"github.com/imamik/blueprintctl/internal/ui/table"
	"github.com/imamik/blueprintctl/internal/ui/tui"
	"github.com/imamik/blueprintctl/internal/util/retry"
)

// Factory function variables for service progress - can be replaced in tests.
var (
	runServicesTUI = tui.RunServicesTUI
	waitPlain      = tui.WaitPlain
)

// ServicesList prints service -> state of the connected cluster.
func ServicesList(ctx context.Context) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}
	out, err := app.servicesTable(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(app.Out, out)
	return nil
}

// ServicesComponents prints service -> component -> state.
func ServicesComponents(ctx context.Context) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}
	comps, err := app.Client.ServiceComponents(ctx, app.Session.Cluster())
	if err != nil {
		return fmt.Errorf("failed to list service components: %w", err)
	}
	_, _ = fmt.Fprintln(app.Out, table.RenderMapValueMap(comps, "SERVICE", "COMPONENT", "STATE"))
	return nil
}

// ServicesStart starts every installed service and follows the progress.
func ServicesStart(ctx context.Context) error {
	return servicesTransition(ctx, tui.ActionStart)
}

// ServicesStop stops every started service and follows the progress.
func ServicesStop(ctx context.Context) error {
	return servicesTransition(ctx, tui.ActionStop)
}

func servicesTransition(ctx context.Context, action tui.Action) error {
	app, err := appFrom(ctx)
	if err != nil {
		return err
	}
	cluster := app.Session.Cluster()

	request := app.Client.StartAllServices
	verb, noun := "Starting", "start"
	if action == tui.ActionStop {
		request = app.Client.StopAllServices
		verb, noun = "Stopping", "stop"
	}

	message := verb + " all services.."
	if err := request(ctx, cluster); err != nil {
		app.Log.V(1).Info("service request failed", "action", noun, "error", err.Error())
		message = "Cannot " + noun + " services"
	} else if err := app.followServices(ctx, cluster, action); err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			app.Log.Info("services did not settle in time, check 'tasks' for details", "cluster", cluster)
		} else {
			app.Log.Info("stopped following service progress", "error", err.Error())
		}
	}

	services, err := app.servicesTable(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(app.Out, "%s\n\n%s\n", message, services)
	return nil
}

func (a *App) followServices(ctx context.Context, cluster string, action tui.Action) error {
	t := timeouts(a.Config)
	opts := []retry.Option{
		retry.WithInterval(t.ServicePoll),
		retry.WithMaxAttempts(t.PollMaxAttempts),
		retry.WithTimeout(t.ServiceWait),
		retry.WithOnAttempt(func(attempt int, err error) {
			if err != nil {
				a.Log.V(1).Info("service state poll failed", "attempt", attempt, "error", err.Error())
			}
		}),
	}
	fetch := func(ctx context.Context) (map[string]string, error) {
		states, err := a.Client.Services(ctx, cluster)
		if ambari.IsNotFound(err) {
			// The cluster is gone, polling cannot succeed.
			return nil, retry.Fatal(err)
		}
		return states, err
	}

	if isInteractiveTTY() {
		return runServicesTUI(ctx, fetch, cluster, action, opts...)
	}
	return waitPlain(ctx, a.Out, fetch, action, opts...)
}

func (a *App) servicesTable(ctx context.Context) (string, error) {
	services, err := a.Client.Services(ctx, a.Session.Cluster())
	if err != nil {
		return "", fmt.Errorf("failed to list services: %w", err)
	}
	return table.RenderSingleMap(services, "SERVICE", "STATE"), nil
}
