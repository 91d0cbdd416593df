package provisioning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imamik/blueprintctl/internal/ui/table"
)

var errNoFocus = errors.New("no blueprint in focus")

// CreateCluster creates a cluster from the blueprint in focus and the staged
// assignment. The blueprint id doubles as the cluster name.
//
// When the create call fails a single compensating delete of the same name
// is issued, the assignment is re-seeded from the template and the outcome
// message contains "Failed". The delete's own failure is only logged. The
// session is advanced to connected only after a successful create.
func (o *Orchestrator) CreateCluster(ctx context.Context) Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()

	start := time.Now()
	blueprint := o.session.FocusValue()
	if blueprint == "" {
		o.metrics.observe(opCreate, resultRejected, time.Since(start))
		logOperationFailed(o.observer, opCreate, "", errNoFocus)
		return failed("Failed to create the cluster: no blueprint in focus, select one with 'cluster build'")
	}

	logOperationStart(o.observer, opCreate, blueprint)

	if err := o.api.CreateCluster(ctx, blueprint, blueprint, o.store.HostGroups()); err != nil {
		logOperationFailed(o.observer, opCreate, blueprint, err)
		o.rollback(ctx, blueprint)
		o.metrics.observe(opCreate, resultFailure, time.Since(start))

		status := table.RenderMultiValueMap(o.store.HostGroups(), "HOSTGROUP", "HOST")
		return failed(fmt.Sprintf("Failed to create the cluster: %v\n\n%s", err, status))
	}

	name, err := o.api.ActiveClusterName(ctx)
	if err != nil || name == "" {
		o.observer.Printf("could not resolve the active cluster name, using %s", blueprint)
		name = blueprint
	}

	o.session.ConnectCluster(name)
	o.session.ResetFocus()
	o.store.Reset()
	o.metrics.staged(0)

	logOperationComplete(o.observer, opCreate, name, time.Since(start))
	o.metrics.observe(opCreate, resultSuccess, time.Since(start))
	return succeeded("Successfully created the cluster")
}

// rollback deletes whatever a failed create may have left behind and
// re-seeds the assignment. Runs even if ctx is already cancelled.
func (o *Orchestrator) rollback(ctx context.Context, blueprint string) {
	ctx = context.WithoutCancel(ctx)

	o.observer.Event(Event{Type: EventRollbackStarted, Operation: opCreate, Resource: blueprint, Message: "deleting partially created cluster"})
	if err := o.api.DeleteCluster(ctx, blueprint); err != nil {
		o.observer.Event(Event{Type: EventRollbackFailed, Operation: opCreate, Resource: blueprint, Message: fmt.Sprintf("compensating delete failed: %v", err)})
		o.metrics.rollback(resultFailure)
	} else {
		o.observer.Event(Event{Type: EventRollbackCompleted, Operation: opCreate, Resource: blueprint, Message: "compensating delete succeeded"})
		o.metrics.rollback(resultSuccess)
	}

	template, err := o.api.HostGroupTemplate(ctx, blueprint)
	if err != nil {
		o.observer.Printf("could not re-fetch host groups of %s: %v", blueprint, err)
		template = make(map[string][]string, len(o.store.hostGroups))
		for _, g := range o.store.Groups() {
			template[g] = []string{}
		}
	}
	o.store.Seed(template)
	o.metrics.staged(o.stagedCount())
}
