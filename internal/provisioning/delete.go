package provisioning

import (
	"context"
	"errors"
	"time"
)

var errNotConnected = errors.New("not connected to a cluster")

// DeleteCluster deletes the connected cluster. On failure the session stays
// connected; the operator may retry.
func (o *Orchestrator) DeleteCluster(ctx context.Context) Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()

	start := time.Now()
	name := o.session.Cluster()
	if name == "" {
		return o.fail(opDelete, "", start, errNotConnected, "Could not delete the cluster: "+errNotConnected.Error())
	}

	logOperationStart(o.observer, opDelete, name)
	if err := o.api.DeleteCluster(ctx, name); err != nil {
		return o.fail(opDelete, name, start, err, "Could not delete the cluster: "+err.Error())
	}

	o.session.DisconnectCluster()

	logOperationComplete(o.observer, opDelete, name, time.Since(start))
	o.metrics.observe(opDelete, resultSuccess, time.Since(start))
	return succeeded("Successfully deleted the cluster")
}
