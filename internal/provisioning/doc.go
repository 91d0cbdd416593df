// Package provisioning stages host assignments for a blueprint and drives
// cluster creation and deletion against the remote cluster API.
//
// # Core Types
//
// Store holds the host group -> hosts assignment of one session and the
// pool of hosts that may be assigned.
// Orchestrator exposes the four console operations (select blueprint,
// assign host, create cluster, delete cluster) and turns every remote
// failure into an Outcome. A failed create triggers one compensating
// delete of the same cluster name before the failure is reported.
// Observer receives structured events; LogObserver writes them to a logr.Logger.
package provisioning
