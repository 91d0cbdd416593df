package provisioning

import "context"

// ClusterAPI is the subset of the remote cluster-management API the
// orchestrator drives. Implemented by internal/platform/ambari.Client.
type ClusterAPI interface {
	// BlueprintExists reports whether the blueprint is registered.
	BlueprintExists(ctx context.Context, id string) (bool, error)

	// BlueprintTopology returns host group -> component names.
	BlueprintTopology(ctx context.Context, id string) (map[string][]string, error)

	// HostGroupTemplate returns host group -> hosts, the starting point for assignments.
	HostGroupTemplate(ctx context.Context, id string) (map[string][]string, error)

	// CreateCluster requests a cluster built from a blueprint and an assignment.
	CreateCluster(ctx context.Context, blueprintID, clusterName string, hostGroups map[string][]string) error

	// DeleteCluster deletes a cluster by name.
	DeleteCluster(ctx context.Context, clusterName string) error

	// ActiveClusterName returns the cluster currently managed by the server.
	ActiveClusterName(ctx context.Context) (string, error)
}

// HostSource lists the hosts that may be assigned in a session.
type HostSource interface {
	HostNames(ctx context.Context) ([]string, error)
}

// Session is the console state the orchestrator reads and advances.
// Implemented by internal/session.Context.
type Session interface {
	FocusValue() string
	SetBlueprintFocus(id string)
	ResetFocus()
	ConnectCluster(name string)
	DisconnectCluster()
	Cluster() string
}
