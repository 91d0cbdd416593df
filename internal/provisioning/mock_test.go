package provisioning

import (
	"context"
	"sync"
)

// mockClusterAPI is a func-field mock of ClusterAPI that records calls.
type mockClusterAPI struct {
	BlueprintExistsFunc   func(ctx context.Context, id string) (bool, error)
	BlueprintTopologyFunc func(ctx context.Context, id string) (map[string][]string, error)
	HostGroupTemplateFunc func(ctx context.Context, id string) (map[string][]string, error)
	CreateClusterFunc     func(ctx context.Context, blueprintID, clusterName string, hostGroups map[string][]string) error
	DeleteClusterFunc     func(ctx context.Context, clusterName string) error
	ActiveClusterNameFunc func(ctx context.Context) (string, error)

	mu    sync.Mutex
	calls []string
	// createArgs holds the arguments of the last CreateCluster call.
	createArgs struct {
		blueprintID, clusterName string
		hostGroups               map[string][]string
	}
	deleted []string
}

var _ ClusterAPI = (*mockClusterAPI)(nil)

func (m *mockClusterAPI) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockClusterAPI) count(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *mockClusterAPI) BlueprintExists(ctx context.Context, id string) (bool, error) {
	m.record("BlueprintExists")
	if m.BlueprintExistsFunc != nil {
		return m.BlueprintExistsFunc(ctx, id)
	}
	return true, nil
}

func (m *mockClusterAPI) BlueprintTopology(ctx context.Context, id string) (map[string][]string, error) {
	m.record("BlueprintTopology")
	if m.BlueprintTopologyFunc != nil {
		return m.BlueprintTopologyFunc(ctx, id)
	}
	return map[string][]string{}, nil
}

func (m *mockClusterAPI) HostGroupTemplate(ctx context.Context, id string) (map[string][]string, error) {
	m.record("HostGroupTemplate")
	if m.HostGroupTemplateFunc != nil {
		return m.HostGroupTemplateFunc(ctx, id)
	}
	return map[string][]string{}, nil
}

func (m *mockClusterAPI) CreateCluster(ctx context.Context, blueprintID, clusterName string, hostGroups map[string][]string) error {
	m.record("CreateCluster")
	m.mu.Lock()
	m.createArgs.blueprintID = blueprintID
	m.createArgs.clusterName = clusterName
	m.createArgs.hostGroups = hostGroups
	m.mu.Unlock()
	if m.CreateClusterFunc != nil {
		return m.CreateClusterFunc(ctx, blueprintID, clusterName, hostGroups)
	}
	return nil
}

func (m *mockClusterAPI) DeleteCluster(ctx context.Context, clusterName string) error {
	m.record("DeleteCluster")
	m.mu.Lock()
	m.deleted = append(m.deleted, clusterName)
	m.mu.Unlock()
	if m.DeleteClusterFunc != nil {
		return m.DeleteClusterFunc(ctx, clusterName)
	}
	return nil
}

func (m *mockClusterAPI) ActiveClusterName(ctx context.Context) (string, error) {
	m.record("ActiveClusterName")
	if m.ActiveClusterNameFunc != nil {
		return m.ActiveClusterNameFunc(ctx)
	}
	return "", nil
}

// staticHosts is a HostSource returning a fixed pool.
type staticHosts struct {
	names []string
	err   error
}

func (s staticHosts) HostNames(_ context.Context) ([]string, error) {
	return s.names, s.err
}

// mockSession records the order of state transitions.
type mockSession struct {
	focus   string
	cluster string
	calls   []string
}

var _ Session = (*mockSession)(nil)

func (s *mockSession) FocusValue() string { return s.focus }

func (s *mockSession) SetBlueprintFocus(id string) {
	s.calls = append(s.calls, "SetBlueprintFocus")
	s.focus = id
}

func (s *mockSession) ResetFocus() {
	s.calls = append(s.calls, "ResetFocus")
	s.focus = ""
}

func (s *mockSession) ConnectCluster(name string) {
	s.calls = append(s.calls, "ConnectCluster")
	s.cluster = name
}

func (s *mockSession) DisconnectCluster() {
	s.calls = append(s.calls, "DisconnectCluster")
	s.cluster = ""
}

func (s *mockSession) Cluster() string { return s.cluster }

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []Event
	lines  []string
}

func (r *recordingObserver) Printf(format string, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, format)
}

func (r *recordingObserver) Event(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) WithFields(_ map[string]string) Observer { return r }

func (r *recordingObserver) has(t EventType) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.Type == t {
			return true
		}
	}
	return false
}
