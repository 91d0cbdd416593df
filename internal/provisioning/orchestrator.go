package provisioning

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/blueprintctl/internal/ui/table"
)

// Orchestrator stages host assignments for one session and drives cluster
// creation and deletion. Operations are serialized.
type Orchestrator struct {
	mu       sync.Mutex
	api      ClusterAPI
	hosts    HostSource
	session  Session
	store    *Store
	observer Observer
	metrics  *Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObserver sets the event observer.
func WithObserver(o Observer) Option {
	return func(orch *Orchestrator) {
		orch.observer = o
	}
}

// WithMetrics sets the prometheus collectors.
func WithMetrics(m *Metrics) Option {
	return func(orch *Orchestrator) {
		orch.metrics = m
	}
}

// WithHostSource sets where the host pool is loaded from on selection.
// Defaults to api when it implements HostSource.
func WithHostSource(hs HostSource) Option {
	return func(orch *Orchestrator) {
		orch.hosts = hs
	}
}

// WithStore sets the assignment store, mainly for tests.
func WithStore(s *Store) Option {
	return func(orch *Orchestrator) {
		orch.store = s
	}
}

// New creates an orchestrator for one session.
func New(api ClusterAPI, sess Session, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		api:      api,
		session:  sess,
		store:    NewStore(),
		observer: NewLogObserver(logr.Discard()),
	}
	if hs, ok := api.(HostSource); ok {
		o.hosts = hs
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SelectBlueprint stages a blueprint: it checks that it exists, seeds the
// store from its host group template and puts it in focus. The success
// message is the host group -> components table. Nothing changes unless
// every remote call succeeds.
func (o *Orchestrator) SelectBlueprint(ctx context.Context, id string) Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()

	start := time.Now()
	logOperationStart(o.observer, opSelect, id)

	exists, err := o.api.BlueprintExists(ctx, id)
	if err != nil {
		return o.fail(opSelect, id, start, err, fmt.Sprintf("Could not check blueprint %s: %v", id, err))
	}
	if !exists {
		o.observer.Event(Event{Type: EventBlueprintNotFound, Operation: opSelect, Resource: id, Message: "blueprint does not exist"})
		o.metrics.observe(opSelect, resultNotFound, time.Since(start))
		return failed("Not a valid blueprint id")
	}

	topology, err := o.api.BlueprintTopology(ctx, id)
	if err != nil {
		return o.fail(opSelect, id, start, err, fmt.Sprintf("Could not fetch blueprint %s: %v", id, err))
	}
	template, err := o.api.HostGroupTemplate(ctx, id)
	if err != nil {
		return o.fail(opSelect, id, start, err, fmt.Sprintf("Could not fetch host groups of %s: %v", id, err))
	}

	var hostNames []string
	if o.hosts != nil {
		hostNames, err = o.hosts.HostNames(ctx)
		if err != nil {
			return o.fail(opSelect, id, start, err, fmt.Sprintf("Could not list hosts: %v", err))
		}
	}

	o.store.Seed(template)
	o.store.SetHostNames(hostNames)
	o.session.SetBlueprintFocus(id)
	o.metrics.staged(o.stagedCount())

	logOperationComplete(o.observer, opSelect, id, time.Since(start))
	o.metrics.observe(opSelect, resultSuccess, time.Since(start))
	return succeeded(table.RenderMultiValueMap(topology, "HOSTGROUP", "COMPONENT"))
}

// Assign adds host to group in the staged assignment. No remote call is
// made and a rejected assignment leaves the store unchanged.
func (o *Orchestrator) Assign(host, group string) Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()

	start := time.Now()
	if err := o.store.Assign(host, group); err != nil {
		var msg string
		switch {
		case errors.Is(err, ErrInvalidHostGroup):
			msg = fmt.Sprintf("%s is not a valid host group", group)
		case errors.Is(err, ErrUnknownHost):
			msg = fmt.Sprintf("%s is not a known host", host)
		default:
			msg = err.Error()
		}
		o.observer.Event(Event{
			Type:      EventAssignmentRejected,
			Operation: opAssign,
			Resource:  host,
			Message:   msg,
			Fields:    map[string]string{"group": group},
		})
		o.metrics.observe(opAssign, resultRejected, time.Since(start))
		return failed(msg)
	}

	o.metrics.staged(o.stagedCount())
	o.metrics.observe(opAssign, resultSuccess, time.Since(start))
	return succeeded(fmt.Sprintf("%s has been added to %s", host, group))
}

// Reset drops the staged blueprint and its assignment.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.session.ResetFocus()
	o.store.Reset()
	o.metrics.staged(0)
}

// HostGroups returns a copy of the staged assignment.
func (o *Orchestrator) HostGroups() map[string][]string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.store.HostGroups()
}

// Groups returns the sorted host group names of the staged blueprint.
func (o *Orchestrator) Groups() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.store.Groups()
}

// HostNames returns the sorted pool of assignable hosts.
func (o *Orchestrator) HostNames() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.store.HostNames()
}

func (o *Orchestrator) fail(op, resource string, start time.Time, err error, msg string) Outcome {
	logOperationFailed(o.observer, op, resource, err)
	o.metrics.observe(op, resultFailure, time.Since(start))
	return failed(msg)
}

// stagedCount must be called with the lock held.
func (o *Orchestrator) stagedCount() int {
	n := 0
	for _, hosts := range o.store.hostGroups {
		n += len(hosts)
	}
	return n
}
