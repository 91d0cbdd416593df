package provisioning

import (
	"errors"
	"maps"
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"
)

var (
	// ErrInvalidHostGroup is returned when assigning to a group the staged
	// blueprint does not define.
	ErrInvalidHostGroup = errors.New("invalid host group")

	// ErrUnknownHost is returned when assigning a host outside the pool.
	ErrUnknownHost = errors.New("unknown host")
)

// Store is the assignment state of one session. Group keys are fixed by
// Seed; Assign only appends to existing groups.
type Store struct {
	hostGroups map[string][]string
	hostNames  sets.Set[string]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		hostGroups: map[string][]string{},
		hostNames:  sets.New[string](),
	}
}

// Seed replaces the host groups with a copy of template.
func (s *Store) Seed(template map[string][]string) {
	groups := make(map[string][]string, len(template))
	for name, hosts := range template {
		groups[name] = append([]string{}, hosts...)
	}
	s.hostGroups = groups
}

// SetHostNames replaces the pool of assignable hosts.
func (s *Store) SetHostNames(names []string) {
	s.hostNames = sets.New(names...)
}

// Assign appends host to group. The store is unchanged on error.
// Repeated assignments of the same host are kept as they are.
func (s *Store) Assign(host, group string) error {
	hosts, ok := s.hostGroups[group]
	if !ok {
		return ErrInvalidHostGroup
	}
	if !s.hostNames.Has(host) {
		return ErrUnknownHost
	}
	s.hostGroups[group] = append(hosts, host)
	return nil
}

// HasGroup reports whether group is a key of the staged assignment.
func (s *Store) HasGroup(group string) bool {
	_, ok := s.hostGroups[group]
	return ok
}

// HostGroups returns a deep copy of the assignment.
func (s *Store) HostGroups() map[string][]string {
	out := make(map[string][]string, len(s.hostGroups))
	for name, hosts := range s.hostGroups {
		out[name] = slices.Clone(hosts)
		if out[name] == nil {
			out[name] = []string{}
		}
	}
	return out
}

// Groups returns the sorted group names.
func (s *Store) Groups() []string {
	return slices.Sorted(maps.Keys(s.hostGroups))
}

// HostNames returns the sorted host pool.
func (s *Store) HostNames() []string {
	return sets.List(s.hostNames)
}

// Reset empties groups and pool.
func (s *Store) Reset() {
	s.hostGroups = map[string][]string{}
	s.hostNames = sets.New[string]()
}
