package shell

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Predicate reports whether a command may run in the current context.
type Predicate func() bool

// UnavailableError is returned for a command whose predicate is false.
type UnavailableError struct {
	Path string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("Command '%s' is not available in the current context", e.Path)
}

// Registry maps command paths to availability predicates.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Predicate
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: map[string]Predicate{}}
}

// Register sets the predicate of path, replacing any previous one.
func (r *Registry) Register(path string, p Predicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[path] = p
}

// Available reports whether path may run. Unregistered paths are available.
func (r *Registry) Available(path string) bool {
	r.mu.RLock()
	p, ok := r.rules[path]
	r.mu.RUnlock()
	return !ok || p == nil || p()
}

// Check returns an *UnavailableError when path may not run.
func (r *Registry) Check(path string) error {
	if r.Available(path) {
		return nil
	}
	return &UnavailableError{Path: path}
}

// Commands returns the registered paths that are currently available, sorted.
func (r *Registry) Commands() []string {
	r.mu.RLock()
	paths := slices.Sorted(maps.Keys(r.rules))
	r.mu.RUnlock()

	return slices.DeleteFunc(paths, func(p string) bool {
		return !r.Available(p)
	})
}

// Not negates a predicate.
func Not(p Predicate) Predicate {
	return func() bool { return !p() }
}

// All is true when every predicate is.
func All(ps ...Predicate) Predicate {
	return func() bool {
		for _, p := range ps {
			if !p() {
				return false
			}
		}
		return true
	}
}
