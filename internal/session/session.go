// Package session holds the per-operator console state: which blueprint is
// staged ("focus") and which cluster the console is connected to.
package session

import (
	"fmt"
	"sync"
)

// FocusType says what the console is currently working on.
type FocusType string

const (
	// FocusRoot is the default focus: nothing staged.
	FocusRoot FocusType = "root"
	// FocusBlueprint means a blueprint is staged for host assignment.
	FocusBlueprint FocusType = "blueprint"
)

// Context is the session state of one operator. The zero value is ready to
// use and starts at root focus, disconnected.
type Context struct {
	mu         sync.RWMutex
	focusType  FocusType
	focusValue string
	cluster    string
	connected  bool
}

// New returns a session at root focus.
func New() *Context {
	return &Context{focusType: FocusRoot}
}

// SetBlueprintFocus stages a blueprint id.
func (c *Context) SetBlueprintFocus(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focusType = FocusBlueprint
	c.focusValue = id
}

// ResetFocus drops back to root focus.
func (c *Context) ResetFocus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focusType = FocusRoot
	c.focusValue = ""
}

// FocusType returns the current focus type.
func (c *Context) FocusType() FocusType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.focusType == "" {
		return FocusRoot
	}
	return c.focusType
}

// FocusValue returns the staged blueprint id, or "" at root focus.
func (c *Context) FocusValue() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.focusValue
}

// IsFocusOnBlueprint reports whether a blueprint is staged.
func (c *Context) IsFocusOnBlueprint() bool {
	return c.FocusType() == FocusBlueprint
}

// ConnectCluster marks the session as connected to the named cluster.
func (c *Context) ConnectCluster(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cluster = name
	c.connected = true
}

// DisconnectCluster forgets the connected cluster.
func (c *Context) DisconnectCluster() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cluster = ""
	c.connected = false
}

// IsConnectedToCluster reports whether a cluster is connected.
func (c *Context) IsConnectedToCluster() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Cluster returns the connected cluster name ("" when disconnected).
func (c *Context) Cluster() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cluster
}

// Prompt returns the shell prompt for the current state.
func (c *Context) Prompt() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch {
	case c.focusType == FocusBlueprint:
		return fmt.Sprintf("blueprint:%s>", c.focusValue)
	case c.connected:
		return fmt.Sprintf("cluster:%s>", c.cluster)
	default:
		return "ambari-shell>"
	}
}

// Hint suggests the next step for the current state.
func (c *Context) Hint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch {
	case c.focusType == FocusBlueprint:
		return "Assign hosts to host groups with 'cluster assign', check them with 'cluster preview', then run 'cluster create'"
	case c.connected:
		return "Explore the cluster with 'services list', 'services components' or 'tasks'; tear it down with 'cluster delete'"
	default:
		return "Choose a blueprint with 'blueprint list', then stage it with 'cluster build --blueprint <id>'"
	}
}
