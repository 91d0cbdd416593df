// Package tui renders the progress of "services start" and "services stop"
// with Bubble Tea, and a plain line-based fallback for non-terminals.
package tui

// ServicesMsg carries the latest service -> state snapshot.
type ServicesMsg struct {
	States map[string]string
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that every service reached the target state.
type DoneMsg struct{}
