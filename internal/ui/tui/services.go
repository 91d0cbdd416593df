package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/blueprintctl/internal/util/retry"
)

// StatesFunc fetches the current service -> state map.
type StatesFunc func(ctx context.Context) (map[string]string, error)

// allIn reports whether every service is in state. An empty map is not
// considered settled.
func allIn(states map[string]string, state string) bool {
	if len(states) == 0 {
		return false
	}
	for _, s := range states {
		if s != state {
			return false
		}
	}
	return true
}

// RunServicesTUI polls fetch until every service reached the action's target
// state and renders the progress full screen.
func RunServicesTUI(ctx context.Context, fetch StatesFunc, cluster string, action Action, opts ...retry.Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewServicesModel(cluster, action)
	p := tea.NewProgram(m, tea.WithContext(ctx))

	go func() {
		err := retry.Poll(ctx, func(ctx context.Context) (bool, error) {
			states, err := fetch(ctx)
			if err != nil {
				return false, err
			}
			p.Send(ServicesMsg{States: states})
			return allIn(states, action.TargetState()), nil
		}, opts...)
		if err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		p.Send(DoneMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.Err
	}
	return nil
}

// WaitPlain polls like RunServicesTUI but writes one progress line per
// attempt, for output that is not a terminal.
func WaitPlain(ctx context.Context, w io.Writer, fetch StatesFunc, action Action, opts ...retry.Option) error {
	frame := 0
	check := func(ctx context.Context) (bool, error) {
		states, err := fetch(ctx)
		if err != nil {
			return false, err
		}
		if allIn(states, action.TargetState()) {
			return true, nil
		}
		_, _ = fmt.Fprintln(w, ProgressLabel(action, frame))
		frame++
		return false, nil
	}

	if err := retry.Poll(ctx, check, opts...); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, action.finished())
	return nil
}
