package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Action is the bulk service transition being watched.
type Action string

// Supported actions and the Ambari state each one waits for.
const (
	ActionStart Action = "start"
	ActionStop  Action = "stop"
)

// TargetState returns the Ambari state every service ends up in.
func (a Action) TargetState() string {
	if a == ActionStop {
		return "INSTALLED"
	}
	return "STARTED"
}

// progressing returns STARTING / STOPPING.
func (a Action) progressing() string {
	if a == ActionStop {
		return "STOPPING"
	}
	return "STARTING"
}

// finished returns STARTED / STOPPED.
func (a Action) finished() string {
	if a == ActionStop {
		return "STOPPED"
	}
	return "STARTED"
}

// Model is the Bubble Tea model of the services progress view.
type Model struct {
	Cluster string
	Action  Action
	States  map[string]string

	StartTime    time.Time
	SpinnerFrame int

	Width int
	Err   error
	Done  bool
}

// NewServicesModel creates a model watching action on cluster.
func NewServicesModel(cluster string, action Action) Model {
	return Model{
		Cluster:   cluster,
		Action:    action,
		States:    map[string]string{},
		StartTime: time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case ServicesMsg:
		m.States = msg.States

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// settled returns how many services are in the target state.
func (m Model) settled() int {
	n := 0
	target := m.Action.TargetState()
	for _, state := range m.States {
		if state == target {
			n++
		}
	}
	return n
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
