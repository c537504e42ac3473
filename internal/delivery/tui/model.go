// Package tui renders the roster dashboard as a Bubble Tea program.
package tui

import (
	"context"

	"basecamp/internal/delivery/view"
	"basecamp/internal/usecase"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewState represents the current screen of the dashboard program.
type ViewState int

const (
	ViewStateLoading ViewState = iota
	ViewStateError
	ViewStateReady
	ViewStateQuitting
)

const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
)

// RosterSettledMsg carries the snapshot of a mount once its fetch settles.
type RosterSettledMsg struct {
	Snapshot usecase.RosterSnapshot
}

// Model is the Bubble Tea model for the roster dashboard.
//
// Bubble Tea requires value receivers for Init/Update/View.
type Model struct {
	ctx       context.Context
	mount     usecase.RosterMount
	state     ViewState
	dashboard view.Dashboard
	spinner   spinner.Model
	width     int
}

// NewModel mounts a roster and returns the model with its start command.
func NewModel(ctx context.Context, roster usecase.RosterUsecase) (Model, tea.Cmd) {
	mount := roster.Mount(ctx)

	m := Model{
		ctx:   ctx,
		mount: mount,
		state: ViewStateLoading,
		dashboard: view.Build(usecase.RosterSnapshot{
			MountID: mount.ID(),
			Status:  usecase.StatusLoading,
		}),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(SpinnerStyle),
		),
	}

	return m, m.Init()
}

// Init starts the spinner and waits for the mount (Bubble Tea interface).
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForRoster(m.ctx, m.mount))
}

func waitForRoster(ctx context.Context, mount usecase.RosterMount) tea.Cmd {
	return func() tea.Msg {
		return RosterSettledMsg{Snapshot: usecase.AwaitRoster(ctx, mount)}
	}
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case keyQuit, keyCtrlC:
			m.mount.Unmount()
			m.state = ViewStateQuitting

			return m, tea.Quit
		}

		return m, nil

	case RosterSettledMsg:
		return m.handleSettled(msg)

	case spinner.TickMsg:
		if m.state != ViewStateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m Model) handleSettled(msg RosterSettledMsg) (tea.Model, tea.Cmd) {
	if m.state != ViewStateLoading {
		return m, nil
	}

	m.dashboard = view.Build(msg.Snapshot)
	switch msg.Snapshot.Status {
	case usecase.StatusReady:
		m.state = ViewStateReady
	case usecase.StatusError:
		m.state = ViewStateError
	}

	return m, nil
}

// View renders the current state (Bubble Tea interface).
func (m Model) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return m.spinner.View() + " " + Render(m.dashboard, m.width) + "\n"
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			Render(m.dashboard, m.width),
			SubtleStyle.Render("Press 'q' to quit"),
		) + "\n"
	}
}

// State reports the current screen.
func (m Model) State() ViewState {
	return m.state
}
