package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"basecamp/internal/delivery/view"
	"basecamp/internal/domain/entity"
	"basecamp/internal/usecase"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMount is a mount whose state the test controls.
type stubMount struct {
	snapshot  usecase.RosterSnapshot
	done      chan struct{}
	unmounted bool
}

func newStubMount() *stubMount {
	return &stubMount{
		snapshot: usecase.RosterSnapshot{MountID: "mount-1", Status: usecase.StatusLoading},
		done:     make(chan struct{}),
	}
}

func (s *stubMount) ID() string                       { return s.snapshot.MountID }
func (s *stubMount) Snapshot() usecase.RosterSnapshot { return s.snapshot }
func (s *stubMount) Done() <-chan struct{}            { return s.done }
func (s *stubMount) Unmount()                         { s.unmounted = true }

func (s *stubMount) settle(snapshot usecase.RosterSnapshot) {
	snapshot.MountID = s.snapshot.MountID
	s.snapshot = snapshot
	close(s.done)
}

type stubRoster struct {
	mount  *stubMount
	mounts int
}

func (r *stubRoster) Mount(context.Context) usecase.RosterMount {
	r.mounts++

	return r.mount
}

func (r *stubRoster) Lookup(string) (usecase.RosterMount, bool) { return nil, false }
func (r *stubRoster) Close()                                    {}

func readySnapshot() usecase.RosterSnapshot {
	return usecase.RosterSnapshot{
		Status: usecase.StatusReady,
		Tutors: []*entity.TutorSetting{
			{ID: "a", RadiusMeters: 50, TrustScore: entity.Score(120)},
			{ID: "b", RadiusMeters: 10, TrustScore: entity.Score(30)},
		},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)

	return model, cmd
}

func TestNewModel(t *testing.T) {
	roster := &stubRoster{mount: newStubMount()}

	model, cmd := NewModel(context.Background(), roster)

	assert.Equal(t, ViewStateLoading, model.State())
	assert.Equal(t, 1, roster.mounts)
	assert.NotNil(t, cmd)
	assert.Contains(t, model.View(), view.LoadingText)
}

func TestModel_WaitForRoster(t *testing.T) {
	mount := newStubMount()
	mount.settle(readySnapshot())

	msg := waitForRoster(context.Background(), mount)()

	settled, ok := msg.(RosterSettledMsg)
	require.True(t, ok)
	assert.Equal(t, usecase.StatusReady, settled.Snapshot.Status)
	assert.Len(t, settled.Snapshot.Tutors, 2)
}

func TestModel_WaitForRoster_ContextDone(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	msg := waitForRoster(ctx, newStubMount())()

	settled, ok := msg.(RosterSettledMsg)
	require.True(t, ok)
	assert.Equal(t, usecase.StatusLoading, settled.Snapshot.Status)
}

func TestModel_Ready(t *testing.T) {
	model, _ := NewModel(context.Background(), &stubRoster{mount: newStubMount()})

	model, _ = update(t, model, RosterSettledMsg{Snapshot: readySnapshot()})

	assert.Equal(t, ViewStateReady, model.State())
	out := model.View()
	assert.Contains(t, out, view.Title)
	assert.Contains(t, out, view.HealthIndicator)
	assert.Contains(t, out, view.LabelOnField)
	assert.Contains(t, out, view.LabelScheduledClass)
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "98%")
	assert.Contains(t, out, "Elite")
	assert.Contains(t, out, "Probation")
	assert.Less(t, strings.Index(out, "Elite"), strings.Index(out, "Probation"))
}

func TestModel_Error(t *testing.T) {
	model, _ := NewModel(context.Background(), &stubRoster{mount: newStubMount()})

	model, _ = update(t, model, RosterSettledMsg{Snapshot: usecase.RosterSnapshot{
		Status:       usecase.StatusError,
		ErrorMessage: "network unreachable",
	}})

	assert.Equal(t, ViewStateError, model.State())
	out := model.View()
	assert.Contains(t, out, "Error: network unreachable")
	assert.NotContains(t, out, view.LabelOnField)
	assert.NotContains(t, out, view.ColumnID)
}

func TestModel_TerminalStateIsFinal(t *testing.T) {
	model, _ := NewModel(context.Background(), &stubRoster{mount: newStubMount()})

	model, _ = update(t, model, RosterSettledMsg{Snapshot: usecase.RosterSnapshot{
		Status:       usecase.StatusError,
		ErrorMessage: "permission denied",
	}})
	model, _ = update(t, model, RosterSettledMsg{Snapshot: readySnapshot()})

	assert.Equal(t, ViewStateError, model.State())
}

func TestModel_SpinnerStopsAfterLoading(t *testing.T) {
	model, _ := NewModel(context.Background(), &stubRoster{mount: newStubMount()})

	_, cmd := update(t, model, model.spinner.Tick())
	assert.NotNil(t, cmd, "spinner keeps ticking while loading")

	model, _ = update(t, model, RosterSettledMsg{Snapshot: readySnapshot()})
	_, cmd = update(t, model, spinner.TickMsg{ID: model.spinner.ID()})
	assert.Nil(t, cmd)
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(key.String(), func(t *testing.T) {
			mount := newStubMount()
			model, _ := NewModel(context.Background(), &stubRoster{mount: mount})

			model, cmd := update(t, model, key)

			assert.Equal(t, ViewStateQuitting, model.State())
			assert.True(t, mount.unmounted)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, model.View())
		})
	}
}

func TestModel_WindowSize(t *testing.T) {
	model, _ := NewModel(context.Background(), &stubRoster{mount: newStubMount()})

	model, _ = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, model.width)
}

func TestRender_EmptyRoster(t *testing.T) {
	out := Render(view.Build(usecase.RosterSnapshot{
		Status: usecase.StatusReady,
		Tutors: []*entity.TutorSetting{},
	}), 0)

	assert.Contains(t, out, view.LabelOnField)
	assert.Contains(t, out, view.ColumnID)
	assert.NotContains(t, out, "Error:")
}

func TestRender_Idempotent(t *testing.T) {
	d := view.Build(readySnapshot())

	assert.Equal(t, Render(d, 80), Render(d, 80))
}
