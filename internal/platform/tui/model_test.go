package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/storage"
)

// fakeGame ends after overAt steps and reports a fixed summary.
type fakeGame struct {
	steps  int
	overAt int
	resets int
	label  string
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *fakeGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "FAKE")
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: 100, GameOver: g.steps >= g.overAt}
}

func (g *fakeGame) Summary() core.SessionSummary {
	return core.SessionSummary{TableLabel: g.label, Hits: 1, Score: 100, Won: true}
}

func newTestModel(t *testing.T, g *fakeGame) (Model, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 1}
	m := NewModel(g, store, cfg, log.New(io.Discard))
	m.Init()
	return m, store
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func countSessions(t *testing.T, store *storage.Store) int {
	t.Helper()
	recs, err := store.RecentSessions("fake", 100)
	if err != nil {
		t.Fatalf("RecentSessions failed: %v", err)
	}
	return len(recs)
}

func TestModelRecordsSessionOnce(t *testing.T) {
	m, store := newTestModel(t, &fakeGame{overAt: 3, label: "TABLE"})

	for range 10 {
		m = send(t, m, TickMsg{})
	}
	if got := countSessions(t, store); got != 1 {
		t.Errorf("sessions = %d, want 1", got)
	}

	m = send(t, m, keyMsg("q"))
	if !m.IsQuitting() {
		t.Error("expected quitting after q")
	}
	if got := countSessions(t, store); got != 1 {
		t.Errorf("sessions after quit = %d, want 1", got)
	}
}

func TestModelRestartRecordsNewSession(t *testing.T) {
	g := &fakeGame{overAt: 2, label: "TABLE"}
	m, store := newTestModel(t, g)

	for range 3 {
		m = send(t, m, TickMsg{})
	}
	m = send(t, m, keyMsg("r"))
	m = send(t, m, TickMsg{})
	if g.resets != 2 {
		t.Fatalf("resets = %d, want 2", g.resets)
	}
	for range 3 {
		m = send(t, m, TickMsg{})
	}
	if got := countSessions(t, store); got != 2 {
		t.Errorf("sessions = %d, want 2", got)
	}
}

func TestModelSkipsSessionWithoutTable(t *testing.T) {
	m, store := newTestModel(t, &fakeGame{overAt: 1})

	m = send(t, m, TickMsg{})
	m = send(t, m, keyMsg("q"))
	if got := countSessions(t, store); got != 0 {
		t.Errorf("sessions = %d, want 0", got)
	}
}

func TestModelBackOnlyWhenOver(t *testing.T) {
	m, store := newTestModel(t, &fakeGame{overAt: 5, label: "DESK"})

	m = send(t, m, TickMsg{})
	m = send(t, m, keyMsg("b"))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	for range 5 {
		m = send(t, m, TickMsg{})
	}
	m = send(t, m, keyMsg("b"))
	if !m.BackToMenu() {
		t.Fatal("expected back to menu after game over")
	}
	if m.IsQuitting() {
		t.Error("back should not quit")
	}
	if got := countSessions(t, store); got != 1 {
		t.Errorf("sessions = %d, want 1", got)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{overAt: 100}
	m, _ := newTestModel(t, g)

	m = send(t, m, TickMsg{})
	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if g.resets != 1 {
		t.Errorf("resize reset the game: resets = %d", g.resets)
	}
	if !strings.Contains(m.View(), "FAKE") {
		t.Errorf("view missing game output:\n%s", m.View())
	}
}
