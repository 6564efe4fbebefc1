package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/registry"
	"github.com/vovakirdan/mr-beerpong/internal/storage"
)

func init() {
	registry.Register("fake", "Fake", func(registry.Env) registry.Game {
		return &fakeGame{overAt: 2, label: "TABLE"}
	})
}

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	env := registry.Env{Config: config.DefaultBeerPongConfig(), Logger: log.New(io.Discard)}
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}
	return NewSessionModel(store, cfg, env, config.DifficultyEasy)
}

func sessionSend(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newTestSession(t)

	m = sessionSend(t, m, keyMsg("enter"))
	if m.screen != screenDifficulty {
		t.Fatalf("screen = %v, want difficulty picker", m.screen)
	}
	if !strings.Contains(m.View(), "Easy") {
		t.Error("picker should list presets")
	}

	m = sessionSend(t, m, keyMsg("enter"))
	if m.screen != screenGame || m.game == nil {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	if m.preset != config.DifficultyEasy {
		t.Errorf("preset = %q, want easy", m.preset)
	}

	for range 3 {
		m = sessionSend(t, m, TickMsg{})
	}
	m = sessionSend(t, m, keyMsg("b"))
	if m.screen != screenMenu || m.game != nil {
		t.Fatalf("screen = %v, want menu after leaving the game", m.screen)
	}
	if !strings.Contains(m.View(), "best 100") {
		t.Errorf("menu should show the stored best score:\n%s", m.View())
	}
}

func TestSessionDifficultyBack(t *testing.T) {
	m := newTestSession(t)

	m = sessionSend(t, m, keyMsg("enter"))
	m = sessionSend(t, m, keyMsg("esc"))
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := newTestSession(t)

	m = sessionSend(t, m, keyMsg("tab"))
	if m.screen != screenScoreboard {
		t.Fatalf("screen = %v, want scoreboard", m.screen)
	}
	if !strings.Contains(m.View(), "BEST SESSIONS") {
		t.Errorf("scoreboard title missing:\n%s", m.View())
	}

	m = sessionSend(t, m, keyMsg("b"))
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession(t)

	next, cmd := m.Update(keyMsg("q"))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q in the menu should quit the session")
	}
	if next.View() != "" {
		t.Error("quitting session should render nothing")
	}
}
