package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mr-beerpong/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"left", core.ActionLeft, false},
		{"a", core.ActionLeft, false},
		{"right", core.ActionRight, false},
		{"d", core.ActionRight, false},
		{"up", core.ActionUp, false},
		{"down", core.ActionDown, false},
		{" ", core.ActionThrow, false},
		{"enter", core.ActionPinch, false},
		{"esc", core.ActionBack, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			action, quit := km.MapKey(keyMsg(tt.key))
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.key, action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(keyMsg(" "), &frame) {
		t.Error("space is not a quit key")
	}
	km.MapKeyToFrame(keyMsg("x"), &frame)

	if !frame.Has(core.ActionThrow) {
		t.Error("throw should be set")
	}
	if frame.Len() != 1 {
		t.Errorf("unmapped keys must not add actions: %d set", frame.Len())
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key  string
		want MenuAction
	}{
		{"up", MenuActionUp},
		{"k", MenuActionUp},
		{"down", MenuActionDown},
		{"j", MenuActionDown},
		{"enter", MenuActionSelect},
		{"esc", MenuActionBack},
		{"tab", MenuActionScoreboard},
		{"q", MenuActionQuit},
		{"x", MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(tt.key)); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
