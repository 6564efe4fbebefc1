package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mr-beerpong/internal/core"
)

// gameKeys binds key names to game actions. Space releases the ball and
// enter stands in for the pinch gesture.
var gameKeys = map[string]core.Action{
	"ctrl+c": core.ActionQuit, "q": core.ActionQuit,
	"a": core.ActionLeft, "left": core.ActionLeft,
	"d": core.ActionRight, "right": core.ActionRight,
	"w": core.ActionUp, "up": core.ActionUp,
	"s": core.ActionDown, "down": core.ActionDown,
	" ":     core.ActionThrow,
	"enter": core.ActionPinch,
	"b":     core.ActionBack, "esc": core.ActionBack,
	"p": core.ActionPause,
	"r": core.ActionRestart,
}

// MenuAction is a navigation intent on the menu screens.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

var menuKeys = map[string]MenuAction{
	"ctrl+c": MenuActionQuit, "q": MenuActionQuit,
	"w": MenuActionUp, "up": MenuActionUp, "k": MenuActionUp,
	"s": MenuActionDown, "down": MenuActionDown, "j": MenuActionDown,
	"enter": MenuActionSelect, " ": MenuActionSelect,
	"b": MenuActionBack, "esc": MenuActionBack,
	"tab": MenuActionScoreboard,
}

// KeyMapper translates Bubble Tea key messages into actions.
type KeyMapper struct{}

func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey returns the game action for a key (ActionNone when unbound) and
// whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, bool) {
	a := gameKeys[msg.String()]
	return a, a == core.ActionQuit
}

// MapKeyToFrame adds the key's action to frame and reports a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	a, quit := km.MapKey(msg)
	if a != core.ActionNone {
		frame.Set(a)
	}
	return quit
}

func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return menuKeys[msg.String()]
}
