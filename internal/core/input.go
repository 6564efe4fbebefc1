package core

import "math/bits"

// Action is a player intent, decoupled from the key or gesture that caused it.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Sweep the pointer or aim left
	ActionRight          // Sweep the pointer or aim right
	ActionUp             // More throw power
	ActionDown           // Less throw power
	ActionThrow          // Release the ball
	ActionPinch          // Pinch edge used for table selection
	ActionBack           // Return to the menu
	ActionRestart        // Start a new session
	ActionQuit
	ActionPause
	actionCount
)

var actionNames = [actionCount]string{
	"None", "Left", "Right", "Up", "Down", "Throw", "Pinch", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions raised during one simulation tick.
// The zero value is an empty frame.
type InputFrame struct {
	set uint32
}

func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set adds a to the frame. Unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.set |= 1 << a
	}
}

func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < actionCount && f.set&(1<<a) != 0
}

// Len returns the number of distinct actions in the frame.
func (f InputFrame) Len() int {
	return bits.OnesCount32(f.set)
}

func (f *InputFrame) Clear() {
	f.set = 0
}
