// Package audio provides the cue-based sound service. The game asks for named
// cues at world positions; implementations decide what "playing" means.
package audio

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mr-beerpong/internal/core"
)

// Cue names a sound effect.
type Cue int

const (
	CueMusic Cue = iota
	CueGameStart
	CueBounce
	CueMiss
	CueScore
	CueWin
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueMusic:
		return "music"
	case CueGameStart:
		return "game-start"
	case CueBounce:
		return "bounce"
	case CueMiss:
		return "miss"
	case CueScore:
		return "splash"
	case CueWin:
		return "fanfare"
	default:
		return "unknown"
	}
}

// Player plays a cue at a world position with a volume scalar in [0, 1].
type Player interface {
	Play(cue Cue, at core.Vec3, volume float64)
}

// Nop discards every cue.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Cue, core.Vec3, float64) {}

// LogPlayer writes every cue to a structured logger at debug level.
type LogPlayer struct {
	logger *log.Logger
}

// NewLogPlayer creates a LogPlayer; a nil logger uses the default logger.
func NewLogPlayer(logger *log.Logger) *LogPlayer {
	if logger == nil {
		logger = log.Default()
	}
	return &LogPlayer{logger: logger.WithPrefix("audio")}
}

// Play implements Player.
func (p *LogPlayer) Play(cue Cue, at core.Vec3, volume float64) {
	p.logger.Debug("play", "cue", cue, "x", at.X, "y", at.Y, "z", at.Z, "volume", volume)
}

// Multi fans a cue out to several players.
type Multi []Player

// Play implements Player.
func (m Multi) Play(cue Cue, at core.Vec3, volume float64) {
	for _, p := range m {
		if p != nil {
			p.Play(cue, at, volume)
		}
	}
}
