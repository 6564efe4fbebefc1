package beerpong

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mr-beerpong/internal/audio"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/engine"
)

// isBall reports whether the collider is the controlled ball. Without a
// controller any ball-kind collider qualifies.
func isBall(ball *BallController, other engine.Collider) bool {
	if other.Kind != engine.KindBall {
		return false
	}
	return ball == nil || ball.ID() == other.ID
}

// BoundaryTrigger observes an invisible wall. A ball entering it is a miss.
type BoundaryTrigger struct {
	name   string
	ball   *BallController
	logger *log.Logger
}

// NewBoundaryTrigger creates the observer for one wall.
func NewBoundaryTrigger(name string, ball *BallController, logger *log.Logger) *BoundaryTrigger {
	return &BoundaryTrigger{name: name, ball: ball, logger: logger}
}

// OnTriggerEnter implements engine.TriggerObserver.
func (t *BoundaryTrigger) OnTriggerEnter(other engine.Collider) {
	if t.ball == nil || !isBall(t.ball, other) {
		return
	}
	t.logger.Debug("ball out of bounds", "wall", t.name)
	t.ball.ResetBall(false)
}

// CupTrigger is the sensor inside one cup. It scores at most once.
type CupTrigger struct {
	rack   *CupRack
	ball   *BallController
	score  *ScoreCounter
	audio  audio.Player
	at     core.Vec3
	logger *log.Logger

	scored bool
}

// NewCupTrigger creates a sensor bound to its owning rack.
func NewCupTrigger(rack *CupRack, ball *BallController, score *ScoreCounter, player audio.Player, at core.Vec3, logger *log.Logger) *CupTrigger {
	return &CupTrigger{
		rack:   rack,
		ball:   ball,
		score:  score,
		audio:  player,
		at:     at,
		logger: logger,
	}
}

// Scored reports whether the latch is set.
func (t *CupTrigger) Scored() bool { return t.scored }

// OnTriggerEnter implements engine.TriggerObserver. The hit is recorded
// before the rack is notified; the rack needs the receipt to proceed.
func (t *CupTrigger) OnTriggerEnter(other engine.Collider) {
	if t.scored || !isBall(t.ball, other) {
		return
	}
	t.scored = true

	if t.rack == nil {
		t.logger.Error("cup sensor has no owning rack; hit dropped")
		if t.ball != nil {
			t.ball.ResetBall(true)
		}
		return
	}

	t.logger.Info("goal")
	t.audio.Play(audio.CueScore, t.at, 1)
	receipt := t.score.RecordHit()
	t.rack.OnCupHit(receipt)
	if t.ball != nil {
		t.ball.ResetBall(true)
	}
}
