package beerpong

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mr-beerpong/internal/audio"
	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/engine"
	"github.com/vovakirdan/mr-beerpong/internal/room"
)

// A thrown ball slower than stallSpeed for stallTimeout seconds is a miss.
const (
	stallSpeed   = 0.05
	stallTimeout = 1.5
)

// BallDeps are the collaborators of a BallController.
type BallDeps struct {
	World     engine.World
	Scheduler *Scheduler
	Score     *ScoreCounter
	Audio     audio.Player
	Config    config.BallConfig
	Logger    *log.Logger
}

// BallController owns the ball entity. It resets the ball to its spawn pose
// after misses and goals and guards against overlapping resets.
type BallController struct {
	world  engine.World
	sched  *Scheduler
	score  *ScoreCounter
	audio  audio.Player
	cfg    config.BallConfig
	logger *log.Logger

	id        engine.EntityID
	spawn     core.Pose
	resetting bool
	removed   bool
	inFlight  bool
	stalled   float64
	throws    int
	resets    int
}

// NewBallController spawns the ball at the given pose and caches it as the
// reset target.
func NewBallController(d BallDeps, spawn core.Pose) *BallController {
	b := &BallController{
		world:  d.World,
		sched:  d.Scheduler,
		score:  d.Score,
		audio:  d.Audio,
		cfg:    d.Config,
		logger: d.Logger,
		spawn:  spawn,
	}
	b.id = d.World.Spawn(engine.Spec{
		Kind:     engine.KindBall,
		Name:     "ball",
		Pose:     spawn,
		Shape:    engine.ShapeSphere,
		Size:     core.V3(d.Config.Radius, 0, 0),
		Visible:  true,
		Observer: b,
	})
	return b
}

// ID returns the ball entity.
func (b *BallController) ID() engine.EntityID { return b.id }

// SpawnPose returns the cached reset pose.
func (b *BallController) SpawnPose() core.Pose { return b.spawn }

// Resetting reports whether a reset cooldown is in progress.
func (b *BallController) Resetting() bool { return b.resetting }

// Removed reports whether the ball was taken out of play.
func (b *BallController) Removed() bool { return b.removed }

// InFlight reports whether the ball was thrown and has not been reset yet.
func (b *BallController) InFlight() bool { return b.inFlight }

// Ready reports whether a new throw may start.
func (b *BallController) Ready() bool {
	return !b.removed && !b.resetting && !b.inFlight
}

// Throws returns the number of accepted throws.
func (b *BallController) Throws() int { return b.throws }

// Resets returns the number of resets performed.
func (b *BallController) Resets() int { return b.resets }

// Position returns the current ball position, or the spawn position once
// the ball was removed.
func (b *BallController) Position() core.Vec3 {
	if p, ok := b.world.Pose(b.id); ok {
		return p.Position
	}
	return b.spawn.Position
}

// ResetBall returns the ball to its spawn pose. A miss is recorded unless
// isGoal is set. Calls during a reset or after removal are ignored.
func (b *BallController) ResetBall(isGoal bool) {
	if b.removed {
		return
	}
	if b.resetting {
		b.logger.Debug("reset already in progress")
		return
	}

	if !isGoal {
		b.score.AddMiss()
		b.audio.Play(audio.CueMiss, b.Position(), 1)
	}

	b.resetting = true
	b.inFlight = false
	b.stalled = 0
	b.resets++
	b.world.SetVelocity(b.id, core.Zero3, core.Zero3)
	b.world.Teleport(b.id, b.spawn)
	b.world.SetResponsive(b.id, false)
	b.logger.Debug("ball reset", "goal", isGoal)

	b.sched.After(b.cfg.ResetCooldown, func() {
		b.resetting = false
		if !b.removed {
			b.world.SetResponsive(b.id, true)
		}
	})
}

// OnCollisionEnter implements engine.CollisionObserver.
func (b *BallController) OnCollisionEnter(c engine.Contact) {
	if b.removed {
		return
	}
	if c.Surface.Label == room.LabelFloor {
		b.ResetBall(false)
		return
	}
	if c.RelativeSpeed > b.cfg.BounceSoundSpeed {
		b.audio.Play(audio.CueBounce, c.Point, b.cfg.BounceVolume)
	}
}

// Throw launches the ball. It is rejected during a reset or after removal.
func (b *BallController) Throw(velocity core.Vec3) bool {
	if b.removed || b.resetting {
		return false
	}
	b.world.SetVelocity(b.id, velocity, core.Zero3)
	b.inFlight = true
	b.stalled = 0
	b.throws++
	b.logger.Debug("throw", "velocity", velocity)
	return true
}

// Update watches a thrown ball and counts it as a miss once it comes to
// rest without reaching a cup, the floor or a boundary.
func (b *BallController) Update(dt float64) {
	if !b.inFlight || b.resetting || b.removed {
		return
	}
	lin, _ := b.world.Velocity(b.id)
	if lin.Len() >= stallSpeed {
		b.stalled = 0
		return
	}
	b.stalled += dt
	if b.stalled >= stallTimeout {
		b.logger.Debug("ball stalled")
		b.ResetBall(false)
	}
}

// Remove destroys the ball entity. Later calls on the controller are no-ops.
func (b *BallController) Remove() {
	if b.removed {
		return
	}
	b.removed = true
	b.inFlight = false
	b.world.Destroy(b.id)
	b.logger.Info("ball removed")
}
