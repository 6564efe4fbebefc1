package beerpong

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mr-beerpong/internal/audio"
	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/engine"
)

// RackDeps are the collaborators of a CupRack.
type RackDeps struct {
	World  engine.Spawner
	Layout LayoutTable
	Pose   core.Pose // Rack origin; local +Z points away from the player
	Config config.RackConfig
	Score  *ScoreCounter
	Ball   *BallController
	Audio  audio.Player
	Logger *log.Logger
}

// CupRack owns the active cup entities. Every re-rack destroys the whole
// formation and spawns the next one; cups are never moved individually.
type CupRack struct {
	world  engine.Spawner
	layout LayoutTable
	pose   core.Pose
	cfg    config.RackConfig
	score  *ScoreCounter
	ball   *BallController
	audio  audio.Player
	logger *log.Logger

	count    int
	won      bool
	cups     []engine.EntityID
	poses    []core.Pose
	redeemed int // Highest receipt sequence accepted
}

// NewCupRack creates an empty rack. Call Spawn to place cups.
func NewCupRack(d RackDeps) *CupRack {
	return &CupRack{
		world:  d.World,
		layout: d.Layout,
		pose:   core.NewPose(d.Pose.Position, d.Pose.Rotation),
		cfg:    d.Config,
		score:  d.Score,
		ball:   d.Ball,
		audio:  d.Audio,
		logger: d.Logger,
	}
}

// Count returns the current cup count.
func (r *CupRack) Count() int { return r.count }

// Won reports whether the last cup was hit.
func (r *CupRack) Won() bool { return r.won }

// Pose returns the rack origin.
func (r *CupRack) Pose() core.Pose { return r.pose }

// Cups returns the active cup entities.
func (r *CupRack) Cups() []engine.EntityID {
	out := make([]engine.EntityID, len(r.cups))
	copy(out, r.cups)
	return out
}

// CupPoses returns the world poses of the active cups.
func (r *CupRack) CupPoses() []core.Pose {
	out := make([]core.Pose, len(r.poses))
	copy(out, r.poses)
	return out
}

// Spawn replaces the formation with n cups. Counts outside 1..6 clear the
// rack without spawning and leave the count unchanged.
func (r *CupRack) Spawn(n int) {
	if r.won {
		r.logger.Debug("spawn ignored after victory", "n", n)
		return
	}

	r.clear()
	offsets, ok := r.layout.Offsets(n)
	if !ok {
		r.logger.Warn("no layout for cup count; rack cleared", "n", n)
		return
	}

	sensorDiameter := r.cfg.CupDiameter * r.cfg.SensorRatio
	sensorHeight := r.cfg.CupHeight / 2
	lift := core.V3(0, r.cfg.CupHeight-sensorHeight/2, 0)

	for i, off := range offsets {
		pose := r.pose.Mul(core.NewPose(off.Add(lift), core.Identity))
		trigger := NewCupTrigger(r, r.ball, r.score, r.audio, pose.Position, r.logger)
		id := r.world.Spawn(engine.Spec{
			Kind:     engine.KindCup,
			Name:     fmt.Sprintf("cup-%d", i+1),
			Pose:     pose,
			Shape:    engine.ShapeCylinder,
			Size:     core.V3(sensorDiameter, sensorHeight, 0),
			Trigger:  true,
			Visible:  true,
			Observer: trigger,
		})
		r.cups = append(r.cups, id)
		r.poses = append(r.poses, pose)
	}
	r.count = n
	r.logger.Debug("racked", "cups", n)
}

// OnCupHit handles one scored cup. The receipt must come from
// ScoreCounter.RecordHit; missing or replayed receipts are rejected.
func (r *CupRack) OnCupHit(receipt HitReceipt) {
	if r.won {
		r.logger.Debug("cup hit ignored after victory")
		return
	}
	if !receipt.Valid() || receipt.seq <= r.redeemed {
		r.logger.Warn("cup hit without a fresh score receipt; ignored")
		return
	}
	r.redeemed = receipt.seq

	r.count--
	if r.count <= 0 {
		r.count = 0
		r.won = true
		r.clear()
		r.audio.Play(audio.CueWin, r.pose.Position, 1)
		r.score.DeclareVictory()
		if r.ball != nil {
			r.ball.Remove()
		}
		r.logger.Info("rack cleared")
		return
	}

	r.Spawn(r.count)
}

func (r *CupRack) clear() {
	for _, id := range r.cups {
		r.world.Destroy(id)
	}
	r.cups = r.cups[:0]
	r.poses = r.poses[:0]
}
