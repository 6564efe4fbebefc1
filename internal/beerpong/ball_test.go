package beerpong

import (
	"testing"

	"github.com/vovakirdan/mr-beerpong/internal/audio"
	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/engine"
	"github.com/vovakirdan/mr-beerpong/internal/physics"
	"github.com/vovakirdan/mr-beerpong/internal/room"
)

type ballFixture struct {
	world *physics.World
	sched *Scheduler
	score *ScoreCounter
	feed  *audio.Feed
	ball  *BallController
	spawn core.Pose
}

func newBallFixture(t *testing.T) *ballFixture {
	t.Helper()
	f := &ballFixture{
		world: physics.New(testRoom(t), physics.DefaultConfig(), quietLogger()),
		sched: NewScheduler(),
		score: NewScoreCounter(quietLogger()),
		feed:  audio.NewFeed(16),
		spawn: core.NewPose(core.V3(-0.6, 0.82, 0), core.Identity),
	}
	f.ball = NewBallController(BallDeps{
		World:     f.world,
		Scheduler: f.sched,
		Score:     f.score,
		Audio:     f.feed,
		Config:    config.DefaultBeerPongConfig().Ball,
		Logger:    quietLogger(),
	}, f.spawn)
	return f
}

func TestBallResetMiss(t *testing.T) {
	f := newBallFixture(t)
	f.world.Teleport(f.ball.ID(), core.NewPose(core.V3(0.5, 1.2, 0.3), core.Identity))
	f.world.SetVelocity(f.ball.ID(), core.V3(1, 2, 3), core.V3(4, 5, 6))

	f.ball.ResetBall(false)

	if f.score.Misses() != 1 {
		t.Errorf("misses = %d, expected 1", f.score.Misses())
	}
	if f.feed.Count(audio.CueMiss) != 1 {
		t.Error("expected a miss cue")
	}
	pose, _ := f.world.Pose(f.ball.ID())
	if !pose.Position.ApproxEqual(f.spawn.Position, 1e-12) {
		t.Errorf("ball at %v, expected spawn %v", pose.Position, f.spawn.Position)
	}
	lin, ang := f.world.Velocity(f.ball.ID())
	if lin != core.Zero3 || ang != core.Zero3 {
		t.Errorf("velocity not zeroed: %v %v", lin, ang)
	}
	if !f.ball.Resetting() {
		t.Error("ball should be resetting during the cooldown")
	}
}

func TestBallResetGoalRecordsNoMiss(t *testing.T) {
	f := newBallFixture(t)
	f.ball.ResetBall(true)
	if f.score.Misses() != 0 || f.feed.Count(audio.CueMiss) != 0 {
		t.Error("a goal reset must not count a miss")
	}
}

func TestBallResetReentrancy(t *testing.T) {
	f := newBallFixture(t)

	f.ball.ResetBall(false)
	f.ball.ResetBall(false)
	f.ball.ResetBall(true)

	if f.score.Misses() != 1 {
		t.Errorf("misses = %d, expected 1", f.score.Misses())
	}
	if f.ball.Resets() != 1 {
		t.Errorf("resets = %d, expected 1", f.ball.Resets())
	}
	if f.sched.Pending() != 1 {
		t.Errorf("pending tasks = %d, expected 1", f.sched.Pending())
	}
}

func TestBallCooldownReenablesResponse(t *testing.T) {
	f := newBallFixture(t)
	f.ball.ResetBall(false)

	if f.ball.Throw(core.V3(1, 1, 0)) {
		t.Error("throw should be rejected while resetting")
	}

	f.sched.Advance(0.1)
	if !f.ball.Resetting() {
		t.Error("cooldown ended early")
	}
	f.sched.Advance(0.2)
	if f.ball.Resetting() {
		t.Error("cooldown should be over")
	}

	// Responsive again: the ball falls.
	before, _ := f.world.Pose(f.ball.ID())
	f.world.Step(1.0 / 60)
	after, _ := f.world.Pose(f.ball.ID())
	if after.Position.Y >= before.Position.Y {
		t.Error("ball should move once responsive")
	}

	f.ball.ResetBall(false)
	if f.score.Misses() != 2 {
		t.Errorf("a new reset after cooldown should count, misses = %d", f.score.Misses())
	}
}

func TestBallFloorCollisionIsMiss(t *testing.T) {
	f := newBallFixture(t)
	f.ball.OnCollisionEnter(engine.Contact{
		Surface:       room.Surface{ID: "floor", Label: room.LabelFloor},
		RelativeSpeed: 3,
	})
	if f.score.Misses() != 1 {
		t.Errorf("misses = %d, expected 1", f.score.Misses())
	}
	if f.feed.Count(audio.CueBounce) != 0 {
		t.Error("floor contact should not play a bounce")
	}
}

func TestBallBounceSound(t *testing.T) {
	f := newBallFixture(t)
	table := room.Surface{ID: "table", Label: room.LabelTable}

	f.ball.OnCollisionEnter(engine.Contact{Surface: table, RelativeSpeed: 0.4})
	if f.feed.Count(audio.CueBounce) != 0 {
		t.Error("slow contact should be silent")
	}

	f.ball.OnCollisionEnter(engine.Contact{Surface: table, RelativeSpeed: 1.2})
	last, ok := f.feed.Last()
	if !ok || last.Cue != audio.CueBounce || last.Volume != 0.8 {
		t.Errorf("expected bounce at 0.8, got %+v", last)
	}
	if f.score.Misses() != 0 {
		t.Error("table bounce is not a miss")
	}
}

func TestBallThrowAndStall(t *testing.T) {
	f := newBallFixture(t)
	if !f.ball.Throw(core.V3(0.5, 1, 0)) {
		t.Fatal("throw rejected")
	}
	if !f.ball.InFlight() || f.ball.Ready() {
		t.Error("ball should be in flight")
	}
	lin, _ := f.world.Velocity(f.ball.ID())
	if lin != core.V3(0.5, 1, 0) {
		t.Errorf("velocity = %v", lin)
	}

	// Pretend the ball came to rest on the table without scoring.
	f.world.SetVelocity(f.ball.ID(), core.Zero3, core.Zero3)
	f.world.SetResponsive(f.ball.ID(), false)
	for range 100 {
		f.ball.Update(1.0 / 60)
	}
	if f.score.Misses() != 1 {
		t.Errorf("stalled ball should count a miss, misses = %d", f.score.Misses())
	}
	if f.ball.InFlight() {
		t.Error("reset should clear the in-flight flag")
	}
}

func TestBallRemove(t *testing.T) {
	f := newBallFixture(t)
	f.ball.Remove()
	f.ball.Remove()

	if f.world.Exists(f.ball.ID()) {
		t.Error("ball entity should be destroyed")
	}
	f.ball.ResetBall(false)
	if f.score.Misses() != 0 {
		t.Error("reset after removal must be a no-op")
	}
	if f.ball.Throw(core.V3(1, 0, 0)) {
		t.Error("throw after removal must be rejected")
	}
	if f.ball.Position() != f.spawn.Position {
		t.Error("position of a removed ball falls back to spawn")
	}
}
