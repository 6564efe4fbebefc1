package beerpong

import (
	"testing"

	"github.com/vovakirdan/mr-beerpong/internal/audio"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/engine"
)

func TestCupTriggerScoresOnce(t *testing.T) {
	rack, score, _, feed := newBareRack(t)
	rack.Spawn(3)
	trig := NewCupTrigger(rack, nil, score, feed, core.Zero3, quietLogger())

	ball := engine.Collider{ID: 42, Kind: engine.KindBall}
	trig.OnTriggerEnter(ball)
	trig.OnTriggerEnter(ball)

	if !trig.Scored() {
		t.Error("latch should be set")
	}
	if score.Hits() != 1 {
		t.Errorf("hits = %d, expected 1", score.Hits())
	}
	if rack.Count() != 2 {
		t.Errorf("count = %d, expected 2", rack.Count())
	}
	if feed.Count(audio.CueScore) != 1 {
		t.Errorf("score cue played %d times", feed.Count(audio.CueScore))
	}
}

func TestCupTriggerIgnoresNonBall(t *testing.T) {
	rack, score, _, _ := newBareRack(t)
	rack.Spawn(3)
	trig := NewCupTrigger(rack, nil, score, audio.Nop{}, core.Zero3, quietLogger())

	trig.OnTriggerEnter(engine.Collider{ID: 7, Kind: engine.KindCup})

	if trig.Scored() || score.Hits() != 0 || rack.Count() != 3 {
		t.Error("non-ball collider must not score")
	}
}

func TestCupTriggerWithoutRackDropsHit(t *testing.T) {
	score := NewScoreCounter(quietLogger())
	feed := audio.NewFeed(4)
	trig := NewCupTrigger(nil, nil, score, feed, core.Zero3, quietLogger())

	trig.OnTriggerEnter(engine.Collider{ID: 1, Kind: engine.KindBall})

	if !trig.Scored() {
		t.Error("latch should be set even without a rack")
	}
	if score.Hits() != 0 || feed.Count(audio.CueScore) != 0 {
		t.Error("hit must be dropped without a rack")
	}
}

func TestCupTriggerWithoutRackStillResetsBall(t *testing.T) {
	f := newBallFixture(t)
	if !f.ball.Throw(core.V3(0.5, 1, 0)) {
		t.Fatal("throw rejected")
	}
	trig := NewCupTrigger(nil, f.ball, f.score, f.feed, core.Zero3, quietLogger())

	trig.OnTriggerEnter(engine.Collider{ID: f.ball.ID(), Kind: engine.KindBall})

	if !f.ball.Resetting() || f.ball.InFlight() {
		t.Fatal("ball should be reset as a goal")
	}
	for range 200 {
		f.sched.Step(1.0 / 60)
		f.ball.Update(1.0 / 60)
	}
	if f.score.Misses() != 0 || f.score.Hits() != 0 {
		t.Errorf("dropped hit must count nothing: hits=%d misses=%d", f.score.Hits(), f.score.Misses())
	}
}

func TestCupTriggerOnlyControlledBall(t *testing.T) {
	f := newBallFixture(t)
	layout, _ := NewLayoutTable(0.09, 1.1)
	rack := NewCupRack(RackDeps{
		World:  f.world,
		Layout: layout,
		Pose:   core.NewPose(core.V3(0.6, 0.82, 0), core.Identity),
		Config: testRackConfig(),
		Score:  f.score,
		Ball:   f.ball,
		Audio:  f.feed,
		Logger: quietLogger(),
	})
	rack.Spawn(3)
	trig := NewCupTrigger(rack, f.ball, f.score, f.feed, core.Zero3, quietLogger())

	trig.OnTriggerEnter(engine.Collider{ID: f.ball.ID() + 100, Kind: engine.KindBall})
	if trig.Scored() {
		t.Fatal("a foreign ball must not score")
	}

	trig.OnTriggerEnter(engine.Collider{ID: f.ball.ID(), Kind: engine.KindBall})
	if f.score.Hits() != 1 || rack.Count() != 2 {
		t.Errorf("hits=%d count=%d", f.score.Hits(), rack.Count())
	}
	if f.score.Misses() != 0 || !f.ball.Resetting() {
		t.Error("goal should reset the ball without a miss")
	}
}

func TestBoundaryTriggerResetsBall(t *testing.T) {
	f := newBallFixture(t)
	wall := NewBoundaryTrigger("far", f.ball, quietLogger())

	wall.OnTriggerEnter(engine.Collider{ID: 999, Kind: engine.KindCup})
	if f.score.Misses() != 0 {
		t.Fatal("non-ball entry must be ignored")
	}

	wall.OnTriggerEnter(engine.Collider{ID: f.ball.ID(), Kind: engine.KindBall})
	wall.OnTriggerEnter(engine.Collider{ID: f.ball.ID(), Kind: engine.KindBall})
	if f.score.Misses() != 1 {
		t.Errorf("misses = %d, expected 1", f.score.Misses())
	}
}
