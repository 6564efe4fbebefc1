package beerpong

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/mr-beerpong/internal/audio"
	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/engine"
	"github.com/vovakirdan/mr-beerpong/internal/room"
)

func TestPlanWideTable(t *testing.T) {
	small := room.Surface{ID: "small", Label: room.LabelTable, Extent: room.Extent{W: 1.2, D: 0.6}, Pose: flat(core.V3(3, 0.75, 3))}
	f := newFixture(t, testRoom(t, small), config.DefaultBeerPongConfig())

	p := f.setup.Plan(small)

	if !p.IsWide {
		t.Fatal("1.2 x 0.6 should be wide")
	}
	if math.Abs(p.LongDim-1.2) > 1e-9 || math.Abs(p.Offset-0.3) > 1e-9 {
		t.Errorf("LongDim=%v Offset=%v, expected 1.2 and 0.3", p.LongDim, p.Offset)
	}
	if math.Abs(p.CupLocal.X-0.3) > 1e-9 || math.Abs(p.BallLocal.X+0.3) > 1e-9 {
		t.Errorf("CupLocal=%v BallLocal=%v", p.CupLocal, p.BallLocal)
	}
	if p.CupLocal.Y != 0 || p.BallLocal.Y != 0 {
		t.Error("wide tables place along local X only")
	}
}

func TestPlanDeepTable(t *testing.T) {
	deep := room.Surface{ID: "deep", Label: room.LabelDesk, Extent: room.Extent{W: 0.6, D: 1.4}, Pose: flat(core.V3(3, 0.75, 3))}
	f := newFixture(t, testRoom(t, deep), config.DefaultBeerPongConfig())

	p := f.setup.Plan(deep)

	if p.IsWide {
		t.Fatal("0.6 x 1.4 should not be wide")
	}
	if math.Abs(p.Offset-0.4) > 1e-9 {
		t.Errorf("Offset = %v, expected 0.4", p.Offset)
	}
	if math.Abs(p.CupLocal.Y-0.4) > 1e-9 || math.Abs(p.BallLocal.Y+0.4) > 1e-9 || p.CupLocal.X != 0 {
		t.Errorf("CupLocal=%v BallLocal=%v", p.CupLocal, p.BallLocal)
	}

	// Local +Y of a flat table is world -Z, so the rows run that way.
	rows := p.Rack.TransformDir(core.V3(0, 0, 1))
	if !rows.ApproxEqual(core.V3(0, 0, -1), 1e-9) {
		t.Errorf("rack rows = %v, expected -Z", rows)
	}
	if up := p.Rack.TransformDir(core.Up); !up.ApproxEqual(core.Up, 1e-9) {
		t.Errorf("rack up = %v", up)
	}
}

func TestPlanRaycastHeight(t *testing.T) {
	f := newFixture(t, testRoom(t), config.DefaultBeerPongConfig())
	table, _ := f.room.Surface("table")

	p := f.setup.Plan(table)

	// Surface at local Z 0, plus the 0.02 offset, plus the 0.05 lift.
	if math.Abs(p.CupLocal.Z-0.07) > 1e-9 || math.Abs(p.BallLocal.Z-0.07) > 1e-9 {
		t.Errorf("CupLocal.Z=%v BallLocal.Z=%v, expected 0.07", p.CupLocal.Z, p.BallLocal.Z)
	}
	if !p.Rack.Position.ApproxEqual(core.V3(0.6, 0.82, 0), 1e-9) {
		t.Errorf("rack at %v", p.Rack.Position)
	}
	if !p.Ball.Position.ApproxEqual(core.V3(-0.6, 0.82, 0), 1e-9) {
		t.Errorf("ball at %v", p.Ball.Position)
	}
}

func TestPlanRaycastFallback(t *testing.T) {
	cfg := config.DefaultBeerPongConfig()
	cfg.Placement.RaycastDistance = 0.1 // Starts 0.5 above the table, never reaches it
	f := newFixture(t, testRoom(t), cfg)
	table, _ := f.room.Surface("table")

	p := f.setup.Plan(table)

	if math.Abs(p.CupLocal.Z-0.12) > 1e-9 {
		t.Errorf("CupLocal.Z = %v, expected fallback 0.07 + 0.05", p.CupLocal.Z)
	}
}

func TestPlanFixedHeights(t *testing.T) {
	cfg := config.DefaultBeerPongConfig()
	cfg.Placement.UseRaycast = false
	f := newFixture(t, testRoom(t), cfg)
	table, _ := f.room.Surface("table")

	p := f.setup.Plan(table)

	if math.Abs(p.CupLocal.Z-0.12) > 1e-9 {
		t.Errorf("CupLocal.Z = %v, expected 0.12", p.CupLocal.Z)
	}
	if math.Abs(p.BallLocal.Z-0.1) > 1e-9 {
		t.Errorf("BallLocal.Z = %v, expected 0.1", p.BallLocal.Z)
	}
}

func TestPlanBoundaries(t *testing.T) {
	f := newFixture(t, testRoom(t), config.DefaultBeerPongConfig())
	table, _ := f.room.Surface("table")

	p := f.setup.Plan(table)

	tests := []struct {
		name string
		pos  core.Vec3
		size core.Vec3
	}{
		{"far", core.V3(0.9, 1.25, 0), core.V3(0.1, 0.9, 1.0)},
		{"side-a", core.V3(0, 1.25, -0.45), core.V3(1.8, 0.1, 1.0)},
		{"side-b", core.V3(0, 1.25, 0.45), core.V3(1.8, 0.1, 1.0)},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := p.Boundaries[i]
			if b.Name != tt.name {
				t.Errorf("name = %q", b.Name)
			}
			if !b.Pose.Position.ApproxEqual(tt.pos, 1e-9) {
				t.Errorf("position = %v, expected %v", b.Pose.Position, tt.pos)
			}
			if !b.Size.ApproxEqual(tt.size, 1e-9) {
				t.Errorf("size = %v, expected %v", b.Size, tt.size)
			}
		})
	}
}

func TestPlanScoreboardFacesBall(t *testing.T) {
	f := newFixture(t, testRoom(t), config.DefaultBeerPongConfig())
	table, _ := f.room.Surface("table")

	p := f.setup.Plan(table)

	toBall := p.Ball.Position.Sub(p.Scoreboard.Position).Normalize()
	facing := p.Scoreboard.TransformDir(core.V3(0, 0, 1))
	if !facing.ApproxEqual(toBall, 1e-9) {
		t.Errorf("scoreboard faces %v, expected %v", facing, toBall)
	}
	if p.Scoreboard.Position.X <= p.Rack.Position.X {
		t.Error("scoreboard should stand behind the rack")
	}
}

func TestStartRejectsSurfaces(t *testing.T) {
	bare := room.Surface{ID: "bare", Label: room.LabelTable, Pose: flat(core.V3(3, 0.7, 3))}
	f := newFixture(t, testRoom(t, bare), config.DefaultBeerPongConfig())

	floor, _ := f.room.Surface("floor")
	if _, err := f.setup.Start(floor); !errors.Is(err, ErrNotATable) {
		t.Errorf("floor: expected ErrNotATable, got %v", err)
	}
	surf, _ := f.room.Surface("bare")
	if _, err := f.setup.Start(surf); !errors.Is(err, ErrNoExtent) {
		t.Errorf("bare: expected ErrNoExtent, got %v", err)
	}
	if len(f.world.Entities()) != 0 {
		t.Error("failed starts must not spawn anything")
	}
}

func TestStartSpawnsSession(t *testing.T) {
	f := newFixture(t, testRoom(t), config.DefaultBeerPongConfig())
	sess := f.start(t, "table")

	counts := map[engine.Kind]int{}
	for _, e := range f.world.Entities() {
		counts[e.Kind]++
	}
	expected := map[engine.Kind]int{
		engine.KindBall:       1,
		engine.KindCup:        6,
		engine.KindCorral:     1,
		engine.KindScoreboard: 1,
		engine.KindBoundary:   3,
	}
	for k, n := range expected {
		if counts[k] != n {
			t.Errorf("%s: %d entities, expected %d", k, counts[k], n)
		}
	}

	if f.world.SurfaceVisible("floor") || f.world.SurfaceVisible("wall") {
		t.Error("other surfaces should be hidden")
	}
	if !f.world.SurfaceVisible("table") {
		t.Error("selected table stays visible")
	}
	if f.feed.Count(audio.CueGameStart) != 1 {
		t.Error("expected the start cue")
	}
	if sess.Rack.Count() != 6 || sess.Corral == 0 || sess.Scoreboard == 0 || len(sess.Walls) != 3 {
		t.Errorf("unexpected session: %+v", sess)
	}
}

func TestStartOptionalProps(t *testing.T) {
	cfg := config.DefaultBeerPongConfig()
	cfg.Placement.Corral = false
	cfg.Placement.Scoreboard = false
	f := newFixture(t, testRoom(t), cfg)

	sess := f.start(t, "table")

	if sess.Corral != 0 || sess.Scoreboard != 0 {
		t.Error("disabled props must not spawn")
	}
}

func TestSideThrowHitsBoundary(t *testing.T) {
	f := newFixture(t, testRoom(t), config.DefaultBeerPongConfig())
	sess := f.start(t, "table")

	if !sess.Ball.Throw(core.V3(0, 1, 2)) {
		t.Fatal("throw rejected")
	}
	f.run(0.5, sess.Ball)

	if sess.Score.Misses() != 1 {
		t.Errorf("misses = %d, expected 1", sess.Score.Misses())
	}
	if sess.Score.Hits() != 0 || sess.Rack.Count() != 6 {
		t.Error("a wall hit must not touch the rack")
	}
	pos := sess.Ball.Position()
	if math.Abs(pos.X+0.6) > 0.02 || math.Abs(pos.Z) > 0.02 {
		t.Errorf("ball should be back at spawn, at %v", pos)
	}
}

func TestDropIntoCupScores(t *testing.T) {
	f := newFixture(t, testRoom(t), config.DefaultBeerPongConfig())
	sess := f.start(t, "table")

	target := sess.Rack.CupPoses()[0].Position
	f.world.Teleport(sess.Ball.ID(), core.NewPose(target.Add(core.V3(0, 0.3, 0)), core.Identity))
	f.world.SetVelocity(sess.Ball.ID(), core.Zero3, core.Zero3)
	f.run(0.5, sess.Ball)

	if sess.Score.Hits() != 1 || sess.Rack.Count() != 5 {
		t.Fatalf("hits=%d count=%d, expected 1 and 5", sess.Score.Hits(), sess.Rack.Count())
	}
	if sess.Score.Misses() != 0 {
		t.Errorf("misses = %d, a goal reset is not a miss", sess.Score.Misses())
	}
	if f.feed.Count(audio.CueScore) != 1 {
		t.Error("expected one score cue")
	}
}
