package beerpong

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mr-beerpong/internal/audio"
	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/physics"
	"github.com/vovakirdan/mr-beerpong/internal/room"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func flat(pos core.Vec3) core.Pose {
	return core.NewPose(pos, core.Euler(-90, 0, 0))
}

// testRoom has a floor, a wall and a 1.8 x 0.9 table whose long side runs
// along world X.
func testRoom(t *testing.T, extra ...room.Surface) *room.Room {
	t.Helper()
	surfaces := []room.Surface{
		{ID: "floor", Label: room.LabelFloor, Extent: room.Extent{W: 8, D: 8}, Pose: flat(core.Zero3)},
		{ID: "wall", Label: room.LabelWall, Extent: room.Extent{W: 8, D: 2.5}, Pose: core.NewPose(core.V3(0, 1.25, -4), core.Identity)},
		{ID: "table", Label: room.LabelTable, Extent: room.Extent{W: 1.8, D: 0.9}, Pose: flat(core.V3(0, 0.75, 0))},
	}
	r, err := room.New("test", append(surfaces, extra...))
	if err != nil {
		t.Fatalf("room.New failed: %v", err)
	}
	return r
}

type fixture struct {
	room  *room.Room
	world *physics.World
	sched *Scheduler
	feed  *audio.Feed
	setup *TableGameSetup
}

func newFixture(t *testing.T, r *room.Room, cfg config.BeerPongConfig) *fixture {
	t.Helper()
	f := &fixture{
		room:  r,
		world: physics.New(r, physics.DefaultConfig(), quietLogger()),
		sched: NewScheduler(),
		feed:  audio.NewFeed(32),
	}
	setup, err := NewTableGameSetup(SetupDeps{
		World:     f.world,
		Room:      r,
		Scheduler: f.sched,
		Audio:     f.feed,
		Config:    cfg,
		Logger:    quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewTableGameSetup failed: %v", err)
	}
	f.setup = setup
	return f
}

func (f *fixture) start(t *testing.T, tableID string) *Session {
	t.Helper()
	table, err := f.room.Surface(tableID)
	if err != nil {
		t.Fatal(err)
	}
	sess, err := f.setup.Start(table)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return sess
}

// run steps physics and the scheduler for the given simulated time.
func (f *fixture) run(seconds float64, ball *BallController) {
	const dt = 1.0 / 240
	for i := 0; i < int(seconds/dt); i++ {
		f.world.Step(dt)
		f.sched.Step(dt)
		if ball != nil {
			ball.Update(dt)
		}
	}
}

// newBareRack builds a rack and score without a ball, for state machine tests.
func newBareRack(t *testing.T) (*CupRack, *ScoreCounter, *physics.World, *audio.Feed) {
	t.Helper()
	layout, err := NewLayoutTable(0.09, 1.1)
	if err != nil {
		t.Fatal(err)
	}
	w := physics.New(testRoom(t), physics.DefaultConfig(), quietLogger())
	score := NewScoreCounter(quietLogger())
	feed := audio.NewFeed(16)
	rack := NewCupRack(RackDeps{
		World:  w,
		Layout: layout,
		Pose:   core.NewPose(core.V3(0.6, 0.82, 0), core.Identity),
		Config: config.DefaultBeerPongConfig().Rack,
		Score:  score,
		Audio:  feed,
		Logger: quietLogger(),
	})
	return rack, score, w, feed
}

func testRackConfig() config.RackConfig {
	return config.DefaultBeerPongConfig().Rack
}
