package beerpong

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mr-beerpong/internal/audio"
	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/engine"
	"github.com/vovakirdan/mr-beerpong/internal/room"
)

var (
	ErrNotATable = errors.New("beerpong: surface is not a table or desk")
	ErrNoExtent  = errors.New("beerpong: surface has no planar extent")
)

// Placement constants in table-local units.
const (
	rackLift         = 0.05 // Rack origin above the resolved surface height
	ballLift         = 0.05
	fixedBallHeight  = 0.1 // Ball height when raycast placement is off
	corralDrop       = 0.02
	scoreboardBehind = 0.25
	scoreboardRaise  = 0.3
)

// Corral box size: planar extent, then height along the table normal.
var corralSize = core.V3(0.12, 0.12, 0.1)

// BoxPlacement is an oriented box in world space.
type BoxPlacement struct {
	Name string
	Pose core.Pose
	Size core.Vec3 // Full extents in the box's local frame
}

// Placement is the computed layout of a session on one table.
type Placement struct {
	IsWide     bool
	LongDim    float64
	Offset     float64
	CupLocal   core.Vec3 // Table-local rack anchor including its height
	BallLocal  core.Vec3 // Table-local ball spawn including its height
	Rack       core.Pose
	Ball       core.Pose
	Corral     BoxPlacement
	Scoreboard core.Pose // +Z faces the ball spawn
	Boundaries [3]BoxPlacement
}

// SetupDeps are the collaborators of a TableGameSetup.
type SetupDeps struct {
	World     engine.World
	Room      *room.Room
	Scheduler *Scheduler
	Audio     audio.Player
	Config    config.BeerPongConfig
	Logger    *log.Logger
}

// TableGameSetup places a game session on a selected table.
type TableGameSetup struct {
	world  engine.World
	room   *room.Room
	sched  *Scheduler
	audio  audio.Player
	cfg    config.BeerPongConfig
	layout LayoutTable
	logger *log.Logger
}

// NewTableGameSetup validates the rack geometry and returns a setup.
func NewTableGameSetup(d SetupDeps) (*TableGameSetup, error) {
	layout, err := NewLayoutTable(d.Config.Rack.CupDiameter, d.Config.Rack.SpacingRatio)
	if err != nil {
		return nil, err
	}
	if d.Audio == nil {
		d.Audio = audio.Nop{}
	}
	if d.Scheduler == nil {
		d.Scheduler = NewScheduler()
	}
	return &TableGameSetup{
		world:  d.World,
		room:   d.Room,
		sched:  d.Scheduler,
		audio:  d.Audio,
		cfg:    d.Config,
		layout: layout,
		logger: d.Logger,
	}, nil
}

// Layout returns the cup layout table in use.
func (s *TableGameSetup) Layout() LayoutTable {
	return s.layout
}

// Plan computes where everything goes on the table. The player stands at
// the negative end of the long axis; the rack sits at the positive end with
// its rows running away from the player.
func (s *TableGameSetup) Plan(table room.Surface) Placement {
	w, d := table.Extent.W, table.Extent.D
	p := Placement{IsWide: w > d}

	longAxis := core.V3(0, 1, 0)
	p.LongDim = d
	if p.IsWide {
		longAxis = core.V3(1, 0, 0)
		p.LongDim = w
	}
	p.Offset = p.LongDim/2 - s.cfg.Placement.EdgeMargin

	cupAnchor := longAxis.Scale(p.Offset)
	ballAnchor := longAxis.Scale(-p.Offset)

	var cupZ, ballZ float64
	if s.cfg.Placement.UseRaycast {
		cupZ = s.surfaceHeight(table, cupAnchor) + rackLift
		ballZ = s.surfaceHeight(table, ballAnchor) + ballLift
	} else {
		cupZ = s.cfg.Placement.FallbackHeight + rackLift
		ballZ = fixedBallHeight
	}
	p.CupLocal = cupAnchor.Add(core.V3(0, 0, cupZ))
	p.BallLocal = ballAnchor.Add(core.V3(0, 0, ballZ))

	up := table.Normal()
	rows := table.Pose.TransformDir(longAxis)
	lateral := up.Cross(rows)
	p.Rack = core.NewPose(table.Pose.TransformPoint(p.CupLocal), core.FromAxes(lateral, up, rows))
	p.Ball = core.NewPose(table.Pose.TransformPoint(p.BallLocal), core.Identity)

	p.Corral = BoxPlacement{
		Name: "corral",
		Pose: table.Pose.Mul(core.NewPose(p.BallLocal.Sub(core.V3(0, 0, corralDrop)), core.Identity)),
		Size: corralSize,
	}

	dir := cupAnchor.Sub(ballAnchor).Normalize()
	boardLocal := cupAnchor.Add(dir.Scale(scoreboardBehind)).Add(core.V3(0, 0, scoreboardRaise))
	boardWorld := table.Pose.TransformPoint(boardLocal)
	p.Scoreboard = core.NewPose(boardWorld, lookRotation(p.Ball.Position.Sub(boardWorld), up))

	p.Boundaries = s.boundaries(table, p.IsWide)
	return p
}

// boundaries returns the far wall and the two side walls. The player's end
// stays open.
func (s *TableGameSetup) boundaries(table room.Surface, isWide bool) [3]BoxPlacement {
	w, d := table.Extent.W, table.Extent.D
	h := s.cfg.Boundary.WallHeight
	t := s.cfg.Boundary.Thickness

	wall := func(name string, pos, size core.Vec3) BoxPlacement {
		return BoxPlacement{
			Name: name,
			Pose: table.Pose.Mul(core.NewPose(pos, core.Identity)),
			Size: size,
		}
	}

	if isWide {
		return [3]BoxPlacement{
			wall("far", core.V3(w/2, 0, h/2), core.V3(t, d, h)),
			wall("side-a", core.V3(0, d/2, h/2), core.V3(w, t, h)),
			wall("side-b", core.V3(0, -d/2, h/2), core.V3(w, t, h)),
		}
	}
	return [3]BoxPlacement{
		wall("far", core.V3(0, d/2, h/2), core.V3(w, t, h)),
		wall("side-a", core.V3(w/2, 0, h/2), core.V3(t, d, h)),
		wall("side-b", core.V3(-w/2, 0, h/2), core.V3(t, d, h)),
	}
}

// surfaceHeight casts down onto the room from above a table-local anchor
// and returns the hit height in table-local Z plus the clearance offset.
func (s *TableGameSetup) surfaceHeight(table room.Surface, local core.Vec3) float64 {
	pc := s.cfg.Placement
	origin := table.Pose.TransformPoint(local).Add(core.Up.Scale(pc.RaycastStart))
	hit, ok := s.world.Raycast(room.Ray{Origin: origin, Direction: core.Down}, pc.RaycastDistance)
	if !ok {
		s.logger.Debug("placement raycast missed; using fallback", "anchor", local)
		return pc.FallbackHeight
	}
	return table.Pose.InverseTransformPoint(hit.Point).Z + pc.SurfaceHeightOffset
}

// lookRotation builds a rotation whose +Z points along forward.
func lookRotation(forward, up core.Vec3) core.Quat {
	f := forward.Normalize()
	x := up.Cross(f).Normalize()
	if x == (core.Vec3{}) {
		return core.Identity
	}
	return core.FromAxes(x, f.Cross(x), f)
}

// Session is one game in progress on a table.
type Session struct {
	Table      room.Surface
	Placement  Placement
	Score      *ScoreCounter
	Ball       *BallController
	Rack       *CupRack
	Corral     engine.EntityID // Zero when disabled
	Scoreboard engine.EntityID // Zero when disabled
	Walls      []engine.EntityID
	StartedAt  float64 // Scheduler time
}

// Start hides the other surfaces, spawns every game object on the table and
// plays the start cue.
func (s *TableGameSetup) Start(table room.Surface) (*Session, error) {
	if !table.Label.Playable() {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotATable, table.ID, table.Label)
	}
	if !table.HasExtent() {
		return nil, fmt.Errorf("%w: %s", ErrNoExtent, table.ID)
	}

	s.hideOtherSurfaces(table.ID)
	p := s.Plan(table)
	s.logger.Info("setting up table", "table", table.ID, "wide", p.IsWide, "offset", p.Offset)

	score := NewScoreCounter(s.logger.WithPrefix("score"))
	ball := NewBallController(BallDeps{
		World:     s.world,
		Scheduler: s.sched,
		Score:     score,
		Audio:     s.audio,
		Config:    s.cfg.Ball,
		Logger:    s.logger.WithPrefix("ball"),
	}, p.Ball)
	rack := NewCupRack(RackDeps{
		World:  s.world,
		Layout: s.layout,
		Pose:   p.Rack,
		Config: s.cfg.Rack,
		Score:  score,
		Ball:   ball,
		Audio:  s.audio,
		Logger: s.logger.WithPrefix("rack"),
	})
	rack.Spawn(s.cfg.Rack.InitialCups)

	sess := &Session{
		Table:     table,
		Placement: p,
		Score:     score,
		Ball:      ball,
		Rack:      rack,
		StartedAt: s.sched.Now(),
	}

	if s.cfg.Placement.Corral {
		sess.Corral = s.world.Spawn(engine.Spec{
			Kind:  engine.KindCorral,
			Name:  p.Corral.Name,
			Pose:  p.Corral.Pose,
			Shape: engine.ShapeBox,
			Size:  p.Corral.Size,
		})
	}
	if s.cfg.Placement.Scoreboard {
		sess.Scoreboard = s.world.Spawn(engine.Spec{
			Kind:    engine.KindScoreboard,
			Name:    "scoreboard",
			Pose:    p.Scoreboard,
			Shape:   engine.ShapeMarker,
			Visible: true,
		})
	}

	wallLogger := s.logger.WithPrefix("boundary")
	for _, b := range p.Boundaries {
		id := s.world.Spawn(engine.Spec{
			Kind:     engine.KindBoundary,
			Name:     b.Name,
			Pose:     b.Pose,
			Shape:    engine.ShapeBox,
			Size:     b.Size,
			Trigger:  true,
			Observer: NewBoundaryTrigger(b.Name, ball, wallLogger),
		})
		sess.Walls = append(sess.Walls, id)
	}

	s.audio.Play(audio.CueGameStart, table.Pose.Position, 1)
	return sess, nil
}

func (s *TableGameSetup) hideOtherSurfaces(keep string) {
	if s.room == nil {
		return
	}
	for _, surf := range s.room.Surfaces() {
		if surf.ID != keep {
			s.world.SetSurfaceVisible(surf.ID, false)
		}
	}
}
