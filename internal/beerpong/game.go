// Package beerpong implements the beer pong game: table placement, the cup
// rack, ball resets, cup and boundary sensors and the scoreboard, plus the
// arcade loop that drives them from terminal input.
package beerpong

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mr-beerpong/internal/audio"
	"github.com/vovakirdan/mr-beerpong/internal/config"
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/physics"
	"github.com/vovakirdan/mr-beerpong/internal/registry"
	"github.com/vovakirdan/mr-beerpong/internal/room"
)

// Phase is the stage of a game.
type Phase int

const (
	PhaseSelecting Phase = iota // Pointing at a table
	PhasePlaying                // Throwing
	PhaseWon                    // Rack cleared
	PhaseFailed                 // No usable table
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	default:
		return "failed"
	}
}

// Mode is a registered game variant.
type Mode struct {
	ID    string
	Title string
	Cups  int
}

var (
	ModeStandard = Mode{ID: "beerpong", Title: "Beer Pong", Cups: 6}
	ModeQuick    = Mode{ID: "beerpong_quick", Title: "Beer Pong (Quick)", Cups: 3}
)

// Player viewpoint used for the pointer during table selection.
var eyePosition = core.V3(0, 1.4, 0.6)

const (
	pointerStepDeg = 2.0
	pointerMinDeg  = -80.0
	pointerMaxDeg  = 10.0
	substeps       = 4
)

// Game implements registry.Game.
type Game struct {
	mode   Mode
	env    registry.Env
	logger *log.Logger

	runtime    core.RuntimeConfig
	cfg        config.BeerPongConfig
	rng        *rand.Rand
	world      *physics.World
	sched      *Scheduler
	feed       *audio.Feed
	player     audio.Player
	setup      *TableGameSetup
	selector   *TableSelector
	session    *Session
	difficulty *config.DifficultyManager
	gravity    float64

	phase    Phase
	paused   bool
	tick     int
	yawDeg   float64 // Pointer heading; 0 looks down -Z
	pitchDeg float64
	aimDeg   float64
	power    float64 // 0..1
	err      error
}

// New creates a game for the given mode and environment.
func New(mode Mode, env registry.Env) *Game {
	if env.Logger == nil {
		env.Logger = log.Default()
	}
	return &Game{mode: mode, env: env, logger: env.Logger.WithPrefix(mode.ID)}
}

func (g *Game) ID() string    { return g.mode.ID }
func (g *Game) Title() string { return g.mode.Title }

// Reset builds a fresh world over the room and returns to table selection.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.env.Config
	g.cfg.Rack.InitialCups = g.mode.Cups
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.sched = NewScheduler()
	g.feed = audio.NewFeed(g.cfg.Audio.FeedSize)
	g.player = g.feed
	if g.env.Audio != nil {
		g.player = audio.Multi{g.feed, g.env.Audio}
	}
	physCfg := physics.DefaultConfig()
	g.gravity = physCfg.Gravity
	g.world = physics.New(g.env.Room, physCfg, g.logger)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.session = nil
	g.phase = PhaseSelecting
	g.paused = false
	g.tick = 0
	g.aimDeg = 0
	g.power = 0.5
	g.err = nil

	setup, err := NewTableGameSetup(SetupDeps{
		World:     g.world,
		Room:      g.env.Room,
		Scheduler: g.sched,
		Audio:     g.player,
		Config:    g.cfg,
		Logger:    g.logger,
	})
	if err != nil {
		g.fail(err)
		return
	}
	g.setup = setup
	g.selector = NewTableSelector(g.world, g.onTableSelected, g.logger.WithPrefix("selector"))

	g.player.Play(audio.CueMusic, eyePosition, g.cfg.Audio.MusicVolume)

	tables := g.env.Room.Tables()
	if len(tables) == 0 {
		g.fail(fmt.Errorf("%w: room %q has no table or desk", ErrNotATable, g.env.Room.Name))
		return
	}
	g.PointAt(tables[0].Pose.Position)
}

func (g *Game) fail(err error) {
	g.err = err
	g.phase = PhaseFailed
	g.logger.Error("cannot start", "err", err)
}

func (g *Game) onTableSelected(table room.Surface) {
	sess, err := g.setup.Start(table)
	if err != nil {
		g.fail(err)
		return
	}
	g.session = sess
	g.phase = PhasePlaying
}

// PointAt turns the selection pointer towards a world point.
func (g *Game) PointAt(target core.Vec3) {
	d := target.Sub(eyePosition)
	g.yawDeg = math.Atan2(d.X, -d.Z) * 180 / math.Pi
	g.pitchDeg = math.Atan2(d.Y, math.Hypot(d.X, d.Z)) * 180 / math.Pi
}

// PointerRay returns the current selection ray.
func (g *Game) PointerRay() room.Ray {
	yaw := core.Deg2Rad(g.yawDeg)
	pitch := core.Deg2Rad(g.pitchDeg)
	dir := core.V3(math.Sin(yaw)*math.Cos(pitch), math.Sin(pitch), -math.Cos(yaw)*math.Cos(pitch))
	return room.Ray{Origin: eyePosition, Direction: dir}
}

// SelectTable starts play on the surface with the given ID. Unknown and
// non-playable surfaces are rejected; the pointer is not involved, so a
// surface hidden behind another one can still be chosen. It reports whether
// the game entered play.
func (g *Game) SelectTable(id string) bool {
	if g.phase != PhaseSelecting {
		return false
	}
	table, err := g.env.Room.Surface(id)
	if err != nil {
		g.logger.Warn("select table", "err", err)
		return false
	}
	if !table.Label.Playable() {
		g.logger.Warn("select table", "surface", id, "label", table.Label)
		return false
	}
	return g.selector.Select(table) && g.phase == PhasePlaying
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && g.phase == PhasePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	switch g.phase {
	case PhaseSelecting:
		g.stepSelecting(in)
	case PhasePlaying:
		g.stepPlaying(in)
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) stepSelecting(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		g.yawDeg -= pointerStepDeg
	}
	if in.Has(core.ActionRight) {
		g.yawDeg += pointerStepDeg
	}
	if in.Has(core.ActionUp) {
		g.pitchDeg = math.Min(g.pitchDeg+pointerStepDeg, pointerMaxDeg)
	}
	if in.Has(core.ActionDown) {
		g.pitchDeg = math.Max(g.pitchDeg-pointerStepDeg, pointerMinDeg)
	}
	pinch := in.Has(core.ActionPinch) || in.Has(core.ActionThrow)
	g.selector.Update(Pointer{Ray: g.PointerRay(), Pinch: pinch})
}

func (g *Game) stepPlaying(in core.InputFrame) {
	tc := g.cfg.Throw
	if in.Has(core.ActionLeft) {
		g.aimDeg = math.Max(g.aimDeg-tc.AimStepDeg, -tc.MaxAimDeg)
	}
	if in.Has(core.ActionRight) {
		g.aimDeg = math.Min(g.aimDeg+tc.AimStepDeg, tc.MaxAimDeg)
	}
	if in.Has(core.ActionUp) {
		g.power = math.Min(g.power+tc.PowerStep, 1)
	}
	if in.Has(core.ActionDown) {
		g.power = math.Max(g.power-tc.PowerStep, 0)
	}
	if in.Has(core.ActionThrow) && g.session.Ball.Ready() {
		g.session.Ball.Throw(g.ThrowVelocity())
	}

	dt := g.runtime.Dt()
	for range substeps {
		g.world.Step(dt / substeps)
	}
	g.sched.Step(dt)
	g.session.Ball.Update(dt)

	if g.session.Rack.Won() {
		g.phase = PhaseWon
	}
}

// ThrowVelocity turns the current aim and power into a launch velocity.
// Each call draws wobble from the seeded generator.
func (g *Game) ThrowVelocity() core.Vec3 {
	tc := g.cfg.Throw
	p := g.session.Placement
	up := g.session.Table.Normal()

	toward := p.Rack.Position.Sub(p.Ball.Position)
	toward = toward.Sub(up.Scale(toward.Dot(up))).Normalize()

	score := g.session.Score
	throws := g.session.Ball.Throws()
	wobbleDeg := g.difficulty.Wobble(tc.WobbleDeg, score.Hits(), throws)
	wobbleFrac := g.difficulty.Wobble(tc.WobbleFrac, score.Hits(), throws)

	yaw := core.Deg2Rad(g.aimDeg + wobbleDeg*(2*g.rng.Float64()-1))
	heading := core.AxisAngle(up, -yaw).Rotate(toward)

	speed := core.Lerp(tc.MinSpeed, tc.MaxSpeed, g.power)
	speed *= 1 + wobbleFrac*(2*g.rng.Float64()-1)

	elev := core.Deg2Rad(tc.AngleDeg)
	return heading.Scale(speed * math.Cos(elev)).Add(up.Scale(speed * math.Sin(elev)))
}

// AimAt sets aim and power so that a throw without wobble passes through
// target. It reports false when the target cannot be reached at the
// configured elevation and speed range; aim and power are clamped anyway.
func (g *Game) AimAt(target core.Vec3) bool {
	if g.session == nil {
		return false
	}
	tc := g.cfg.Throw
	p := g.session.Placement
	up := g.session.Table.Normal()

	toward := p.Rack.Position.Sub(p.Ball.Position)
	toward = toward.Sub(up.Scale(toward.Dot(up))).Normalize()
	right := toward.Cross(up)

	d := target.Sub(g.session.Ball.Position())
	dy := d.Dot(up)
	flat := d.Sub(up.Scale(dy))
	r := flat.Len()

	elev := core.Deg2Rad(tc.AngleDeg)
	cos := math.Cos(elev)
	denom := 2 * cos * cos * (r*math.Tan(elev) - dy)
	if r < 1e-6 || denom <= 0 {
		return false
	}
	speed := math.Sqrt(g.gravity * r * r / denom)
	aim := math.Atan2(flat.Dot(right), flat.Dot(toward)) * 180 / math.Pi

	power := 1.0
	if span := tc.MaxSpeed - tc.MinSpeed; span > 0 {
		power = (speed - tc.MinSpeed) / span
	}
	g.SetAim(aim, power)
	return power >= 0 && power <= 1 && math.Abs(aim) <= tc.MaxAimDeg
}

// SetAim sets aim (degrees, positive to the right) and power (0..1) directly.
func (g *Game) SetAim(aimDeg, power float64) {
	g.aimDeg = core.ClampF(aimDeg, -g.cfg.Throw.MaxAimDeg, g.cfg.Throw.MaxAimDeg)
	g.power = core.ClampF(power, 0, 1)
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Session returns the active session, or nil while selecting.
func (g *Game) Session() *Session { return g.session }

// Err returns the error that stopped the game, if any.
func (g *Game) Err() error { return g.err }

// Feed returns the audio caption feed.
func (g *Game) Feed() *audio.Feed { return g.feed }

// Elapsed returns simulated seconds since Reset.
func (g *Game) Elapsed() float64 { return g.sched.Now() }

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.phase == PhaseWon || g.phase == PhaseFailed,
		Paused:   g.paused,
	}
	if g.session != nil {
		st.Score = g.session.Score.Points()
	}
	return st
}

// Summary implements registry.Reporter.
func (g *Game) Summary() core.SessionSummary {
	if g.session == nil {
		return core.SessionSummary{}
	}
	s := g.session
	return core.SessionSummary{
		TableLabel: s.Table.Label.String(),
		Hits:       s.Score.Hits(),
		Misses:     s.Score.Misses(),
		CupsLeft:   s.Rack.Count(),
		Won:        s.Rack.Won(),
		Score:      s.Score.Points(),
		Duration:   g.sched.Now() - s.StartedAt,
	}
}

// init registers the standard and quick modes.
func init() {
	for _, m := range []Mode{ModeStandard, ModeQuick} {
		registry.Register(m.ID, m.Title, func(env registry.Env) registry.Game {
			return New(m, env)
		})
	}
}
