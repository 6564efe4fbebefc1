package beerpong

import (
	"fmt"

	"github.com/vovakirdan/mr-beerpong/internal/core"
)

// maxWaitSeconds bounds how long Autoplay waits for one throw to resolve.
const maxWaitSeconds = 10

// Autoplay drives the game without a player: it selects tableID (the first
// table when empty) and throws at the front cup until the rack is cleared
// or maxThrows throws are spent. Throws keep the configured wobble, so the
// outcome depends on the seed passed to Reset.
func (g *Game) Autoplay(tableID string, maxThrows int) (core.SessionSummary, error) {
	if g.phase == PhaseFailed {
		return core.SessionSummary{}, g.err
	}

	if g.phase == PhaseSelecting {
		if tableID == "" {
			tableID = g.env.Room.Tables()[0].ID
		}
		if !g.SelectTable(tableID) {
			if g.err != nil {
				return core.SessionSummary{}, g.err
			}
			return core.SessionSummary{}, fmt.Errorf("%w: %q", ErrNotATable, tableID)
		}
	}

	throw := core.NewInputFrame()
	throw.Set(core.ActionThrow)
	maxWait := maxWaitSeconds * max(g.runtime.TickRate, 1)

	for n := 0; n < maxThrows && g.phase == PhasePlaying; n++ {
		cups := g.session.Rack.CupPoses()
		if len(cups) == 0 {
			break
		}
		g.AimAt(cups[0].Position)
		g.Step(throw)

		ball := g.session.Ball
		for i := 0; i < maxWait && g.phase == PhasePlaying && !ball.Ready(); i++ {
			g.Step(core.InputFrame{})
		}
		g.logger.Debug("autoplay throw", "n", n+1, "hits", g.session.Score.Hits(), "misses", g.session.Score.Misses())
	}

	return g.Summary(), nil
}
