package beerpong

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// VictoryText replaces the hit display once the rack is cleared.
const VictoryText = "Congratulations!\nYou Win!"

// Scoring weights for the arcade score.
const (
	PointsPerHit  = 100
	PointsPerMiss = 25
)

// HitReceipt proves a hit was recorded on the ScoreCounter. The rack only
// accepts hit notifications that carry one, so a hit can never reach the
// rack before it is counted. The zero value is invalid.
type HitReceipt struct {
	seq int
}

// Valid reports whether the receipt was issued by RecordHit.
func (r HitReceipt) Valid() bool {
	return r.seq > 0
}

// ScoreView is what the scoreboard displays.
type ScoreView struct {
	Hits          int
	Misses        int
	Won           bool
	HitsText      string
	MissesText    string
	MissesVisible bool
}

// ScoreCounter holds hit and miss counts for one session. Once victory is
// declared the counters are frozen and further updates are ignored.
type ScoreCounter struct {
	hits   int
	misses int
	won    bool
	logger *log.Logger
}

// NewScoreCounter creates a counter starting at zero.
func NewScoreCounter(logger *log.Logger) *ScoreCounter {
	return &ScoreCounter{logger: logger}
}

// RecordHit counts a hit and returns the receipt required by CupRack.OnCupHit.
// After victory it returns the zero receipt.
func (s *ScoreCounter) RecordHit() HitReceipt {
	if s.won {
		s.logger.Debug("hit ignored after victory")
		return HitReceipt{}
	}
	s.hits++
	s.logger.Debug("hit", "hits", s.hits)
	return HitReceipt{seq: s.hits}
}

// AddMiss counts a miss.
func (s *ScoreCounter) AddMiss() {
	if s.won {
		s.logger.Debug("miss ignored after victory")
		return
	}
	s.misses++
	s.logger.Debug("miss", "misses", s.misses)
}

// DeclareVictory freezes the counters and switches the display to the
// victory banner. Repeated calls are no-ops.
func (s *ScoreCounter) DeclareVictory() {
	if s.won {
		return
	}
	s.won = true
	s.logger.Info("victory", "hits", s.hits, "misses", s.misses)
}

func (s *ScoreCounter) Hits() int   { return s.hits }
func (s *ScoreCounter) Misses() int { return s.misses }
func (s *ScoreCounter) Won() bool   { return s.won }

// Points returns the arcade score, never below zero.
func (s *ScoreCounter) Points() int {
	return max(0, s.hits*PointsPerHit-s.misses*PointsPerMiss)
}

// Snapshot returns the current display state.
func (s *ScoreCounter) Snapshot() ScoreView {
	v := ScoreView{
		Hits:          s.hits,
		Misses:        s.misses,
		Won:           s.won,
		HitsText:      fmt.Sprintf("HITS: %d", s.hits),
		MissesText:    fmt.Sprintf("MISSES: %d", s.misses),
		MissesVisible: true,
	}
	if s.won {
		v.HitsText = VictoryText
		v.MissesVisible = false
	}
	return v
}
