package audio

import "github.com/vovakirdan/mr-beerpong/internal/core"

// Event is one played cue.
type Event struct {
	Seq    uint64
	Cue    Cue
	At     core.Vec3
	Volume float64
}

// Feed keeps the most recent cues so the HUD can show them as captions.
// It is not safe for concurrent use; the game loop is single-threaded.
type Feed struct {
	events []Event
	limit  int
	seq    uint64
	counts map[Cue]int
}

// NewFeed creates a feed that retains up to limit events.
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = 8
	}
	return &Feed{limit: limit, counts: make(map[Cue]int)}
}

// Play implements Player.
func (f *Feed) Play(cue Cue, at core.Vec3, volume float64) {
	f.seq++
	f.counts[cue]++
	f.events = append(f.events, Event{Seq: f.seq, Cue: cue, At: at, Volume: volume})
	if len(f.events) > f.limit {
		f.events = f.events[len(f.events)-f.limit:]
	}
}

// Recent returns retained events, oldest first.
func (f *Feed) Recent() []Event {
	out := make([]Event, len(f.events))
	copy(out, f.events)
	return out
}

// Last returns the newest event.
func (f *Feed) Last() (Event, bool) {
	if len(f.events) == 0 {
		return Event{}, false
	}
	return f.events[len(f.events)-1], true
}

// Count returns how many times cue was played since creation.
func (f *Feed) Count(cue Cue) int {
	return f.counts[cue]
}
