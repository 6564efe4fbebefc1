package beerpong

import "testing"

func TestScoreCounter(t *testing.T) {
	s := NewScoreCounter(quietLogger())

	r1 := s.RecordHit()
	r2 := s.RecordHit()
	s.AddMiss()

	if !r1.Valid() || !r2.Valid() || r1 == r2 {
		t.Errorf("receipts should be valid and distinct: %+v %+v", r1, r2)
	}
	if (HitReceipt{}).Valid() {
		t.Error("zero receipt must be invalid")
	}

	view := s.Snapshot()
	if view.HitsText != "HITS: 2" || view.MissesText != "MISSES: 1" {
		t.Errorf("unexpected display %q / %q", view.HitsText, view.MissesText)
	}
	if !view.MissesVisible || view.Won {
		t.Error("misses should be visible before victory")
	}
	if got := s.Points(); got != 175 {
		t.Errorf("Points() = %d, expected 175", got)
	}
}

func TestScoreVictoryFreezes(t *testing.T) {
	s := NewScoreCounter(quietLogger())
	s.RecordHit()
	s.DeclareVictory()

	if r := s.RecordHit(); r.Valid() {
		t.Error("RecordHit after victory should return the zero receipt")
	}
	s.AddMiss()
	s.DeclareVictory()

	if s.Hits() != 1 || s.Misses() != 0 {
		t.Errorf("counters changed after victory: hits=%d misses=%d", s.Hits(), s.Misses())
	}

	view := s.Snapshot()
	if view.HitsText != VictoryText {
		t.Errorf("HitsText = %q, expected victory banner", view.HitsText)
	}
	if view.MissesVisible {
		t.Error("misses should be hidden after victory")
	}
}

func TestScorePointsFloor(t *testing.T) {
	s := NewScoreCounter(quietLogger())
	for range 10 {
		s.AddMiss()
	}
	if got := s.Points(); got != 0 {
		t.Errorf("Points() = %d, expected 0", got)
	}
}
