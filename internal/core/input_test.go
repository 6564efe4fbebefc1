package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionThrow) || f.Len() != 0 {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionThrow)
	f.Set(ActionLeft)
	f.Set(ActionThrow)
	f.Set(ActionNone)
	f.Set(Action(42))
	if !f.Has(ActionThrow) || !f.Has(ActionLeft) || f.Has(ActionPinch) {
		t.Errorf("unexpected membership in %+v", f)
	}
	if f.Len() != 2 {
		t.Errorf("Len() = %d, want 2", f.Len())
	}

	f.Clear()
	if f.Has(ActionThrow) || f.Len() != 0 {
		t.Error("Clear should remove all actions")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:  "None",
		ActionPinch: "Pinch",
		ActionPause: "Pause",
		Action(-1):  "Unknown",
		Action(99):  "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, want %q", int(a), got, want)
		}
	}
}
