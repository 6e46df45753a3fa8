package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("New frame should be empty")
	}

	f.Set(ActionLeft)
	if !f.Has(ActionLeft) {
		t.Error("Has(ActionLeft) should be true after Set")
	}
	if f.Has(ActionRight) {
		t.Error("Has(ActionRight) should be false")
	}
	if f.Empty() {
		t.Error("Frame with an action should not be empty")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionRotate) {
		t.Error("Zero frame should have no actions")
	}
	f.Set(ActionRotate)
	if !f.Has(ActionRotate) {
		t.Error("Set on a zero frame should allocate the action map")
	}
}

func TestFrameOf(t *testing.T) {
	if !FrameOf(ActionNone).Empty() {
		t.Error("FrameOf(ActionNone) should be empty")
	}
	if !FrameOf(ActionDown).Has(ActionDown) {
		t.Error("FrameOf(ActionDown) should contain ActionDown")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionLeft, "Left"},
		{ActionRight, "Right"},
		{ActionDown, "Down"},
		{ActionRotate, "Rotate"},
		{ActionPause, "Pause"},
		{ActionRestart, "Restart"},
		{ActionQuit, "Quit"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}
