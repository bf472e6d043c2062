package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	tests := []struct {
		name     string
		r        Rect
		n        int
		expected Rect
	}{
		{"border", NewRect(0, 0, 10, 6), 1, NewRect(1, 1, 8, 4)},
		{"none", NewRect(3, 4, 5, 5), 0, NewRect(3, 4, 5, 5)},
		{"collapses", NewRect(0, 0, 3, 3), 2, NewRect(2, 2, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Inset(tc.n); got != tc.expected {
				t.Errorf("Inset(%d) = %+v, expected %+v", tc.n, got, tc.expected)
			}
		})
	}
}

func TestCentered(t *testing.T) {
	tests := []struct {
		name                string
		width, height, w, h int
		expected            Rect
	}{
		{"fits", 80, 24, 34, 18, NewRect(23, 3, 34, 18)},
		{"exact", 10, 5, 10, 5, NewRect(0, 0, 10, 5)},
		{"too big", 20, 10, 34, 18, NewRect(0, 0, 34, 18)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Centered(tc.width, tc.height, tc.w, tc.h); got != tc.expected {
				t.Errorf("Centered() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestRuntimeConfigSpeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickRate = 30
	cfg.MaxRate = 100

	cfg.Faster()
	if cfg.TickRate != 60 {
		t.Errorf("Faster() = %d, expected 60", cfg.TickRate)
	}
	cfg.Faster()
	if cfg.TickRate != 100 {
		t.Errorf("Faster() should stop at MaxRate, got %d", cfg.TickRate)
	}

	cfg.TickRate = 3
	cfg.Slower()
	cfg.Slower()
	if cfg.TickRate != 1 {
		t.Errorf("Slower() should stop at 1, got %d", cfg.TickRate)
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("New frame should be empty")
	}

	f.Set(ActionPause)
	f.Set(ActionFaster)
	if !f.Has(ActionPause) || !f.Has(ActionFaster) || f.Has(ActionQuit) {
		t.Errorf("Unexpected actions: %d set", f.Len())
	}

	if f.Len() != 2 {
		t.Errorf("Len() = %d, want 2", f.Len())
	}

	copied := f
	copied.Set(ActionQuit)
	if f.Has(ActionQuit) {
		t.Error("Set on a copy must not change the original frame")
	}

	f.Clear()
	if !f.Empty() || f.Has(ActionPause) {
		t.Error("Clear should remove every action")
	}

	var zero InputFrame
	if zero.Has(ActionPause) {
		t.Error("Zero frame should have no actions")
	}
	zero.Set(ActionStep)
	if !zero.Has(ActionStep) {
		t.Error("Set on a zero frame should work")
	}
}

func TestActionLeaves(t *testing.T) {
	for a := ActionNone; a <= ActionQuit; a++ {
		want := a == ActionQuit || a == ActionBack
		if a.Leaves() != want {
			t.Errorf("%s.Leaves() = %t, want %t", a, a.Leaves(), want)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionNextSolver.String() != "NextSolver" {
		t.Errorf("ActionNextSolver.String() = %q", ActionNextSolver.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
