package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with uncolored spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, '@', ColorHead)
	if s.Get(5, 5) != '@' {
		t.Errorf("Get(5, 5) = %q, expected '@'", s.Get(5, 5))
	}
	if c := s.GetCell(5, 5); c.Color != ColorHead {
		t.Errorf("GetCell(5, 5).Color = %v, expected head", c.Color)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A', ColorText)
	s.Set(100, 0, 'A', ColorText)
	s.Set(0, -1, 'A', ColorText)
	s.Set(0, 100, 'A', ColorText)

	// Out of bounds get should return space
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.GetCell(100, 0).Color != ColorDefault {
		t.Error("Out of bounds GetCell should be uncolored")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.Set(x, y, 'X', ColorBody)
		}
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Errorf("After Clear, expected blank at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	end := s.DrawText(2, 1, "Hello", ColorText)

	if end != 7 {
		t.Errorf("DrawText returned %d, expected 7", end)
	}
	for i, ch := range "Hello" {
		if c := s.GetCell(2+i, 1); c.Rune != ch || c.Color != ColorText {
			t.Errorf("DrawText: expected %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello", ColorText) // Only "He" should fit
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}

	// Multi-byte runes take one column each
	s.DrawText(0, 3, "→→", ColorPath)
	if s.Get(0, 3) != '→' || s.Get(1, 3) != '→' || s.Get(2, 3) != ' ' {
		t.Errorf("Row 3 = %q", s.Row(3))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorText)

	// "Hi" is 2 chars, centered in 20 chars should start at position 9
	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	r := NewRect(1, 1, 5, 4)
	s.DrawBox(r, ColorGrid)

	// Check corners
	corners := map[[2]int]rune{{1, 1}: '┌', {5, 1}: '┐', {1, 4}: '└', {5, 4}: '┘'}
	for p, want := range corners {
		if got := s.Get(p[0], p[1]); got != want {
			t.Errorf("Corner at %v should be %q, got %q", p, want, got)
		}
	}

	// Check horizontal edges
	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("Horizontal edges should be '─' at x=%d", x)
		}
	}

	// Check vertical edges
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("Vertical edges should be '│' at y=%d", y)
		}
	}

	if s.GetCell(1, 1).Color != ColorGrid {
		t.Error("Box should use the given color")
	}
	if s.Get(3, 2) != ' ' {
		t.Error("DrawBox should not fill the inside")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA", ColorText)
	s.DrawText(0, 1, "BBBBB", ColorBody)
	s.DrawText(0, 2, "CCCCC", ColorFood)

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello", ColorText)
	s.DrawText(0, 5, "World", ColorText)

	// Resize smaller - should preserve top-left content
	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}

	row0 := s.Row(0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	// Resize larger - old content should still be there
	s.Resize(15, 8)
	row0 = s.Row(0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
	if s.GetCell(0, 0).Color != ColorText {
		t.Error("Colors should be preserved")
	}
	if s.Row(5) != strings.Repeat(" ", 15) {
		t.Errorf("Row 5 was cropped away and should be blank, got %q", s.Row(5))
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test", ColorText)

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") {
		t.Errorf("Row(2) should start with 'Test', got %q", row)
	}
	if len(row) != 10 {
		t.Errorf("Row length should be 10, got %d", len(row))
	}

	// Out of bounds row
	if out := s.Row(-1); out != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", out)
	}
}
