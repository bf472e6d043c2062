package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/snakebot/internal/arena"
	"github.com/vovakirdan/snakebot/internal/core"
	"github.com/vovakirdan/snakebot/internal/grid"
	"github.com/vovakirdan/snakebot/internal/registry"
	"github.com/vovakirdan/snakebot/internal/spectate"
)

// Board cells are two characters wide so they come out roughly square.
const cellWidth = 2

const hudWidth = 24

var arrows = [4]rune{grid.Up: '↑', grid.Down: '↓', grid.Left: '←', grid.Right: '→'}

// boardBox returns the size of the bordered board on screen.
func boardBox(size grid.Size) (w, h int) {
	return size.W*cellWidth + 2, size.H + 2
}

// DrawBoard draws the frame's board with the border's top-left corner at
// (x, y). Planned paths are drawn over empty cells only.
func DrawBoard(s *core.Screen, x, y int, f spectate.Frame, showPaths bool) {
	v := f.View
	w, h := boardBox(v.Size)
	s.DrawBox(core.NewRect(x, y, w, h), core.ColorDim)

	for i, c := range v.Cells {
		p := v.Size.At(i)
		r, color := glyph(c, p == v.Tail)
		sx, sy := x+1+p.X*cellWidth, y+1+p.Y
		s.Set(sx, sy, r, color)
		if c.IsSnake() {
			s.Set(sx+1, sy, r, color)
		}
	}

	if showPaths {
		for _, tr := range f.Traces {
			p := tr.Start
			for i, d := range tr.Path {
				if i > 0 && v.Size.Contains(p) && v.At(p).Kind == grid.Empty {
					s.Set(x+1+p.X*cellWidth, y+1+p.Y, arrows[d], core.ColorPath)
				}
				p = p.Add(d)
			}
		}
	}

	if f.Summary.State.Over() {
		banner := " " + strings.ToUpper(string(f.Summary.State)) + " "
		color := core.ColorAlert
		if f.Summary.State == arena.StateWon {
			color = core.ColorGood
		}
		s.DrawText(x+(w-len(banner))/2, y+h/2, banner, color)
	}
}

func glyph(c grid.Cell, tail bool) (rune, core.Color) {
	switch c.Kind {
	case grid.Food:
		return '●', core.ColorFood
	case grid.SnakeHead:
		return '█', core.ColorHead
	case grid.SnakeBody:
		if tail {
			return '▓', core.ColorTail
		}
		return '█', core.ColorBody
	default:
		return '·', core.ColorGrid
	}
}

// Status is what the HUD shows besides the frame itself.
type Status struct {
	Rate      int
	Paused    bool
	ShowPaths bool
	Viewers   int    // spectators watching; zero hides the line
	Notice    string // one-off message, e.g. a solver switch
}

// DrawHUD draws the statistics panel at (x, y).
func DrawHUD(s *core.Screen, x, y int, f spectate.Frame, st Status) {
	sum := f.Summary
	cells := f.View.Size.Cells()

	row := y
	line := func(label, value string, c core.Color) {
		nx := s.DrawText(x, row, fmt.Sprintf("%-8s", label), core.ColorDim)
		s.DrawText(nx, row, value, c)
		row++
	}

	s.DrawText(x, row, "S N A K E B O T", core.ColorHead)
	row += 2

	line("solver", registry.Title(sum.Solver), core.ColorText)
	state := string(sum.State)
	stateColor := core.ColorText
	switch {
	case st.Paused && !sum.State.Over():
		state, stateColor = "paused", core.ColorDim
	case sum.State == arena.StateWon:
		stateColor = core.ColorGood
	case sum.State.Over():
		stateColor = core.ColorAlert
	}
	line("state", state, stateColor)
	line("length", fmt.Sprintf("%d/%d", sum.Length, cells), core.ColorText)
	line("ticks", fmt.Sprintf("%d", sum.Ticks), core.ColorText)
	line("food", fmt.Sprintf("%d", sum.Food), core.ColorText)
	if f.Outcome != "" {
		line("plan", string(f.Outcome), core.ColorPath)
	}
	row++
	line("rate", fmt.Sprintf("%d/s", st.Rate), core.ColorText)
	line("seed", fmt.Sprintf("%d", sum.Seed), core.ColorDim)
	line("game", fmt.Sprintf("%d", f.Game), core.ColorDim)
	if st.Viewers > 0 {
		line("viewers", fmt.Sprintf("%d", st.Viewers), core.ColorDim)
	}
	paths := "off"
	if st.ShowPaths {
		paths = "on"
	}
	line("paths", paths, core.ColorDim)

	if st.Notice != "" {
		row++
		s.DrawText(x, row, st.Notice, core.ColorGood)
	}
}

// DrawFrame lays out the board and the HUD: side by side when the screen is
// wide enough, the HUD under the board otherwise.
func DrawFrame(s *core.Screen, f spectate.Frame, st Status) {
	s.Clear()
	bw, bh := boardBox(f.View.Size)

	DrawBoard(s, 0, 0, f, st.ShowPaths)
	if s.Width() >= bw+2+hudWidth {
		DrawHUD(s, bw+2, 0, f, st)
		return
	}
	DrawHUD(s, 0, bh+1, f, st)
}
