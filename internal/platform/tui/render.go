package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snakebot/internal/config"
	"github.com/vovakirdan/snakebot/internal/core"
)

// Palette maps core.Color slots to lipgloss styles.
type Palette map[core.Color]lipgloss.Style

// NewPalette builds the palette for a board theme. The text slots are fixed.
func NewPalette(theme config.Theme) Palette {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Palette{
		core.ColorDefault: lipgloss.NewStyle(),
		core.ColorHead:    fg(theme.Head).Bold(true),
		core.ColorBody:    fg(theme.Body),
		core.ColorTail:    fg(theme.Tail),
		core.ColorFood:    fg(theme.Food).Bold(true),
		core.ColorPath:    fg(theme.Path),
		core.ColorGrid:    fg(theme.Grid),
		core.ColorText:    fg("252"),
		core.ColorDim:     fg("241"),
		core.ColorAlert:   fg("203").Bold(true),
		core.ColorGood:    fg("120").Bold(true),
	}
}

// Style returns the style of a slot, falling back to the default style.
func (p Palette) Style(c core.Color) lipgloss.Style {
	if s, ok := p[c]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, p Palette) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(p.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
