package core

// Color is a palette slot for a screen cell. The platform layer maps slots
// to terminal colors, so a theme change never touches drawing code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorHead
	ColorBody
	ColorTail
	ColorFood
	ColorPath
	ColorGrid
	ColorText
	ColorDim
	ColorAlert
	ColorGood
)

// String returns the palette slot name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorHead:
		return "head"
	case ColorBody:
		return "body"
	case ColorTail:
		return "tail"
	case ColorFood:
		return "food"
	case ColorPath:
		return "path"
	case ColorGrid:
		return "grid"
	case ColorText:
		return "text"
	case ColorDim:
		return "dim"
	case ColorAlert:
		return "alert"
	case ColorGood:
		return "good"
	default:
		return "unknown"
	}
}
