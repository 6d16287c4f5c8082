package core

import "image/color"

// Color is a palette entry for a drawn cell or box. Terminal hosts map it to
// an ANSI 256-color code, the desktop host to RGBA.
type Color uint8

const (
	ColorDefault   Color = iota
	ColorBar             // Obstacle body
	ColorCap             // Obstacle cap
	ColorGround          // Even ground tiles
	ColorGroundAlt       // Odd ground tiles
	ColorPlayer
	ColorPlayerAlt // Second animation frame
	ColorHeading   // Player heading glyph
	ColorSky
)

type swatch struct {
	ansi string
	rgba color.RGBA
}

var palette = [...]swatch{
	ColorDefault:   {"", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
	ColorBar:       {"2", color.RGBA{R: 0x54, G: 0x8a, B: 0x2f, A: 0xff}},
	ColorCap:       {"10", color.RGBA{R: 0x73, G: 0xbf, B: 0x2e, A: 0xff}},
	ColorGround:    {"3", color.RGBA{R: 0xde, G: 0xd8, B: 0x95, A: 0xff}},
	ColorGroundAlt: {"208", color.RGBA{R: 0xc8, G: 0xb8, B: 0x6a, A: 0xff}},
	ColorPlayer:    {"11", color.RGBA{R: 0xf8, G: 0xd3, B: 0x2b, A: 0xff}},
	ColorPlayerAlt: {"3", color.RGBA{R: 0xf0, G: 0x9a, B: 0x1c, A: 0xff}},
	ColorHeading:   {"1", color.RGBA{R: 0xe0, G: 0x40, B: 0x30, A: 0xff}},
	ColorSky:       {"6", color.RGBA{R: 0x4e, G: 0xc0, B: 0xca, A: 0xff}},
}

// ANSI returns the 256-color code, or "" for the terminal default.
func (c Color) ANSI() string {
	if int(c) >= len(palette) {
		return ""
	}
	return palette[c].ansi
}

// RGBA returns the color for pixel hosts.
func (c Color) RGBA() color.RGBA {
	if int(c) >= len(palette) {
		return palette[ColorDefault].rgba
	}
	return palette[c].rgba
}

// VisualColor returns the color a visual of the given kind is drawn with.
// Ground tiles alternate by ID.
func VisualColor(kind VisualKind, id EntityID) Color {
	switch kind {
	case VisualBar:
		return ColorBar
	case VisualCap:
		return ColorCap
	case VisualGround:
		if id%2 == 0 {
			return ColorGroundAlt
		}
		return ColorGround
	default:
		return ColorDefault
	}
}
