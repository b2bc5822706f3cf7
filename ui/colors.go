package ui

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"termsuji-spectate/config"
	"termsuji-spectate/render"
)

// DashboardColors is the Nord-inspired palette for everything around the board.
var DashboardColors = struct {
	Border       tcell.Color // Muted blue-gray for borders
	BorderFocus  tcell.Color // Brighter blue for the board frame
	Title        tcell.Color // Bright white for titles
	Label        tcell.Color // Light gray for labels
	Hint         tcell.Color // Dim gray for hints and placeholders
	Live         tcell.Color // Status badge when connected
	Connecting   tcell.Color // Status badge before the first answer
	Reconnecting tcell.Color // Status badge after repeated failures
	Active       tcell.Color // Marker for the side to move
}{
	Border:       tcell.PaletteColor(60),
	BorderFocus:  tcell.PaletteColor(109),
	Title:        tcell.PaletteColor(255),
	Label:        tcell.PaletteColor(250),
	Hint:         tcell.PaletteColor(245),
	Live:         tcell.PaletteColor(108),
	Connecting:   tcell.PaletteColor(179),
	Reconnecting: tcell.PaletteColor(167),
	Active:       tcell.NewHexColor(0xebcb8b),
}

// colorTag returns the tview colour tag for c.
func colorTag(c tcell.Color) string {
	if c.Hex() < 0 {
		return "[-]"
	}
	return fmt.Sprintf("[#%06x]", c.Hex())
}

// PaletteFor builds the board palette from a theme. Stone colours set the
// middle of the gradient; the highlight and rim are derived from it.
func PaletteFor(theme config.Theme) render.Palette {
	p := render.DefaultPalette
	c := theme.Colors
	set := func(dst *color.NRGBA, hex string) {
		if v, ok := parseHex(hex); ok {
			*dst = v
		}
	}
	set(&p.Board, c.Board)
	set(&p.Line, c.Line)
	set(&p.Star, c.Line)
	set(&p.Coord, c.Coord)
	set(&p.BlackNumber, c.BlackNumber)
	set(&p.WhiteNumber, c.WhiteNumber)
	set(&p.LastMove, c.LastMove)

	def := config.DefaultTheme.Colors
	if c.BlackStone != def.BlackStone {
		p.BlackStone = stoneGradient(p.BlackStone, c.BlackStone, 0.6)
	}
	if c.WhiteStone != def.WhiteStone {
		p.WhiteStone = stoneGradient(p.WhiteStone, c.WhiteStone, 0.7)
	}
	return p
}

func stoneGradient(base render.Gradient, hex string, mid float64) render.Gradient {
	c, err := colorful.Hex(hex)
	if err != nil {
		return base
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	black := colorful.Color{}
	g := base
	g.Stops = []render.Stop{
		{Offset: 0, Color: nrgba(c.BlendLab(white, 0.3))},
		{Offset: mid, Color: nrgba(c)},
		{Offset: 1, Color: nrgba(c.BlendLab(black, 0.4))},
	}
	return g
}

func parseHex(hex string) (color.NRGBA, bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, false
	}
	return nrgba(c), true
}

func nrgba(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
