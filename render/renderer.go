package render

import (
	"image/color"
	"math"
	"strconv"

	"termsuji-spectate/geometry"
	"termsuji-spectate/types"
)

// Palette holds every colour the renderer uses.
type Palette struct {
	Board       color.NRGBA
	Grain       color.NRGBA
	Line        color.NRGBA
	Star        color.NRGBA
	Coord       color.NRGBA
	BlackStone  Gradient
	WhiteStone  Gradient
	BlackNumber color.NRGBA
	WhiteNumber color.NRGBA
	LastMove    color.NRGBA
}

var stoneShadow = color.NRGBA{A: 77}

// DefaultPalette is the light wood board with shaded stones.
var DefaultPalette = Palette{
	Board: hex("#c8a96e"),
	Grain: color.NRGBA{R: 90, G: 60, B: 20, A: 15},
	Line:  hex("#3d2e14"),
	Star:  hex("#3d2e14"),
	Coord: hex("#5c4321"),
	BlackStone: Gradient{
		Stops: []Stop{
			{0, hex("#555555")},
			{0.6, hex("#1a1a2e")},
			{1, hex("#0a0a15")},
		},
		HighlightX: -0.3, HighlightY: -0.3,
		Shadow: stoneShadow, ShadowDX: 1, ShadowDY: 2,
	},
	WhiteStone: Gradient{
		Stops: []Stop{
			{0, hex("#ffffff")},
			{0.7, hex("#e8e8e8")},
			{1, hex("#c0c0c0")},
		},
		HighlightX: -0.3, HighlightY: -0.3,
		Shadow: stoneShadow, ShadowDX: 1, ShadowDY: 2,
	},
	BlackNumber: hex("#dddddd"),
	WhiteNumber: hex("#333333"),
	LastMove:    hex("#ff4444"),
}

const (
	lineWidth     = 0.8
	ringWidth     = 2.5
	starRadius    = 0.12
	stoneRadius   = 0.43
	ringRadius    = 0.48
	grainSpacing  = 3.0
	minLabelFont  = 9.0
	minNumberFont = 8.0
)

// Renderer draws boards with a fixed palette.
type Renderer struct {
	Palette         Palette
	HideMoveNumbers bool
}

// NewRenderer returns a renderer using the default palette.
func NewRenderer() *Renderer {
	return &Renderer{Palette: DefaultPalette}
}

// Render repaints the whole surface with the default palette.
func Render(s Surface, board *types.BoardSnapshot, l geometry.Layout) {
	NewRenderer().Render(s, board, l)
}

// Render repaints the whole surface. A nil board or a layout with no room
// for the grid draws nothing, leaving the previous frame in place.
func (r *Renderer) Render(s Surface, board *types.BoardSnapshot, l geometry.Layout) {
	if s == nil || board == nil || l.Empty() {
		return
	}
	p := r.Palette
	size := l.BoardSize

	s.FillRect(0, 0, l.Width, l.Height, p.Board)

	for y := 0.0; y < l.Height; y += grainSpacing {
		s.StrokeLine(0, y+math.Sin(y*0.05)*2, l.Width, y+math.Sin(y*0.05+1)*2, 1, p.Grain)
	}

	for i := 0; i < size; i++ {
		top, bottom := l.Point(i, 0), l.Point(i, size-1)
		s.StrokeLine(top.X, top.Y, bottom.X, bottom.Y, lineWidth, p.Line)
		left, right := l.Point(0, i), l.Point(size-1, i)
		s.StrokeLine(left.X, left.Y, right.X, right.Y, lineWidth, p.Line)
	}

	for _, sp := range geometry.StarPoints(size) {
		c := l.Point(sp.X, sp.Y)
		s.FillCircle(c.X, c.Y, l.CellSize*starRadius, p.Star)
	}

	labelFont := math.Max(minLabelFont, l.CellSize*0.35)
	for i := 0; i < size; i++ {
		c := l.ColumnLabelAt(i)
		s.FillText(geometry.ColumnLabel(i), c.X, c.Y, labelFont, p.Coord)
		rl := l.RowLabelAt(i)
		s.FillText(geometry.RowLabel(i, size), rl.X, rl.Y, labelFont, p.Coord)
	}

	radius := l.CellSize * stoneRadius
	numberFont := math.Max(minNumberFont, radius*0.9)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cell := board.At(x, y)
			if cell == types.Empty {
				continue
			}
			c := l.Point(x, y)
			grad, text := p.WhiteStone, p.WhiteNumber
			if cell == types.Black {
				grad, text = p.BlackStone, p.BlackNumber
			}
			s.FillStone(c.X, c.Y, radius, grad)
			if r.HideMoveNumbers {
				continue
			}
			if n := board.MoveNumber(types.BoardPos{X: x, Y: y}); n > 0 {
				s.FillText(strconv.Itoa(n), c.X, c.Y+0.5, numberFont, text)
			}
		}
	}

	if last, ok := board.LastMove(); ok {
		c := l.Point(last.X, last.Y)
		s.StrokeCircle(c.X, c.Y, l.CellSize*ringRadius, ringWidth, p.LastMove)
	}
}
