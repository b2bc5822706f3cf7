// Package geometry computes where a board and its labels sit inside a viewport.
package geometry

import (
	"math"
	"strconv"

	"termsuji-spectate/types"
)

// Margin is the fixed outer border reserved for the axis labels, in pixels.
const Margin = 28.0

// Point is a board coordinate or a pixel position, depending on context.
type Point struct {
	X float64
	Y float64
}

// Layout places a square grid inside a viewport.
type Layout struct {
	BoardSize int
	Width     float64
	Height    float64
	Margin    float64
	GridSize  float64 // edge length of the square spanned by the grid lines
	CellSize  float64 // distance between neighbouring lines
	OriginX   float64 // pixel position of intersection (0, 0)
	OriginY   float64
}

// ComputeLayout returns the layout for a board of boardSize lines in a
// width x height viewport. Degenerate input gives a zero-area layout.
func ComputeLayout(boardSize int, width, height float64) Layout {
	l := Layout{
		BoardSize: boardSize,
		Width:     math.Max(width, 0),
		Height:    math.Max(height, 0),
		Margin:    Margin,
	}
	if boardSize < 2 || width <= 0 || height <= 0 {
		return l
	}
	grid := math.Min(width, height) - 2*Margin
	if grid <= 0 {
		return l
	}
	l.GridSize = grid
	l.CellSize = grid / float64(boardSize-1)
	l.OriginX = (width - grid) / 2
	l.OriginY = (height - grid) / 2
	return l
}

// Empty reports whether there is no room to draw the grid.
func (l Layout) Empty() bool {
	return l.GridSize <= 0 || l.CellSize <= 0
}

// Point returns the pixel centre of intersection (x, y).
func (l Layout) Point(x, y int) Point {
	return Point{
		X: l.OriginX + float64(x)*l.CellSize,
		Y: l.OriginY + float64(y)*l.CellSize,
	}
}

// ColumnLabelAt is where the label of column i is drawn, above the grid.
func (l Layout) ColumnLabelAt(i int) Point {
	return Point{X: l.OriginX + float64(i)*l.CellSize, Y: l.OriginY - l.Margin*0.5}
}

// RowLabelAt is where the label of row i is drawn, left of the grid.
func (l Layout) RowLabelAt(i int) Point {
	return Point{X: l.OriginX - l.Margin*0.55, Y: l.OriginY + float64(i)*l.CellSize}
}

// ColumnLabel returns the letter for column x, starting at 'A'.
func ColumnLabel(x int) string {
	return string(rune('A' + x))
}

// RowLabel returns the number for row y. Row 0 is the top of the board and
// carries the highest number.
func RowLabel(y, size int) string {
	return strconv.Itoa(size - y)
}

// Coord formats a board position as e.g. "H8".
func Coord(p types.BoardPos, size int) string {
	return ColumnLabel(p.X) + RowLabel(p.Y, size)
}
