package ui

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"termsuji-spectate/render"
)

// Every terminal cell stands for CellWidth x CellHeight surface pixels,
// which keeps the board roughly square on common terminal fonts.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Strokes fainter than this (the wood grain) have no terminal rendition.
const minAlpha = 0x40

const (
	lineUp uint8 = 1 << iota
	lineDown
	lineLeft
	lineRight
)

// boxRunes maps a set of line directions to the box-drawing rune joining them.
var boxRunes = [16]rune{
	0:                                        ' ',
	lineUp:                                   '│',
	lineDown:                                 '│',
	lineUp | lineDown:                        '│',
	lineLeft:                                 '─',
	lineRight:                                '─',
	lineLeft | lineRight:                     '─',
	lineDown | lineRight:                     '┌',
	lineDown | lineLeft:                      '┐',
	lineUp | lineRight:                       '└',
	lineUp | lineLeft:                        '┘',
	lineUp | lineDown | lineRight:            '├',
	lineUp | lineDown | lineLeft:             '┤',
	lineDown | lineLeft | lineRight:          '┬',
	lineUp | lineLeft | lineRight:            '┴',
	lineUp | lineDown | lineLeft | lineRight: '┼',
}

type cellContent struct {
	bg     tcell.Color
	fg     tcell.Color
	r      rune // 0 when the cell shows lines only
	lines  uint8
	stone  bool
	stoneC tcell.Color
}

// CellSurface is a render.Surface over a grid of terminal cells. Drawing
// only updates the grid; Blit copies it onto a screen.
type CellSurface struct {
	cols  int
	rows  int
	cells []cellContent
}

// NewCellSurface returns a surface cols x rows terminal cells large.
func NewCellSurface(cols, rows int) *CellSurface {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	s := &CellSurface{cols: cols, rows: rows, cells: make([]cellContent, cols*rows)}
	for i := range s.cells {
		s.cells[i].bg = tcell.ColorDefault
		s.cells[i].fg = tcell.ColorDefault
	}
	return s
}

// Size returns the surface size in pixels.
func (s *CellSurface) Size() (float64, float64) {
	return float64(s.cols * CellWidth), float64(s.rows * CellHeight)
}

func (s *CellSurface) cell(col, row int) *cellContent {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return nil
	}
	return &s.cells[row*s.cols+col]
}

func cellAt(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

// toColor converts c, reporting false when it is too transparent to draw.
func toColor(c color.Color) (tcell.Color, bool) {
	if c == nil {
		return tcell.ColorDefault, false
	}
	_, _, _, a := c.RGBA()
	if a>>8 < minAlpha {
		return tcell.ColorDefault, false
	}
	return tcell.FromImageColor(c), true
}

// FillRect resets every cell whose centre lies inside the rectangle.
func (s *CellSurface) FillRect(x, y, w, h float64, c color.Color) {
	bg, ok := toColor(c)
	if !ok {
		return
	}
	for row := 0; row < s.rows; row++ {
		cy := (float64(row) + 0.5) * CellHeight
		if cy < y || cy > y+h {
			continue
		}
		for col := 0; col < s.cols; col++ {
			cx := (float64(col) + 0.5) * CellWidth
			if cx < x || cx > x+w {
				continue
			}
			*s.cell(col, row) = cellContent{bg: bg, fg: tcell.ColorDefault}
		}
	}
}

// StrokeLine draws horizontal and vertical lines as box-drawing runes that
// join where they cross. Diagonals snap to the dominant axis.
func (s *CellSurface) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	fg, ok := toColor(c)
	if !ok {
		return
	}
	if math.Abs(x2-x1) >= math.Abs(y2-y1) {
		c1, row := cellAt(math.Min(x1, x2), (y1+y2)/2)
		c2, _ := cellAt(math.Max(x1, x2), (y1+y2)/2)
		for col := c1; col <= c2; col++ {
			var bits uint8
			if col > c1 {
				bits |= lineLeft
			}
			if col < c2 {
				bits |= lineRight
			}
			s.addLine(col, row, bits, fg)
		}
		return
	}
	col, r1 := cellAt((x1+x2)/2, math.Min(y1, y2))
	_, r2 := cellAt((x1+x2)/2, math.Max(y1, y2))
	for row := r1; row <= r2; row++ {
		var bits uint8
		if row > r1 {
			bits |= lineUp
		}
		if row < r2 {
			bits |= lineDown
		}
		s.addLine(col, row, bits, fg)
	}
}

func (s *CellSurface) addLine(col, row int, bits uint8, fg tcell.Color) {
	cc := s.cell(col, row)
	if cc == nil || cc.r != 0 {
		return
	}
	if bits == 0 {
		// A line shorter than a cell still marks the cell.
		bits = lineLeft | lineRight
	}
	cc.lines |= bits
	cc.fg = fg
}

// FillCircle marks small circles (star points) with a dot and paints the
// background of cells covered by larger ones.
func (s *CellSurface) FillCircle(cx, cy, r float64, c color.Color) {
	fg, ok := toColor(c)
	if !ok {
		return
	}
	if r < CellHeight*2 {
		col, row := cellAt(cx, cy)
		if cc := s.cell(col, row); cc != nil && !cc.stone {
			cc.r = '•'
			cc.fg = fg
		}
		return
	}
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			px := (float64(col) + 0.5) * CellWidth
			py := (float64(row) + 0.5) * CellHeight
			if math.Hypot(px-cx, py-cy) <= r {
				s.cells[row*s.cols+col].bg = fg
			}
		}
	}
}

// FillStone puts a stone glyph in the cell holding the centre, coloured
// with the middle of the gradient.
func (s *CellSurface) FillStone(cx, cy, r float64, g render.Gradient) {
	col, row := cellAt(cx, cy)
	cc := s.cell(col, row)
	if cc == nil {
		return
	}
	fg := tcell.FromImageColor(g.At(0.5))
	cc.r = '●'
	cc.fg = fg
	cc.lines = 0
	cc.stone = true
	cc.stoneC = fg
}

// StrokeCircle highlights the background of the cell holding the centre.
func (s *CellSurface) StrokeCircle(cx, cy, r, width float64, c color.Color) {
	bg, ok := toColor(c)
	if !ok {
		return
	}
	if cc := s.cell(cellAt(cx, cy)); cc != nil {
		cc.bg = bg
	}
}

// FillText writes text centred on (x, y). Over a stone the text takes the
// stone colour as background so the stone stays visible.
func (s *CellSurface) FillText(text string, x, y, size float64, c color.Color) {
	fg, ok := toColor(c)
	if !ok || text == "" {
		return
	}
	w := runewidth.StringWidth(text)
	col := int(math.Floor(x/CellWidth - float64(w)/2 + 0.5))
	_, row := cellAt(x, y)
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if cc := s.cell(col, row); cc != nil {
			if cc.stone {
				cc.bg = cc.stoneC
			}
			cc.r = r
			cc.fg = fg
			cc.lines = 0
		}
		col += rw
	}
}

// Blit copies the grid onto screen with its top-left corner at (x, y),
// clipped to width x height cells.
func (s *CellSurface) Blit(screen tcell.Screen, x, y, width, height int) {
	for row := 0; row < s.rows && row < height; row++ {
		for col := 0; col < s.cols && col < width; col++ {
			cc := s.cells[row*s.cols+col]
			r := cc.r
			if r == 0 {
				r = boxRunes[cc.lines]
			}
			style := tcell.StyleDefault.Background(cc.bg).Foreground(cc.fg)
			screen.SetContent(x+col, y+row, r, nil, style)
		}
	}
}
