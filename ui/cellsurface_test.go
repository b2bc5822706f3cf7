package ui

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termsuji-spectate/geometry"
	"termsuji-spectate/render"
	"termsuji-spectate/types"
)

func simScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func colorsAt(s tcell.Screen, x, y int) (fg, bg tcell.Color) {
	_, _, style, _ := s.GetContent(x, y)
	fg, bg, _ = style.Decompose()
	return fg, bg
}

func TestCellSurfaceRendersBoard(t *testing.T) {
	board := types.NewBoardSnapshot(15)
	board.Cells[7*15+7] = types.Black
	board.MoveOrder = []types.BoardPos{{X: 7, Y: 7}}
	board.LastMoveX, board.LastMoveY = 7, 7

	surf := NewCellSurface(40, 20)
	w, h := surf.Size()
	assert.Equal(t, 320.0, w)
	assert.Equal(t, 320.0, h)

	render.Render(surf, board, geometry.ComputeLayout(15, w, h))
	screen := simScreen(t, 40, 20)
	surf.Blit(screen, 0, 0, 40, 20)

	// H8 sits at pixel (160, 160): the move number over the stone, with the
	// last-move highlight behind it.
	assert.Equal(t, '1', runeAt(screen, 20, 10))
	fg, bg := colorsAt(screen, 20, 10)
	assert.Equal(t, tcell.NewRGBColor(0xdd, 0xdd, 0xdd), fg)
	assert.Equal(t, tcell.NewRGBColor(0xff, 0x44, 0x44), bg)

	assert.Equal(t, '┌', runeAt(screen, 3, 1))
	assert.Equal(t, '┘', runeAt(screen, 36, 18))
	assert.Equal(t, 'H', runeAt(screen, 20, 0))
	assert.Equal(t, '1', runeAt(screen, 1, 1))
	assert.Equal(t, '5', runeAt(screen, 2, 1))

	assert.Equal(t, ' ', runeAt(screen, 0, 19))
	_, bg = colorsAt(screen, 0, 19)
	assert.Equal(t, tcell.NewRGBColor(0xc8, 0xa9, 0x6e), bg)
}

func TestCellSurfaceMergesLines(t *testing.T) {
	ink := color.NRGBA{A: 0xff}
	surf := NewCellSurface(5, 5)
	surf.StrokeLine(4, 40, 36, 40, 1, ink)
	surf.StrokeLine(20, 4, 20, 76, 1, ink)
	// Grain-like strokes leave no trace.
	surf.StrokeLine(0, 8, 40, 8, 1, color.NRGBA{A: 15})

	screen := simScreen(t, 5, 5)
	surf.Blit(screen, 0, 0, 5, 5)

	assert.Equal(t, '─', runeAt(screen, 0, 2))
	assert.Equal(t, '┼', runeAt(screen, 2, 2))
	assert.Equal(t, '─', runeAt(screen, 4, 2))
	assert.Equal(t, '│', runeAt(screen, 2, 0))
	assert.Equal(t, '│', runeAt(screen, 2, 4))
	assert.Equal(t, ' ', runeAt(screen, 0, 0))
}

func TestCellSurfaceClipsAndIgnoresOutside(t *testing.T) {
	surf := NewCellSurface(4, 2)
	surf.FillText("far away", 500, 500, 10, color.White)
	surf.FillStone(-10, -10, 5, render.DefaultPalette.BlackStone)
	surf.FillText("AB", 16, 8, 10, color.White)

	screen := simScreen(t, 10, 4)
	screen.SetContent(3, 0, 'x', nil, tcell.StyleDefault)
	surf.Blit(screen, 0, 0, 3, 2)

	assert.Equal(t, 'A', runeAt(screen, 1, 0))
	assert.Equal(t, 'B', runeAt(screen, 2, 0))
	assert.Equal(t, 'x', runeAt(screen, 3, 0), "blit must stay inside its box")
}

func TestBoardViewDraw(t *testing.T) {
	v := NewBoardView(nil)
	board := types.NewBoardSnapshot(15)
	board.Cells[0] = types.White
	board.MoveOrder = []types.BoardPos{{X: 0, Y: 0}}
	v.SetBoard(board)
	v.SetBoard(nil)
	assert.Same(t, board, v.Board())

	screen := simScreen(t, 40, 20)
	v.Box.SetRect(0, 0, 40, 20)
	v.Box.Draw(screen)

	// A15, the top-left point, is at (28, 28): the white stone's number.
	assert.Equal(t, '1', runeAt(screen, 3, 1))

	v.Freeze()
	board2 := types.NewBoardSnapshot(15)
	v.SetBoard(board2)
	v.Box.Draw(screen)
	assert.Equal(t, '1', runeAt(screen, 3, 1), "frozen view keeps the last frame")

	v.Thaw()
	v.Box.Draw(screen)
	assert.Equal(t, '┌', runeAt(screen, 3, 1))
}
