// Package ui holds the tview widgets of the spectator dashboard.
package ui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"termsuji-spectate/geometry"
	"termsuji-spectate/render"
	"termsuji-spectate/types"
)

// BoardView draws the watched board, scaled to whatever space the layout
// gives it.
type BoardView struct {
	Box      *tview.Box
	renderer *render.Renderer

	mu     sync.Mutex
	board  *types.BoardSnapshot
	frozen bool // size changed recently, keep the previous frame
	last   *CellSurface
}

func NewBoardView(r *render.Renderer) *BoardView {
	if r == nil {
		r = render.NewRenderer()
	}
	v := &BoardView{
		Box:      tview.NewBox(),
		renderer: r,
		board:    types.NewBoardSnapshot(types.DefaultBoardSize),
	}
	v.Box.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		surf := v.frame(width, height)
		surf.Blit(screen, x, y, width, height)
		return x, y, width, height
	})
	return v
}

// SetBoard replaces the board shown from the next draw on.
func (v *BoardView) SetBoard(board *types.BoardSnapshot) {
	if board == nil {
		return
	}
	v.mu.Lock()
	v.board = board
	v.mu.Unlock()
}

func (v *BoardView) Board() *types.BoardSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.board
}

// Freeze keeps drawing the last frame until Thaw, so a burst of resize
// events does not re-render the board for every intermediate size.
func (v *BoardView) Freeze() {
	v.mu.Lock()
	v.frozen = true
	v.mu.Unlock()
}

func (v *BoardView) Thaw() {
	v.mu.Lock()
	v.frozen = false
	v.mu.Unlock()
}

func (v *BoardView) frame(cols, rows int) *CellSurface {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.frozen && v.last != nil {
		return v.last
	}
	surf := NewCellSurface(cols, rows)
	w, h := surf.Size()
	v.renderer.Render(surf, v.board, geometry.ComputeLayout(v.board.Size, w, h))
	v.last = surf
	return surf
}
