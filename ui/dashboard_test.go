package ui

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termsuji-spectate/config"
	"termsuji-spectate/poller"
	"termsuji-spectate/reconcile"
	"termsuji-spectate/render"
	"termsuji-spectate/types"
)

func TestDashboardInitialState(t *testing.T) {
	d := NewDashboard(NewBoardView(nil))

	assert.Equal(t, poller.Connecting, d.Status())
	assert.Contains(t, d.Title(), "Connecting…")
	assert.Contains(t, d.moves.GetText(true), "Waiting for game…")
	assert.Equal(t, "Waiting for results…", d.results.GetCell(0, 0).Text)
	assert.Contains(t, d.progress.GetText(true), "0 / 0 games")
	assert.Equal(t, 15, d.Board.Board().Size)
}

func TestDashboardUpdate(t *testing.T) {
	d := NewDashboard(NewBoardView(nil))
	board := types.NewBoardSnapshot(15)
	board.Cells[7*15+7] = types.Black
	board.Cells[7*15+8] = types.White
	board.MoveOrder = []types.BoardPos{{X: 7, Y: 7}, {X: 8, Y: 7}}

	st := reconcile.Apply(nil, &types.TournamentState{
		GamesCompleted: 3,
		GamesTotal:     10,
		LastResult:     "Game 3: alpha vs beta: 1-0 {five}",
		Board:          board,
		Workers: []types.WorkerStatus{{
			BlackName: "alpha", WhiteName: "beta",
			IsBlackActive: true, BlackTime: 125000, WhiteTime: 59000,
		}},
		Results:  []types.MatchResult{{Name1: "alpha", Name2: "beta", Wins: 2, Losses: 1, Score: 0.667, Total: 3}},
		LogLines: []string{"started", "game 3 finished"},
	})
	d.Update(st)

	players := d.players.GetText(true)
	assert.Contains(t, players, "▶ ● alpha  2:05")
	assert.Contains(t, players, "○ beta  0:59")
	assert.Contains(t, d.players.GetText(false), "[#ebcb8b]▶")

	assert.Contains(t, d.progress.GetText(true), "3 / 10 games")
	assert.Contains(t, d.progress.GetText(true), "30%")
	assert.Contains(t, d.lastResult.GetText(true), "1-0 {five}")

	moves := d.moves.GetText(true)
	assert.Contains(t, moves, "B 1.H8")
	assert.Contains(t, moves, "> W 2.I8")
	assert.Contains(t, d.moves.GetText(false), colorTag(DashboardColors.Active)+">")

	require.Equal(t, 2, d.results.GetRowCount())
	assert.Equal(t, "alpha", d.results.GetCell(1, 0).Text)
	assert.Equal(t, "0.667", d.results.GetCell(1, 5).Text)

	assert.Contains(t, d.log.GetText(true), "started\ngame 3 finished")
	assert.Same(t, st.Board, d.Board.Board())
}

func TestDashboardStatusAndFocus(t *testing.T) {
	d := NewDashboard(NewBoardView(nil))

	d.SetStatus(poller.Connected)
	assert.Contains(t, d.Title(), "Live")
	d.SetStatus(poller.Disconnected)
	assert.Contains(t, d.Title(), "Reconnecting…")

	assert.Equal(t, 5, d.frame.GetItemCount())
	assert.False(t, d.IsFocusMode())
	assert.True(t, d.ToggleFocusMode())
	assert.True(t, d.IsFocusMode())
	assert.Equal(t, 2, d.frame.GetItemCount())
	assert.Contains(t, d.hint.GetText(true), "f to toggle")
	assert.False(t, d.ToggleFocusMode())
	assert.Equal(t, 5, d.frame.GetItemCount())

	d.Flash("saved game.sgf")
	assert.Contains(t, d.hint.GetText(true), "saved game.sgf")
}

func TestColorTag(t *testing.T) {
	assert.Equal(t, "[#ebcb8b]", colorTag(DashboardColors.Active))
	assert.Equal(t, "[-]", colorTag(tcell.ColorDefault))
}

func TestPaletteFor(t *testing.T) {
	assert.Equal(t, render.DefaultPalette, PaletteFor(config.DefaultTheme))

	theme := config.DefaultTheme
	theme.Colors.Board = "#102030"
	theme.Colors.BlackStone = "#203040"
	p := PaletteFor(theme)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, p.Board)
	require.Len(t, p.BlackStone.Stops, 3)
	assert.Equal(t, color.NRGBA{R: 0x20, G: 0x30, B: 0x40, A: 0xff}, p.BlackStone.Stops[1].Color)
	assert.Equal(t, render.DefaultPalette.WhiteStone, p.WhiteStone)
}

func TestInfoCard(t *testing.T) {
	card := NewInfoCard("Connection")
	card.SetRows([][2]string{
		{"Server", "http://localhost:8080/api/state"},
		{"Status", "Live"},
	})
	w, h := card.PreferredSize()
	assert.Equal(t, len("Server")+len("http://localhost:8080/api/state")+6, w)
	assert.Equal(t, 8, h)

	screen := simScreen(t, w, h)
	card.SetRect(0, 0, w, h)
	card.Draw(screen)

	assert.Equal(t, '╭', runeAt(screen, 0, 0))
	assert.Equal(t, '╯', runeAt(screen, w-1, h-1))
	assert.Equal(t, '├', runeAt(screen, 0, 2))
	assert.Equal(t, 'S', runeAt(screen, 2, 3))
	assert.Equal(t, 'h', runeAt(screen, 4+len("Server"), 3))
	assert.Equal(t, 'L', runeAt(screen, 4+len("Server"), 4))
}
