package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/rivo/tview"

	"termsuji-spectate/poller"
	"termsuji-spectate/reconcile"
)

const (
	sidePanelWidth = 34
	logHeight      = 8
	progressWidth  = 24
)

// Dashboard lays out the board next to the match information and keeps
// every widget in sync with the reconciled state.
type Dashboard struct {
	Board *BoardView

	frame      *tview.Flex
	players    *tview.TextView
	progress   *tview.TextView
	lastResult *tview.TextView
	results    *tview.Table
	moves      *tview.TextView
	log        *tview.TextView
	hint       *tview.TextView

	status    poller.Status
	focusMode bool
	flash     string
}

// NewDashboard creates the dashboard around board, showing the state
// before the first poll.
func NewDashboard(board *BoardView) *Dashboard {
	d := &Dashboard{
		Board:      board,
		frame:      tview.NewFlex(),
		players:    newText(),
		progress:   newText(),
		lastResult: newText(),
		results:    tview.NewTable(),
		moves:      newText(),
		log:        newText(),
		hint:       newText(),
	}

	d.frame.SetBorder(true)
	d.frame.SetBorderColor(DashboardColors.Border)
	d.frame.SetTitleAlign(tview.AlignLeft)

	d.lastResult.SetWrap(true)
	d.moves.SetScrollable(true)
	d.moves.SetBorder(true).SetTitle(" Moves ").SetBorderColor(DashboardColors.Border)
	d.log.SetScrollable(true)
	d.log.SetBorder(true).SetTitle(" Log ").SetBorderColor(DashboardColors.Border)
	d.results.SetBorder(true).SetTitle(" Results ").SetBorderColor(DashboardColors.Border)
	d.results.SetFixed(1, 0)
	d.hint.SetTextColor(DashboardColors.Hint)

	d.SetStatus(poller.Connecting)
	d.Update(reconcile.NewState())
	d.rebuild()
	return d
}

func newText() *tview.TextView {
	t := tview.NewTextView()
	t.SetDynamicColors(true)
	t.SetBorder(false)
	t.SetTextAlign(tview.AlignLeft)
	return t
}

// Root is the primitive to hand to the application.
func (d *Dashboard) Root() tview.Primitive {
	return d.frame
}

// Update pushes a reconciled state into every widget.
func (d *Dashboard) Update(s *reconcile.State) {
	if s == nil {
		return
	}
	d.Board.SetBoard(s.Board)
	d.players.SetText(playerBarText(s.Players))
	d.progress.SetText(progressText(s.Progress))
	d.lastResult.SetText(lastResultText(s.LastResult))
	d.setResults(s.Results)
	d.moves.SetText(moveListText(s.Moves))
	d.moves.ScrollToEnd()
	if s.Log != nil && (s.LogChanged || d.log.GetText(false) == "") {
		d.log.SetText(tview.Escape(strings.Join(s.Log.Lines(), "\n")))
		d.log.ScrollToEnd()
	}
}

// SetStatus shows the connection status in the frame title.
func (d *Dashboard) SetStatus(st poller.Status) {
	d.status = st
	c := DashboardColors.Connecting
	switch st {
	case poller.Connected:
		c = DashboardColors.Live
	case poller.Disconnected:
		c = DashboardColors.Reconnecting
	}
	d.frame.SetTitle(d.Title())
	d.frame.SetTitleColor(c)
}

// Title is the frame title for the current status.
func (d *Dashboard) Title() string {
	return fmt.Sprintf(" ⬡ termsuji spectate · %s ", d.status)
}

func (d *Dashboard) Status() poller.Status {
	return d.status
}

// Flash shows a one-off message in the hint bar until the next one.
func (d *Dashboard) Flash(msg string) {
	d.flash = msg
	d.refreshHint()
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (d *Dashboard) ToggleFocusMode() bool {
	d.SetFocusMode(!d.focusMode)
	return d.focusMode
}

// SetFocusMode shows the board alone when enabled.
func (d *Dashboard) SetFocusMode(enabled bool) {
	if d.focusMode == enabled {
		return
	}
	d.focusMode = enabled
	d.rebuild()
}

// IsFocusMode reports whether only the board is shown.
func (d *Dashboard) IsFocusMode() bool {
	return d.focusMode
}

func (d *Dashboard) refreshHint() {
	keys := "q quit · f focus · s save game"
	if d.focusMode {
		keys = "f to toggle"
	}
	if d.flash != "" {
		keys += "   " + tview.Escape(d.flash)
	}
	d.hint.SetText(keys)
}

// rebuild lays the widgets out for the current mode.
func (d *Dashboard) rebuild() {
	d.frame.Clear()
	d.frame.SetDirection(tview.FlexRow)
	d.refreshHint()

	if d.focusMode {
		d.frame.AddItem(d.Board.Box, 0, 1, true)
		d.frame.AddItem(d.hint, 1, 0, false)
		return
	}

	side := tview.NewFlex().SetDirection(tview.FlexRow)
	side.AddItem(d.lastResult, 3, 0, false)
	side.AddItem(d.results, 0, 1, false)
	side.AddItem(d.moves, 0, 1, false)

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(d.Board.Box, 0, 1, true)
	boardRow.AddItem(side, sidePanelWidth, 0, false)

	d.frame.AddItem(d.players, 1, 0, false)
	d.frame.AddItem(d.progress, 1, 0, false)
	d.frame.AddItem(boardRow, 0, 1, true)
	d.frame.AddItem(d.log, logHeight, 0, false)
	d.frame.AddItem(d.hint, 1, 0, false)
}

func (d *Dashboard) setResults(v reconcile.ResultsView) {
	d.results.Clear()
	if len(v.Rows) == 0 {
		d.results.SetCell(0, 0, tview.NewTableCell(v.Placeholder).
			SetTextColor(DashboardColors.Hint).
			SetExpansion(1))
		return
	}
	for col, h := range []string{"Player", "Opponent", "W", "L", "D", "Score"} {
		d.results.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(DashboardColors.Title).
			SetSelectable(false))
	}
	for i, r := range v.Rows {
		row := i + 1
		d.results.SetCell(row, 0, tview.NewTableCell(r.Name1).SetExpansion(1))
		d.results.SetCell(row, 1, tview.NewTableCell(r.Name2).SetExpansion(1))
		d.results.SetCell(row, 2, tview.NewTableCell(r.Wins).SetAlign(tview.AlignRight))
		d.results.SetCell(row, 3, tview.NewTableCell(r.Losses).SetAlign(tview.AlignRight))
		d.results.SetCell(row, 4, tview.NewTableCell(r.Draws).SetAlign(tview.AlignRight))
		d.results.SetCell(row, 5, tview.NewTableCell(r.Score).SetAlign(tview.AlignRight))
	}
}

func playerBarText(p reconcile.PlayersView) string {
	side := func(stone, name, clock string, active bool) string {
		marker := "  "
		if active {
			marker = colorTag(DashboardColors.Active) + "▶[-] "
		}
		return fmt.Sprintf("%s%s %s  [::b]%s[::-]", marker, stone, tview.Escape(name), clock)
	}
	return side("●", p.BlackName, p.BlackClock, p.BlackActive) + "    " +
		side("○", p.WhiteName, p.WhiteClock, p.WhiteActive)
}

func progressText(p reconcile.ProgressView) string {
	filled := int(math.Round(math.Min(math.Max(p.Percent, 0), 100) / 100 * progressWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("·", progressWidth-filled)
	return fmt.Sprintf("[white]%s[-] %s  [dimgray]%.0f%%[-]", bar, p.Text, p.Percent)
}

func lastResultText(s string) string {
	if s == "" {
		return "[dimgray]No games finished yet[-]"
	}
	return "[white::b]Last:[-:-:-] " + tview.Escape(s)
}

func moveListText(v reconcile.MoveListView) string {
	if len(v.Entries) == 0 {
		return "[dimgray]" + v.Placeholder + "[-]"
	}
	var b strings.Builder
	for i, m := range v.Entries {
		if i > 0 {
			b.WriteString("\n")
		}
		marker := " "
		if m.Last {
			marker = colorTag(DashboardColors.Active) + ">[-]"
		}
		colorStr := "[white]B[-]"
		if !m.Black {
			colorStr = "[dimgray]W[-]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s", marker, colorStr, m.Label))
	}
	return b.String()
}
