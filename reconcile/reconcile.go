// Package reconcile turns tournament snapshots into per-widget display state.
package reconcile

import (
	"fmt"
	"strconv"

	"termsuji-spectate/geometry"
	"termsuji-spectate/types"
)

// UnknownClock is shown when a clock value is missing or not positive.
const UnknownClock = "--:--"

const (
	waitingForGame    = "Waiting for game…"
	waitingForResults = "Waiting for results…"
)

// ProgressView is the games-played counter and bar.
type ProgressView struct {
	Text    string
	Percent float64
}

// PlayersView is the player bar of the main match.
type PlayersView struct {
	BlackName   string
	WhiteName   string
	BlackClock  string
	WhiteClock  string
	BlackActive bool
	WhiteActive bool
}

// MoveEntry is one row of the move list.
type MoveEntry struct {
	Label string // "12.H8"
	Black bool   // by parity: even index is the first mover
	Last  bool
}

// MoveListView is the move list, or a placeholder when it is empty.
type MoveListView struct {
	Entries     []MoveEntry
	Placeholder string
}

// ResultRow is one formatted row of the results table.
type ResultRow struct {
	Name1  string
	Name2  string
	Wins   string
	Losses string
	Draws  string
	Score  string
}

// ResultsView is the results table, or a placeholder when it is empty.
type ResultsView struct {
	Rows        []ResultRow
	Placeholder string
}

// State is everything the dashboard shows. It is owned by the caller and
// replaced on every applied snapshot.
type State struct {
	Board      *types.BoardSnapshot
	Players    PlayersView
	Progress   ProgressView
	LastResult string
	Moves      MoveListView
	Results    ResultsView
	Log        *LogBuffer
	LogChanged bool
}

// NewState returns the state shown before the first successful poll: an
// empty 15x15 board and placeholders everywhere.
func NewState() *State {
	board := types.NewBoardSnapshot(types.DefaultBoardSize)
	return &State{
		Board:    board,
		Players:  Players(&types.WorkerStatus{}),
		Progress: Progress(0, 0),
		Moves:    MoveList(board),
		Results:  Results(nil),
		Log:      NewLogBuffer(MaxLog),
	}
}

// Apply derives the next state from prev and an incoming snapshot. prev is
// not modified. Fields missing from the snapshot keep their previous value
// where erasing them would only cause flicker; the move list is rebuilt
// from the snapshot alone.
func Apply(prev *State, in *types.TournamentState) *State {
	if prev == nil {
		prev = NewState()
	}
	if in == nil {
		return prev
	}
	next := &State{
		Board:      prev.Board,
		Players:    prev.Players,
		Progress:   Progress(in.GamesCompleted, in.GamesTotal),
		LastResult: prev.LastResult,
		Results:    Results(in.Results),
		Log:        prev.Log.Clone(),
	}
	if in.LastResult != "" {
		next.LastResult = in.LastResult
	}
	if w := in.MainWorker(); w != nil {
		next.Players = Players(w)
	}
	// Without a board the picture stays but the move list waits again.
	var board *types.BoardSnapshot
	if in.Board != nil {
		board = in.Board.Normalize()
		next.Board = board
	}
	next.Moves = MoveList(board)
	next.LogChanged = next.Log.Merge(in.LogLines)
	return next
}

// FormatClock formats milliseconds as m:ss.
func FormatClock(ms int64) string {
	if ms <= 0 {
		return UnknownClock
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Progress builds the progress counter. A percentage above 100 is left as is.
func Progress(completed, total int) ProgressView {
	pct := 0.0
	if total > 0 {
		pct = float64(completed) / float64(total) * 100
	}
	return ProgressView{
		Text:    fmt.Sprintf("%d / %d games", completed, total),
		Percent: pct,
	}
}

// Players builds the player bar from a worker status. Exactly one side is active.
func Players(w *types.WorkerStatus) PlayersView {
	v := PlayersView{
		BlackName:   w.BlackName,
		WhiteName:   w.WhiteName,
		BlackClock:  FormatClock(w.BlackTime),
		WhiteClock:  FormatClock(w.WhiteTime),
		BlackActive: w.IsBlackActive,
		WhiteActive: !w.IsBlackActive,
	}
	if v.BlackName == "" {
		v.BlackName = "Black"
	}
	if v.WhiteName == "" {
		v.WhiteName = "White"
	}
	return v
}

// MoveList labels every move in play order. Colour alternates by index.
func MoveList(board *types.BoardSnapshot) MoveListView {
	if board == nil || len(board.MoveOrder) == 0 {
		return MoveListView{Placeholder: waitingForGame}
	}
	entries := make([]MoveEntry, len(board.MoveOrder))
	for i, m := range board.MoveOrder {
		entries[i] = MoveEntry{
			Label: strconv.Itoa(i+1) + "." + geometry.Coord(m, board.Size),
			Black: i%2 == 0,
			Last:  i == len(board.MoveOrder)-1,
		}
	}
	return MoveListView{Entries: entries}
}

// Results formats the results table, preserving server order.
func Results(results []types.MatchResult) ResultsView {
	if len(results) == 0 {
		return ResultsView{Placeholder: waitingForResults}
	}
	rows := make([]ResultRow, len(results))
	for i, r := range results {
		rows[i] = ResultRow{
			Name1:  r.Name1,
			Name2:  r.Name2,
			Wins:   strconv.Itoa(r.Wins),
			Losses: strconv.Itoa(r.Losses),
			Draws:  strconv.Itoa(r.Draws),
			Score:  strconv.FormatFloat(r.Score, 'f', 3, 64),
		}
	}
	return ResultsView{Rows: rows}
}
