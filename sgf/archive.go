package sgf

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"termsuji-spectate/types"
)

// Archiver follows the main match across snapshots and keeps one SGF
// record per game in dir.
type Archiver struct {
	dir   string
	clock clockwork.Clock

	rec         *GameRecord
	recorded    []types.BoardPos
	size        int
	black       string
	white       string
	resultAtNew string
}

// NewArchiver returns an archiver writing into dir.
func NewArchiver(dir string, clock clockwork.Clock) *Archiver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Archiver{dir: dir, clock: clock}
}

// Observe records whatever changed since the previous snapshot. A move
// order that no longer extends the recorded one, a new board size or a new
// pair of players starts a new game; the finished one gets its result from
// the snapshot's last result text if that changed while it was recorded.
func (a *Archiver) Observe(state *types.TournamentState) error {
	if state == nil || state.Board == nil {
		return nil
	}
	board := state.Board.Normalize()
	black, white := players(state)

	if a.rec != nil && !a.continues(board, black, white) {
		a.finish(state.LastResult)
	}
	if len(board.MoveOrder) == 0 {
		return nil
	}
	if a.rec == nil {
		rec, err := NewGameRecord(a.dir, board.Size, black, white, a.clock.Now())
		if err != nil {
			return err
		}
		a.rec = rec
		a.recorded = nil
		a.size, a.black, a.white = board.Size, black, white
		a.resultAtNew = state.LastResult
		log.Info().Str("file", rec.FilePath).Msg("archiving game")
	}

	for i := len(a.recorded); i < len(board.MoveOrder); i++ {
		if err := addMove(a.rec, board, i); err != nil {
			return err
		}
		a.recorded = append(a.recorded, board.MoveOrder[i])
	}
	return nil
}

// Export writes the main match of state to a new file in dir right away
// and returns its path.
func Export(dir string, state *types.TournamentState, now time.Time) (string, error) {
	if state == nil || state.Board == nil {
		return "", fmt.Errorf("no game to export")
	}
	board := state.Board.Normalize()
	black, white := players(state)
	rec, err := NewGameRecord(dir, board.Size, black, white, now)
	if err != nil {
		return "", err
	}
	defer rec.Close()
	for i := range board.MoveOrder {
		if err := addMove(rec, board, i); err != nil {
			return "", err
		}
	}
	return rec.FilePath, nil
}

func players(state *types.TournamentState) (black, white string) {
	black, white = "Black", "White"
	if w := state.MainWorker(); w != nil {
		if w.BlackName != "" {
			black = w.BlackName
		}
		if w.WhiteName != "" {
			white = w.WhiteName
		}
	}
	return black, white
}

// addMove records move i, taking the colour from the board and falling
// back to alternation when the cell is empty.
func addMove(rec *GameRecord, board *types.BoardSnapshot, i int) error {
	m := board.MoveOrder[i]
	color := int(board.At(m.X, m.Y))
	if color == int(types.Empty) {
		color = 1 + i%2
	}
	return rec.AddMove(m.X, m.Y, color)
}

func (a *Archiver) continues(board *types.BoardSnapshot, black, white string) bool {
	if board.Size != a.size || black != a.black || white != a.white {
		return false
	}
	if len(board.MoveOrder) < len(a.recorded) {
		return false
	}
	for i, m := range a.recorded {
		if board.MoveOrder[i] != m {
			return false
		}
	}
	return true
}

func (a *Archiver) finish(lastResult string) {
	if lastResult != "" && lastResult != a.resultAtNew {
		if err := a.rec.SetResult(lastResult); err != nil {
			log.Warn().Err(err).Str("file", a.rec.FilePath).Msg("could not write result")
		}
	}
	log.Info().Str("file", a.rec.FilePath).Int("moves", a.rec.MoveCount()).Str("result", a.rec.Result).Msg("game archived")
	a.rec.Close()
	a.rec = nil
	a.recorded = nil
}

// Current returns the path of the game being recorded, if any.
func (a *Archiver) Current() (string, bool) {
	if a.rec == nil {
		return "", false
	}
	return a.rec.FilePath, true
}

// Close finishes the current record without a result.
func (a *Archiver) Close() {
	if a.rec == nil {
		return
	}
	a.rec.Close()
	a.rec = nil
	a.recorded = nil
}
