// Package types contains shared data structures for termsuji-spectate.
package types

import "encoding/json"

// DefaultBoardSize is used when a snapshot omits the board size.
const DefaultBoardSize = 15

// MaxBoardSize is the largest board that still has a column letter.
const MaxBoardSize = 26

// Cell is the content of a single intersection. The values match the wire format.
type Cell int

const (
	Empty Cell = 0
	Black Cell = 1
	White Cell = 2
)

// BoardPos represents a position on the board.
type BoardPos struct {
	X int
	Y int
}

// NoMove is the "none" sentinel for the last move.
var NoMove = BoardPos{X: -1, Y: -1}

// UnmarshalJSON allows BoardPos to be unmarshaled from a JSON array [x, y].
// Anything else decodes to NoMove so one bad entry cannot spoil a snapshot.
func (p *BoardPos) UnmarshalJSON(data []byte) error {
	var v []float64
	if err := json.Unmarshal(data, &v); err != nil || len(v) < 2 {
		*p = NoMove
		return nil
	}
	p.X = int(v[0])
	p.Y = int(v[1])
	return nil
}

// MarshalJSON writes BoardPos as a JSON array [x, y].
func (p BoardPos) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// BoardSnapshot is the board state for one rendering pass.
// Cells is row-major, indexed as Cells[y*Size+x].
type BoardSnapshot struct {
	Size      int        `json:"size"`
	Cells     []Cell     `json:"cells"`
	MoveOrder []BoardPos `json:"moveOrder"`
	LastMoveX int        `json:"lastMoveX"`
	LastMoveY int        `json:"lastMoveY"`
}

// UnmarshalJSON decodes a board, treating absent lastMoveX/lastMoveY as "none".
func (b *BoardSnapshot) UnmarshalJSON(data []byte) error {
	type plain BoardSnapshot
	v := plain{LastMoveX: -1, LastMoveY: -1}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = BoardSnapshot(v)
	return nil
}

// NewBoardSnapshot creates an empty board of the given size.
func NewBoardSnapshot(size int) *BoardSnapshot {
	return &BoardSnapshot{
		Size:      size,
		Cells:     make([]Cell, size*size),
		LastMoveX: -1,
		LastMoveY: -1,
	}
}

// At returns the cell at x, y. Anything outside the grid or past the end
// of a short Cells slice reads as Empty.
func (b *BoardSnapshot) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.Size || y >= b.Size {
		return Empty
	}
	i := y*b.Size + x
	if i >= len(b.Cells) {
		return Empty
	}
	return b.Cells[i]
}

// Contains reports whether p lies on the board.
func (b *BoardSnapshot) Contains(p BoardPos) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.Size && p.Y < b.Size
}

// LastMove returns the last move, or false when there is none.
func (b *BoardSnapshot) LastMove() (BoardPos, bool) {
	p := BoardPos{X: b.LastMoveX, Y: b.LastMoveY}
	if p.X < 0 || p.Y < 0 || !b.Contains(p) {
		return NoMove, false
	}
	return p, true
}

// MoveNumber returns the 1-based play order of the stone at p, or 0 if
// p does not appear in MoveOrder.
func (b *BoardSnapshot) MoveNumber(p BoardPos) int {
	for i, m := range b.MoveOrder {
		if m == p {
			return i + 1
		}
	}
	return 0
}

// Normalize returns a copy with defaults applied: a missing or oversized
// size becomes DefaultBoardSize, cells are padded or cut to Size*Size, and move order
// entries that are off the board or repeated are dropped.
func (b *BoardSnapshot) Normalize() *BoardSnapshot {
	size := b.Size
	if size < 2 || size > MaxBoardSize {
		size = DefaultBoardSize
	}
	out := &BoardSnapshot{
		Size:      size,
		Cells:     make([]Cell, size*size),
		LastMoveX: b.LastMoveX,
		LastMoveY: b.LastMoveY,
	}
	copy(out.Cells, b.Cells)
	for i, c := range out.Cells {
		if c != Black && c != White {
			out.Cells[i] = Empty
		}
	}
	seen := make(map[BoardPos]bool, len(b.MoveOrder))
	for _, m := range b.MoveOrder {
		if !out.Contains(m) || seen[m] {
			continue
		}
		seen[m] = true
		out.MoveOrder = append(out.MoveOrder, m)
	}
	return out
}

// WorkerStatus is the live status of one concurrently running game.
type WorkerStatus struct {
	ID            int    `json:"id"`
	GameIdx       int    `json:"gameIdx"`
	EngineName    string `json:"engineName"`
	BlackName     string `json:"blackName"`
	WhiteName     string `json:"whiteName"`
	IsBlackActive bool   `json:"isBlackActive"`
	BlackTime     int64  `json:"blackTime"` // ms remaining, <=0 unknown
	WhiteTime     int64  `json:"whiteTime"`
}

// MatchResult is an aggregated pairing outcome from Name1's perspective.
type MatchResult struct {
	Name1  string  `json:"name1"`
	Name2  string  `json:"name2"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
	Draws  int     `json:"draws"`
	Score  float64 `json:"score"`
	Total  int     `json:"total"`
}

// TournamentState is the root snapshot served by /api/state.
type TournamentState struct {
	GamesCompleted int            `json:"gamesCompleted"`
	GamesTotal     int            `json:"gamesTotal"`
	LastResult     string         `json:"lastResult"`
	Board          *BoardSnapshot `json:"board"`
	Workers        []WorkerStatus `json:"workers"`
	Results        []MatchResult  `json:"results"`
	LogLines       []string       `json:"logLines"`
}

// MainWorker returns the first worker, which is the match shown on screen.
func (s *TournamentState) MainWorker() *WorkerStatus {
	if s == nil || len(s.Workers) == 0 {
		return nil
	}
	return &s.Workers[0]
}
