package sgf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"termsuji-spectate/types"
)

func snapshot(black, white, last string, moves ...types.BoardPos) *types.TournamentState {
	board := types.NewBoardSnapshot(15)
	for i, m := range moves {
		board.Cells[m.Y*15+m.X] = types.Cell(1 + i%2)
	}
	board.MoveOrder = moves
	return &types.TournamentState{
		LastResult: last,
		Board:      board,
		Workers:    []types.WorkerStatus{{BlackName: black, WhiteName: white}},
	}
}

func readAll(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]string{}
	for _, e := range entries {
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		out[e.Name()] = string(b)
	}
	return out
}

func TestArchiverFollowsGames(t *testing.T) {
	dir := t.TempDir()
	clock := clockwork.NewFakeClockAt(gameStart)
	a := NewArchiver(dir, clock)
	defer a.Close()

	h8, i8, h9 := types.BoardPos{X: 7, Y: 7}, types.BoardPos{X: 8, Y: 7}, types.BoardPos{X: 7, Y: 6}

	// Nothing is written before the first move.
	if err := a.Observe(snapshot("alpha", "beta", "")); err != nil {
		t.Fatal(err)
	}
	if _, ok := a.Current(); ok {
		t.Fatal("no record expected for an empty board")
	}

	for _, s := range []*types.TournamentState{
		snapshot("alpha", "beta", "", h8),
		snapshot("alpha", "beta", "", h8, i8),
		snapshot("alpha", "beta", "", h8, i8), // repeated poll
		snapshot("alpha", "beta", "", h8, i8, h9),
	} {
		if err := a.Observe(s); err != nil {
			t.Fatal(err)
		}
	}
	first, ok := a.Current()
	if !ok {
		t.Fatal("expected a record in progress")
	}

	clock.Advance(90 * time.Second)
	// A new game between the other colours starts; the summary of the first arrived.
	if err := a.Observe(snapshot("beta", "alpha", "Game 1: alpha vs beta: 1-0 {five}", h8)); err != nil {
		t.Fatal(err)
	}
	second, _ := a.Current()
	if second == first {
		t.Fatal("a new record should have been started")
	}

	files := readAll(t, dir)
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	got := files[filepath.Base(first)]
	if !strings.Contains(got, ";B[hh];W[ih];B[hg])") {
		t.Errorf("first game moves wrong:\n%s", got)
	}
	if !strings.Contains(got, "RE[B+]") {
		t.Errorf("first game result missing:\n%s", got)
	}
	if strings.Count(got, ";B[hh]") != 1 {
		t.Errorf("repeated poll duplicated moves:\n%s", got)
	}
	if !strings.Contains(files[filepath.Base(second)], "PB[beta]") {
		t.Errorf("second game players wrong:\n%s", files[filepath.Base(second)])
	}
}

func TestArchiverRestartOnShorterMoveOrder(t *testing.T) {
	dir := t.TempDir()
	a := NewArchiver(dir, clockwork.NewFakeClockAt(gameStart))
	defer a.Close()

	h8, i8 := types.BoardPos{X: 7, Y: 7}, types.BoardPos{X: 8, Y: 7}
	a.Observe(snapshot("a", "b", "old result", h8, i8))
	first, _ := a.Current()
	a.Observe(snapshot("a", "b", "old result", i8))
	second, _ := a.Current()

	if first == second {
		t.Fatal("a move order that does not extend the record starts a new game")
	}
	if got := readAll(t, dir)[filepath.Base(first)]; !strings.Contains(got, "RE[?]") {
		t.Errorf("unchanged last result must not be attributed to the game:\n%s", got)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	path, err := Export(dir, snapshot("alpha", "beta", "", types.BoardPos{X: 0, Y: 0}, types.BoardPos{X: 1, Y: 1}), gameStart)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), ";B[aa];W[bb])") {
		t.Errorf("export content wrong:\n%s", b)
	}

	if _, err := Export(dir, &types.TournamentState{}, gameStart); err == nil {
		t.Error("exporting without a board should fail")
	}
}
