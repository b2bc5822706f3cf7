package sgf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var gameStart = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func TestSgfCoord(t *testing.T) {
	tests := []struct {
		x, y int
		want string
	}{
		{0, 0, "aa"},
		{3, 4, "de"},
		{7, 7, "hh"}, // 15x15 centre
		{14, 14, "oo"},
		{19, 19, "tt"}, // 20x20 corner
	}
	for _, tt := range tests {
		got := sgfCoord(tt.x, tt.y)
		if got != tt.want {
			t.Errorf("sgfCoord(%d, %d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestParseResult(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// Already SGF format
		{"B+", "B+"},
		{"W+R", "W+R"},
		{"0", "0"},
		{"?", "?"},

		// Tournament summaries
		{"Game 3: alpha vs beta: 1-0 {black win}", "B+"},
		{"Game 4: alpha vs beta: 0-1 {white win}", "W+"},
		{"Game 5: alpha vs beta: 1/2-1/2 {board full}", "0"},
		{"Game 6: alpha vs beta: 0-1 {black resigns}", "W+R"},
		{"Game 7: alpha vs beta: 1-0 {white loses on time}", "B+T"},
		{"Game 8: alpha vs beta: 1-0 {white crashed}", "B+F"},
		{"Game 9: timer vs beta: 1-0 {five in a row}", "B+"},

		// Plain text
		{"Black wins", "B+"},
		{"White wins by resignation", "W+R"},
		{"draw", "0"},

		// Edge cases
		{"something else", "?"},
		{"", "?"},
	}
	for _, tt := range tests {
		got := parseResult(tt.input)
		if got != tt.want {
			t.Errorf("parseResult(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewGameRecord(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewGameRecord(dir, 15, "alpha", "beta", gameStart)
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}
	defer rec.Close()

	content, err := os.ReadFile(rec.FilePath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(content)

	for _, prop := range []string{"GM[4]", "FF[4]", "SZ[15]", "PB[alpha]", "PW[beta]", "DT[2026-03-14]", "RE[?]"} {
		if !strings.Contains(s, prop) {
			t.Errorf("SGF missing property %s in:\n%s", prop, s)
		}
	}
	if !strings.HasPrefix(s, "(;") {
		t.Error("SGF should start with '(;'")
	}
}

func TestFilenameFormat(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewGameRecord(dir, 20, "Engine 1", "x/y]", gameStart)
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}
	defer rec.Close()

	base := filepath.Base(rec.FilePath)
	want := "2026-03-14_150926_Engine_1-vs-x_y_20x20.sgf"
	if base != want {
		t.Errorf("filename = %s, want %s", base, want)
	}
}

func TestFilenameCollision(t *testing.T) {
	dir := t.TempDir()
	first, err := NewGameRecord(dir, 15, "a", "b", gameStart)
	if err != nil {
		t.Fatal(err)
	}
	defer first.Close()
	second, err := NewGameRecord(dir, 15, "a", "b", gameStart)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	if first.FilePath == second.FilePath {
		t.Fatal("second record overwrote the first")
	}
	if !strings.HasSuffix(second.FilePath, "_15x15_2.sgf") {
		t.Errorf("unexpected second path %s", second.FilePath)
	}
}

func TestAddMoveAndResult(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewGameRecord(dir, 15, "alpha", "beta", gameStart)
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}

	rec.AddMove(7, 7, 1)
	rec.AddMove(8, 7, 2)
	rec.AddMove(7, 8, 1)
	rec.SetResult("Game 1: alpha vs beta: 1-0 {five}")
	rec.Close()

	content, _ := os.ReadFile(rec.FilePath)
	s := string(content)

	if !strings.Contains(s, ";B[hh];W[ih];B[hi])") {
		t.Errorf("moves missing or out of order in:\n%s", s)
	}
	if !strings.Contains(s, "RE[B+]") {
		t.Errorf("expected RE[B+] in:\n%s", s)
	}
	if rec.MoveCount() != 3 {
		t.Errorf("move count = %d, want 3", rec.MoveCount())
	}
}

func TestEscapedNames(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewGameRecord(dir, 15, `odd]name`, `back\slash`, gameStart)
	if err != nil {
		t.Fatal(err)
	}
	rec.Close()

	content, _ := os.ReadFile(rec.FilePath)
	s := string(content)
	if !strings.Contains(s, `PB[odd\]name]`) || !strings.Contains(s, `PW[back\\slash]`) {
		t.Errorf("names not escaped:\n%s", s)
	}
}

func TestCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewGameRecord(dir, 15, "a", "b", gameStart)
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}

	rec.Close()
	rec.Close() // Should not panic
	if err := rec.AddMove(1, 1, 1); err == nil {
		t.Error("AddMove after Close should fail")
	}
}

func TestCrashSafety(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewGameRecord(dir, 15, "a", "b", gameStart)
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}

	rec.AddMove(4, 4, 1)
	rec.AddMove(2, 2, 2)

	// The file is valid SGF after every flush, even without Close().
	content, err := os.ReadFile(rec.FilePath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	s := string(content)

	if !strings.HasPrefix(s, "(;") || !strings.HasSuffix(strings.TrimSpace(s), ")") {
		t.Errorf("file is not a complete SGF tree:\n%s", s)
	}
	if !strings.Contains(s, ";B[ee];W[cc]") {
		t.Error("File should contain moves even without Close()")
	}

	rec.Close()
}
