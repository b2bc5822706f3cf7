// Package sgf archives spectated games as SGF FF[4] records.
package sgf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// gameType is the SGF GM value for Gomoku/Renju.
const gameType = 4

// GameRecord tracks a watched game and rewrites it as SGF after every change.
type GameRecord struct {
	FilePath    string
	BoardSize   int
	PlayerBlack string
	PlayerWhite string
	Date        string
	Result      string
	moves       []string // ";B[hh]", ";W[hi]", ...
	file        *os.File
}

// NewGameRecord creates a new SGF file in dir and writes the initial header.
func NewGameRecord(dir string, boardSize int, black, white string, now time.Time) (*GameRecord, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	base := filepath.Join(dir, fmt.Sprintf("%s_%s-vs-%s_%dx%d",
		now.Format("2006-01-02_150405"), fileSafe(black), fileSafe(white), boardSize, boardSize))
	path := base + ".sgf"

	// Two games can start within the same second; never overwrite one.
	var f *os.File
	for n := 2; ; n++ {
		var err error
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("create sgf file: %w", err)
		}
		path = fmt.Sprintf("%s_%d.sgf", base, n)
	}

	rec := &GameRecord{
		FilePath:    path,
		BoardSize:   boardSize,
		PlayerBlack: black,
		PlayerWhite: white,
		Date:        now.Format("2006-01-02"),
		Result:      "?",
		file:        f,
	}

	if err := rec.flush(); err != nil {
		f.Close()
		return nil, err
	}

	return rec, nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func fileSafe(name string) string {
	s := strings.Trim(unsafeChars.ReplaceAllString(name, "_"), "_")
	if s == "" {
		return "unknown"
	}
	return s
}

// sgfCoord converts 0-indexed board coordinates to SGF letter pair.
// (0,0) -> "aa", (3,4) -> "de", (18,18) -> "ss".
func sgfCoord(x, y int) string {
	return string(rune('a'+x)) + string(rune('a'+y))
}

// AddMove appends a move to the record. color is 1=black, 2=white.
func (r *GameRecord) AddMove(x, y, color int) error {
	colorChar := "B"
	if color == 2 {
		colorChar = "W"
	}
	r.moves = append(r.moves, fmt.Sprintf(";%s[%s]", colorChar, sgfCoord(x, y)))
	return r.flush()
}

// MoveCount returns the number of recorded moves.
func (r *GameRecord) MoveCount() int {
	return len(r.moves)
}

// SetResult parses a game summary and sets the SGF RE property.
// Accepts tournament summaries like "Game 3: a vs b: 1-0 {black resigns}"
// as well as already-formatted SGF like "W+", "B+R".
func (r *GameRecord) SetResult(outcome string) error {
	r.Result = parseResult(outcome)
	return r.flush()
}

// Close performs a final flush and closes the file handle.
func (r *GameRecord) Close() {
	if r.file == nil {
		return
	}
	r.flush()
	r.file.Close()
	r.file = nil
}

// flush rewrites the complete SGF file from scratch.
func (r *GameRecord) flush() error {
	if r.file == nil {
		return fmt.Errorf("file already closed")
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("(;GM[%d]FF[4]CA[UTF-8]", gameType))
	b.WriteString("AP[termsuji-spectate:1.0]")
	b.WriteString(fmt.Sprintf("SZ[%d]", r.BoardSize))
	b.WriteString(fmt.Sprintf("PB[%s]", escape(r.PlayerBlack)))
	b.WriteString(fmt.Sprintf("PW[%s]", escape(r.PlayerWhite)))
	b.WriteString(fmt.Sprintf("DT[%s]", r.Date))
	b.WriteString(fmt.Sprintf("RE[%s]", r.Result))
	b.WriteString("\n")

	for _, m := range r.moves {
		b.WriteString(m)
	}

	b.WriteString(")\n")

	if _, err := r.file.Seek(0, 0); err != nil {
		return err
	}
	if err := r.file.Truncate(0); err != nil {
		return err
	}
	if _, err := r.file.WriteString(b.String()); err != nil {
		return err
	}
	return r.file.Sync()
}

// escape quotes the characters SGF text values reserve.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "]", `\]`)
}

var scoreToken = regexp.MustCompile(`(^|\s)(1-0|0-1|1/2-1/2)(\s|$)`)

// parseResult converts a game summary to an SGF RE[] value.
func parseResult(outcome string) string {
	o := strings.TrimSpace(outcome)

	if isValidSGFResult(o) {
		return o
	}

	low := strings.ToLower(o)

	var winner string
	if m := scoreToken.FindStringSubmatch(o); m != nil {
		switch m[2] {
		case "1-0":
			winner = "B"
		case "0-1":
			winner = "W"
		default:
			return "0"
		}
	} else {
		switch {
		case strings.HasPrefix(low, "black wins"):
			winner = "B"
		case strings.HasPrefix(low, "white wins"):
			winner = "W"
		case strings.HasPrefix(low, "draw"):
			return "0"
		default:
			return "?"
		}
	}

	// Only the {reason} part describes how the game ended; engine names
	// could contain anything.
	reason := low
	if i := strings.Index(low, "{"); i >= 0 {
		reason = low[i:]
	}
	switch {
	case strings.Contains(reason, "resign"):
		return winner + "+R"
	case strings.Contains(reason, "time"):
		return winner + "+T"
	case strings.Contains(reason, "forfeit"), strings.Contains(reason, "crash"), strings.Contains(reason, "illegal"):
		return winner + "+F"
	}
	return winner + "+"
}

// isValidSGFResult checks if a string is already a valid SGF result.
func isValidSGFResult(s string) bool {
	if s == "?" || s == "Draw" || s == "Void" || s == "0" {
		return true
	}
	if len(s) < 2 {
		return false
	}
	if (s[0] != 'B' && s[0] != 'W') || s[1] != '+' {
		return false
	}
	rest := s[2:]
	if rest == "" || rest == "R" || rest == "T" || rest == "F" || rest == "?" {
		return true
	}
	dotSeen := false
	for _, ch := range rest {
		if ch == '.' {
			if dotSeen {
				return false
			}
			dotSeen = true
		} else if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
