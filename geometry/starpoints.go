package geometry

import "termsuji-spectate/types"

var starPoints = map[int][]types.BoardPos{
	15: {
		{X: 3, Y: 3}, {X: 3, Y: 7}, {X: 3, Y: 11},
		{X: 7, Y: 3}, {X: 7, Y: 7}, {X: 7, Y: 11},
		{X: 11, Y: 3}, {X: 11, Y: 7}, {X: 11, Y: 11},
	},
	19: {
		{X: 3, Y: 3}, {X: 3, Y: 9}, {X: 3, Y: 15},
		{X: 9, Y: 3}, {X: 9, Y: 9}, {X: 9, Y: 15},
		{X: 15, Y: 3}, {X: 15, Y: 9}, {X: 15, Y: 15},
	},
	20: {
		{X: 3, Y: 3}, {X: 3, Y: 9}, {X: 3, Y: 16},
		{X: 9, Y: 3}, {X: 9, Y: 9}, {X: 9, Y: 16},
		{X: 16, Y: 3}, {X: 16, Y: 9}, {X: 16, Y: 16},
	},
}

// StarPoints returns the marked intersections for a board size.
// Sizes without a table get the single centre point.
func StarPoints(size int) []types.BoardPos {
	if pts, ok := starPoints[size]; ok {
		out := make([]types.BoardPos, len(pts))
		copy(out, pts)
		return out
	}
	mid := size / 2
	return []types.BoardPos{{X: mid, Y: mid}}
}

// IsStarPoint checks if a position is a star point on the board.
func IsStarPoint(x, y, size int) bool {
	for _, p := range StarPoints(size) {
		if p.X == x && p.Y == y {
			return true
		}
	}
	return false
}
