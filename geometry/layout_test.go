package geometry

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"termsuji-spectate/types"
)

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(15, 800, 600)
	assert.Equal(t, 600-2*Margin, l.GridSize)
	assert.InDelta(t, (600-2*Margin)/14, l.CellSize, 1e-9)
	assert.InDelta(t, (800-l.GridSize)/2, l.OriginX, 1e-9)
	assert.InDelta(t, Margin, l.OriginY, 1e-9)
	assert.False(t, l.Empty())

	// The grid is square: last intersection is GridSize away on both axes.
	last := l.Point(14, 14)
	assert.InDelta(t, l.GridSize, last.X-l.OriginX, 1e-9)
	assert.InDelta(t, l.GridSize, last.Y-l.OriginY, 1e-9)
}

func TestComputeLayoutPositiveCellForAllSizes(t *testing.T) {
	for size := 2; size <= 26; size++ {
		l := ComputeLayout(size, 2*Margin+1, 400)
		if l.CellSize <= 0 {
			t.Errorf("size %d: cell size %f, want > 0", size, l.CellSize)
		}
	}
}

func TestComputeLayoutDegenerate(t *testing.T) {
	tests := []struct {
		name          string
		size          int
		width, height float64
	}{
		{"zero viewport", 15, 0, 0},
		{"negative width", 15, -10, 300},
		{"smaller than margins", 15, 2 * Margin, 500},
		{"board of one line", 1, 500, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(tt.size, tt.width, tt.height)
			assert.True(t, l.Empty())
			assert.Zero(t, l.CellSize)
			assert.Zero(t, l.GridSize)
		})
	}
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "A", ColumnLabel(0))
	assert.Equal(t, "H", ColumnLabel(7))
	assert.Equal(t, "Z", ColumnLabel(25))

	for _, size := range []int{2, 15, 19, 20} {
		assert.Equal(t, strconv.Itoa(size), RowLabel(0, size))
		assert.Equal(t, "1", RowLabel(size-1, size))
	}

	assert.Equal(t, "H8", Coord(types.BoardPos{X: 7, Y: 7}, 15))
	assert.Equal(t, "A15", Coord(types.BoardPos{X: 0, Y: 0}, 15))
}

func TestLabelAnchors(t *testing.T) {
	l := ComputeLayout(15, 500, 500)
	c := l.ColumnLabelAt(0)
	assert.Equal(t, l.OriginX, c.X)
	assert.Equal(t, l.OriginY-Margin/2, c.Y)
	r := l.RowLabelAt(2)
	assert.InDelta(t, l.OriginX-Margin*0.55, r.X, 1e-9)
	assert.InDelta(t, l.OriginY+2*l.CellSize, r.Y, 1e-9)
}
