package tetris

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridOf parses rows like "0110" into a Grid; missing rows are empty.
func gridOf(rows ...string) Grid {
	var g Grid
	for i, row := range rows {
		for j, ch := range row {
			g[i][j] = ch == '1'
		}
	}
	return g
}

func gridString(g Grid) string {
	rows := make([]string, 4)
	for i := range g {
		var b strings.Builder
		for j := range g[i] {
			if g[i][j] {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		rows[i] = b.String()
	}
	return strings.Join(rows, "/")
}

func TestSpawnCanonicalLayouts(t *testing.T) {
	tests := []struct {
		shape Shape
		glyph rune
		want  Grid
	}{
		{ShapeI, 'I', gridOf("1111")},
		{ShapeO, 'O', gridOf("1100", "1100")},
		{ShapeT, 'T', gridOf("0100", "1110")},
		{ShapeS, 'S', gridOf("0110", "1100")},
		{ShapeZ, 'Z', gridOf("1100", "0110")},
		{ShapeJ, 'J', gridOf("1000", "1110")},
		{ShapeL, 'L', gridOf("0010", "1110")},
	}

	require.Len(t, tests, ShapeCount)
	for _, tc := range tests {
		t.Run(string(tc.glyph), func(t *testing.T) {
			p := Spawn(tc.shape)
			assert.Equal(t, gridString(tc.want), gridString(p.Cells))
			assert.Equal(t, 4, occupied(p.Cells))
			assert.Equal(t, tc.glyph, p.Shape.Glyph())
			assert.Equal(t, SpawnPoint, p.Anchor)
		})
	}
}

func TestSpawnPoint(t *testing.T) {
	assert.Equal(t, Width/2-2, SpawnPoint.X)
	assert.Equal(t, 0, SpawnPoint.Y)
}

func TestRotatedTransform(t *testing.T) {
	// rotated[j][3-i] = cells[i][j]: the top row becomes the right column.
	p := Spawn(ShapeI)
	assert.Equal(t, gridString(gridOf("0001", "0001", "0001", "0001")), gridString(p.Rotated()))

	// No recentering: the O drifts to the right edge of the box.
	o := Spawn(ShapeO)
	assert.Equal(t, gridString(gridOf("0011", "0011")), gridString(o.Rotated()))

	l := Spawn(ShapeL)
	assert.Equal(t, gridString(gridOf("0010", "0010", "0011")), gridString(l.Rotated()))
}

func TestRotatedIsPure(t *testing.T) {
	p := Spawn(ShapeT)
	before := p.Cells
	_ = p.Rotated()
	assert.Equal(t, before, p.Cells)
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for s := Shape(0); s < ShapeCount; s++ {
		t.Run(s.String(), func(t *testing.T) {
			g := CanonicalGrid(s)
			r := g
			for i := 0; i < 4; i++ {
				r = r.Rotated()
				assert.Equal(t, 4, occupied(r), "rotation %d changed the cell count", i+1)
			}
			assert.Equal(t, g, r)
		})
	}
}

func TestPieceOccupies(t *testing.T) {
	p := Spawn(ShapeT) // anchor (3,0): cells (4,0), (3,1), (4,1), (5,1)

	assert.True(t, p.Occupies(4, 0))
	assert.True(t, p.Occupies(5, 1))
	assert.False(t, p.Occupies(3, 0))
	assert.False(t, p.Occupies(2, 1))
	assert.False(t, p.Occupies(4, -1))
}

func TestShapeColorsDistinct(t *testing.T) {
	seen := make(map[any]Shape)
	for s := Shape(0); s < ShapeCount; s++ {
		c := s.Color()
		if other, ok := seen[c]; ok {
			t.Errorf("shapes %v and %v share color %v", other, s, c)
		}
		seen[c] = s
	}
	assert.Equal(t, '?', Shape(ShapeCount).Glyph())
}

func occupied(g Grid) int {
	n := 0
	g.Each(func(int, int) { n++ })
	return n
}
