// Package tetris implements the falling-block game core: tetromino pieces,
// the locked-cell board, and the tick-driven engine that moves one active
// piece against one board. Nothing here knows about terminals or timing.
package tetris

import "github.com/vovakirdan/blockfall/internal/core"

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeJ
	ShapeL

	ShapeCount = 7
)

// Grid is a piece's 4×4 occupancy box, indexed [row][col].
type Grid [4][4]bool

// canonical layouts, row 0 on top.
var shapeGrids = [ShapeCount]Grid{
	ShapeI: {{true, true, true, true}},
	ShapeO: {{true, true}, {true, true}},
	ShapeT: {{false, true}, {true, true, true}},
	ShapeS: {{false, true, true}, {true, true}},
	ShapeZ: {{true, true}, {false, true, true}},
	ShapeJ: {{true}, {true, true, true}},
	ShapeL: {{false, false, true}, {true, true, true}},
}

var shapeGlyphs = [ShapeCount]rune{'I', 'O', 'T', 'S', 'Z', 'J', 'L'}

var shapeColors = [ShapeCount]core.Color{
	ShapeI: core.ColorBrightCyan,
	ShapeO: core.ColorBrightYellow,
	ShapeT: core.ColorMagenta,
	ShapeS: core.ColorBrightGreen,
	ShapeZ: core.ColorBrightRed,
	ShapeJ: core.ColorBrightBlue,
	ShapeL: core.ColorOrange,
}

// Glyph returns the display character for the shape.
func (s Shape) Glyph() rune {
	if int(s) >= ShapeCount {
		return '?'
	}
	return shapeGlyphs[s]
}

// Color returns the display color for the shape.
func (s Shape) Color() core.Color {
	if int(s) >= ShapeCount {
		return core.ColorDefault
	}
	return shapeColors[s]
}

func (s Shape) String() string {
	return string(s.Glyph())
}

// CanonicalGrid returns the unrotated layout of the shape.
func CanonicalGrid(s Shape) Grid {
	return shapeGrids[s]
}

// Rotated returns the grid turned a quarter about the box: out[j][3-i] = g[i][j].
// Shapes are not recentered, so most of them drift inside the box.
func (g Grid) Rotated() Grid {
	var out Grid
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[j][3-i] = g[i][j]
		}
	}
	return out
}

// Each calls fn(row, col) for every occupied sub-cell in row-major order.
func (g Grid) Each(fn func(row, col int)) {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if g[i][j] {
				fn(i, j)
			}
		}
	}
}

// Piece is the falling tetromino.
type Piece struct {
	Shape  Shape
	Cells  Grid
	Anchor core.Point // board position of Cells[0][0]
}

// SpawnPoint is where every new piece's box origin starts.
var SpawnPoint = core.Point{X: Width/2 - 2, Y: 0}

// Spawn returns a piece of the given shape in its canonical orientation at the spawn point.
func Spawn(s Shape) Piece {
	return Piece{
		Shape:  s,
		Cells:  CanonicalGrid(s),
		Anchor: SpawnPoint,
	}
}

// Rotated returns the piece's occupancy grid after one rotation. The piece is unchanged.
func (p Piece) Rotated() Grid {
	return p.Cells.Rotated()
}

// Occupies reports whether the piece covers board position (x, y).
func (p Piece) Occupies(x, y int) bool {
	i, j := y-p.Anchor.Y, x-p.Anchor.X
	if i < 0 || i >= 4 || j < 0 || j >= 4 {
		return false
	}
	return p.Cells[i][j]
}
