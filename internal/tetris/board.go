package tetris

// Board dimensions.
const (
	Width  = 10
	Height = 20
)

// Cell is one board position: empty, or locked with the shape that filled it.
type Cell struct {
	Locked bool
	Shape  Shape
}

// Board is the grid of locked cells. The zero value is an empty board.
// Rows are never cleared; locked cells stay until Clear.
type Board struct {
	grid [Height][Width]Cell
}

// CanPlace reports whether the piece, shifted by (dx, dy), stays inside the
// side walls and above the floor without touching a locked cell. Sub-cells
// above the top edge are allowed.
func (b *Board) CanPlace(p Piece, dx, dy int) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !p.Cells[i][j] {
				continue
			}
			x := p.Anchor.X + j + dx
			y := p.Anchor.Y + i + dy
			if x < 0 || x >= Width || y >= Height {
				return false
			}
			if y >= 0 && b.grid[y][x].Locked {
				return false
			}
		}
	}
	return true
}

// Lock burns the piece's occupied sub-cells into the board, overwriting
// whatever is there. Gravity only locks a piece at its current position, so
// placement is normally legal; an unchecked rotation can still leave
// sub-cells past a wall or the floor, and those are dropped.
func (b *Board) Lock(p Piece) {
	p.Cells.Each(func(i, j int) {
		x, y := p.Anchor.X+j, p.Anchor.Y+i
		if x < 0 || x >= Width || y < 0 || y >= Height {
			return
		}
		b.grid[y][x] = Cell{Locked: true, Shape: p.Shape}
	})
}

// Clear empties every cell.
func (b *Board) Clear() {
	b.grid = [Height][Width]Cell{}
}

// At returns the cell at (x, y). Coordinates must be on the board.
func (b *Board) At(x, y int) Cell {
	return b.grid[y][x]
}

// LockedCount returns the number of locked cells.
func (b *Board) LockedCount() int {
	n := 0
	for y := range b.grid {
		for x := range b.grid[y] {
			if b.grid[y][x].Locked {
				n++
			}
		}
	}
	return n
}

// FullRows counts the rows with every cell locked. They stay on the board.
func (b *Board) FullRows() int {
	n := 0
	for y := 0; y < Height; y++ {
		if b.RowFull(y) {
			n++
		}
	}
	return n
}

// RowFull reports whether every cell in row y is locked.
func (b *Board) RowFull(y int) bool {
	for x := 0; x < Width; x++ {
		if !b.grid[y][x].Locked {
			return false
		}
	}
	return true
}
