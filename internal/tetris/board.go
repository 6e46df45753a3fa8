package tetris

// Board is the fixed-size grid of locked cells, indexed [row][col].
// Row 0 is the top of the well.
type Board struct {
	width  int
	height int
	rows   [][]bool
}

// NewBoard creates an empty board.
func NewBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.rows = make([][]bool, height)
	for y := range b.rows {
		b.rows[y] = make([]bool, width)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// InBounds reports whether (x, y) is a cell of the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Filled reports whether the cell is occupied.
// Out-of-range coordinates are reported empty.
func (b *Board) Filled(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.rows[y][x]
}

// fill marks a cell occupied. Callers guarantee the cell is in bounds.
func (b *Board) fill(x, y int) {
	b.rows[y][x] = true
}

// rowFull reports whether every cell of row y is occupied.
func (b *Board) rowFull(y int) bool {
	for _, on := range b.rows[y] {
		if !on {
			return false
		}
	}
	return true
}

// clearFull removes full rows and inserts the same number of empty rows at
// the top, keeping the relative order of the rows that remain.
// Returns the number of rows removed.
func (b *Board) clearFull() int {
	kept := make([][]bool, 0, b.height)
	for y := range b.rows {
		if !b.rowFull(y) {
			kept = append(kept, b.rows[y])
		}
	}

	cleared := b.height - len(kept)
	if cleared == 0 {
		return 0
	}

	rows := make([][]bool, 0, b.height)
	for range cleared {
		rows = append(rows, make([]bool, b.width))
	}
	b.rows = append(rows, kept...)
	return cleared
}

// Rows returns a copy of the grid.
func (b *Board) Rows() [][]bool {
	out := make([][]bool, b.height)
	for y, row := range b.rows {
		out[y] = append([]bool(nil), row...)
	}
	return out
}
