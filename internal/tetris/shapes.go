package tetris

import "strings"

// Kind identifies one of the seven canonical shapes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindJ
	KindL
	KindS
	KindZ
	KindT
)

// KindCount is the size of the shape catalog.
const KindCount = 7

// String returns the conventional letter for the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= KindCount {
		return "?"
	}
	return "IOJLSZT"[k : k+1]
}

// Shape is a rectangular occupancy matrix indexed [row][col].
// Shapes are treated as immutable: every transform returns a new matrix.
type Shape [][]bool

var catalog = [KindCount]Shape{
	KindI: parseShape("####"),
	KindO: parseShape("##", "##"),
	KindJ: parseShape("#..", "###"),
	KindL: parseShape("..#", "###"),
	KindS: parseShape(".##", "##."),
	KindZ: parseShape("##.", ".##"),
	KindT: parseShape(".#.", "###"),
}

// parseShape builds a shape from rows where '#' marks an occupied cell.
func parseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for i, row := range rows {
		s[i] = make([]bool, len(row))
		for j := range row {
			s[i][j] = row[j] == '#'
		}
	}
	return s
}

// ShapeOf returns a copy of the catalog shape for the kind.
func ShapeOf(k Kind) Shape {
	return catalog[k].Clone()
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	for i, row := range s {
		c[i] = append([]bool(nil), row...)
	}
	return c
}

// Rotate returns the shape turned 90° clockwise: the row order is reversed
// and the result transposed. The receiver is left untouched.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	r := make(Shape, w)
	for j := range w {
		r[j] = make([]bool, h)
		for i := range h {
			r[j][i] = s[h-1-i][j]
		}
	}
	return r
}

// Equal reports whether both shapes have the same dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if s.Height() != o.Height() || s.Width() != o.Width() {
		return false
	}
	for i := range s {
		for j := range s[i] {
			if s[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// String renders the shape with '#' for occupied and '.' for empty cells.
func (s Shape) String() string {
	var sb strings.Builder
	for i, row := range s {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, on := range row {
			if on {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
