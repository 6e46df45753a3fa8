// Package tetris implements the falling-block game: the engine holding the
// board and active piece, the control loop that feeds it input and gravity,
// and the adapter the terminal platform drives.
//
// The engine is pure data. It has no reference to any terminal, renderer or
// input device; the control loop wires those collaborators to it.
package tetris

import (
	"math/rand"
)

// Default board dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// PointsPerLine is the flat award for each cleared row.
const PointsPerLine = 100

// Options configures the board dimensions. Zero values select the defaults.
type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

// Piece is the falling piece: a shape anchored at (X, Y) in board coordinates.
type Piece struct {
	Kind  Kind
	Shape Shape
	X, Y  int
}

// Point is a board coordinate.
type Point struct {
	X, Y int
}

// Engine holds the board, the active piece, the score and the game-over flag.
// All mutating operations become no-ops once the game is over.
type Engine struct {
	board    *Board
	piece    Piece
	rng      *rand.Rand
	score    int
	lines    int
	gameOver bool
}

// New creates an engine with an empty board and spawns the first piece.
func New(opts Options, rng *rand.Rand) *Engine {
	opts = opts.withDefaults()
	e := &Engine{
		board: NewBoard(opts.Width, opts.Height),
		rng:   rng,
	}
	e.Spawn()
	return e
}

// Width returns the board width.
func (e *Engine) Width() int { return e.board.Width() }

// Height returns the board height.
func (e *Engine) Height() int { return e.board.Height() }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Lines returns the total number of cleared rows.
func (e *Engine) Lines() int { return e.lines }

// GameOver reports whether the game has ended.
func (e *Engine) GameOver() bool { return e.gameOver }

// Filled reports whether a board cell is locked.
func (e *Engine) Filled(x, y int) bool { return e.board.Filled(x, y) }

// Board returns a copy of the locked cells.
func (e *Engine) Board() [][]bool { return e.board.Rows() }

// Piece returns a copy of the active piece.
func (e *Engine) Piece() Piece {
	p := e.piece
	p.Shape = p.Shape.Clone()
	return p
}

// PieceCells returns the occupied cells of the active piece in board coordinates.
func (e *Engine) PieceCells() []Point {
	var cells []Point
	for i, row := range e.piece.Shape {
		for j, on := range row {
			if on {
				cells = append(cells, Point{X: e.piece.X + j, Y: e.piece.Y + i})
			}
		}
	}
	return cells
}

// Spawn replaces the active piece with a uniformly random catalog shape,
// centered horizontally on the top row. It does not check for collision.
func (e *Engine) Spawn() {
	if e.gameOver {
		return
	}
	e.spawnKind(Kind(e.rng.Intn(KindCount)))
}

func (e *Engine) spawnKind(k Kind) {
	shape := ShapeOf(k)
	e.piece = Piece{
		Kind:  k,
		Shape: shape,
		X:     e.board.Width()/2 - shape.Width()/2,
		Y:     0,
	}
}

// Collides reports whether placing shape with its anchor at (x, y) would put
// an occupied cell below the floor, beside the walls or on a locked cell.
func (e *Engine) Collides(shape Shape, x, y int) bool {
	for i, row := range shape {
		for j, on := range row {
			if !on {
				continue
			}
			bx, by := x+j, y+i
			if by >= e.board.Height() || bx < 0 || bx >= e.board.Width() {
				return true
			}
			// Pieces never rise above row 0; this only guards the index.
			if by < 0 {
				return true
			}
			if e.board.rows[by][bx] {
				return true
			}
		}
	}
	return false
}

// Move shifts the active piece by (dx, dy) if the target is free.
// On failure nothing changes.
func (e *Engine) Move(dx, dy int) bool {
	if e.gameOver {
		return false
	}
	nx, ny := e.piece.X+dx, e.piece.Y+dy
	if e.Collides(e.piece.Shape, nx, ny) {
		return false
	}
	e.piece.X, e.piece.Y = nx, ny
	return true
}

// Rotate turns the active piece clockwise in place if the rotated shape fits
// at the current anchor. There are no wall kicks: a blocked rotation is
// simply dropped.
func (e *Engine) Rotate() bool {
	if e.gameOver {
		return false
	}
	rotated := e.piece.Shape.Rotate()
	if e.Collides(rotated, e.piece.X, e.piece.Y) {
		return false
	}
	e.piece.Shape = rotated
	return true
}

// LockAndResolve merges the active piece into the board, clears full rows
// and spawns the next piece. If the new piece does not fit at its spawn
// position the game is over. Returns the number of rows cleared.
func (e *Engine) LockAndResolve() int {
	if e.gameOver {
		return 0
	}
	for _, c := range e.PieceCells() {
		e.board.fill(c.X, c.Y)
	}
	cleared := e.ClearLines()
	e.Spawn()
	if e.Collides(e.piece.Shape, e.piece.X, e.piece.Y) {
		e.gameOver = true
	}
	return cleared
}

// ClearLines removes every full row, drops the rows above it and awards
// PointsPerLine for each one. Returns the number of rows cleared.
func (e *Engine) ClearLines() int {
	if e.gameOver {
		return 0
	}
	cleared := e.board.clearFull()
	e.score += cleared * PointsPerLine
	e.lines += cleared
	return cleared
}
