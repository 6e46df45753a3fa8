package tetris

import "strings"

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Kind     Kind
	PieceX   int
	PieceY   int
	Shape    string
	Score    int
	Lines    int
	GameOver bool
	Paused   bool
	Board    string // Rows joined by '\n', '#' locked and '.' empty
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	var sb strings.Builder
	for y, row := range e.board.rows {
		if y > 0 {
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

	return Snapshot{
		Kind:     e.piece.Kind,
		PieceX:   e.piece.X,
		PieceY:   e.piece.Y,
		Shape:    e.piece.Shape.String(),
		Score:    e.score,
		Lines:    e.lines,
		GameOver: e.gameOver,
		Board:    sb.String(),
	}
}

// Snapshot returns the current game snapshot, pause flag included.
func (g *Game) Snapshot() Snapshot {
	s := g.ctrl.Engine().Snapshot()
	s.Paused = g.paused
	return s
}
