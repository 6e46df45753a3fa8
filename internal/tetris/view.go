package tetris

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/termtris/internal/core"
)

// CellState is what a renderer needs to know about one board cell.
type CellState uint8

const (
	CellEmpty CellState = iota
	CellLocked
	CellActive
)

// View is a read-only picture of the game for renderers.
type View struct {
	Width      int
	Height     int
	Cells      [][]CellState // [row][col], active piece already merged in
	ActiveKind Kind
	Score      int
	Lines      int
	GameOver   bool
	Paused     bool
}

// View captures the board with the active piece overlaid. After game over
// the piece that failed to spawn is left out.
func (e *Engine) View() View {
	v := View{
		Width:      e.Width(),
		Height:     e.Height(),
		Cells:      make([][]CellState, e.Height()),
		ActiveKind: e.piece.Kind,
		Score:      e.score,
		Lines:      e.lines,
		GameOver:   e.gameOver,
	}
	for y, row := range e.board.rows {
		v.Cells[y] = make([]CellState, len(row))
		for x, on := range row {
			if on {
				v.Cells[y][x] = CellLocked
			}
		}
	}
	if !e.gameOver {
		for _, c := range e.PieceCells() {
			if e.board.InBounds(c.X, c.Y) {
				v.Cells[c.Y][c.X] = CellActive
			}
		}
	}
	return v
}

// DrawStyle controls how cells are painted.
type DrawStyle struct {
	Filled string // Glyph for an occupied cell, e.g. "[]"
	Empty  string // Glyph for an empty cell, same width as Filled
	Colors bool   // Color the active piece by kind

	// QuitHint, when set, is added to the game-over box for front ends
	// that wait for a quit key once the game has ended.
	QuitHint string
}

// DefaultDrawStyle matches the classic two-character bracket look.
func DefaultDrawStyle() DrawStyle {
	return DrawStyle{Filled: "[]", Empty: "  ", Colors: true}
}

// kindColors follows the usual piece palette.
var kindColors = [KindCount]core.Color{
	KindI: core.ColorCyan,
	KindO: core.ColorYellow,
	KindJ: core.ColorBlue,
	KindL: core.ColorOrange,
	KindS: core.ColorGreen,
	KindZ: core.ColorRed,
	KindT: core.ColorMagenta,
}

// KindColor returns the display color of a shape kind.
func KindColor(k Kind) core.Color {
	if k < 0 || int(k) >= KindCount {
		return core.ColorDefault
	}
	return kindColors[k]
}

const sidebarWidth = 18

// Layout returns the rectangle of the board frame (border included) for a
// view drawn on a screen of the given size.
func Layout(v View, style DrawStyle, screenW, screenH int) core.Rect {
	cellW := len([]rune(style.Filled))
	boxW := v.Width*cellW + 2
	boxH := v.Height + 2
	x := core.Max(0, (screenW-boxW-sidebarWidth)/2)
	y := core.Max(0, (screenH-boxH)/2)
	return core.NewRect(x, y, boxW, boxH)
}

// Draw paints v onto dst with the score to the right of the board. Game
// over and pause are shown as a box over the board.
func Draw(dst *core.Screen, v View, style DrawStyle) {
	dst.Clear()

	frame := Layout(v, style, dst.Width(), dst.Height())
	if frame.W > dst.Width() || frame.H > dst.Height() {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	filled := []rune(style.Filled)
	empty := []rune(style.Empty)
	cellW := len(filled)

	dst.DrawBox(frame, core.ColorGray)
	for y, row := range v.Cells {
		for x, state := range row {
			px := frame.X + 1 + x*cellW
			py := frame.Y + 1 + y
			glyph, color := empty, core.ColorDefault
			switch state {
			case CellLocked:
				glyph = filled
				if style.Colors {
					color = core.ColorWhite
				}
			case CellActive:
				glyph = filled
				if style.Colors {
					color = KindColor(v.ActiveKind)
				}
			}
			for i := range cellW {
				r := ' '
				if i < len(glyph) {
					r = glyph[i]
				}
				dst.SetColor(px+i, py, r, color)
			}
		}
	}

	sx := frame.Right() + 2
	dst.DrawText(sx, frame.Y+1, "Score: "+humanize.Comma(int64(v.Score)))
	dst.DrawText(sx, frame.Y+2, fmt.Sprintf("Lines: %d", v.Lines))

	switch {
	case v.GameOver:
		lines := []string{"Score: " + humanize.Comma(int64(v.Score))}
		if style.QuitHint != "" {
			lines = append(lines, style.QuitHint)
		}
		drawOverlay(dst, frame, "Game Over", lines...)
	case v.Paused:
		drawOverlay(dst, frame, "Paused", "P to continue")
	}
}

// drawOverlay draws a boxed message centered on the board frame. The title
// is separated from the remaining lines by a blank row.
func drawOverlay(dst *core.Screen, frame core.Rect, title string, lines ...string) {
	textW := len([]rune(title))
	for _, line := range lines {
		textW = core.Max(textW, len([]rune(line)))
	}
	boxW := textW + 4
	boxH := len(lines) + 4
	box := core.NewRect(
		frame.X+(frame.W-boxW)/2,
		frame.Y+(frame.H-boxH)/2,
		boxW, boxH,
	)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorDefault)
	drawCentered(dst, box, box.Y+1, title)
	for i, line := range lines {
		drawCentered(dst, box, box.Y+3+i, line)
	}
}

func drawCentered(dst *core.Screen, box core.Rect, y int, text string) {
	x := box.X + (box.W-len([]rune(text)))/2
	dst.DrawText(x, y, text)
}
