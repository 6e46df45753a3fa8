package plain

import (
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/platform/tui"
	"github.com/vovakirdan/termtris/internal/tetris"
)

// ANSI control sequences used by the renderer.
const (
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Renderer repaints the whole frame on every Render call. Rows end in CRLF
// since a raw terminal does not translate newlines.
type Renderer struct {
	w      io.Writer
	screen *core.Screen
	style  tetris.DrawStyle
}

// quitHint is shown on the game-over box, since the frame stays up until
// the player leaves.
const quitHint = "q to quit"

// NewRenderer creates a renderer for a terminal of the given size.
func NewRenderer(w io.Writer, width, height int, style tetris.DrawStyle) *Renderer {
	if style.QuitHint == "" {
		style.QuitHint = quitHint
	}
	return &Renderer{
		w:      w,
		screen: core.NewScreen(width, height),
		style:  style,
	}
}

// Start clears the terminal and hides the cursor.
func (r *Renderer) Start() error {
	return r.write(clearScreen + hideCursor)
}

// Render draws v and writes the frame.
func (r *Renderer) Render(v tetris.View) error {
	tetris.Draw(r.screen, v, r.style)
	frame := strings.ReplaceAll(tui.RenderScreen(r.screen), "\n", "\r\n")
	return r.write(cursorHome + frame)
}

// Close restores the cursor and moves below the frame.
func (r *Renderer) Close() error {
	return r.write(showCursor + "\r\n")
}

func (r *Renderer) write(s string) error {
	if _, err := io.WriteString(r.w, s); err != nil {
		return fmt.Errorf("plain: write: %w", err)
	}
	return nil
}
