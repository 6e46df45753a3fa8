package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/termtris/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "Score: 100")
	s.SetColor(2, 1, '[', core.ColorCyan)
	s.SetColor(3, 1, ']', core.ColorCyan)
	s.SetColor(4, 1, '[', core.ColorRed)
	s.SetColor(0, 2, '─', core.ColorGray)

	out := ansi.Strip(RenderScreen(s))
	if out != s.String() {
		t.Errorf("RenderScreen text = %q, expected %q", out, s.String())
	}
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("RenderScreen has %d newlines, expected 2", n)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	got := StyleFor(core.Color(200)).Render("x")
	if got != StyleFor(core.ColorDefault).Render("x") {
		t.Errorf("unknown color should render like the default, got %q", got)
	}
}
