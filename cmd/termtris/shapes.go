package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/termtris/internal/platform/tui"
	"github.com/vovakirdan/termtris/internal/tetris"
)

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Print the shape catalog",
	Long: `Shows the seven shapes in spawn order with their four clockwise
rotations, as the game computes them.`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		printShapes(os.Stdout)
	},
}

var rotationStyle = lipgloss.NewStyle().PaddingRight(3)

// printShapes writes every kind followed by its rotations side by side.
func printShapes(w io.Writer) {
	for k := range tetris.Kind(tetris.KindCount) {
		style := tui.StyleFor(tetris.KindColor(k))

		blocks := make([]string, 0, 4)
		shape := tetris.ShapeOf(k)
		for range 4 {
			blocks = append(blocks, rotationStyle.Render(style.Render(shapeRows(shape))))
			shape = shape.Rotate()
		}

		fmt.Fprintf(w, "%s\n%s\n\n", k, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	}
}

// shapeRows draws a shape with the in-game glyphs.
func shapeRows(s tetris.Shape) string {
	lines := strings.Split(s.String(), "\n")
	for i, line := range lines {
		line = strings.ReplaceAll(line, "#", "[]")
		lines[i] = strings.ReplaceAll(line, ".", "  ")
	}
	return strings.Join(lines, "\n")
}
