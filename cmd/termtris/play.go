package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/platform/plain"
	"github.com/vovakirdan/termtris/internal/platform/tui"
	"github.com/vovakirdan/termtris/internal/tetris"
)

var flagPlain bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Left/H/A       - Move left
  Right/L/D      - Move right
  Down/J/S       - Move down
  Space/Up/K/W   - Rotate clockwise
  P              - Pause
  R              - Restart (after game over)
  Q/Ctrl+C       - Quit

Pause and restart are not available with --plain.

Examples:
  termtris play
  termtris play --plain
  termtris play --config ./my-tetris.yaml --seed 7`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPlain, "plain", false, "Draw with plain ANSI output instead of the full-screen UI")
}

func runPlay(_ *cobra.Command, _ []string) {
	settings, cfg, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(io.Discard, "termtris")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	if flagPlain {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		playErr := plain.Play(ctx, os.Stdin, os.Stdout, plain.Options{
			Settings:    settings,
			PollTimeout: cfg.Timing.Poll(),
			Seed:        flagSeed,
			Logger:      logger,
		})
		if playErr != nil {
			closeLog()
			fail("running game: %v", playErr)
		}
		return
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Timing.TickRate(),
		Seed:     flagSeed,
	}

	if runErr := tui.Run(tetris.NewGame(settings), runtime, logger); runErr != nil {
		closeLog()
		fail("running game: %v", runErr)
	}
}
