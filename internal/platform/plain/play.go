package plain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/tetris"
)

// Options configures a plain-mode game.
type Options struct {
	Settings    tetris.Settings
	PollTimeout time.Duration
	Seed        int64
	Logger      *log.Logger
}

// Play runs one game on the terminal behind in and out. It puts the terminal
// in raw mode for the duration and restores it on return. After game over
// the final frame stays up until the player presses q or Ctrl+C, or stdin
// closes. Quitting earlier ends the game at once.
func Play(ctx context.Context, in, out *os.File, opts Options) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("plain: stdin is not a terminal")
	}

	width, height := core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH
	if w, h, err := term.GetSize(int(out.Fd())); err == nil {
		width, height = w, h
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("plain: raw mode: %w", err)
	}
	defer term.Restore(fd, state) //nolint:errcheck // Best-effort restore on exit

	return run(ctx, in, out, width, height, opts)
}

// run is Play without the terminal setup.
func run(ctx context.Context, in io.Reader, out io.Writer, width, height int, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Settings.Style.Filled == "" {
		opts.Settings.Style = tetris.DefaultDrawStyle()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	src, err := NewInputSource(in, cancel)
	if err != nil {
		return err
	}
	renderer := NewRenderer(out, width, height, opts.Settings.Style)
	if err := renderer.Start(); err != nil {
		return err
	}
	defer renderer.Close() //nolint:errcheck // Best-effort cursor restore

	engine := tetris.New(opts.Settings.Board, rand.New(rand.NewSource(opts.Seed)))
	logger.Info("game started", "mode", "plain", "seed", opts.Seed)

	err = tetris.Run(ctx, engine, src, renderer, tetris.RunOptions{
		Gravity:     opts.Settings.Gravity,
		PollTimeout: opts.PollTimeout,
		Now:         opts.Settings.Clock,
	})
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("quit", "score", engine.Score(), "lines", engine.Lines())
		return src.Err()
	case err != nil:
		return err
	}

	logger.Info("game over", "score", engine.Score(), "lines", engine.Lines())

	// Keep the final frame up until the player leaves
	select {
	case <-src.Done():
	case <-ctx.Done():
	}
	return src.Err()
}
