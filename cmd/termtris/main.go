// termtris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	termtris                 - Play in the terminal (same as "play")
//	termtris play [--plain]  - Play; --plain skips the full-screen UI
//	termtris serve           - Start SSH server for remote play
//	termtris shapes          - Print the shape catalog and its rotations
//
// Global flags:
//
//	--config <path>     - Game config YAML (default: search ~/.termtris, ./configs)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--log-level <lvl>   - debug, info, warn or error (default: info)
//	--log-file <path>   - Write logs to a file while playing
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/tetris"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "termtris",
	Short: "termtris - falling blocks in your terminal",
	Long: `termtris is a single-player falling-block puzzle game that runs in
the terminal or over SSH.

Available commands:
  play     - Play in this terminal (default)
  serve    - Start SSH server for remote play
  shapes   - Print the shape catalog

Examples:
  termtris
  termtris play --plain
  termtris serve --ssh :2222
  termtris --seed 42 --log-file termtris.log`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.Flags().BoolVar(&flagPlain, "plain", false, "Draw with plain ANSI output instead of the full-screen UI")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(shapesCmd)
}

// newLogger builds the logger for a command. Without --log-file it writes to
// fallback, which is io.Discard for local play so the game screen stays clean.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadSettings loads the config and converts it to game settings.
func loadSettings() (tetris.Settings, config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return tetris.Settings{}, cfg, err
	}
	return tetris.SettingsFromConfig(cfg), cfg, nil
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
