package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Minimum board size: the widest shape is four cells.
const (
	MinBoardWidth  = 4
	MinBoardHeight = 4
)

// LoadTetris loads the game configuration.
// Search order: customPath -> ~/.termtris/tetris.yaml -> ./configs/tetris.yaml -> embedded default
//
// Files are decoded over the defaults, so a file may set only the keys it
// cares about.
func LoadTetris(customPath string) (TetrisConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("failed to load config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tetris.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/tetris.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultTetrisYAML)
	if err != nil {
		return DefaultTetrisConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a game.
func (c TetrisConfig) Validate() error {
	if c.Board.Width < MinBoardWidth || c.Board.Height < MinBoardHeight {
		return fmt.Errorf("%w: board must be at least %dx%d, got %dx%d",
			ErrInvalidConfig, MinBoardWidth, MinBoardHeight, c.Board.Width, c.Board.Height)
	}
	if c.Timing.GravityMS <= 0 {
		return fmt.Errorf("%w: gravity_ms must be positive, got %d", ErrInvalidConfig, c.Timing.GravityMS)
	}
	if c.Timing.PollMS <= 0 {
		return fmt.Errorf("%w: poll_ms must be positive, got %d", ErrInvalidConfig, c.Timing.PollMS)
	}
	if err := validateGlyph("filled", c.Render.Filled); err != nil {
		return err
	}
	if err := validateGlyph("empty", c.Render.Empty); err != nil {
		return err
	}
	if runewidth.StringWidth(c.Render.Filled) != runewidth.StringWidth(c.Render.Empty) {
		return fmt.Errorf("%w: filled %q and empty %q glyphs differ in width",
			ErrInvalidConfig, c.Render.Filled, c.Render.Empty)
	}
	return nil
}

// validateGlyph requires a non-empty glyph made of single-column runes, so
// that one rune occupies exactly one screen cell.
func validateGlyph(name, glyph string) error {
	if glyph == "" {
		return fmt.Errorf("%w: %s glyph is empty", ErrInvalidConfig, name)
	}
	for _, r := range glyph {
		if runewidth.RuneWidth(r) != 1 {
			return fmt.Errorf("%w: %s glyph %q contains %q which is not one column wide",
				ErrInvalidConfig, name, glyph, r)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".termtris", filename)
}
