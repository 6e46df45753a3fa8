// Package config provides YAML-based game configuration loading for termtris.
package config

import "time"

// TetrisConfig contains all configuration for the game.
type TetrisConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Timing TimingConfig `yaml:"timing"`
	Render RenderConfig `yaml:"render"`
}

// BoardConfig defines the well dimensions in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines the loop timing in milliseconds.
type TimingConfig struct {
	GravityMS int `yaml:"gravity_ms"`
	PollMS    int `yaml:"poll_ms"`
}

// Gravity returns the automatic drop interval.
func (t TimingConfig) Gravity() time.Duration {
	return time.Duration(t.GravityMS) * time.Millisecond
}

// Poll returns the input poll timeout.
func (t TimingConfig) Poll() time.Duration {
	return time.Duration(t.PollMS) * time.Millisecond
}

// TickRate returns how many idle polls happen per second.
func (t TimingConfig) TickRate() int {
	if t.PollMS <= 0 {
		return 1
	}
	return max(1, 1000/t.PollMS)
}

// RenderConfig defines how cells are drawn.
type RenderConfig struct {
	Filled string `yaml:"filled"` // glyph for an occupied cell
	Empty  string `yaml:"empty"`  // glyph for an empty cell
	Colors bool   `yaml:"colors"`
}
