package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/core"
)

// Settings configures a Game.
type Settings struct {
	Board   Options
	Gravity time.Duration
	Style   DrawStyle
	Clock   func() time.Time // Defaults to time.Now
}

// DefaultSettings returns the classic 10x20 board with 0.3s gravity.
func DefaultSettings() Settings {
	return Settings{
		Board:   Options{Width: DefaultWidth, Height: DefaultHeight},
		Gravity: DefaultGravity,
		Style:   DefaultDrawStyle(),
	}
}

// SettingsFromConfig converts a loaded configuration.
func SettingsFromConfig(c config.TetrisConfig) Settings {
	return Settings{
		Board:   Options{Width: c.Board.Width, Height: c.Board.Height},
		Gravity: c.Timing.Gravity(),
		Style: DrawStyle{
			Filled: c.Render.Filled,
			Empty:  c.Render.Empty,
			Colors: c.Render.Colors,
		},
	}
}

// Game adapts the engine and controller to the platform: one Step per loop
// iteration, pause and restart handling, and rendering into a Screen.
type Game struct {
	settings Settings
	rng      *rand.Rand
	ctrl     *Controller
	last     TickResult
	paused   bool
	games    int
}

// NewGame creates a game. Call Reset before the first Step.
func NewGame(s Settings) *Game {
	if s.Clock == nil {
		s.Clock = time.Now
	}
	if s.Gravity <= 0 {
		s.Gravity = DefaultGravity
	}
	if s.Style.Filled == "" {
		s.Style = DefaultDrawStyle()
	}
	return &Game{settings: s}
}

// ID returns the game identifier used in logs.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset starts a fresh game seeded from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	engine := New(g.settings.Board, g.rng)
	g.ctrl = NewController(engine, g.settings.Gravity, g.settings.Clock())
	g.last = TickResult{}
	g.paused = false
	g.games++
}

// Engine returns the current engine.
func (g *Game) Engine() *Engine {
	return g.ctrl.Engine()
}

// Step runs one loop iteration with the given input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	e := g.ctrl.Engine()
	g.last = TickResult{}

	if in.Has(core.ActionRestart) && e.GameOver() {
		g.Reset(core.RuntimeConfig{Seed: g.rng.Int63()})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !e.GameOver() {
		g.paused = !g.paused
		if !g.paused {
			g.ctrl.Resume(g.settings.Clock())
		}
	}

	if g.paused || e.GameOver() {
		return core.StepResult{State: g.State()}
	}

	g.last = g.ctrl.Tick(InputFromFrame(in), g.settings.Clock())
	return core.StepResult{State: g.State()}
}

// LastTick reports what the most recent Step did.
func (g *Game) LastTick() TickResult {
	return g.last
}

// GamesPlayed counts Reset calls, restarts included.
func (g *Game) GamesPlayed() int {
	return g.games
}

// View returns the current view including the pause flag.
func (g *Game) View() View {
	v := g.ctrl.Engine().View()
	v.Paused = g.paused
	return v
}

// Render draws the game into dst.
func (g *Game) Render(dst *core.Screen) {
	Draw(dst, g.View(), g.settings.Style)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	e := g.ctrl.Engine()
	return core.GameState{
		Score:    e.Score(),
		GameOver: e.GameOver(),
		Paused:   g.paused,
	}
}
