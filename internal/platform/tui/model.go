package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/tetris"
)

// Model is the Bubble Tea model for running a game.
//
// Every message is one loop iteration: a key message carries its action, a
// tick message (one per poll interval) carries none. The game applies
// gravity on both.
type Model struct {
	game      *tetris.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	keys      KeyMap
	help      help.Model
	logger    *log.Logger
	gameState core.GameState
	quitting  bool
	reported  bool // Whether the current game over has been logged
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil logger discards everything.
func NewModel(game *tetris.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, screenHeight(cfg.ScreenH)),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		logger: logger,
	}
}

// screenHeight leaves one row for the help footer.
func screenHeight(h int) int {
	return core.Max(0, h-1)
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed)
	return tea.Batch(
		tea.SetWindowTitle(m.game.Title()),
		tickCmd(m.config.TickRate),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		m = m.step(core.NewInputFrame())
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

// handleKey runs one iteration with the key's action.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	frame := core.NewInputFrame()
	if m.keys.MapKeyToFrame(msg, &frame) {
		m.quitting = true
		m.logger.Info("quit", "score", m.gameState.Score)
		return m, tea.Quit
	}
	if frame.Empty() {
		m.logger.Debug("unbound key", "key", msg.String())
	}
	return m.step(frame), nil
}

// handleResize processes window resize events. The game keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, screenHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// step advances the game and logs notable events.
func (m Model) step(frame core.InputFrame) Model {
	result := m.game.Step(frame)
	m.gameState = result.State

	if tick := m.game.LastTick(); tick.Cleared > 0 {
		m.logger.Debug("lines cleared", "count", tick.Cleared, "score", m.gameState.Score)
	}

	switch {
	case m.gameState.GameOver && !m.reported:
		m.logger.Info("game over",
			"score", m.gameState.Score,
			"lines", m.game.Engine().Lines(),
			"games", m.game.GamesPlayed(),
		)
		m.reported = true
	case !m.gameState.GameOver && m.reported:
		m.logger.Info("game restarted", "games", m.game.GamesPlayed())
		m.reported = false
	}

	return m
}

// State returns the game state after the last iteration.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for the given game.
func Run(game *tetris.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
