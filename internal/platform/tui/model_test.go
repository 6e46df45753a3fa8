package tui

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/tetris"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestModel(t *testing.T, logger *log.Logger) (Model, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	settings := tetris.DefaultSettings()
	settings.Clock = clock.Now
	game := tetris.NewGame(settings)

	m := NewModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 10, Seed: 7}, logger)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should start the tick loop")
	}
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestModelKeyMovesPiece(t *testing.T) {
	m, _ := newTestModel(t, nil)
	x := m.game.Engine().Piece().X

	m, cmd := update(t, m, runeKey('h'))
	if cmd != nil {
		t.Error("key iteration should not schedule another tick")
	}
	if got := m.game.Engine().Piece().X; got != x-1 {
		t.Errorf("piece X = %d, expected %d", got, x-1)
	}
}

func TestModelTickAppliesGravity(t *testing.T) {
	m, clock := newTestModel(t, nil)

	clock.Advance(100 * time.Millisecond)
	m, cmd := update(t, m, TickMsg(clock.Now()))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if y := m.game.Engine().Piece().Y; y != 0 {
		t.Errorf("piece Y = %d before the gravity interval, expected 0", y)
	}

	clock.Advance(250 * time.Millisecond)
	m, _ = update(t, m, TickMsg(clock.Now()))
	if y := m.game.Engine().Piece().Y; y != 1 {
		t.Errorf("piece Y = %d after the gravity interval, expected 1", y)
	}
}

func TestModelKeyIterationAlsoAppliesGravity(t *testing.T) {
	m, clock := newTestModel(t, nil)

	clock.Advance(400 * time.Millisecond)
	m, _ = update(t, m, runeKey('x'))
	if y := m.game.Engine().Piece().Y; y != 1 {
		t.Errorf("piece Y = %d, expected an unbound key to run the gravity check", y)
	}
}

func TestModelInitSetsWindowTitle(t *testing.T) {
	m, _ := newTestModel(t, nil)

	batch, ok := m.Init()().(tea.BatchMsg)
	if !ok {
		t.Fatal("Init should batch the title and the first tick")
	}
	titled := false
	for _, cmd := range batch {
		if cmd != nil && fmt.Sprint(cmd()) == "Tetris" {
			titled = true
		}
	}
	if !titled {
		t.Error("Init should set the window title to the game title")
	}
}

func TestModelLogsUnboundKey(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	m, _ := newTestModel(t, logger)

	update(t, m, runeKey('x'))
	if !strings.Contains(buf.String(), "unbound key") {
		t.Errorf("log = %q, expected an unbound key entry", buf.String())
	}

	buf.Reset()
	update(t, m, runeKey('h'))
	if strings.Contains(buf.String(), "unbound key") {
		t.Error("bound keys should not be logged as unbound")
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit the program")
	}
	if m.View() != "" {
		t.Error("View after quit should be empty")
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, nil)

	view := m.View()
	for _, want := range []string{"Score: 0", "Lines: 0", "rotate", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 100x39", m.screen.Width(), m.screen.Height())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if !strings.Contains(m.View(), "Window too small") {
		t.Error("small window should show a notice")
	}
}

func TestModelPause(t *testing.T) {
	m, clock := newTestModel(t, nil)

	m, _ = update(t, m, runeKey('p'))
	if !m.State().Paused {
		t.Fatal("p should pause")
	}
	clock.Advance(time.Second)
	m, _ = update(t, m, TickMsg(clock.Now()))
	if y := m.game.Engine().Piece().Y; y != 0 {
		t.Errorf("piece fell to Y = %d while paused", y)
	}
	if !strings.Contains(m.View(), "Paused") {
		t.Error("paused view should show the overlay")
	}
}

func TestModelLogsGameOverAndRestart(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	m, clock := newTestModel(t, logger)

	for i := 0; i < 10000 && !m.State().GameOver; i++ {
		clock.Advance(400 * time.Millisecond)
		m, _ = update(t, m, TickMsg(clock.Now()))
	}
	if !m.State().GameOver {
		t.Fatal("stacking pieces in the middle should end the game")
	}
	if !strings.Contains(buf.String(), "game over") {
		t.Errorf("log = %q, expected a game over entry", buf.String())
	}
	if !strings.Contains(m.View(), "Game Over") {
		t.Error("view should show the game over box")
	}

	// Game over is logged once
	m, _ = update(t, m, TickMsg(clock.Now()))
	if n := strings.Count(buf.String(), "game over"); n != 1 {
		t.Errorf("game over logged %d times, expected 1", n)
	}

	m, _ = update(t, m, runeKey('r'))
	if m.State().GameOver {
		t.Error("r should restart after game over")
	}
	if !strings.Contains(buf.String(), "game restarted") {
		t.Error("restart should be logged")
	}
}
