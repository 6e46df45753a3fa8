package tetris

import (
	"context"
	"fmt"
	"time"

	"github.com/vovakirdan/termtris/internal/core"
)

// Loop timing defaults.
const (
	DefaultGravity     = 300 * time.Millisecond
	DefaultPollTimeout = 100 * time.Millisecond
)

// Input is one polled player intent.
type Input int

const (
	InputNone Input = iota
	InputLeft
	InputRight
	InputDown
	InputRotate
)

// String returns a human-readable name for the input.
func (in Input) String() string {
	switch in {
	case InputLeft:
		return "left"
	case InputRight:
		return "right"
	case InputDown:
		return "down"
	case InputRotate:
		return "rotate"
	default:
		return "none"
	}
}

// InputFromFrame picks the piece action carried by a platform frame.
// Only one action is dispatched per iteration; if several are present the
// order is left, right, down, rotate.
func InputFromFrame(f core.InputFrame) Input {
	switch {
	case f.Has(core.ActionLeft):
		return InputLeft
	case f.Has(core.ActionRight):
		return InputRight
	case f.Has(core.ActionDown):
		return InputDown
	case f.Has(core.ActionRotate):
		return InputRotate
	default:
		return InputNone
	}
}

// InputSource yields at most one input per poll. Poll must return within
// roughly timeout; InputNone is a normal result.
type InputSource interface {
	Poll(timeout time.Duration) Input
}

// Renderer paints a view of the game.
type Renderer interface {
	Render(v View) error
}

// TickResult describes what one loop iteration did.
type TickResult struct {
	Input   Input // Input that was dispatched
	Moved   bool  // The input changed the piece
	Dropped bool  // Gravity moved the piece down
	Locked  bool  // Gravity locked the piece
	Cleared int   // Rows cleared by the lock
}

// Controller sequences input and gravity for one engine.
type Controller struct {
	engine   *Engine
	gravity  time.Duration
	lastDrop time.Time
}

// NewController starts the gravity timer at now.
func NewController(e *Engine, gravity time.Duration, now time.Time) *Controller {
	if gravity <= 0 {
		gravity = DefaultGravity
	}
	return &Controller{
		engine:   e,
		gravity:  gravity,
		lastDrop: now,
	}
}

// Engine returns the controlled engine.
func (c *Controller) Engine() *Engine {
	return c.engine
}

// Resume restarts the gravity timer, so time spent paused does not count.
func (c *Controller) Resume(now time.Time) {
	c.lastDrop = now
}

// Tick runs one loop iteration: dispatch in, then apply gravity if more than
// the gravity interval has elapsed since the last automatic drop.
//
// A failed manual down is a no-op; only a failed gravity drop locks.
func (c *Controller) Tick(in Input, now time.Time) TickResult {
	res := TickResult{Input: in}
	e := c.engine
	if e.GameOver() {
		return res
	}

	switch in {
	case InputLeft:
		res.Moved = e.Move(-1, 0)
	case InputRight:
		res.Moved = e.Move(1, 0)
	case InputDown:
		res.Moved = e.Move(0, 1)
	case InputRotate:
		res.Moved = e.Rotate()
	default:
		res.Input = InputNone
	}

	if now.Sub(c.lastDrop) > c.gravity {
		if e.Move(0, 1) {
			res.Dropped = true
		} else {
			res.Locked = true
			res.Cleared = e.LockAndResolve()
		}
		c.lastDrop = now
	}
	return res
}

// RunOptions tunes Run. Zero values select the defaults.
type RunOptions struct {
	Gravity     time.Duration
	PollTimeout time.Duration
	Now         func() time.Time
}

// Run drives e until the game is over or ctx is done: render, poll one
// input, tick. The final view is rendered before returning. Returns nil on
// game over and the context error on cancellation.
func Run(ctx context.Context, e *Engine, src InputSource, sink Renderer, opts RunOptions) error {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	poll := opts.PollTimeout
	if poll <= 0 {
		poll = DefaultPollTimeout
	}

	c := NewController(e, opts.Gravity, now())
	for !e.GameOver() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := sink.Render(e.View()); err != nil {
			return fmt.Errorf("tetris: render: %w", err)
		}
		c.Tick(src.Poll(poll), now())
	}

	if err := sink.Render(e.View()); err != nil {
		return fmt.Errorf("tetris: render: %w", err)
	}
	return nil
}
