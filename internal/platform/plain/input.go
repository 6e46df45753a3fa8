// Package plain drives the game loop directly on a raw terminal, without
// Bubble Tea: a stdin key reader as the input source and an ANSI renderer.
package plain

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/x/input"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/platform/tui"
	"github.com/vovakirdan/termtris/internal/tetris"
)

// InputSource reads key events from a terminal in the background and hands
// them to the game loop one at a time. Keys use the same bindings as the
// full-screen UI.
type InputSource struct {
	keys   chan tetris.Input
	quit   chan struct{}
	once   sync.Once
	errMu  sync.Mutex
	err    error
	onQuit func()
	keymap tui.KeyMap
}

// NewInputSource starts reading r. onQuit, if set, runs once when the
// player presses q or Ctrl+C or when r is exhausted.
func NewInputSource(r io.Reader, onQuit func()) (*InputSource, error) {
	rd, err := input.NewReader(newSequenceReader(r), os.Getenv("TERM"), 0)
	if err != nil {
		return nil, fmt.Errorf("plain: input reader: %w", err)
	}

	s := &InputSource{
		keys:   make(chan tetris.Input, 16),
		quit:   make(chan struct{}),
		onQuit: onQuit,
		keymap: tui.DefaultKeyMap(),
	}
	go s.read(rd)
	return s, nil
}

func (s *InputSource) read(rd *input.Reader) {
	defer rd.Close() //nolint:errcheck // Reader is done either way

	for {
		events, err := rd.ReadEvents()
		for _, ev := range events {
			key, ok := ev.(input.KeyPressEvent)
			if !ok {
				continue
			}
			action := s.keymap.MapKey(key)
			if action == core.ActionQuit {
				s.stop(nil)
				return
			}
			in := tetris.InputFromFrame(core.FrameOf(action))
			if in == tetris.InputNone {
				continue
			}
			select {
			case s.keys <- in:
			default:
				// Drop keys the loop cannot keep up with
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			s.stop(err)
			return
		}
	}
}

func (s *InputSource) stop(err error) {
	s.once.Do(func() {
		s.errMu.Lock()
		s.err = err
		s.errMu.Unlock()
		if s.onQuit != nil {
			s.onQuit()
		}
		close(s.quit)
	})
}

// Poll waits up to timeout for a key. It returns InputNone when nothing
// arrived or the reader has stopped.
func (s *InputSource) Poll(timeout time.Duration) tetris.Input {
	select {
	case in := <-s.keys:
		return in
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case in := <-s.keys:
		return in
	case <-s.quit:
		return tetris.InputNone
	case <-timer.C:
		return tetris.InputNone
	}
}

// Done is closed once the player quits or the reader stops.
func (s *InputSource) Done() <-chan struct{} {
	return s.quit
}

// Err reports why the reader stopped, nil for a quit key or end of input.
func (s *InputSource) Err() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}
