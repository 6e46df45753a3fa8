package plain

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/termtris/internal/tetris"
)

// chunkedReader hands out one chunk per Read, the way a terminal may flush
// a key sequence in pieces.
type chunkedReader struct {
	chunks []string
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks = c.chunks[1:]
	return n, nil
}

// drain waits for the reader to stop and returns every key it queued.
func drain(t *testing.T, src *InputSource) []tetris.Input {
	t.Helper()
	select {
	case <-src.Done():
	case <-time.After(time.Second):
		t.Fatal("input source did not stop")
	}

	var got []tetris.Input
	for {
		in := src.Poll(0)
		if in == tetris.InputNone {
			return got
		}
		got = append(got, in)
	}
}

func TestInputSourceKeys(t *testing.T) {
	tests := []struct {
		name     string
		chunks   []string
		expected []tetris.Input
	}{
		{"letters", []string{"hljk"}, []tetris.Input{tetris.InputLeft, tetris.InputRight, tetris.InputDown, tetris.InputRotate}},
		{"wasd", []string{"adsw"}, []tetris.Input{tetris.InputLeft, tetris.InputRight, tetris.InputDown, tetris.InputRotate}},
		{"space", []string{" "}, []tetris.Input{tetris.InputRotate}},
		{"arrows", []string{"\x1b[A", "\x1b[B", "\x1b[C", "\x1b[D"}, []tetris.Input{tetris.InputRotate, tetris.InputDown, tetris.InputRight, tetris.InputLeft}},
		{"application arrows", []string{"\x1bOD"}, []tetris.Input{tetris.InputLeft}},
		{"escape split from its sequence", []string{"\x1b", "[B"}, []tetris.Input{tetris.InputDown}},
		{"csi split before final byte", []string{"\x1b[", "D"}, []tetris.Input{tetris.InputLeft}},
		{"key before a split sequence", []string{"h\x1b", "[C"}, []tetris.Input{tetris.InputLeft, tetris.InputRight}},
		{"unbound keys", []string{"xz\r"}, nil},
		{"pause is not a move", []string{"p"}, nil},
		{"keys after quit are ignored", []string{"hq", "l"}, []tetris.Input{tetris.InputLeft}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src, err := NewInputSource(&chunkedReader{chunks: tc.chunks}, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, drain(t, src))
			assert.NoError(t, src.Err())
		})
	}
}

func TestInputSourceCtrlC(t *testing.T) {
	quit := make(chan struct{})
	r, w := io.Pipe()
	defer w.Close()

	src, err := NewInputSource(r, func() { close(quit) })
	require.NoError(t, err)
	_, err = w.Write([]byte("\x03"))
	require.NoError(t, err)

	select {
	case <-quit:
	case <-time.After(time.Second):
		t.Fatal("ctrl+c did not quit")
	}
	assert.NoError(t, src.Err())
}

func TestSequenceReader(t *testing.T) {
	tests := []struct {
		name     string
		chunks   []string
		expected []string
	}{
		{"whole keys pass through", []string{"hj", "\x1b[A"}, []string{"hj", "\x1b[A"}},
		{"lone escape held", []string{"h\x1b", "[B"}, []string{"h", "\x1b[B"}},
		{"csi prefix held", []string{"\x1b[", "1;5", "C"}, []string{"\x1b[1;5C"}},
		{"ss3 prefix held", []string{"\x1bO", "A"}, []string{"\x1bOA"}},
		{"flushed at end of input", []string{"\x1b["}, []string{"\x1b["}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newSequenceReader(&chunkedReader{chunks: tc.chunks})
			buf := make([]byte, 64)

			var got []string
			for {
				n, err := r.Read(buf)
				if n > 0 {
					got = append(got, string(buf[:n]))
				}
				if err != nil {
					require.ErrorIs(t, err, io.EOF)
					break
				}
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestInputSourcePoll(t *testing.T) {
	quit := make(chan struct{})
	src, err := NewInputSource(strings.NewReader("h\x1b[C"), func() { close(quit) })
	require.NoError(t, err)

	assert.Equal(t, tetris.InputLeft, src.Poll(time.Second))
	assert.Equal(t, tetris.InputRight, src.Poll(time.Second))

	// End of input stops the reader without an error
	select {
	case <-quit:
	case <-time.After(time.Second):
		t.Fatal("onQuit was not called at end of input")
	}
	<-src.Done()
	assert.NoError(t, src.Err())
	assert.Equal(t, tetris.InputNone, src.Poll(time.Second))
}

func TestInputSourcePollTimeout(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	src, err := NewInputSource(r, nil)
	require.NoError(t, err)

	start := time.Now()
	assert.Equal(t, tetris.InputNone, src.Poll(20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("tty closed")
}

func TestInputSourceReadError(t *testing.T) {
	src, err := NewInputSource(failingReader{}, nil)
	require.NoError(t, err)
	<-src.Done()
	assert.EqualError(t, src.Err(), "tty closed")
}

func TestRendererWritesFrame(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, 60, 24, tetris.DefaultDrawStyle())

	require.NoError(t, r.Start())
	assert.True(t, strings.HasPrefix(buf.String(), clearScreen))

	buf.Reset()
	v := tetris.New(tetris.Options{}, rand.New(rand.NewSource(1))).View()
	require.NoError(t, r.Render(v))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, cursorHome))
	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "\r\n")
	assert.NotContains(t, strings.ReplaceAll(out, "\r\n", ""), "\n", "raw terminals need CRLF")

	require.NoError(t, r.Close())
	assert.Contains(t, buf.String(), showCursor)
}

func TestRendererGameOverShowsQuitHint(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, 60, 24, tetris.DefaultDrawStyle())

	v := tetris.New(tetris.Options{}, rand.New(rand.NewSource(1))).View()
	require.NoError(t, r.Render(v))
	assert.NotContains(t, buf.String(), quitHint)

	v.GameOver = true
	require.NoError(t, r.Render(v))
	assert.Contains(t, buf.String(), "Game Over")
	assert.Contains(t, buf.String(), quitHint)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestRendererWriteError(t *testing.T) {
	r := NewRenderer(brokenWriter{}, 60, 24, tetris.DefaultDrawStyle())
	err := r.Render(tetris.New(tetris.Options{}, rand.New(rand.NewSource(1))).View())
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

// slowReader sends a left key, then quits after a pause.
type slowReader struct {
	step int
}

func (s *slowReader) Read(p []byte) (int, error) {
	s.step++
	switch s.step {
	case 1:
		return copy(p, "h"), nil
	case 2:
		time.Sleep(100 * time.Millisecond)
		return copy(p, "q"), nil
	default:
		return 0, io.EOF
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), &slowReader{}, &out, 60, 24, Options{
		Settings:    tetris.DefaultSettings(),
		PollTimeout: 10 * time.Millisecond,
		Seed:        5,
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Score: 0")
	assert.True(t, strings.HasSuffix(out.String(), showCursor+"\r\n"))
}
