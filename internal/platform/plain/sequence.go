package plain

import (
	"bytes"
	"io"
)

// maxHeldSequence bounds how much of an unfinished escape sequence is held
// back. Longer tails are passed through as they are.
const maxHeldSequence = 16

// sequenceReader keeps escape sequences whole across reads. A read that ends
// in the middle of a sequence (a terminal may flush "\x1b" and "[B"
// separately) returns the bytes before it and carries the tail over to the
// next read. Whatever is held is flushed at end of input.
type sequenceReader struct {
	r       io.Reader
	buf     [256]byte
	pending []byte
	err     error
}

func newSequenceReader(r io.Reader) *sequenceReader {
	return &sequenceReader{r: r}
}

func (s *sequenceReader) Read(p []byte) (int, error) {
	for {
		if s.err != nil {
			if len(s.pending) > 0 {
				n := copy(p, s.pending)
				s.pending = s.pending[n:]
				return n, nil
			}
			return 0, s.err
		}

		n, err := s.r.Read(s.buf[:])
		data := append(s.pending, s.buf[:n]...)
		s.pending = nil
		if err != nil {
			s.err = err
			s.pending = data
			continue
		}

		cut := len(data) - unfinishedTail(data)
		s.pending = append([]byte(nil), data[cut:]...)
		if cut == 0 {
			continue
		}

		m := copy(p, data[:cut])
		if m < cut {
			s.pending = append(append([]byte(nil), data[m:cut]...), s.pending...)
		}
		return m, nil
	}
}

// unfinishedTail returns the length of the escape sequence prefix at the end
// of b, or 0 when b ends on a complete key.
func unfinishedTail(b []byte) int {
	i := bytes.LastIndexByte(b, '\x1b')
	if i < 0 {
		return 0
	}
	tail := b[i:]
	if len(tail) > maxHeldSequence {
		return 0
	}

	switch {
	case len(tail) == 1:
		return 1
	case tail[1] == 'O' && len(tail) == 2:
		return 2
	case tail[1] == '[':
		// Parameter and intermediate bytes until the final byte arrives
		for _, c := range tail[2:] {
			if c < 0x20 || c > 0x3f {
				return 0
			}
		}
		return len(tail)
	}
	return 0
}
