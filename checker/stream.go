package checker

import (
	"bufio"
	"io"
	"strings"
)

// Stream is a read-once source of text lines. *bufio.Scanner satisfies it.
type Stream interface {
	Scan() bool
	Text() string
}

// LineStream reads lines of any length from an io.Reader. Carriage returns
// directly before a newline belong to the line terminator.
type LineStream struct {
	r    *bufio.Reader
	line string
	err  error
	done bool
}

func NewLineStream(r io.Reader) *LineStream {
	return &LineStream{r: bufio.NewReader(r)}
}

// StringStream returns a Stream over in-memory text.
func StringStream(text string) *LineStream {
	return NewLineStream(strings.NewReader(text))
}

func (s *LineStream) Scan() bool {
	if s.done {
		return false
	}

	line, err := s.r.ReadString('\n')
	if err != nil {
		s.done = true
		if err != io.EOF {
			s.err = err
		}
		if line == "" {
			return false
		}
		s.line = line
		return true
	}

	s.line = strings.TrimRight(line[:len(line)-1], "\r")
	return true
}

func (s *LineStream) Text() string {
	return s.line
}

// Err returns the first non-EOF read error. The comparator ignores it; the
// caller decides whether a short read is a judge failure.
func (s *LineStream) Err() error {
	return s.err
}
