package thirdvm

import (
	"bufio"
	"io"
	"strings"
)

// Mode is an input stream's Eval/Compile flag, mutated by the terminal.
type Mode int

// The two terminal modes.
const (
	ModeEval Mode = iota
	ModeCompile
)

func (m Mode) String() string {
	if m == ModeCompile {
		return "Compile"
	}
	return "Eval"
}

// InputStream is an abstract char source with a compile/eval mode flag.
// GetChar/PeekChar operate over raw ASCII bytes (widened to uint32), never
// decoding multi-byte sequences: the language's character set is plain
// ASCII (spec.md §6).
type InputStream interface {
	PeekChar() uint32
	GetChar() uint32
	Mode() Mode
	SetMode(Mode)
}

// isWhitespace is the universal whitespace predicate: space, tab, CR, LF,
// BEL.
func isWhitespace(c uint32) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\a':
		return true
	default:
		return false
	}
}

// isInt reports whether tok is a non-empty run of ASCII digits (no sign, no
// base prefix).
func isInt(tok string) bool {
	if tok == "" {
		return false
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// toUint32 computes the standard decimal accumulation v = v*10 + digit,
// wrapping silently on 32-bit overflow. tok must satisfy isInt.
func toUint32(tok string) uint32 {
	var v uint32
	for _, c := range tok {
		v = v*10 + uint32(c-'0')
	}
	return v
}

// StringStream is a fixed-string input stream; PeekChar/GetChar return 0
// once the cursor reaches the end of buf.
type StringStream struct {
	name string
	buf  string
	pos  int
	mode Mode
}

// NewStringStream wraps buf as an input stream named name (used only for
// diagnostics).
func NewStringStream(name, buf string) *StringStream {
	return &StringStream{name: name, buf: buf}
}

// Name returns the stream's diagnostic name.
func (s *StringStream) Name() string { return s.name }

// PeekChar implements InputStream.
func (s *StringStream) PeekChar() uint32 {
	if s.pos >= len(s.buf) {
		return 0
	}
	return uint32(s.buf[s.pos])
}

// GetChar implements InputStream.
func (s *StringStream) GetChar() uint32 {
	if s.pos >= len(s.buf) {
		return 0
	}
	c := s.buf[s.pos]
	s.pos++
	return uint32(c)
}

// Mode implements InputStream.
func (s *StringStream) Mode() Mode { return s.mode }

// SetMode implements InputStream.
func (s *StringStream) SetMode(m Mode) { s.mode = m }

// StdInStream is a line-buffered input stream over an io.Reader, refilled
// on demand: a line is read (and terminated with an appended newline if the
// underlying reader didn't supply one, e.g. at EOF) whenever the internal
// cursor reaches the end of the current buffer.
type StdInStream struct {
	r    *bufio.Reader
	name string
	line []byte
	pos  int
	mode Mode
}

// NewStdInStream wraps r as a line-buffered input stream.
func NewStdInStream(r io.Reader, name string) *StdInStream {
	return &StdInStream{r: bufio.NewReader(r), name: name}
}

// Name returns the stream's diagnostic name.
func (s *StdInStream) Name() string { return s.name }

func (s *StdInStream) fill() bool {
	if s.pos < len(s.line) {
		return true
	}
	line, _ := s.r.ReadString('\n')
	if len(line) == 0 {
		return false
	}
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	s.line = []byte(line)
	s.pos = 0
	return true
}

// PeekChar implements InputStream.
func (s *StdInStream) PeekChar() uint32 {
	if !s.fill() {
		return 0
	}
	return uint32(s.line[s.pos])
}

// GetChar implements InputStream.
func (s *StdInStream) GetChar() uint32 {
	if !s.fill() {
		return 0
	}
	c := s.line[s.pos]
	s.pos++
	return uint32(c)
}

// Mode implements InputStream.
func (s *StdInStream) Mode() Mode { return s.mode }

// SetMode implements InputStream.
func (s *StdInStream) SetMode(m Mode) { s.mode = m }
