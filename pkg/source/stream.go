package source

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// EOF is returned by Current and Next once the input is exhausted.
const EOF rune = -1

// ChunkSize is the number of bytes pulled from the reader per refill.
const ChunkSize = 4096

// CharStream is a buffered pull source of runes. It refills a fixed-size
// chunk from the underlying reader whenever the decoded runes run out and
// keeps every completed line so diagnostics can quote the source.
type CharStream struct {
	r     io.Reader
	chunk []byte
	carry []byte // incomplete UTF-8 sequence from the previous chunk
	runes []rune // decoded, not yet consumed
	sizes []int  // byte width of each rune in runes
	eof   bool
	err   error

	pos   Pos
	line  strings.Builder
	lines []string
}

// NewCharStream wraps r. Nothing is read until the first call to Current.
func NewCharStream(r io.Reader) *CharStream {
	return &CharStream{
		r:     r,
		chunk: make([]byte, ChunkSize),
		pos:   Pos{Line: 1, Col: 1},
	}
}

// FromString is a convenience for tests and the REPL.
func FromString(s string) *CharStream {
	return NewCharStream(strings.NewReader(s))
}

// fill makes sure at least n runes are buffered unless the input ends first.
func (cs *CharStream) fill(n int) {
	for len(cs.runes) < n && !cs.eof {
		k, err := cs.r.Read(cs.chunk)
		data := append(cs.carry, cs.chunk[:k]...)
		cs.carry = nil
		for len(data) > 0 {
			if !utf8.FullRune(data) {
				if err == nil {
					cs.carry = append([]byte(nil), data...)
					break
				}
			}
			r, size := utf8.DecodeRune(data)
			cs.runes = append(cs.runes, r)
			cs.sizes = append(cs.sizes, size)
			data = data[size:]
		}
		if err != nil {
			cs.eof = true
			if !errors.Is(err, io.EOF) {
				cs.err = err
			}
		}
	}
}

// Current returns the rune under the cursor.
func (cs *CharStream) Current() rune { return cs.peek(0) }

// Next returns the rune after the cursor.
func (cs *CharStream) Next() rune { return cs.peek(1) }

func (cs *CharStream) peek(i int) rune {
	cs.fill(i + 1)
	if i < len(cs.runes) {
		return cs.runes[i]
	}
	return EOF
}

// Advance consumes the current rune.
func (cs *CharStream) Advance() {
	cs.fill(1)
	if len(cs.runes) == 0 {
		return
	}
	r, size := cs.runes[0], cs.sizes[0]
	cs.runes = cs.runes[1:]
	cs.sizes = cs.sizes[1:]
	cs.pos.Offset += size
	if r == '\n' {
		cs.lines = append(cs.lines, strings.TrimSuffix(cs.line.String(), "\r"))
		cs.line.Reset()
		cs.pos.Line++
		cs.pos.Col = 1
		return
	}
	cs.line.WriteRune(r)
	cs.pos.Col++
}

// Pos is the position of the current rune.
func (cs *CharStream) Pos() Pos { return cs.pos }

// IsEOF reports whether every rune has been consumed.
func (cs *CharStream) IsEOF() bool { return cs.Current() == EOF }

// Err returns the first non-EOF read error.
func (cs *CharStream) Err() error { return cs.err }

// Line returns the text of the 1-based line n as far as it has been read.
func (cs *CharStream) Line(n int) string {
	switch {
	case n >= 1 && n <= len(cs.lines):
		return cs.lines[n-1]
	case n == len(cs.lines)+1:
		return cs.line.String()
	}
	return ""
}

// Lines returns every line read so far, including the unterminated last one.
func (cs *CharStream) Lines() []string {
	out := append([]string(nil), cs.lines...)
	if cs.line.Len() > 0 {
		out = append(out, cs.line.String())
	}
	return out
}
