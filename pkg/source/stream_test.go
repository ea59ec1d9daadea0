package source

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func drain(cs *CharStream) (string, []Pos) {
	var b strings.Builder
	var ps []Pos
	for !cs.IsEOF() {
		b.WriteRune(cs.Current())
		ps = append(ps, cs.Pos())
		cs.Advance()
	}
	return b.String(), ps
}

func TestCharStream(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"Ascii", "let x = 1\nvar y = x + 1\n"},
		{"Multibyte", "let π = 3.14 // ✓\n"},
		{"LongerThanChunk", strings.Repeat("αβγ ", ChunkSize)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := drain(FromString(tt.input))
			if got != tt.input {
				t.Errorf("expected %d bytes back, got %d", len(tt.input), len(got))
			}
		})
	}
}

func TestCharStreamPositions(t *testing.T) {
	cs := FromString("ab\nπc")
	_, ps := drain(cs)
	expected := []Pos{
		{Offset: 0, Line: 1, Col: 1},
		{Offset: 1, Line: 1, Col: 2},
		{Offset: 2, Line: 1, Col: 3},
		{Offset: 3, Line: 2, Col: 1},
		{Offset: 5, Line: 2, Col: 2},
	}
	if !reflect.DeepEqual(ps, expected) {
		t.Errorf("expected %v, got %v", expected, ps)
	}
	if cs.Line(1) != "ab" || cs.Line(2) != "πc" {
		t.Errorf("unexpected retained lines %q", cs.Lines())
	}
}

func TestCharStreamLookahead(t *testing.T) {
	cs := FromString("->")
	if cs.Current() != '-' || cs.Next() != '>' {
		t.Fatalf("expected '-' '>', got %q %q", cs.Current(), cs.Next())
	}
	cs.Advance()
	if cs.Next() != EOF {
		t.Errorf("expected EOF lookahead, got %q", cs.Next())
	}
}

type failingReader struct{ sent bool }

var errDisk = errors.New("disk on fire")

func (f *failingReader) Read(p []byte) (int, error) {
	if f.sent {
		return 0, errDisk
	}
	f.sent = true
	return copy(p, "ab"), nil
}

func TestCharStreamReadError(t *testing.T) {
	cs := NewCharStream(&failingReader{})
	got, _ := drain(cs)
	if got != "ab" {
		t.Errorf("expected partial input 'ab', got %q", got)
	}
	if !errors.Is(cs.Err(), errDisk) {
		t.Errorf("expected read error, got %v", cs.Err())
	}
}
