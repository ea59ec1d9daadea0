package source

import "fmt"

// Pos locates a character in a source file.
//
//	let x = 1
//	    ^  Pos{Offset: 4, Line: 1, Col: 5}
type Pos struct {
	Offset int // byte offset from the start of the file
	Line   int // 1-based
	Col    int // 1-based, counted in runes
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// IsValid reports whether p was produced by a stream (the zero Pos is not).
func (p Pos) IsValid() bool { return p.Line > 0 }

// Before reports whether p appears earlier in the file than q.
func (p Pos) Before(q Pos) bool { return p.Offset < q.Offset }
