package lexer

import (
	"treeswift/pkg/source"
)

var punctuation = map[Class]Kind{
	Semicolon:        SEMICOLON,
	Colon:            COLON,
	Comma:            COMMA,
	Arrow:            ARROW,
	Hash:             HASH,
	Atmark:           ATMARK,
	Underscore:       UNDERSCORE,
	Dot:              DOT,
	LeftParenthesis:  LPAREN,
	RightParenthesis: RPAREN,
	LeftBrace:        LBRACE,
	RightBrace:       RBRACE,
	LeftBracket:      LBRACKET,
	RightBracket:     RBRACKET,
}

// Stream lexes tokens on demand and buffers them for lookahead.
type Stream struct {
	cs    *source.CharStream
	queue []Token
	prev  Class // class of the last character consumed
	last  Kind  // kind of the last token produced
	done  bool
}

// NewStream starts lexing cs. The stream behaves as if it followed a line
// feed, so leading blank lines produce no token.
func NewStream(cs *source.CharStream) *Stream {
	return &Stream{cs: cs, prev: LineFeed, last: LINE_FEED}
}

// Source exposes the underlying character stream.
func (s *Stream) Source() *source.CharStream { return s.cs }

func (s *Stream) class() Class { return Classify(s.cs.Current(), s.cs.Next()) }

func (s *Stream) advance(c Class) {
	s.prev = c
	s.cs.Advance()
}

// lex produces the next token.
func (s *Stream) lex() Token {
	for {
		pos := s.cs.Pos()
		c := s.class()
		switch c {
		case EndOfFile:
			return s.emit(Token{Kind: EOF, Pos: pos})
		case LineFeed:
			s.advance(c)
			if s.last == LINE_FEED {
				continue
			}
			return s.emit(Token{Kind: LINE_FEED, Pos: pos})
		case Space:
			s.advance(c)
			continue
		case LineCommentHead:
			for c := s.class(); c != LineFeed && c != EndOfFile; c = s.class() {
				s.cs.Advance()
			}
			s.prev = Space
			continue
		case BlockCommentHead:
			if !s.skipBlockComment() {
				return s.emit(Token{Kind: ERROR, Text: MsgUnexpectedEOF, Pos: pos})
			}
			continue
		case BlockCommentTail:
			s.advance(c)
			s.cs.Advance()
			return s.emit(Token{Kind: ERROR, Text: MsgReservedToken, Pos: pos})
		case IdentifierHead, BackQuote, Dollar:
			return s.emit(s.composeWord(pos))
		case Digit:
			return s.emit(s.composeNumber(pos))
		case DoubleQuote:
			return s.emit(s.compose(newStringComposer(), pos))
		case OperatorHead, DotOperatorHead, AssignmentOperator, Ampersand, Question, Exclamation, LessThan, GraterThan:
			return s.emit(s.compose(newOperatorComposer(s.prev), pos))
		}
		if k, ok := punctuation[c]; ok {
			if c == Arrow {
				s.cs.Advance()
			}
			s.advance(c)
			return s.emit(Token{Kind: k, Pos: pos})
		}
		s.advance(c)
		return s.emit(Token{Kind: ERROR, Text: MsgInvalidToken, Pos: pos})
	}
}

func (s *Stream) emit(t Token) Token {
	s.last = t.Kind
	return t
}

// skipBlockComment consumes a possibly nested /* */ comment. It reports
// false when the input ends inside the comment.
func (s *Stream) skipBlockComment() bool {
	depth := 0
	for {
		switch s.class() {
		case EndOfFile:
			return false
		case BlockCommentHead:
			s.cs.Advance()
			s.cs.Advance()
			depth++
		case BlockCommentTail:
			s.cs.Advance()
			s.cs.Advance()
			depth--
			if depth == 0 {
				s.prev = Space
				return true
			}
		default:
			s.cs.Advance()
		}
	}
}

// compose feeds characters to c until it rejects one, then asks it for a
// token. A failing composer yields an ERROR token.
func (s *Stream) compose(c composer, pos source.Pos) Token {
	n := 0
	for {
		cl := s.class()
		if !c.put(cl, s.cs.Current()) {
			break
		}
		s.advance(cl)
		n++
	}
	return s.finish(c, n, pos)
}

func (s *Stream) finish(c composer, n int, pos source.Pos) Token {
	if t, ok := c.compose(s.class()); ok {
		t.Pos = pos
		return t
	}
	if n == 0 {
		s.advance(s.class())
	}
	return Token{Kind: ERROR, Text: MsgInvalidToken, Pos: pos}
}

// composeNumber stops before a '.' that is not followed by a digit so that
// member access on a literal (1.description) is not swallowed.
func (s *Stream) composeNumber(pos source.Pos) Token {
	nc := newNumericComposer()
	n := 0
	for {
		cl := s.class()
		if cl == Dot && !nc.isDigit(s.cs.Next()) {
			break
		}
		if !nc.put(cl, s.cs.Current()) {
			break
		}
		s.advance(cl)
		n++
	}
	return s.finish(nc, n, pos)
}

// composeWord runs the reserved word and identifier composers over the same
// characters. The reserved word wins when both succeed.
func (s *Stream) composeWord(pos source.Pos) Token {
	wc, ic := newWordComposer(), newIdentifierComposer()
	word := true
	n := 0
	for {
		cl := s.class()
		r := s.cs.Current()
		if !ic.put(cl, r) {
			break
		}
		if word {
			word = wc.put(cl, r)
		}
		s.advance(cl)
		n++
	}
	if word {
		if t, ok := wc.compose(s.class()); ok {
			t.Pos = pos
			return t
		}
	}
	return s.finish(ic, n, pos)
}

// fill makes sure the queue holds at least n tokens.
func (s *Stream) fill(n int) {
	for len(s.queue) < n {
		if s.done {
			s.queue = append(s.queue, s.queue[len(s.queue)-1])
			continue
		}
		t := s.lex()
		if t.Kind == EOF {
			s.done = true
		}
		s.queue = append(s.queue, t)
	}
}

// index returns the queue index of the ahead-th token, optionally not
// counting line feeds.
func (s *Stream) index(ahead int, skipLineFeed bool) int {
	i := 0
	for {
		s.fill(i + 1)
		if skipLineFeed && s.queue[i].Kind == LINE_FEED {
			i++
			continue
		}
		if ahead == 0 {
			return i
		}
		ahead--
		i++
	}
}

// Look returns the ahead-th upcoming token without consuming anything.
func (s *Stream) Look(ahead int, skipLineFeed bool) Token {
	return s.queue[s.index(ahead, skipLineFeed)]
}

// Peek is Look(0, true).
func (s *Stream) Peek() Token { return s.Look(0, true) }

// Next consumes n tokens.
func (s *Stream) Next(n int, skipLineFeed bool) {
	if n <= 0 {
		return
	}
	i := s.index(n-1, skipLineFeed)
	s.drop(i + 1)
}

func (s *Stream) drop(n int) {
	if s.queue[n-1].Kind == EOF {
		// EOF is never consumed
		n--
	}
	s.queue = s.queue[n:]
}

// Test consumes the next token (line feeds skipped) if it is one of kinds.
func (s *Stream) Test(kinds ...Kind) bool {
	_, ok := s.Match(kinds...)
	return ok
}

// TestRaw is Test without skipping line feeds.
func (s *Stream) TestRaw(kinds ...Kind) bool {
	t := s.Look(0, false)
	for _, k := range kinds {
		if t.Kind == k {
			s.Next(1, false)
			return true
		}
	}
	return false
}

// Match consumes and returns the next token (line feeds skipped) if it is
// one of kinds.
func (s *Stream) Match(kinds ...Kind) (Token, bool) {
	i := s.index(0, true)
	t := s.queue[i]
	for _, k := range kinds {
		if t.Kind == k {
			s.drop(i + 1)
			return t, true
		}
	}
	return t, false
}

// SplitOperator consumes the first n characters of the operator token under
// the cursor, leaving the rest as a new operator token. It is how nested
// generic argument lists close on '>>'.
func (s *Stream) SplitOperator(n int) {
	i := s.index(0, true)
	t := s.queue[i]
	rest := t.Text[n:]
	t.Text = rest
	t.Pos.Col += n
	t.Pos.Offset += n
	if len(rest) == 1 {
		switch {
		case rest == ">" && t.Kind == POSTFIX_OPERATOR:
			t.Kind = POSTFIX_GRATER_THAN
		case rest == "?" && t.Kind == POSTFIX_OPERATOR:
			t.Kind = POSTFIX_QUESTION
		case rest == "!" && t.Kind == POSTFIX_OPERATOR:
			t.Kind = POSTFIX_EXCLAMATION
		case rest == "=":
			t.Kind = ASSIGN
		}
	}
	s.queue[i] = t
	s.queue = s.queue[i:]
}

// All lexes the remaining input, EOF included.
func (s *Stream) All() []Token {
	var out []Token
	for {
		t := s.Look(0, false)
		out = append(out, t)
		if t.Kind == EOF {
			return out
		}
		s.Next(1, false)
	}
}
