package lexer

import (
	"reflect"
	"testing"

	"treeswift/pkg/source"
)

// kinds lexes input and drops positions so cases stay readable.
func lexAll(input string) []Token {
	toks := NewStream(source.FromString(input)).All()
	for i := range toks {
		toks[i].Pos = source.Pos{}
	}
	return toks
}

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:     "Empty",
			input:    "",
			expected: []Token{{Kind: EOF}},
		},
		{
			name:  "Declaration",
			input: "let x: Int = 1",
			expected: []Token{
				{Kind: LET, Text: "let"},
				{Kind: IDENTIFIER, Text: "x"},
				{Kind: COLON},
				{Kind: IDENTIFIER, Text: "Int"},
				{Kind: ASSIGN, Text: "="},
				{Kind: INTEGER_LITERAL, Int: 1, Decimal: true},
				{Kind: EOF},
			},
		},
		{
			name:  "Binary Expression",
			input: "var y = x + 1",
			expected: []Token{
				{Kind: VAR, Text: "var"},
				{Kind: IDENTIFIER, Text: "y"},
				{Kind: ASSIGN, Text: "="},
				{Kind: IDENTIFIER, Text: "x"},
				{Kind: BINARY_OPERATOR, Text: "+"},
				{Kind: INTEGER_LITERAL, Int: 1, Decimal: true},
				{Kind: EOF},
			},
		},
		{
			name:  "Blank Lines Collapse",
			input: "\n\na\n   \n\n  b\n",
			expected: []Token{
				{Kind: IDENTIFIER, Text: "a"},
				{Kind: LINE_FEED},
				{Kind: IDENTIFIER, Text: "b"},
				{Kind: LINE_FEED},
				{Kind: EOF},
			},
		},
		{
			name:  "Comments",
			input: "a // line\n/* block /* nested */ */ b",
			expected: []Token{
				{Kind: IDENTIFIER, Text: "a"},
				{Kind: LINE_FEED},
				{Kind: IDENTIFIER, Text: "b"},
				{Kind: EOF},
			},
		},
		{
			name:  "Function Signature",
			input: "func f(a: Int) -> Int {}",
			expected: []Token{
				{Kind: FUNC, Text: "func"},
				{Kind: IDENTIFIER, Text: "f"},
				{Kind: LPAREN},
				{Kind: IDENTIFIER, Text: "a"},
				{Kind: COLON},
				{Kind: IDENTIFIER, Text: "Int"},
				{Kind: RPAREN},
				{Kind: ARROW},
				{Kind: IDENTIFIER, Text: "Int"},
				{Kind: LBRACE},
				{Kind: RBRACE},
				{Kind: EOF},
			},
		},
		{
			name:  "Optional Chaining",
			input: "a?.b!",
			expected: []Token{
				{Kind: IDENTIFIER, Text: "a"},
				{Kind: POSTFIX_QUESTION, Text: "?"},
				{Kind: DOT},
				{Kind: IDENTIFIER, Text: "b"},
				{Kind: POSTFIX_EXCLAMATION, Text: "!"},
				{Kind: EOF},
			},
		},
		{
			name:  "Generic Type",
			input: "Array<Int> ",
			expected: []Token{
				{Kind: IDENTIFIER, Text: "Array"},
				{Kind: BINARY_OPERATOR, Text: "<"},
				{Kind: IDENTIFIER, Text: "Int"},
				{Kind: POSTFIX_GRATER_THAN, Text: ">"},
				{Kind: EOF},
			},
		},
		{
			name:  "Range And Compound Operators",
			input: "0..<n; i += 1",
			expected: []Token{
				{Kind: INTEGER_LITERAL, Int: 0, Decimal: true},
				{Kind: BINARY_OPERATOR, Text: "..<"},
				{Kind: IDENTIFIER, Text: "n"},
				{Kind: SEMICOLON},
				{Kind: IDENTIFIER, Text: "i"},
				{Kind: BINARY_OPERATOR, Text: "+="},
				{Kind: INTEGER_LITERAL, Int: 1, Decimal: true},
				{Kind: EOF},
			},
		},
		{
			name:  "Implicit Parameter And Quoted Identifier",
			input: "$1 `class`",
			expected: []Token{
				{Kind: IMPLICIT_PARAMETER, Int: 1},
				{Kind: IDENTIFIER, Text: "class"},
				{Kind: EOF},
			},
		},
		{
			name:  "Member Of Integer Literal",
			input: "1.description",
			expected: []Token{
				{Kind: INTEGER_LITERAL, Int: 1, Decimal: true},
				{Kind: DOT},
				{Kind: IDENTIFIER, Text: "description"},
				{Kind: EOF},
			},
		},
		{
			name:  "Underscore",
			input: "_ = _x",
			expected: []Token{
				{Kind: UNDERSCORE},
				{Kind: ASSIGN, Text: "="},
				{Kind: IDENTIFIER, Text: "_x"},
				{Kind: EOF},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexAll(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"Unterminated Block Comment", "a /* never closed", MsgUnexpectedEOF},
		{"Stray Comment Tail", "a */ b", MsgReservedToken},
		{"Invalid Character", "a § b", MsgInvalidToken},
		{"Unterminated String", "\"abc\nd", MsgInvalidToken},
		{"Interpolation", `"a\(b)"`, MsgInvalidToken},
		{"Bad Exponent", "1e+", MsgInvalidToken},
		{"Hex Fraction Without Exponent", "0x1.8", MsgInvalidToken},
		{"Bare Dollar", "$ x", MsgInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var found bool
			for _, tok := range lexAll(tt.input) {
				if tok.Kind == ERROR {
					if tok.Text != tt.msg {
						t.Errorf("expected %q, got %q", tt.msg, tok.Text)
					}
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected an ERROR token for %q", tt.input)
			}
		})
	}
}

func TestReservedWordsWin(t *testing.T) {
	for word, kind := range keywords {
		t.Run(word, func(t *testing.T) {
			toks := lexAll(word)
			if toks[0].Kind != kind {
				t.Errorf("expected %s, got %s", kind, toks[0])
			}
		})
	}
	for _, ident := range []string{"iffy", "classes", "in_", "selfish", "True"} {
		toks := lexAll(ident)
		if toks[0].Kind != IDENTIFIER || toks[0].Text != ident {
			t.Errorf("expected identifier %q, got %s", ident, toks[0])
		}
	}
}

func TestTokenPositions(t *testing.T) {
	toks := NewStream(source.FromString("let x\n  = 1")).All()
	expected := []source.Pos{
		{Offset: 0, Line: 1, Col: 1},
		{Offset: 4, Line: 1, Col: 5},
		{Offset: 5, Line: 1, Col: 6},
		{Offset: 8, Line: 2, Col: 3},
		{Offset: 10, Line: 2, Col: 5},
	}
	for i, want := range expected {
		if toks[i].Pos != want {
			t.Errorf("token %d (%s): expected %v, got %v", i, toks[i], want, toks[i].Pos)
		}
	}
}

func TestStreamLookahead(t *testing.T) {
	s := NewStream(source.FromString("a\nb c"))
	if got := s.Look(1, true); got.Kind != IDENTIFIER || got.Text != "b" {
		t.Errorf("expected b when skipping line feeds, got %s", got)
	}
	if got := s.Look(1, false); got.Kind != LINE_FEED {
		t.Errorf("expected LINE_FEED, got %s", got)
	}
	if s.Test(LPAREN) {
		t.Errorf("Test consumed a non-matching token")
	}
	if tok, ok := s.Match(IDENTIFIER); !ok || tok.Text != "a" {
		t.Errorf("expected to match a, got %s", tok)
	}
	if !s.TestRaw(LINE_FEED) {
		t.Errorf("expected raw line feed")
	}
	s.Next(2, true)
	if !s.Test(EOF) || !s.Test(EOF) {
		t.Errorf("EOF should be sticky")
	}
}

func TestSplitOperator(t *testing.T) {
	s := NewStream(source.FromString("A<B<C>>()"))
	s.Next(5, true) // A < B < C
	if got := s.Peek(); got.Kind != BINARY_OPERATOR || got.Text != ">>" {
		t.Fatalf("expected >>, got %s", got)
	}
	s.SplitOperator(1)
	if got := s.Peek(); got.Text != ">" || got.Pos.Col != 7 {
		t.Errorf("expected > at column 7, got %s at %v", got, got.Pos)
	}
}
