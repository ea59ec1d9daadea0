package lexer

import (
	"testing"

	"treeswift/pkg/source"
)

// feed classifies and puts every rune of s, the way the stream does.
func feed(c composer, s string) (Token, bool) {
	rs := []rune(s)
	for i, r := range rs {
		next := source.EOF
		if i+1 < len(rs) {
			next = rs[i+1]
		}
		if !c.put(Classify(r, next), r) {
			return Token{}, false
		}
	}
	return c.compose(EndOfFile)
}

func TestNumericComposer(t *testing.T) {
	tests := []struct {
		input   string
		kind    Kind
		integer int64
		decimal bool
		float   float64
	}{
		{"9876", INTEGER_LITERAL, 9876, true, 0},
		{"0123", INTEGER_LITERAL, 123, true, 0},
		{"0b1010", INTEGER_LITERAL, 10, false, 0},
		{"0o17", INTEGER_LITERAL, 15, false, 0},
		{"0xFF", INTEGER_LITERAL, 255, false, 0},
		{"9_87_654", INTEGER_LITERAL, 987654, true, 0},
		{"0b1111_0000", INTEGER_LITERAL, 240, false, 0},
		{"3.25", FLOATING_POINT_LITERAL, 0, false, 3.25},
		{"0.5", FLOATING_POINT_LITERAL, 0, false, 0.5},
		{"1_000.000_1", FLOATING_POINT_LITERAL, 0, false, 1000.0001},
		{"1e3", FLOATING_POINT_LITERAL, 0, false, 1000},
		{"1.5E2", FLOATING_POINT_LITERAL, 0, false, 150},
		{"25e+1", FLOATING_POINT_LITERAL, 0, false, 250},
		{"25e-1", FLOATING_POINT_LITERAL, 0, false, 2.5},
		{"0x1.8p3", FLOATING_POINT_LITERAL, 0, false, 12},
		{"0x1.8P1", FLOATING_POINT_LITERAL, 0, false, 3},
		{"0xF_Fp-2", FLOATING_POINT_LITERAL, 0, false, 63.75},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, ok := feed(newNumericComposer(), tt.input)
			if !ok {
				t.Fatalf("expected %q to compose", tt.input)
			}
			if tok.Kind != tt.kind {
				t.Fatalf("expected %s, got %s", tt.kind, tok)
			}
			if tok.Kind == INTEGER_LITERAL && (tok.Int != tt.integer || tok.Decimal != tt.decimal) {
				t.Errorf("expected %d (decimal=%t), got %d (decimal=%t)", tt.integer, tt.decimal, tok.Int, tok.Decimal)
			}
			if tok.Kind == FLOATING_POINT_LITERAL && tok.Float != tt.float {
				t.Errorf("expected %g, got %g", tt.float, tok.Float)
			}
		})
	}
}

func TestNumericComposerFailsClosed(t *testing.T) {
	for _, input := range []string{"0b", "0b2", "0x", "1e", "1e+", "0x1.8", "12abc", "1.5e3.2", "99999999999999999999", "0o8"} {
		t.Run(input, func(t *testing.T) {
			if tok, ok := feed(newNumericComposer(), input); ok {
				t.Errorf("expected %q to fail, got %s", input, tok)
			}
		})
	}
}

func TestStringComposer(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{`"plain"`, "plain", true},
		{`""`, "", true},
		{`"tab\tnl\ncr\rq\"s\'b\\z\0"`, "tab\tnl\ncr\rq\"s'b\\z\x00", true},
		{`"\u{41}\u{1F600}"`, "A\U0001F600", true},
		{`"\u{}"`, "", false},
		{`"\u{110000}"`, "", false},
		{`"\q"`, "", false},
		{`"\(x)"`, "", false},
		{"\"line\nbreak\"", "", false},
		{`"open`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, ok := feed(newStringComposer(), tt.input)
			if ok != tt.ok {
				t.Fatalf("expected ok=%t, got %t", tt.ok, ok)
			}
			if ok && tok.Text != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tok.Text)
			}
		})
	}
}

func TestIdentifierComposer(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		text  string
		index int64
	}{
		{"abc", IDENTIFIER, "abc", 0},
		{"a_1", IDENTIFIER, "a_1", 0},
		{"`if`", IDENTIFIER, "if", 0},
		{"$12", IMPLICIT_PARAMETER, "", 12},
		{"π", IDENTIFIER, "π", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, ok := feed(newIdentifierComposer(), tt.input)
			if !ok {
				t.Fatalf("expected %q to compose", tt.input)
			}
			if tok.Kind != tt.kind || tok.Text != tt.text || tok.Int != tt.index {
				t.Errorf("expected %s %q %d, got %s", tt.kind, tt.text, tt.index, tok)
			}
		})
	}
}

func TestFixity(t *testing.T) {
	seps := []Class{EndOfFile, LineFeed, Space, Semicolon}
	binders := []Class{IdentifierHead, Digit, DoubleQuote}
	for _, before := range seps {
		for _, after := range seps {
			if f := FixityOf(before, after); f != Binary {
				t.Errorf("%s/%s: expected binary, got %s", before, after, f)
			}
		}
		for _, after := range binders {
			if f := FixityOf(before, after); f != Prefix {
				t.Errorf("%s/%s: expected prefix, got %s", before, after, f)
			}
		}
	}
	for _, before := range binders {
		for _, after := range seps {
			if f := FixityOf(before, after); f != Postfix {
				t.Errorf("%s/%s: expected postfix, got %s", before, after, f)
			}
		}
		for _, after := range binders {
			if f := FixityOf(before, after); f != Binary {
				t.Errorf("%s/%s: expected binary, got %s", before, after, f)
			}
		}
	}
	// brackets only separate on their open side
	if FixityOf(LeftParenthesis, RightParenthesis) != Binary {
		t.Errorf("expected (+) to be binary")
	}
	if FixityOf(RightParenthesis, LeftParenthesis) != Binary {
		t.Errorf("expected )+( to be binary")
	}
	if FixityOf(LeftParenthesis, IdentifierHead) != Prefix {
		t.Errorf("expected (-a to be prefix")
	}
}

func TestOperatorKinds(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		text  string
	}{
		{"-a", PREFIX_OPERATOR, "-"},
		{"a++ ", POSTFIX_OPERATOR, "++"},
		{"a ?? b", BINARY_OPERATOR, "??"},
		{"&a", PREFIX_AMPERSAND, "&"},
		{"<T", PREFIX_LESS_THAN, "<"},
		{"a ? b", BINARY_QUESTION, "?"},
		{"?a", PREFIX_QUESTION, "?"},
		{"!a", PREFIX_OPERATOR, "!"},
		{"a != b", BINARY_OPERATOR, "!="},
		{"a...b", BINARY_OPERATOR, "..."},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			for _, tok := range lexAll(tt.input) {
				if tok.Text == tt.text && tok.Kind != IDENTIFIER {
					if tok.Kind != tt.kind {
						t.Errorf("expected %s, got %s", tt.kind, tok)
					}
					return
				}
			}
			t.Errorf("operator %q not found", tt.text)
		})
	}
}
