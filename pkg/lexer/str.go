package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

type stringState int

const (
	strStart stringState = iota
	strBody
	strEscape
	strUnicodeU     // \u seen, '{' required
	strUnicodeDigit // inside \u{...}
	strClosed
	strFailed
)

// stringComposer decodes a double quoted literal. Line breaks must be
// escaped and interpolation is not supported.
type stringComposer struct {
	state stringState
	buf   strings.Builder
	hex   strings.Builder
}

func newStringComposer() *stringComposer { return &stringComposer{} }

var simpleEscapes = map[rune]rune{
	'0':  0,
	'\\': '\\',
	't':  '\t',
	'n':  '\n',
	'r':  '\r',
	'"':  '"',
	'\'': '\'',
}

func (sc *stringComposer) put(c Class, r rune) bool {
	switch sc.state {
	case strStart:
		if c == DoubleQuote {
			sc.state = strBody
			return true
		}
	case strBody:
		switch c {
		case DoubleQuote:
			sc.state = strClosed
			return true
		case BackSlash:
			sc.state = strEscape
			return true
		case LineFeed, EndOfFile:
			break
		default:
			sc.buf.WriteRune(r)
			return true
		}
	case strEscape:
		if v, ok := simpleEscapes[r]; ok {
			sc.buf.WriteRune(v)
			sc.state = strBody
			return true
		}
		if r == 'u' {
			sc.state = strUnicodeU
			return true
		}
	case strUnicodeU:
		if r == '{' {
			sc.hex.Reset()
			sc.state = strUnicodeDigit
			return true
		}
	case strUnicodeDigit:
		if r == '}' && sc.hex.Len() > 0 {
			v, err := strconv.ParseUint(sc.hex.String(), 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				break
			}
			sc.buf.WriteRune(rune(v))
			sc.state = strBody
			return true
		}
		if isHexDigit(r) && sc.hex.Len() < 8 {
			sc.hex.WriteRune(r)
			return true
		}
	case strClosed:
		return false
	}
	sc.state = strFailed
	return false
}

func (sc *stringComposer) compose(Class) (Token, bool) {
	if sc.state != strClosed {
		return Token{}, false
	}
	return Token{Kind: STRING_LITERAL, Text: sc.buf.String()}, true
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}
