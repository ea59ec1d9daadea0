package lexer

import (
	"strconv"
	"strings"
)

type numericState int

const (
	numStart numericState = iota
	numZero               // a leading 0, radix prefix may follow
	numRadix              // 0b / 0o / 0x seen, digits required
	numInteger
	numDot // '.' seen, fraction digit required
	numFraction
	numExp     // e/E/p/P seen
	numExpSign // sign seen, exponent digit required
	numExpDigits
	numFailed
)

// numericComposer recognises integer and floating point literals:
//
//	42   9_87_654   0b1010   0o17   0xFF
//	3.14   1e10   1.5E-3   0x1.8p3   0xFFp-2
type numericComposer struct {
	state     numericState
	radix     int
	digits    strings.Builder // digits without separators or prefix
	fraction  bool
	expMarked bool
}

func newNumericComposer() *numericComposer { return &numericComposer{radix: 10} }

func (nc *numericComposer) isDigit(r rune) bool {
	switch nc.radix {
	case 2:
		return r == '0' || r == '1'
	case 8:
		return '0' <= r && r <= '7'
	case 16:
		return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
	}
	return '0' <= r && r <= '9'
}

func (nc *numericComposer) isExponentMark(r rune) bool {
	if nc.radix == 16 {
		return r == 'p' || r == 'P'
	}
	return r == 'e' || r == 'E'
}

func (nc *numericComposer) put(c Class, r rune) bool {
	switch nc.state {
	case numStart:
		if c != Digit {
			break
		}
		nc.digits.WriteRune(r)
		if r == '0' {
			nc.state = numZero
		} else {
			nc.state = numInteger
		}
		return true
	case numZero:
		switch r {
		case 'b':
			nc.radix, nc.state = 2, numRadix
			nc.digits.Reset()
			return true
		case 'o':
			nc.radix, nc.state = 8, numRadix
			nc.digits.Reset()
			return true
		case 'x':
			nc.radix, nc.state = 16, numRadix
			nc.digits.Reset()
			return true
		}
		nc.state = numInteger
		return nc.put(c, r)
	case numRadix:
		if nc.isDigit(r) {
			nc.digits.WriteRune(r)
			nc.state = numInteger
			return true
		}
	case numInteger, numFraction:
		switch {
		case nc.isDigit(r):
			nc.digits.WriteRune(r)
			return true
		case r == '_':
			return true
		case c == Dot && nc.state == numInteger && (nc.radix == 10 || nc.radix == 16):
			nc.digits.WriteRune('.')
			nc.fraction = true
			nc.state = numDot
			return true
		case nc.isExponentMark(r):
			nc.digits.WriteRune(r)
			nc.expMarked = true
			nc.state = numExp
			return true
		case c == IdentifierHead || c == IdentifierFollow || c == Digit:
			break
		default:
			return false
		}
	case numDot:
		if nc.isDigit(r) {
			nc.digits.WriteRune(r)
			nc.state = numFraction
			return true
		}
	case numExp:
		if r == '+' || r == '-' {
			nc.digits.WriteRune(r)
			nc.state = numExpSign
			return true
		}
		fallthrough
	case numExpSign:
		if '0' <= r && r <= '9' {
			nc.digits.WriteRune(r)
			nc.state = numExpDigits
			return true
		}
	case numExpDigits:
		switch {
		case '0' <= r && r <= '9':
			nc.digits.WriteRune(r)
			return true
		case r == '_':
			return true
		case c == IdentifierHead || c == IdentifierFollow || c == Digit || c == Dot:
			break
		default:
			return false
		}
	default:
		return false
	}
	// a character that glues onto the literal but cannot belong to it
	nc.state = numFailed
	return false
}

func (nc *numericComposer) compose(follow Class) (Token, bool) {
	switch follow {
	case IdentifierHead, IdentifierFollow, Digit:
		return Token{}, false
	}
	text := nc.digits.String()
	switch nc.state {
	case numZero, numInteger:
		if nc.fraction || nc.expMarked {
			return Token{}, false
		}
		v, err := strconv.ParseInt(text, nc.radix, 64)
		if err != nil {
			return Token{}, false
		}
		return Token{Kind: INTEGER_LITERAL, Int: v, Decimal: nc.radix == 10}, true
	case numFraction, numExpDigits:
		if nc.radix == 16 && !nc.expMarked {
			return Token{}, false
		}
		prefix := ""
		if nc.radix == 16 {
			prefix = "0x"
		}
		v, err := strconv.ParseFloat(prefix+text, 64)
		if err != nil {
			return Token{}, false
		}
		return Token{Kind: FLOATING_POINT_LITERAL, Float: v}, true
	}
	return Token{}, false
}
