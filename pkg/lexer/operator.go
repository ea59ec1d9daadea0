package lexer

import "strings"

// Fixity is the binding of an operator to its operands, derived from
// whitespace around it.
type Fixity int

const (
	Binary Fixity = iota
	Prefix
	Postfix
)

func (f Fixity) String() string {
	switch f {
	case Prefix:
		return "prefix"
	case Postfix:
		return "postfix"
	}
	return "binary"
}

// FixityOf decides how an operator binds from the separator-ness of the
// characters on either side:
//
//	a + b   a+b   -> binary
//	-a            -> prefix
//	a!            -> postfix
func FixityOf(prev, follow Class) Fixity {
	before, after := IsSeparatorBefore(prev), IsSeparatorAfter(follow)
	switch {
	case before && !after:
		return Prefix
	case !before && after:
		return Postfix
	}
	return Binary
}

// operatorComposer collects an operator spelling. prev is the class of the
// character before the operator's first character.
type operatorComposer struct {
	prev  Class
	buf   strings.Builder
	dot   bool // started with '..'
	count int
}

func newOperatorComposer(prev Class) *operatorComposer { return &operatorComposer{prev: prev} }

func (oc *operatorComposer) put(c Class, r rune) bool {
	if oc.count == 0 {
		switch c {
		case DotOperatorHead:
			oc.dot = true
		case OperatorHead, AssignmentOperator, Ampersand, Question, Exclamation, LessThan, GraterThan:
		default:
			return false
		}
		oc.buf.WriteRune(r)
		oc.count++
		return true
	}
	switch c {
	case OperatorHead, OperatorFollow, AssignmentOperator, Ampersand, Question, Exclamation, LessThan, GraterThan, Arrow:
	case Dot, DotOperatorHead:
		if !oc.dot {
			return false
		}
	default:
		return false
	}
	oc.buf.WriteRune(r)
	oc.count++
	return true
}

func (oc *operatorComposer) compose(follow Class) (Token, bool) {
	if oc.count == 0 {
		return Token{}, false
	}
	s := oc.buf.String()
	fix := FixityOf(oc.prev, follow)
	if oc.count == 1 {
		if k, ok := reservedOperator(s, fix); ok {
			return Token{Kind: k, Text: s}, true
		}
	}
	switch fix {
	case Prefix:
		return Token{Kind: PREFIX_OPERATOR, Text: s}, true
	case Postfix:
		return Token{Kind: POSTFIX_OPERATOR, Text: s}, true
	}
	return Token{Kind: BINARY_OPERATOR, Text: s}, true
}

// reservedOperator maps the single character operators that the grammar
// gives a meaning of their own.
func reservedOperator(s string, fix Fixity) (Kind, bool) {
	switch s {
	case "=":
		return ASSIGN, true
	case "<":
		if fix == Prefix {
			return PREFIX_LESS_THAN, true
		}
	case ">":
		if fix == Postfix {
			return POSTFIX_GRATER_THAN, true
		}
	case "&":
		if fix == Prefix {
			return PREFIX_AMPERSAND, true
		}
	case "?":
		switch fix {
		case Prefix:
			return PREFIX_QUESTION, true
		case Postfix:
			return POSTFIX_QUESTION, true
		}
		return BINARY_QUESTION, true
	case "!":
		if fix == Postfix {
			return POSTFIX_EXCLAMATION, true
		}
	}
	return 0, false
}
