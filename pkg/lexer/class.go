package lexer

import (
	"unicode"

	"treeswift/pkg/source"
)

// Class is the lexical category of a single character as seen by the
// composers.
type Class int

const (
	EndOfFile Class = iota
	LineFeed
	Space
	Semicolon
	Colon
	Comma
	Arrow // '-' when followed by '>'
	Hash
	Atmark
	Underscore
	Dot
	AssignmentOperator
	LeftParenthesis
	RightParenthesis
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	LessThan
	GraterThan
	Ampersand
	Question
	Exclamation
	Dollar
	BackQuote
	OperatorHead
	DotOperatorHead // '.' when followed by '.'
	OperatorFollow
	IdentifierHead
	IdentifierFollow
	Digit
	DoubleQuote
	BackSlash
	LineCommentHead
	BlockCommentHead
	BlockCommentTail
	Others
)

var classNames = [...]string{
	EndOfFile:          "EndOfFile",
	LineFeed:           "LineFeed",
	Space:              "Space",
	Semicolon:          "Semicolon",
	Colon:              "Colon",
	Comma:              "Comma",
	Arrow:              "Arrow",
	Hash:               "Hash",
	Atmark:             "Atmark",
	Underscore:         "Underscore",
	Dot:                "Dot",
	AssignmentOperator: "AssignmentOperator",
	LeftParenthesis:    "LeftParenthesis",
	RightParenthesis:   "RightParenthesis",
	LeftBrace:          "LeftBrace",
	RightBrace:         "RightBrace",
	LeftBracket:        "LeftBracket",
	RightBracket:       "RightBracket",
	LessThan:           "LessThan",
	GraterThan:         "GraterThan",
	Ampersand:          "Ampersand",
	Question:           "Question",
	Exclamation:        "Exclamation",
	Dollar:             "Dollar",
	BackQuote:          "BackQuote",
	OperatorHead:       "OperatorHead",
	DotOperatorHead:    "DotOperatorHead",
	OperatorFollow:     "OperatorFollow",
	IdentifierHead:     "IdentifierHead",
	IdentifierFollow:   "IdentifierFollow",
	Digit:              "Digit",
	DoubleQuote:        "DoubleQuote",
	BackSlash:          "BackSlash",
	LineCommentHead:    "LineCommentHead",
	BlockCommentHead:   "BlockCommentHead",
	BlockCommentTail:   "BlockCommentTail",
	Others:             "Others",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "Class(?)"
}

// Classify maps c to its class. next is the character after c and is only
// consulted for the characters whose meaning depends on what follows them.
func Classify(c, next rune) Class {
	switch c {
	case source.EOF:
		return EndOfFile
	case '\n', '\r':
		return LineFeed
	case ' ', '\t', '\v', '\f', 0:
		return Space
	case ';':
		return Semicolon
	case ':':
		return Colon
	case ',':
		return Comma
	case '#':
		return Hash
	case '@':
		return Atmark
	case '(':
		return LeftParenthesis
	case ')':
		return RightParenthesis
	case '{':
		return LeftBrace
	case '}':
		return RightBrace
	case '[':
		return LeftBracket
	case ']':
		return RightBracket
	case '$':
		return Dollar
	case '`':
		return BackQuote
	case '"':
		return DoubleQuote
	case '\\':
		return BackSlash
	case '_':
		if isIdentifierChar(next) {
			return IdentifierHead
		}
		return Underscore
	case '.':
		if next == '.' {
			return DotOperatorHead
		}
		return Dot
	case '-':
		if next == '>' {
			return Arrow
		}
		return OperatorHead
	case '/':
		switch next {
		case '/':
			return LineCommentHead
		case '*':
			return BlockCommentHead
		}
		return OperatorHead
	case '*':
		if next == '/' {
			return BlockCommentTail
		}
		return OperatorHead
	case '=', '&', '?', '!', '<', '>':
		if isOperatorChar(next) {
			return OperatorHead
		}
		return reservedOperatorClass[c]
	}
	switch {
	case '0' <= c && c <= '9':
		return Digit
	case isOperatorHead(c):
		return OperatorHead
	case isOperatorFollowOnly(c):
		return OperatorFollow
	case isIdentifierHead(c):
		return IdentifierHead
	case isIdentifierFollowOnly(c):
		return IdentifierFollow
	}
	return Others
}

var reservedOperatorClass = map[rune]Class{
	'=': AssignmentOperator,
	'&': Ampersand,
	'?': Question,
	'!': Exclamation,
	'<': LessThan,
	'>': GraterThan,
}

// isOperatorHead covers the ASCII operator characters and the Unicode
// mathematical and arrow symbols.
func isOperatorHead(c rune) bool {
	switch c {
	case '/', '=', '-', '+', '!', '*', '%', '<', '>', '&', '|', '^', '~', '?':
		return true
	}
	if c < 0x80 {
		return false
	}
	return unicode.In(c, unicode.Sm, unicode.So) && !unicode.IsLetter(c)
}

func isOperatorFollowOnly(c rune) bool {
	return c >= 0x80 && unicode.In(c, unicode.Mn, unicode.Me) && !isIdentifierHead(c)
}

func isOperatorChar(c rune) bool {
	return c != source.EOF && (isOperatorHead(c) || isOperatorFollowOnly(c))
}

func isIdentifierHead(c rune) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || (c >= 0x80 && unicode.IsLetter(c))
}

func isIdentifierFollowOnly(c rune) bool {
	return c >= 0x80 && unicode.In(c, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}

func isIdentifierChar(c rune) bool {
	return c != source.EOF && (isIdentifierHead(c) || ('0' <= c && c <= '9') || isIdentifierFollowOnly(c))
}

// IsSeparatorBefore reports whether a character of class c, directly
// preceding an operator, leaves the operator unbound on its left.
func IsSeparatorBefore(c Class) bool {
	switch c {
	case EndOfFile, LineFeed, Space, Semicolon, Comma, Colon,
		BlockCommentTail, LeftParenthesis, LeftBrace, LeftBracket:
		return true
	}
	return false
}

// IsSeparatorAfter reports whether a character of class c, directly
// following an operator, leaves the operator unbound on its right.
func IsSeparatorAfter(c Class) bool {
	switch c {
	case EndOfFile, LineFeed, Space, Semicolon, Comma, Colon,
		BlockCommentHead, LineCommentHead, RightParenthesis, RightBrace, RightBracket, Dot:
		return true
	}
	return false
}
