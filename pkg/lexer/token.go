package lexer

import (
	"fmt"
	"strconv"

	"treeswift/pkg/source"
)

// Kind identifies the category of a lexed token.
type Kind int

const (
	ERROR Kind = iota // lexical failure, Token.Text holds the message
	EOF               // sentinel: end of input
	LINE_FEED

	// Punctuation
	SEMICOLON  // ;
	COLON      // :
	COMMA      // ,
	ARROW      // ->
	HASH       // #
	ATMARK     // @
	UNDERSCORE // _
	DOT        // .
	ASSIGN     // = standing alone

	// Paired delimiters
	LPAREN   // (
	RPAREN   // )
	LBRACE   // {
	RBRACE   // }
	LBRACKET // [
	RBRACKET // ]

	// Reserved single character operators
	PREFIX_LESS_THAN    // <T
	POSTFIX_GRATER_THAN // T>
	PREFIX_AMPERSAND    // &x
	PREFIX_QUESTION     // ?x
	BINARY_QUESTION     // a ? b : c
	POSTFIX_QUESTION    // x?
	POSTFIX_EXCLAMATION // x!

	// Operators, Token.Text holds the spelling
	PREFIX_OPERATOR
	BINARY_OPERATOR
	POSTFIX_OPERATOR

	// Names and literals
	IDENTIFIER             // name or `quoted`
	IMPLICIT_PARAMETER     // $0, Token.Int holds the index
	INTEGER_LITERAL        // Token.Int, Token.Decimal
	FLOATING_POINT_LITERAL // Token.Float
	STRING_LITERAL         // Token.Text holds the decoded value
	BOOLEAN_LITERAL        // true / false, Token.Bool

	// Keywords
	AS
	ASSOCIATIVITY
	BREAK
	CASE
	CATCH
	CLASS
	CONTINUE
	CONVENIENCE
	DEFAULT
	DEFER
	DEINIT
	DO
	DYNAMIC
	DYNAMIC_TYPE // dynamicType
	ELSE
	ENUM
	EXTENSION
	FALLTHROUGH
	FINAL
	FOR
	FUNC
	GUARD
	IF
	IMPORT
	IN
	INDIRECT
	INFIX
	INIT
	INOUT
	INTERNAL
	IS
	LAZY
	LET
	MUTATING
	NIL
	NONMUTATING
	OPERATOR
	OPTIONAL
	OVERRIDE
	POSTFIX
	PRECEDENCE
	PREFIX
	PRIVATE
	PROTOCOL
	PUBLIC
	REPEAT
	REQUIRED
	RETHROWS
	RETURN
	SELF
	SELF_TYPE // Self
	STATIC
	STRUCT
	SUBSCRIPT
	SUPER
	SWITCH
	THROW
	THROWS
	TRY
	TYPEALIAS
	UNOWNED
	VAR
	WEAK
	WHERE
	WHILE
	FILE_LITERAL     // __FILE__
	LINE_LITERAL     // __LINE__
	COLUMN_LITERAL   // __COLUMN__
	FUNCTION_LITERAL // __FUNCTION__
)

var kindNames = [...]string{
	ERROR:                  "ERROR",
	EOF:                    "EOF",
	LINE_FEED:              "LINE_FEED",
	SEMICOLON:              ";",
	COLON:                  ":",
	COMMA:                  ",",
	ARROW:                  "->",
	HASH:                   "#",
	ATMARK:                 "@",
	UNDERSCORE:             "_",
	DOT:                    ".",
	ASSIGN:                 "=",
	LPAREN:                 "(",
	RPAREN:                 ")",
	LBRACE:                 "{",
	RBRACE:                 "}",
	LBRACKET:               "[",
	RBRACKET:               "]",
	PREFIX_LESS_THAN:       "PREFIX_LESS_THAN",
	POSTFIX_GRATER_THAN:    "POSTFIX_GRATER_THAN",
	PREFIX_AMPERSAND:       "PREFIX_AMPERSAND",
	PREFIX_QUESTION:        "PREFIX_QUESTION",
	BINARY_QUESTION:        "BINARY_QUESTION",
	POSTFIX_QUESTION:       "POSTFIX_QUESTION",
	POSTFIX_EXCLAMATION:    "POSTFIX_EXCLAMATION",
	PREFIX_OPERATOR:        "PREFIX_OPERATOR",
	BINARY_OPERATOR:        "BINARY_OPERATOR",
	POSTFIX_OPERATOR:       "POSTFIX_OPERATOR",
	IDENTIFIER:             "IDENTIFIER",
	IMPLICIT_PARAMETER:     "IMPLICIT_PARAMETER",
	INTEGER_LITERAL:        "INTEGER_LITERAL",
	FLOATING_POINT_LITERAL: "FLOATING_POINT_LITERAL",
	STRING_LITERAL:         "STRING_LITERAL",
	BOOLEAN_LITERAL:        "BOOLEAN_LITERAL",
}

// keywords maps every reserved spelling to its kind. true and false are
// reserved too but compose to BOOLEAN_LITERAL.
var keywords = map[string]Kind{
	"as":            AS,
	"associativity": ASSOCIATIVITY,
	"break":         BREAK,
	"case":          CASE,
	"catch":         CATCH,
	"class":         CLASS,
	"continue":      CONTINUE,
	"convenience":   CONVENIENCE,
	"default":       DEFAULT,
	"defer":         DEFER,
	"deinit":        DEINIT,
	"do":            DO,
	"dynamic":       DYNAMIC,
	"dynamicType":   DYNAMIC_TYPE,
	"else":          ELSE,
	"enum":          ENUM,
	"extension":     EXTENSION,
	"fallthrough":   FALLTHROUGH,
	"final":         FINAL,
	"for":           FOR,
	"func":          FUNC,
	"guard":         GUARD,
	"if":            IF,
	"import":        IMPORT,
	"in":            IN,
	"indirect":      INDIRECT,
	"infix":         INFIX,
	"init":          INIT,
	"inout":         INOUT,
	"internal":      INTERNAL,
	"is":            IS,
	"lazy":          LAZY,
	"let":           LET,
	"mutating":      MUTATING,
	"nil":           NIL,
	"nonmutating":   NONMUTATING,
	"operator":      OPERATOR,
	"optional":      OPTIONAL,
	"override":      OVERRIDE,
	"postfix":       POSTFIX,
	"precedence":    PRECEDENCE,
	"prefix":        PREFIX,
	"private":       PRIVATE,
	"protocol":      PROTOCOL,
	"public":        PUBLIC,
	"repeat":        REPEAT,
	"required":      REQUIRED,
	"rethrows":      RETHROWS,
	"return":        RETURN,
	"self":          SELF,
	"Self":          SELF_TYPE,
	"static":        STATIC,
	"struct":        STRUCT,
	"subscript":     SUBSCRIPT,
	"super":         SUPER,
	"switch":        SWITCH,
	"throw":         THROW,
	"throws":        THROWS,
	"try":           TRY,
	"typealias":     TYPEALIAS,
	"unowned":       UNOWNED,
	"var":           VAR,
	"weak":          WEAK,
	"where":         WHERE,
	"while":         WHILE,
	"__FILE__":      FILE_LITERAL,
	"__LINE__":      LINE_LITERAL,
	"__COLUMN__":    COLUMN_LITERAL,
	"__FUNCTION__":  FUNCTION_LITERAL,
	"true":          BOOLEAN_LITERAL,
	"false":         BOOLEAN_LITERAL,
}

var keywordNames = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for s, k := range keywords {
		if k != BOOLEAN_LITERAL {
			m[k] = s
		}
	}
	return m
}()

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	if s, ok := keywordNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	_, ok := keywordNames[k]
	return ok
}

// Lookup returns the reserved kind spelled s, if any.
func Lookup(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}

// Token is one lexed unit. Only the payload fields relevant to Kind are set.
type Token struct {
	Kind    Kind
	Text    string // identifier, operator spelling, decoded string, error message
	Int     int64
	Decimal bool // integer literal written without a radix prefix
	Float   float64
	Bool    bool
	Pos     source.Pos
}

func (t Token) String() string {
	switch t.Kind {
	case IDENTIFIER, PREFIX_OPERATOR, BINARY_OPERATOR, POSTFIX_OPERATOR:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	case STRING_LITERAL:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	case ERROR:
		return fmt.Sprintf("ERROR(%s)", t.Text)
	case IMPLICIT_PARAMETER:
		return fmt.Sprintf("$%d", t.Int)
	case INTEGER_LITERAL:
		return fmt.Sprintf("%s(%d, decimal=%t)", t.Kind, t.Int, t.Decimal)
	case FLOATING_POINT_LITERAL:
		return fmt.Sprintf("%s(%s)", t.Kind, strconv.FormatFloat(t.Float, 'g', -1, 64))
	case BOOLEAN_LITERAL:
		return fmt.Sprintf("%s(%t)", t.Kind, t.Bool)
	}
	return t.Kind.String()
}

// Lexical error messages carried by ERROR tokens.
const (
	MsgUnexpectedEOF = "unexpected end of file"
	MsgInvalidToken  = "invalid token"
	MsgReservedToken = "reserved token"
)
