// Package parser builds the syntax tree of one file from a token stream.
//
// The parser is recursive descent with a few tokens of lookahead. Scopes
// are managed while parsing: a construct enters its scope before its
// signature and leaves it after its body, declarations register their
// insts as they are read and every name use records a ref. Resolution of
// those refs happens afterwards, see scope.Resolve.
//
// Error handling:
//
//   - a missing token records an error and parsing continues as if it
//     had been there
//   - a statement that cannot start records an error and skips one token
//   - ERROR tokens, the end of input inside an unfinished construct, scope
//     violations and the error cap abort the file; the parse functions then
//     return a *diag.FatalError
package parser

import (
	"errors"

	"treeswift/pkg/ast"
	"treeswift/pkg/diag"
	"treeswift/pkg/lexer"
	"treeswift/pkg/scope"
	"treeswift/pkg/source"
)

// TopLevelName is what __FUNCTION__ evaluates to outside any function.
const TopLevelName = "top level"

// Parser holds the state of one file parse.
type Parser struct {
	file string
	ts   *lexer.Stream
	m    *scope.Manager
	r    *diag.Reporter

	funcs     []string     // enclosing function names, innermost last
	enums     []*enumState // enclosing enum declarations
	noClosure bool         // a '{' ends the expression (conditions, sequences)
}

// New returns a parser reading ts. Declarations go into the scopes of m
// and diagnostics into r.
func New(file string, ts *lexer.Stream, m *scope.Manager, r *diag.Reporter) *Parser {
	return &Parser{file: file, ts: ts, m: m, r: r}
}

// ParseFile parses a whole file. A non-nil error is a fatal: the file was
// abandoned and the error is already recorded in r.
func ParseFile(file string, ts *lexer.Stream, m *scope.Manager, r *diag.Reporter) (*ast.File, error) {
	return New(file, ts, m, r).ParseFile()
}

// ParseFile parses procedures up to the end of input and checks that
// every scope opened on the way has been closed.
func (p *Parser) ParseFile() (*ast.File, error) {
	procs, err := p.parseProcedures()
	if err != nil {
		return nil, err
	}
	eof := p.ts.Peek()
	if eof.Kind != lexer.EOF {
		return nil, p.r.Fatal(eof.Pos, "unexpected '%s'", eof.Kind)
	}
	if err := p.m.Finish(eof.Pos); err != nil {
		return nil, p.scopeErr(err, eof.Pos)
	}
	return &ast.File{Name: p.file, Procedures: procs, Scope: p.m.Root()}, nil
}

// peek returns the next token, line feeds skipped.
func (p *Parser) peek() lexer.Token { return p.ts.Peek() }

// raw returns the next token without skipping line feeds.
func (p *Parser) raw() lexer.Token { return p.ts.Look(0, false) }

// look returns the token ahead of the next one, line feeds skipped.
func (p *Parser) look(ahead int) lexer.Token { return p.ts.Look(ahead, true) }

// next consumes and returns the next token, line feeds skipped.
func (p *Parser) next() lexer.Token {
	t := p.ts.Peek()
	p.ts.Next(1, true)
	return t
}

// errorf records a recoverable error. The returned error is non-nil only
// once the error cap is exceeded.
func (p *Parser) errorf(pos source.Pos, format string, args ...any) error {
	return p.r.Error(pos, format, args...)
}

// unexpected reports that tok cannot appear where what was expected. ERROR
// tokens and the end of input inside a construct are fatal.
func (p *Parser) unexpected(tok lexer.Token, what string) error {
	if tok.Kind == lexer.ERROR {
		return p.r.Fatal(tok.Pos, "%s", tok.Text)
	}
	if tok.Kind == lexer.EOF {
		return p.r.Fatal(tok.Pos, "expected %s, found end of file", what)
	}
	return p.errorf(tok.Pos, "expected %s", what)
}

// expect consumes a token of kind k. When it is missing an error is
// recorded and parsing goes on as if it had been there.
func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	if t, ok := p.ts.Match(k); ok {
		return t, nil
	}
	t := p.peek()
	return t, p.unexpected(t, describe(k))
}

func describe(k lexer.Kind) string {
	switch k {
	case lexer.IDENTIFIER:
		return "identifier"
	case lexer.INTEGER_LITERAL:
		return "integer literal"
	}
	return "'" + k.String() + "'"
}

// scopeErr turns a scope manager failure into a fatal diagnostic.
func (p *Parser) scopeErr(err error, pos source.Pos) error {
	if diag.IsFatal(err) {
		return err
	}
	var se *scope.Error
	if errors.As(err, &se) && se.Pos.IsValid() {
		pos = se.Pos
	}
	return p.r.Fatal(pos, "%s", err)
}

func (p *Parser) declare(inst *scope.Inst) error {
	if err := p.m.Declare(inst); err != nil {
		return p.scopeErr(err, inst.Pos)
	}
	return nil
}

func (p *Parser) create(kind scope.InstKind, name string, pos source.Pos) (*scope.Inst, error) {
	inst, err := p.m.Create(kind, name, pos)
	if err != nil {
		return nil, p.scopeErr(err, pos)
	}
	return inst, nil
}

func (p *Parser) leave(kind scope.Kind, pos source.Pos) (*scope.Scope, error) {
	sc, err := p.m.Leave(kind, pos)
	if err != nil {
		return nil, p.scopeErr(err, pos)
	}
	return sc, nil
}

func (p *Parser) valueRef(name string, pos source.Pos) (*scope.Ref, error) {
	r, err := p.m.NewRef(scope.ValueRef, name, pos)
	if err != nil {
		return nil, p.scopeErr(err, pos)
	}
	return r, nil
}

func (p *Parser) typeRef(name string, pos source.Pos) (*scope.Ref, error) {
	r, err := p.m.NewRef(scope.TypeRef, name, pos)
	if err != nil {
		return nil, p.scopeErr(err, pos)
	}
	return r, nil
}

func (p *Parser) operatorRef(name string, fixity scope.Fixity, pos source.Pos) (*scope.Ref, error) {
	r, err := p.m.NewOperatorRef(name, fixity, pos)
	if err != nil {
		return nil, p.scopeErr(err, pos)
	}
	return r, nil
}

func (p *Parser) enumCaseRef(className, name string, pos source.Pos) (*scope.Ref, error) {
	r, err := p.m.NewEnumCaseRef(className, name, pos)
	if err != nil {
		return nil, p.scopeErr(err, pos)
	}
	return r, nil
}

// enterFunc pushes the name __FUNCTION__ reports inside a body.
func (p *Parser) enterFunc(name string) { p.funcs = append(p.funcs, name) }
func (p *Parser) leaveFunc()            { p.funcs = p.funcs[:len(p.funcs)-1] }

func (p *Parser) funcName() string {
	if len(p.funcs) == 0 {
		return TopLevelName
	}
	return p.funcs[len(p.funcs)-1]
}

// withClosures parses f with trailing closures allowed again, as inside
// brackets.
func (p *Parser) withClosures(f func() error) error {
	saved := p.noClosure
	p.noClosure = false
	err := f()
	p.noClosure = saved
	return err
}

// withoutClosures parses f with '{' ending the expression.
func (p *Parser) withoutClosures(f func() error) error {
	saved := p.noClosure
	p.noClosure = true
	err := f()
	p.noClosure = saved
	return err
}

// isOperator reports whether t spells an operator, reserved single
// character forms included.
func isOperator(t lexer.Token) bool {
	switch t.Kind {
	case lexer.PREFIX_OPERATOR, lexer.BINARY_OPERATOR, lexer.POSTFIX_OPERATOR,
		lexer.PREFIX_LESS_THAN, lexer.POSTFIX_GRATER_THAN, lexer.PREFIX_AMPERSAND,
		lexer.PREFIX_QUESTION, lexer.BINARY_QUESTION, lexer.POSTFIX_QUESTION, lexer.POSTFIX_EXCLAMATION:
		return true
	}
	return false
}
