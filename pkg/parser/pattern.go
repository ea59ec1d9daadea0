package parser

import (
	"unicode"
	"unicode/utf8"

	"treeswift/pkg/ast"
	"treeswift/pkg/lexer"
	"treeswift/pkg/scope"
	"treeswift/pkg/source"
)

// Patterns create their insts without declaring them: the names of
//
//	let x = x + 1
//
// must not be visible in the initializer, so the caller declares them
// through a binder once the initializer has been read.

// parseDeclPattern reads the pattern of a let/var declaration, a for-in
// loop or an optional binding: an identifier, a wildcard or a tuple of
// those, each with an optional type annotation.
func (p *Parser) parseDeclPattern(constant bool) (ast.Pattern, error) {
	t := p.peek()
	var pat ast.Pattern
	switch t.Kind {
	case lexer.IDENTIFIER:
		p.next()
		ip := &ast.IdentifierPattern{Name: t.Text, Inst: scope.NewInst(valueKind(constant), t.Text, t.Pos), Pos: t.Pos}
		if p.peek().Kind == lexer.COLON {
			_, ann, err := p.parseTypeAnnotation()
			if err != nil {
				return nil, err
			}
			ip.Annotation = ann
		}
		pat = ip
	case lexer.UNDERSCORE:
		p.next()
		wp := &ast.WildcardPattern{Pos: t.Pos}
		if p.peek().Kind == lexer.COLON {
			_, ann, err := p.parseTypeAnnotation()
			if err != nil {
				return nil, err
			}
			wp.Annotation = ann
		}
		pat = wp
	case lexer.LPAREN:
		p.next()
		tp := &ast.TuplePattern{Pos: t.Pos}
		if !p.ts.Test(lexer.RPAREN) {
			for {
				e := &ast.TuplePatternElem{}
				if l := p.peek(); l.Kind == lexer.IDENTIFIER && p.look(1).Kind == lexer.COLON {
					e.Label = l.Text
					p.ts.Next(2, true)
				}
				sub, err := p.parseDeclPattern(constant)
				if err != nil {
					return nil, err
				}
				e.Pattern = sub
				tp.Elems = append(tp.Elems, e)
				if !p.ts.Test(lexer.COMMA) {
					break
				}
			}
			if _, err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
		}
		if p.peek().Kind == lexer.COLON {
			_, ann, err := p.parseTypeAnnotation()
			if err != nil {
				return nil, err
			}
			tp.Annotation = ann
		}
		pat = tp
	default:
		if err := p.unexpected(t, "pattern"); err != nil {
			return nil, err
		}
		return &ast.WildcardPattern{Pos: t.Pos}, nil
	}
	return pat, nil
}

func valueKind(constant bool) scope.InstKind {
	if constant {
		return scope.ConstantInst
	}
	return scope.VariableInst
}

// binding is set while the identifiers of a case pattern introduce names.
type binding struct {
	constant bool
}

// parseCasePattern reads the patterns allowed after case, catch, if case
// and for case.
//
//	case let .Some(x)?   case is Int   case (0, _)   case 1...5
func (p *Parser) parseCasePattern(b *binding) (ast.Pattern, error) {
	pat, err := p.parseCasePrimary(b)
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.raw().Kind == lexer.POSTFIX_QUESTION:
			p.next()
			pat = &ast.OptionalPattern{Pattern: pat}
		case p.peek().Kind == lexer.AS:
			p.next()
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			pat = &ast.TypeCastingPattern{Pattern: pat, Type: t}
		default:
			return pat, nil
		}
	}
}

func (p *Parser) parseCasePrimary(b *binding) (ast.Pattern, error) {
	t := p.peek()
	switch t.Kind {
	case lexer.UNDERSCORE:
		p.next()
		return &ast.WildcardPattern{Pos: t.Pos}, nil
	case lexer.LET, lexer.VAR:
		p.next()
		if b != nil {
			if err := p.errorf(t.Pos, "'%s' cannot appear nested inside another 'var' or 'let' pattern", t.Kind); err != nil {
				return nil, err
			}
		}
		constant := t.Kind == lexer.LET
		sub, err := p.parseCasePattern(&binding{constant: constant})
		if err != nil {
			return nil, err
		}
		return &ast.BindingPattern{Constant: constant, Pattern: sub}, nil
	case lexer.IS:
		p.next()
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.TypePattern{Type: ty}, nil
	case lexer.DOT:
		if name := p.look(1); name.Kind == lexer.IDENTIFIER {
			p.ts.Next(2, true)
			return p.parseEnumCasePattern("", name, b)
		}
	case lexer.LPAREN:
		return p.parseCaseTuple(b)
	case lexer.IDENTIFIER:
		if isTypeName(t.Text) && p.look(1).Kind == lexer.DOT && p.look(2).Kind == lexer.IDENTIFIER {
			name := p.look(2)
			p.ts.Next(3, true)
			return p.parseEnumCasePattern(t.Text, name, b)
		}
		if b != nil {
			p.next()
			return &ast.IdentifierPattern{Name: t.Text, Inst: scope.NewInst(valueKind(b.constant), t.Text, t.Pos), Pos: t.Pos}, nil
		}
	}
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionPattern{Expr: e}, nil
}

// isTypeName reports whether s starts with an upper case letter, which is
// how Enum.Case is told apart from value.member in a case pattern.
func isTypeName(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// parseEnumCasePattern reads the optional associated value tuple of
// .Case(...) or Enum.Case(...).
func (p *Parser) parseEnumCasePattern(className string, name lexer.Token, b *binding) (ast.Pattern, error) {
	ref, err := p.enumCaseRef(className, name.Text, name.Pos)
	if err != nil {
		return nil, err
	}
	ec := &ast.EnumCasePattern{Ref: ref, Pos: name.Pos}
	if p.raw().Kind == lexer.LPAREN {
		tp, err := p.parseCaseTuple(b)
		if err != nil {
			return nil, err
		}
		ec.Tuple = tp
	}
	return ec, nil
}

// parseCaseTuple reads (pattern, label: pattern, ...).
func (p *Parser) parseCaseTuple(b *binding) (*ast.TuplePattern, error) {
	open := p.next()
	tp := &ast.TuplePattern{Pos: open.Pos}
	err := p.withClosures(func() error {
		if p.ts.Test(lexer.RPAREN) {
			return nil
		}
		for {
			e := &ast.TuplePatternElem{}
			if l := p.peek(); l.Kind == lexer.IDENTIFIER && p.look(1).Kind == lexer.COLON {
				e.Label = l.Text
				p.ts.Next(2, true)
			}
			sub, err := p.parseCasePattern(b)
			if err != nil {
				return err
			}
			e.Pattern = sub
			tp.Elems = append(tp.Elems, e)
			if !p.ts.Test(lexer.COMMA) {
				break
			}
		}
		_, err := p.expect(lexer.RPAREN)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tp, nil
}

// binder declares the names introduced by patterns. The first declaration
// opens a value binding scope so that only later procedures see them.
type binder struct {
	p      *Parser
	pos    source.Pos
	opened bool
	// merge makes a name bound again by a later pattern share the first
	// inst, as the alternatives of one case label do.
	merge bool
	seen  map[string]*scope.Inst
}

func (p *Parser) newBinder(pos source.Pos) *binder {
	return &binder{p: p, pos: pos, seen: map[string]*scope.Inst{}}
}

// declare registers the insts of every identifier pattern inside pat.
func (b *binder) declare(pat ast.Pattern) error {
	for _, ip := range identifierPatterns(pat) {
		if b.merge {
			if first, ok := b.seen[ip.Name]; ok {
				ip.Inst = first
				continue
			}
		}
		if err := b.inst(ip.Inst); err != nil {
			return err
		}
		b.seen[ip.Name] = ip.Inst
	}
	return nil
}

// inst declares a single inst.
func (b *binder) inst(inst *scope.Inst) error {
	if !b.opened {
		b.p.m.EnterImplicit(b.pos)
		b.opened = true
	}
	return b.p.declare(inst)
}

// identifierPatterns lists the identifier patterns of pat in source order.
// Expressions are not entered: their closures declare their own names.
func identifierPatterns(pat ast.Pattern) []*ast.IdentifierPattern {
	var out []*ast.IdentifierPattern
	ast.Inspect(pat, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.IdentifierPattern:
			out = append(out, n)
		case *ast.ExpressionPattern:
			return false
		}
		return true
	})
	return out
}
