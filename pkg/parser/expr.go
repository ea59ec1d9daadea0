package parser

import (
	"strings"

	"treeswift/pkg/ast"
	"treeswift/pkg/lexer"
	"treeswift/pkg/scope"
)

// startsExpr reports whether t can begin an expression.
func startsExpr(t lexer.Token) bool {
	switch t.Kind {
	case lexer.IDENTIFIER, lexer.IMPLICIT_PARAMETER,
		lexer.INTEGER_LITERAL, lexer.FLOATING_POINT_LITERAL, lexer.STRING_LITERAL, lexer.BOOLEAN_LITERAL, lexer.NIL,
		lexer.LBRACKET, lexer.LPAREN, lexer.LBRACE, lexer.DOT, lexer.UNDERSCORE,
		lexer.SELF, lexer.SUPER, lexer.TRY, lexer.PREFIX_OPERATOR, lexer.PREFIX_AMPERSAND,
		lexer.FILE_LITERAL, lexer.LINE_LITERAL, lexer.COLUMN_LITERAL, lexer.FUNCTION_LITERAL:
		return true
	}
	return false
}

// parseExpression reads a binary chain with its casts and conditional
// operators. Chains nest to the right; operator precedence is applied by
// the type checker once every operator declaration is known.
//
//	try a + b as Int ?? c ? d : e
func (p *Parser) parseExpression() (ast.Expr, error) {
	if t, ok := p.ts.Match(lexer.TRY); ok {
		forced := false
		if p.raw().Kind == lexer.POSTFIX_EXCLAMATION && p.raw().Pos.Offset == t.Pos.Offset+len("try") {
			p.next()
			forced = true
		}
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.TryExpr{Forced: forced, Expr: e}, nil
	}
	left, err := p.parsePrefixed()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch t.Kind {
		case lexer.BINARY_OPERATOR:
			p.next()
			ref, err := p.operatorRef(t.Text, scope.Infix, t.Pos)
			if err != nil {
				return nil, err
			}
			right, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return &ast.BinaryExpr{Left: left, Op: t.Text, Ref: ref, Right: right, Pos: t.Pos}, nil
		case lexer.BINARY_QUESTION:
			p.next()
			then, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.COLON); err != nil {
				return nil, err
			}
			els, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			return &ast.ConditionalExpr{Cond: left, Then: then, Else: els}, nil
		case lexer.IS, lexer.AS:
			p.next()
			kind := ast.CastIs
			if t.Kind == lexer.AS {
				kind = ast.CastAs
				switch p.raw().Kind {
				case lexer.POSTFIX_QUESTION:
					p.next()
					kind = ast.CastConditional
				case lexer.POSTFIX_EXCLAMATION:
					p.next()
					kind = ast.CastForced
				}
			}
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			left = &ast.CastExpr{Expr: left, Kind: kind, Type: ty}
		default:
			return left, nil
		}
	}
}

// parsePrefixed reads an optional prefix operator or '&' and the postfix
// chain it applies to.
func (p *Parser) parsePrefixed() (ast.Expr, error) {
	t := p.peek()
	switch t.Kind {
	case lexer.PREFIX_OPERATOR:
		p.next()
		ref, err := p.operatorRef(t.Text, scope.Prefix, t.Pos)
		if err != nil {
			return nil, err
		}
		e, err := p.parsePrefixed()
		if err != nil {
			return nil, err
		}
		return &ast.PrefixExpr{Op: t.Text, Ref: ref, Expr: e, Pos: t.Pos}, nil
	case lexer.PREFIX_AMPERSAND:
		p.next()
		e, err := p.parsePostfixChain()
		if err != nil {
			return nil, err
		}
		return &ast.InOutExpr{Expr: e}, nil
	}
	return p.parsePostfixChain()
}

// parsePostfixChain reads a core followed by calls, subscripts, member
// accesses, postfix operators, '!' and '?'. Calls and subscripts must
// start on the line of the expression they apply to.
func (p *Parser) parsePostfixChain() (ast.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.raw()
		switch t.Kind {
		case lexer.POSTFIX_OPERATOR:
			p.next()
			ref, err := p.operatorRef(t.Text, scope.Postfix, t.Pos)
			if err != nil {
				return nil, err
			}
			e = &ast.PostfixOpExpr{Expr: e, Op: t.Text, Ref: ref, Pos: t.Pos}
		case lexer.POSTFIX_EXCLAMATION:
			p.next()
			e = &ast.ForcedValueExpr{Expr: e}
		case lexer.POSTFIX_QUESTION:
			p.next()
			e = &ast.OptionalChainExpr{Expr: e}
		case lexer.LPAREN:
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			call := &ast.CallExpr{Fn: e, Args: args}
			if p.trailingClosure() {
				if call.Trailing, err = p.parseClosure(); err != nil {
					return nil, err
				}
			}
			e = call
		case lexer.LBRACKET:
			p.next()
			var index []ast.Expr
			err := p.withClosures(func() error {
				var err error
				index, err = p.parseExprList(lexer.RBRACKET)
				return err
			})
			if err != nil {
				return nil, err
			}
			e = &ast.SubscriptExpr{Expr: e, Index: index}
		case lexer.LBRACE:
			if !callable(e) || !p.trailingClosure() {
				return e, nil
			}
			closure, err := p.parseClosure()
			if err != nil {
				return nil, err
			}
			e = &ast.CallExpr{Fn: e, Trailing: closure}
		case lexer.DOT, lexer.LINE_FEED:
			if p.peek().Kind != lexer.DOT {
				return e, nil
			}
			if e, err = p.parseMember(e); err != nil {
				return nil, err
			}
		default:
			return e, nil
		}
	}
}

// trailingClosure reports whether a '{' on the current line starts a
// trailing closure.
func (p *Parser) trailingClosure() bool {
	return !p.noClosure && p.raw().Kind == lexer.LBRACE
}

// callable reports whether a trailing closure may follow e directly.
func callable(e ast.Expr) bool {
	switch e.(type) {
	case *ast.IdentExpr, *ast.MemberExpr, *ast.CallExpr, *ast.SelfExpr, *ast.SuperExpr, *ast.ImplicitMemberExpr:
		return true
	}
	return false
}

// parseMember reads the part after '.' of a postfix chain.
func (p *Parser) parseMember(e ast.Expr) (ast.Expr, error) {
	p.next()
	t := p.raw()
	m := &ast.MemberExpr{Expr: e, Pos: t.Pos}
	switch t.Kind {
	case lexer.IDENTIFIER:
		p.next()
		m.Kind = ast.MemberNamed
		m.Name = t.Text
		if p.looksLikeGenericArgs(t) {
			args, err := p.parseGenericArgs()
			if err != nil {
				return nil, err
			}
			m.Args = args
		}
	case lexer.INTEGER_LITERAL:
		p.next()
		m.Kind = ast.MemberUnnamed
		m.Index = t.Int
	case lexer.INIT:
		p.next()
		m.Kind = ast.MemberInit
	case lexer.SELF:
		p.next()
		m.Kind = ast.MemberSelf
	case lexer.DYNAMIC_TYPE:
		p.next()
		m.Kind = ast.MemberDynamicType
	default:
		if err := p.unexpected(t, "member name following '.'"); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// parseArgs reads a parenthesized, possibly labelled argument list.
func (p *Parser) parseArgs() ([]*ast.TupleElem, error) {
	p.next()
	var elems []*ast.TupleElem
	err := p.withClosures(func() error {
		if p.ts.Test(lexer.RPAREN) {
			return nil
		}
		for {
			el := &ast.TupleElem{}
			if l := p.peek(); isLabel(l) && p.look(1).Kind == lexer.COLON {
				el.Label = labelText(l)
				p.ts.Next(2, true)
			}
			e, err := p.parseExpression()
			if err != nil {
				return err
			}
			el.Expr = e
			elems = append(elems, el)
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
	return elems, nil
}

// isLabel reports whether t can be an argument label. Keywords are allowed
// as labels: f(in: x).
func isLabel(t lexer.Token) bool {
	return t.Kind == lexer.IDENTIFIER || t.Kind.IsKeyword()
}

func labelText(t lexer.Token) string {
	if t.Kind == lexer.IDENTIFIER {
		return t.Text
	}
	return t.Kind.String()
}

// parseExprList reads comma separated expressions up to and including the
// closing kind.
func (p *Parser) parseExprList(closing lexer.Kind) ([]ast.Expr, error) {
	var es []ast.Expr
	if p.ts.Test(closing) {
		return es, nil
	}
	for {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		es = append(es, e)
		if !p.ts.Test(lexer.COMMA) {
			break
		}
	}
	_, err := p.expect(closing)
	return es, err
}

// parsePrimary reads the core of a postfix chain.
func (p *Parser) parsePrimary() (ast.Expr, error) {
	t := p.peek()
	switch t.Kind {
	case lexer.IDENTIFIER:
		p.next()
		ref, err := p.valueRef(t.Text, t.Pos)
		if err != nil {
			return nil, err
		}
		id := &ast.IdentExpr{Name: t.Text, Ref: ref, Pos: t.Pos}
		if p.looksLikeGenericArgs(t) {
			if id.Args, err = p.parseGenericArgs(); err != nil {
				return nil, err
			}
		}
		return id, nil
	case lexer.IMPLICIT_PARAMETER:
		p.next()
		ref, err := p.m.NewImplicitParameterRef(int(t.Int), t.Pos)
		if err != nil {
			return nil, p.scopeErr(err, t.Pos)
		}
		return &ast.ImplicitParamExpr{Index: int(t.Int), Ref: ref, Pos: t.Pos}, nil
	case lexer.INTEGER_LITERAL:
		p.next()
		return &ast.IntegerLiteral{Value: t.Int, Decimal: t.Decimal, Pos: t.Pos}, nil
	case lexer.FLOATING_POINT_LITERAL:
		p.next()
		return &ast.FloatLiteral{Value: t.Float, Pos: t.Pos}, nil
	case lexer.STRING_LITERAL:
		p.next()
		return &ast.StringLiteral{Value: t.Text, Pos: t.Pos}, nil
	case lexer.BOOLEAN_LITERAL:
		p.next()
		return &ast.BoolLiteral{Value: t.Bool, Pos: t.Pos}, nil
	case lexer.NIL:
		p.next()
		return &ast.NilLiteral{Pos: t.Pos}, nil
	case lexer.FILE_LITERAL:
		p.next()
		return &ast.StringLiteral{Value: p.file, Pos: t.Pos}, nil
	case lexer.LINE_LITERAL:
		p.next()
		return &ast.IntegerLiteral{Value: int64(t.Pos.Line), Decimal: true, Pos: t.Pos}, nil
	case lexer.COLUMN_LITERAL:
		p.next()
		return &ast.IntegerLiteral{Value: int64(t.Pos.Col), Decimal: true, Pos: t.Pos}, nil
	case lexer.FUNCTION_LITERAL:
		p.next()
		return &ast.StringLiteral{Value: p.funcName(), Pos: t.Pos}, nil
	case lexer.LBRACKET:
		return p.parseCollectionLiteral()
	case lexer.LPAREN:
		return p.parseTuple()
	case lexer.LBRACE:
		return p.parseClosure()
	case lexer.DOT:
		p.next()
		name, ok := p.ts.Match(lexer.IDENTIFIER)
		if !ok {
			if err := p.unexpected(name, "identifier after '.'"); err != nil {
				return nil, err
			}
			return &ast.ImplicitMemberExpr{Pos: t.Pos}, nil
		}
		ref, err := p.enumCaseRef("", name.Text, name.Pos)
		if err != nil {
			return nil, err
		}
		return &ast.ImplicitMemberExpr{Name: name.Text, Ref: ref, Pos: name.Pos}, nil
	case lexer.UNDERSCORE:
		p.next()
		return &ast.WildcardExpr{Pos: t.Pos}, nil
	case lexer.SELF:
		p.next()
		return p.parseSelf(t)
	case lexer.SUPER:
		p.next()
		return p.parseSuper(t)
	}
	if err := p.unexpected(t, "expression"); err != nil {
		return nil, err
	}
	return &ast.WildcardExpr{Pos: t.Pos}, nil
}

// parseSelf reads self, self.init, self.member and self[index].
func (p *Parser) parseSelf(kw lexer.Token) (ast.Expr, error) {
	s := &ast.SelfExpr{Kind: ast.SelfPlain, Pos: kw.Pos}
	switch p.raw().Kind {
	case lexer.DOT:
		switch member := p.ts.Look(1, false); member.Kind {
		case lexer.INIT:
			p.ts.Next(2, false)
			s.Kind = ast.SelfInit
		case lexer.IDENTIFIER:
			p.ts.Next(2, false)
			s.Kind = ast.SelfMember
			s.Name = member.Text
		}
	case lexer.LBRACKET:
		index, err := p.parseIndex()
		if err != nil {
			return nil, err
		}
		s.Kind = ast.SelfSubscript
		s.Index = index
	}
	return s, nil
}

// parseSuper reads super.init, super.member and super[index].
func (p *Parser) parseSuper(kw lexer.Token) (ast.Expr, error) {
	s := &ast.SuperExpr{Pos: kw.Pos}
	switch p.raw().Kind {
	case lexer.DOT:
		switch member := p.ts.Look(1, false); member.Kind {
		case lexer.INIT:
			p.ts.Next(2, false)
			s.Kind = ast.SelfInit
			return s, nil
		case lexer.IDENTIFIER:
			p.ts.Next(2, false)
			s.Kind = ast.SelfMember
			s.Name = member.Text
			return s, nil
		}
	case lexer.LBRACKET:
		index, err := p.parseIndex()
		if err != nil {
			return nil, err
		}
		s.Kind = ast.SelfSubscript
		s.Index = index
		return s, nil
	}
	if err := p.unexpected(p.raw(), "'.' or '[' after 'super'"); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseIndex() ([]ast.Expr, error) {
	p.next()
	var index []ast.Expr
	err := p.withClosures(func() error {
		var err error
		index, err = p.parseExprList(lexer.RBRACKET)
		return err
	})
	return index, err
}

// isDictionaryLiteral scans the bracket under the cursor for a ':' outside
// nested brackets, stopping at the first top-level ',' or the closing ']'.
// The ':' of a conditional operator does not count.
func (p *Parser) isDictionaryLiteral() bool {
	depth, ternary := 0, 0
	for i := 1; ; i++ {
		switch p.ts.Look(i, true).Kind {
		case lexer.BINARY_QUESTION:
			if depth == 0 {
				ternary++
			}
		case lexer.LBRACKET, lexer.LPAREN, lexer.LBRACE:
			depth++
		case lexer.RBRACKET, lexer.RPAREN, lexer.RBRACE:
			if depth == 0 {
				return false
			}
			depth--
		case lexer.COLON:
			if depth == 0 {
				if ternary == 0 {
					return true
				}
				ternary--
			}
		case lexer.COMMA:
			if depth == 0 {
				return false
			}
		case lexer.EOF, lexer.ERROR:
			return false
		}
	}
}

// parseCollectionLiteral reads [a, b], [k: v] and [:].
func (p *Parser) parseCollectionLiteral() (ast.Expr, error) {
	dict := p.isDictionaryLiteral()
	p.next()
	var out ast.Expr
	err := p.withClosures(func() error {
		if !dict {
			elems, err := p.parseElems()
			out = &ast.ArrayLiteral{Elems: elems}
			return err
		}
		d := &ast.DictLiteral{}
		out = d
		if p.ts.Test(lexer.COLON) {
			_, err := p.expect(lexer.RBRACKET)
			return err
		}
		for p.peek().Kind != lexer.RBRACKET {
			key, err := p.parseExpression()
			if err != nil {
				return err
			}
			if _, err := p.expect(lexer.COLON); err != nil {
				return err
			}
			value, err := p.parseExpression()
			if err != nil {
				return err
			}
			d.Entries = append(d.Entries, &ast.DictEntry{Key: key, Value: value})
			if !p.ts.Test(lexer.COMMA) {
				break
			}
		}
		_, err := p.expect(lexer.RBRACKET)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// parseElems reads array elements; a trailing comma is allowed.
func (p *Parser) parseElems() ([]ast.Expr, error) {
	var elems []ast.Expr
	for p.peek().Kind != lexer.RBRACKET {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if !p.ts.Test(lexer.COMMA) {
			break
		}
	}
	_, err := p.expect(lexer.RBRACKET)
	return elems, err
}

// parseTuple reads (), (e) and (a, label: b). A single unlabelled element
// is returned unwrapped.
func (p *Parser) parseTuple() (ast.Expr, error) {
	elems, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	if len(elems) == 1 && elems[0].Label == "" {
		return elems[0].Expr, nil
	}
	return &ast.TupleExpr{Elems: elems}, nil
}

// hasClosureSignature scans the closure body under the cursor for 'in'
// preceded only by tokens a signature can contain.
//
//	{ [weak self] (a: Int) -> Int in ... }   { a, b in ... }
func (p *Parser) hasClosureSignature() bool {
	depth := 0
	for i := 0; ; i++ {
		t := p.ts.Look(i, true)
		switch t.Kind {
		case lexer.LBRACKET, lexer.LPAREN:
			depth++
			continue
		case lexer.RBRACKET, lexer.RPAREN:
			depth--
			if depth < 0 {
				return false
			}
			continue
		case lexer.EOF, lexer.ERROR, lexer.LBRACE, lexer.RBRACE:
			return false
		}
		if depth > 0 {
			continue
		}
		switch t.Kind {
		case lexer.IN:
			return true
		case lexer.IDENTIFIER, lexer.UNDERSCORE, lexer.COMMA, lexer.COLON, lexer.ARROW, lexer.DOT,
			lexer.THROWS, lexer.RETHROWS, lexer.INOUT, lexer.POSTFIX_QUESTION, lexer.POSTFIX_EXCLAMATION,
			lexer.PREFIX_LESS_THAN, lexer.POSTFIX_GRATER_THAN, lexer.PROTOCOL, lexer.SELF_TYPE, lexer.ATMARK:
		case lexer.BINARY_OPERATOR, lexer.POSTFIX_OPERATOR:
			if strings.Trim(t.Text, "<>?!.") != "" {
				return false
			}
		default:
			return false
		}
	}
}

// parseClosure reads { [captures] (params) throws -> Result in body }.
func (p *Parser) parseClosure() (*ast.ClosureExpr, error) {
	open := p.next()
	c := &ast.ClosureExpr{Pos: open.Pos}
	signature := p.hasClosureSignature()
	p.m.Enter(scope.Closure, open.Pos)
	err := p.withClosures(func() error {
		if signature {
			if err := p.parseClosureSignature(c); err != nil {
				return err
			}
		}
		body, err := p.parseProcedures(lexer.RBRACE)
		if err != nil {
			return err
		}
		c.Body = body
		_, err = p.expect(lexer.RBRACE)
		return err
	})
	if err != nil {
		return nil, err
	}
	if c.Scope, err = p.leave(scope.Closure, p.peek().Pos); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Parser) parseClosureSignature(c *ast.ClosureExpr) error {
	if p.peek().Kind == lexer.LBRACKET {
		caps, err := p.parseCaptures()
		if err != nil {
			return err
		}
		c.Captures = caps
	}
	switch p.peek().Kind {
	case lexer.LPAREN:
		params, err := p.parseParamClause(true)
		if err != nil {
			return err
		}
		c.Params = params
	case lexer.IDENTIFIER, lexer.UNDERSCORE:
		for {
			t := p.next()
			if t.Kind != lexer.IDENTIFIER && t.Kind != lexer.UNDERSCORE {
				if err := p.unexpected(t, "closure parameter name"); err != nil {
					return err
				}
				break
			}
			param := &ast.Param{Name: t.Text, Pos: t.Pos}
			if t.Kind == lexer.UNDERSCORE {
				param.Name = "_"
			} else {
				inst, err := p.create(scope.ConstantInst, t.Text, t.Pos)
				if err != nil {
					return err
				}
				param.Inst = inst
			}
			c.Params = append(c.Params, param)
			if !p.ts.Test(lexer.COMMA) {
				break
			}
		}
	}
	switch p.peek().Kind {
	case lexer.THROWS:
		p.next()
		c.Throws = ast.Throws
	case lexer.RETHROWS:
		p.next()
		c.Throws = ast.Rethrows
	}
	if p.ts.Test(lexer.ARROW) {
		result, err := p.parseType()
		if err != nil {
			return err
		}
		c.Result = result
	}
	_, err := p.expect(lexer.IN)
	return err
}

// parseCaptures reads [weak self, unowned(unsafe) x, y].
func (p *Parser) parseCaptures() ([]*ast.Capture, error) {
	p.next()
	var caps []*ast.Capture
	for p.peek().Kind != lexer.RBRACKET {
		c := &ast.Capture{}
		switch p.peek().Kind {
		case lexer.WEAK:
			p.next()
			c.Kind = ast.CaptureWeak
		case lexer.UNOWNED:
			p.next()
			c.Kind = ast.CaptureUnowned
			if p.raw().Kind == lexer.LPAREN {
				p.next()
				word := p.peek()
				switch {
				case word.Kind == lexer.IDENTIFIER && word.Text == "safe":
					p.next()
					c.Kind = ast.CaptureUnownedSafe
				case word.Kind == lexer.IDENTIFIER && word.Text == "unsafe":
					p.next()
					c.Kind = ast.CaptureUnownedUnsafe
				default:
					if err := p.unexpected(word, "'safe' or 'unsafe'"); err != nil {
						return nil, err
					}
				}
				if _, err := p.expect(lexer.RPAREN); err != nil {
					return nil, err
				}
			}
		}
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c.Expr = e
		caps = append(caps, c)
		if !p.ts.Test(lexer.COMMA) {
			break
		}
	}
	_, err := p.expect(lexer.RBRACKET)
	return caps, err
}
